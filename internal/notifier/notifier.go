// Package notifier delivers formatted alerts to a Telegram chat.
package notifier

// Notifier is the interface for an outbound notification channel.
type Notifier interface {
	// Send delivers one message. Errors are reported to the caller but are
	// never fatal to a run.
	Send(text string) error
}
