// Package scheduler runs the intraday check and EOD summary on in-process
// cron schedules. Only used in daemon mode; the default deployment is a
// one-shot process triggered by an external scheduler.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"CrashSentinel/internal/notifier"
	"CrashSentinel/internal/runner"
)

// Scheduler manages the cron tasks for daemon mode.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *runner.Runner
	Sequence []int64
}

// NewScheduler creates a Scheduler with all cron times interpreted in loc.
func NewScheduler(r *runner.Runner, sequence []int64, loc *time.Location) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Runner:   r,
		Sequence: sequence,
	}
}

// Register adds the intraday check and EOD summary schedules.
func (s *Scheduler) Register(checkCron, eodCron string) error {
	if _, err := s.Cron.AddFunc(checkCron, func() {
		s.Runner.Run(runner.ModeCheck)
	}); err != nil {
		return fmt.Errorf("register check task: %w", err)
	}
	if _, err := s.Cron.AddFunc(eodCron, func() {
		s.Runner.Run(runner.ModeEOD)
	}); err != nil {
		return fmt.Errorf("register eod task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// HandleCommand processes a user command received over Telegram polling.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/check":
		s.Runner.Run(runner.ModeCheck)
		return ""
	case "/eod":
		s.Runner.Run(runner.ModeEOD)
		return ""
	case "/status":
		return notifier.FormatStatus(s.Runner.Fund.State(), s.Sequence)
	default:
		return "Commands:\n• /check - run the crash check now\n• /eod - send the EOD summary now\n• /status - show tranche status"
	}
}
