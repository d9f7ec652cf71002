// Package runner drives one scheduled invocation: fetch a snapshot, decide
// between EOD summary, crash deployment or no-op, deliver at most one
// notification and persist the tranche state.
package runner

import (
	"time"

	"github.com/rs/zerolog/log"

	"CrashSentinel/internal/collector"
	"CrashSentinel/internal/fund"
	"CrashSentinel/internal/notifier"
	"CrashSentinel/internal/recorder"
	"CrashSentinel/internal/strategy"
)

// Mode tells the runner which branch the external scheduler intends.
// ModeAuto falls back to wall-clock EOD-window detection for parity with
// plain cron triggers that pass no mode.
type Mode int

const (
	ModeAuto Mode = iota
	ModeCheck
	ModeEOD
)

// ParseMode maps the RUN_MODE environment value to a Mode.
func ParseMode(s string) Mode {
	switch s {
	case "eod":
		return ModeEOD
	case "check":
		return ModeCheck
	default:
		return ModeAuto
	}
}

// Runner orchestrates one run of the crash-deployment check.
type Runner struct {
	Collector *collector.Collector
	Fund      *fund.Manager
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Engine    *strategy.Engine

	EODHour   int
	EODMinute int
	Loc       *time.Location

	Now func() time.Time // injectable clock
}

// Run executes the decision tree once. No failure inside a run is fatal:
// fetch errors produce an error notification, notification errors are logged,
// and the tranche state is persisted at the end of every run regardless.
func (r *Runner) Run(mode Mode) {
	defer r.persist()

	snap, err := r.Collector.Collect()
	if err != nil {
		log.Error().Err(err).Msg("market data fetch failed")
		r.trySend(notifier.FormatFetchError(err))
		r.recordRun(&recorder.RunRecord{
			Outcome:       "FETCH_ERROR",
			DeployedCount: r.Fund.DeployedCount(),
		})
		return
	}

	state := r.Fund.State()
	ev := r.Engine.Evaluate(snap, &state, r.isEOD(mode))

	switch ev.Decision {
	case strategy.DecisionEOD:
		r.trySend(notifier.FormatEODSummary(snap, r.Fund.DeployedCount(), r.Fund.TrancheCount(), r.Loc))

	case strategy.DecisionNoData:
		log.Warn().Msg("no percent move available, skipping checks")

	case strategy.DecisionDeploy:
		if err := r.Fund.MarkDeployed(ev.TrancheIndex); err != nil {
			log.Error().Err(err).Msg("mark tranche deployed")
			break
		}
		// The notification reads the post-mutation count.
		used := r.Fund.DeployedCount()
		log.Info().
			Int("tranche", ev.TrancheIndex+1).
			Int64("amount", ev.Amount).
			Float64("pct", *snap.PercentMove).
			Msg("crash tranche deployed")
		r.trySend(notifier.FormatCrashAlert(snap, ev.TrancheIndex, ev.Amount, ev.Allocation, used, r.Fund.TrancheCount(), r.Loc))
		if err := r.Recorder.RecordDeployment(&recorder.DeploymentRecord{
			TrancheIndex:  ev.TrancheIndex,
			Amount:        ev.Amount,
			VIX:           snap.VIX,
			Allocation:    ev.Allocation,
			DeployedCount: used,
		}); err != nil {
			log.Error().Err(err).Msg("record deployment")
		}

	case strategy.DecisionExhausted:
		log.Info().Float64("pct", *snap.PercentMove).Msg("crash detected but all tranches already deployed")

	case strategy.DecisionHold:
		log.Info().Float64("pct", *snap.PercentMove).Msg("no crash trigger")
	}

	r.recordRun(&recorder.RunRecord{
		Outcome:       string(ev.Decision),
		PercentMove:   snap.PercentMove,
		Price:         snap.Price,
		VIX:           snap.VIX,
		DeployedCount: r.Fund.DeployedCount(),
	})
}

// isEOD resolves the run branch. An explicit mode from the scheduler wins;
// ModeAuto matches the 18:30 wall clock with a one-minute tolerance.
func (r *Runner) isEOD(mode Mode) bool {
	switch mode {
	case ModeEOD:
		return true
	case ModeCheck:
		return false
	}
	now := r.now().In(r.Loc)
	return now.Hour() == r.EODHour &&
		(now.Minute() == r.EODMinute || now.Minute() == r.EODMinute+1)
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) persist() {
	if err := r.Fund.Save(); err != nil {
		log.Error().Err(err).Msg("save crash state")
	}
}

func (r *Runner) trySend(text string) {
	if err := r.Notifier.Send(text); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}

func (r *Runner) recordRun(rec *recorder.RunRecord) {
	if err := r.Recorder.RecordRun(rec); err != nil {
		log.Error().Err(err).Msg("record run")
	}
}
