package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"CrashSentinel/internal/calculator"
	"CrashSentinel/internal/collector"
	"CrashSentinel/internal/config"
	"CrashSentinel/internal/fund"
	"CrashSentinel/internal/notifier"
	"CrashSentinel/internal/recorder"
	"CrashSentinel/internal/runner"
	"CrashSentinel/internal/scheduler"
	"CrashSentinel/internal/strategy"
)

func main() {
	setupLogger()
	log.Info().Msg("CrashSentinel starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Runs must not fail on a broken config file; defaults still apply.
		log.Warn().Err(err).Msg("config load failed, continuing with defaults")
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration, aborting run")
		return
	}
	loc := cfg.Location()

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Str("symbol", cfg.DataSource.Symbol).Msg("data source selected")

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.VIXSymbol)

	// Init tranche state manager
	fm := fund.NewManager(cfg.Fund.StateFile, len(cfg.Strategy.CrashSequence))

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		log.Warn().Msg("telegram credentials not set, notifications will be skipped")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	r := &runner.Runner{
		Collector: col,
		Fund:      fm,
		Notifier:  tn,
		Recorder:  rec,
		Engine: &strategy.Engine{
			Plan: calculator.Plan{
				Funds:          cfg.Strategy.Funds,
				NormalWeights:  cfg.Strategy.NormalWeights,
				HighVolWeights: cfg.Strategy.HighVIXWeights,
				VolThreshold:   cfg.Strategy.VIXThreshold,
			},
			Sequence:   cfg.Strategy.CrashSequence,
			TriggerPct: cfg.Strategy.CrashTriggerPct,
		},
		EODHour:   cfg.Strategy.EODHour,
		EODMinute: cfg.Strategy.EODMinute,
		Loc:       loc,
	}

	if os.Getenv("DAEMON") == "true" {
		runDaemon(cfg, r, tn, loc)
		return
	}

	// Default: one-shot run for external schedulers (cron, GitHub Actions).
	mode := runner.ParseMode(os.Getenv("RUN_MODE"))
	r.Run(mode)
	log.Info().Str("time", time.Now().In(loc).Format("2006-01-02 15:04")).Msg("run completed")
}

func runDaemon(cfg *config.Config, r *runner.Runner, tn *notifier.TelegramNotifier, loc *time.Location) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(r, cfg.Strategy.CrashSequence, loc)
	if err := sched.Register(cfg.Schedule.CheckCron, cfg.Schedule.EODCron); err != nil {
		log.Error().Err(err).Msg("register cron tasks")
		return
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("CrashSentinel daemon running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
}

func setupLogger() {
	level := zerolog.InfoLevel
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}
