package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		Symbol    string `yaml:"symbol"`
		VIXSymbol string `yaml:"vix_symbol"`
	} `yaml:"data_source"`
	Schedule struct {
		CheckCron string `yaml:"check_cron"`
		EODCron   string `yaml:"eod_cron"`
		Timezone  string `yaml:"timezone"`
	} `yaml:"schedule"`
	Strategy struct {
		CrashTriggerPct float64   `yaml:"crash_trigger_pct"`
		VIXThreshold    float64   `yaml:"vix_threshold"`
		EODHour         int       `yaml:"eod_hour"`
		EODMinute       int       `yaml:"eod_minute"`
		CrashSequence   []int64   `yaml:"crash_sequence"`
		Funds           []string  `yaml:"funds"`
		NormalWeights   []float64 `yaml:"normal_weights"`
		HighVIXWeights  []float64 `yaml:"high_vix_weights"`
	} `yaml:"strategy"`
	Fund struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"fund"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; a malformed one is,
// and the returned config still carries usable defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var parseErr error

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		parseErr = fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			cfg = &Config{}
			parseErr = fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := firstEnv("TELEGRAM_BOT_TOKEN", "BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := firstEnv("TELEGRAM_CHAT_ID", "CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Fund.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "^NSEI"
	}
	if cfg.DataSource.VIXSymbol == "" {
		cfg.DataSource.VIXSymbol = "^INDIAVIX"
	}
	if cfg.Schedule.CheckCron == "" {
		cfg.Schedule.CheckCron = "0 */15 9-15 * * 1-5"
	}
	if cfg.Schedule.EODCron == "" {
		cfg.Schedule.EODCron = "0 30 18 * * 1-5"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Asia/Kolkata"
	}
	if cfg.Strategy.CrashTriggerPct == 0 {
		cfg.Strategy.CrashTriggerPct = -3.0
	}
	if cfg.Strategy.VIXThreshold == 0 {
		cfg.Strategy.VIXThreshold = 20.0
	}
	if cfg.Strategy.EODHour == 0 {
		cfg.Strategy.EODHour = 18
	}
	if cfg.Strategy.EODMinute == 0 {
		cfg.Strategy.EODMinute = 30
	}
	if len(cfg.Strategy.CrashSequence) == 0 {
		cfg.Strategy.CrashSequence = []int64{20000, 20000, 10000, 20000, 20000, 10000}
	}
	if len(cfg.Strategy.Funds) == 0 {
		cfg.Strategy.Funds = []string{
			"Navi Nifty India Manufacturing Index Fund",
			"Navi Flexi Cap Fund",
			"Navi Nifty Midcap 150 Index Fund",
			"Navi Nifty 50 Index Fund",
		}
	}
	if len(cfg.Strategy.NormalWeights) == 0 {
		cfg.Strategy.NormalWeights = []float64{0.25, 0.25, 0.25, 0.25}
	}
	if len(cfg.Strategy.HighVIXWeights) == 0 {
		cfg.Strategy.HighVIXWeights = []float64{0.25, 0.325, 0.10, 0.325}
	}
	if cfg.Fund.StateFile == "" {
		cfg.Fund.StateFile = "crash_state.json"
	}

	return cfg, parseErr
}

// Validate checks the internal consistency of the strategy configuration.
// Telegram credentials are deliberately not required: a missing token only
// skips notification delivery, it never aborts a run.
func (c *Config) Validate() error {
	if c.Strategy.CrashTriggerPct >= 0 {
		return fmt.Errorf("strategy.crash_trigger_pct must be negative, got %.2f", c.Strategy.CrashTriggerPct)
	}
	if len(c.Strategy.CrashSequence) == 0 {
		return fmt.Errorf("strategy.crash_sequence must not be empty")
	}
	for i, amt := range c.Strategy.CrashSequence {
		if amt <= 0 {
			return fmt.Errorf("strategy.crash_sequence[%d] must be positive, got %d", i, amt)
		}
	}
	if len(c.Strategy.Funds) == 0 {
		return fmt.Errorf("strategy.funds must not be empty")
	}
	if len(c.Strategy.NormalWeights) != len(c.Strategy.Funds) {
		return fmt.Errorf("strategy.normal_weights has %d entries, want %d", len(c.Strategy.NormalWeights), len(c.Strategy.Funds))
	}
	if len(c.Strategy.HighVIXWeights) != len(c.Strategy.Funds) {
		return fmt.Errorf("strategy.high_vix_weights has %d entries, want %d", len(c.Strategy.HighVIXWeights), len(c.Strategy.Funds))
	}
	if err := checkWeightSum("normal_weights", c.Strategy.NormalWeights); err != nil {
		return err
	}
	if err := checkWeightSum("high_vix_weights", c.Strategy.HighVIXWeights); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone, falling back to a fixed IST
// offset when the tz database is unavailable.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

func checkWeightSum(name string, weights []float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("strategy.%s contains a negative weight", name)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("strategy.%s must sum to 1.0, got %.6f", name, sum)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
