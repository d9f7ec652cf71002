package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("BOT_TOKEN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "missing config file is not an error")

	assert.Equal(t, "^NSEI", cfg.DataSource.Symbol)
	assert.Equal(t, "^INDIAVIX", cfg.DataSource.VIXSymbol)
	assert.Equal(t, -3.0, cfg.Strategy.CrashTriggerPct)
	assert.Equal(t, 20.0, cfg.Strategy.VIXThreshold)
	assert.Equal(t, 18, cfg.Strategy.EODHour)
	assert.Equal(t, 30, cfg.Strategy.EODMinute)
	assert.Equal(t, []int64{20000, 20000, 10000, 20000, 20000, 10000}, cfg.Strategy.CrashSequence)
	assert.Len(t, cfg.Strategy.Funds, 4)
	assert.Equal(t, "crash_state.json", cfg.Fund.StateFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
strategy:
  crash_trigger_pct: -2.5
  crash_sequence: [5000, 5000]
fund:
  state_file: "other_state.json"
`)
	t.Setenv("STATE_FILE", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, -2.5, cfg.Strategy.CrashTriggerPct)
	assert.Equal(t, []int64{5000, 5000}, cfg.Strategy.CrashSequence)
	assert.Equal(t, "other_state.json", cfg.Fund.StateFile)
}

func TestLoad_EnvOverridesAndFallbacks(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("BOT_TOKEN", "short-token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("STATE_FILE", "/tmp/s.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "short-token", cfg.Telegram.BotToken, "BOT_TOKEN is the fallback name")
	assert.Equal(t, "12345", cfg.Telegram.ChatID)
	assert.Equal(t, "/tmp/s.json", cfg.Fund.StateFile)

	t.Setenv("TELEGRAM_BOT_TOKEN", "long-token")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "long-token", cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN wins over BOT_TOKEN")
}

func TestLoad_MalformedFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "{not yaml")

	cfg, err := Load(path)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "^NSEI", cfg.DataSource.Symbol, "defaults survive a parse failure")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Strategy.CrashTriggerPct = 1.0
	assert.Error(t, cfg.Validate(), "positive trigger")

	cfg = base()
	cfg.Strategy.NormalWeights = []float64{0.5, 0.5}
	assert.Error(t, cfg.Validate(), "weight count mismatch")

	cfg = base()
	cfg.Strategy.HighVIXWeights = []float64{0.25, 0.25, 0.25, 0.30}
	assert.Error(t, cfg.Validate(), "weights must sum to 1.0")

	cfg = base()
	cfg.Strategy.CrashSequence = []int64{20000, 0}
	assert.Error(t, cfg.Validate(), "non-positive tranche amount")

	cfg = base()
	cfg.Telegram.BotToken = ""
	cfg.Telegram.ChatID = ""
	assert.NoError(t, cfg.Validate(), "missing credentials are not a config error")
}

func TestLocation_Fallback(t *testing.T) {
	cfg := &Config{}
	cfg.Schedule.Timezone = "Not/AZone"
	loc := cfg.Location()
	require.NotNil(t, loc)

	// Fallback is fixed IST, +05:30.
	name, offset := time.Now().In(loc).Zone()
	assert.Equal(t, "IST", name)
	assert.Equal(t, 5*3600+30*60, offset)
}
