package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := Unmarshal(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, "http://localhost:8080/api", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "auto", cfg.Backend.Contract)
	assert.Equal(t, "unknown", cfg.PixKey.Fallback)
	assert.Equal(t, 1500*time.Millisecond, cfg.Detect.Delay)
	assert.Equal(t, 3, cfg.Detect.MinLength)
	assert.Equal(t, int64(1234567), cfg.Account.BalanceCents)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Env(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("PIXSHIELD_BACKEND_BASE_URL", "https://antifraude.example.com/api")
	t.Setenv("PIXSHIELD_PIXKEY_FALLBACK", "random")
	t.Setenv("PIXSHIELD_DETECT_DELAY", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://antifraude.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, "random", cfg.PixKey.Fallback)
	assert.Equal(t, 250*time.Millisecond, cfg.Detect.Delay)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"empty base url", func(c *Config) { c.Backend.BaseURL = "" }, "backend.base_url is required"},
		{"relative base url", func(c *Config) { c.Backend.BaseURL = "/api" }, "absolute http(s) URL"},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }, "backend.timeout"},
		{"bad contract", func(c *Config) { c.Backend.Contract = "v9" }, "backend.contract"},
		{"bad fallback", func(c *Config) { c.PixKey.Fallback = "cpf" }, "pixkey.fallback"},
		{"zero delay", func(c *Config) { c.Detect.Delay = 0 }, "detect.delay"},
		{"negative min length", func(c *Config) { c.Detect.MinLength = -1 }, "detect.min_length"},
		{"no holder", func(c *Config) { c.Account.Holder = " " }, "account.holder"},
		{"negative balance", func(c *Config) { c.Account.BalanceCents = -1 }, "account.balance_cents"},
		{"no history", func(c *Config) { c.History.MaxRecords = 0 }, "history.max_records"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
