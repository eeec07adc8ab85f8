package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModePolling, cfg.Mode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.PollTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 25.0, cfg.SendRatePerSec)
	assert.Equal(t, 30*time.Second, cfg.SendMaxRetry)
	assert.Equal(t, 5, cfg.MoversSampleSize)
	assert.Equal(t, 200, cfg.TextEchoLimit)
	assert.Empty(t, cfg.TradingPairs)
	assert.True(t, errors.Is(cfg.RequireToken(), ErrMissingToken))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("BOT_MODE", "Webhook")
	t.Setenv("WEBHOOK_URL", "https://example.org/hook")
	t.Setenv("SEND_MAX_RETRY", "5s")
	t.Setenv("MOVERS_SAMPLE_SIZE", "3")
	t.Setenv("TRADING_PAIRS", "BTC/USDT, ETH/USDT,,SOL/USDT")
	t.Setenv("BROADCAST_CHAT_ID", "-100123")
	t.Setenv("BROADCAST_SCHEDULE", "0 9 * * *")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.NoError(t, cfg.RequireToken())
	assert.Equal(t, ModeWebhook, cfg.Mode)
	assert.Equal(t, 5*time.Second, cfg.SendMaxRetry)
	assert.Equal(t, 3, cfg.MoversSampleSize)
	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT", "SOL/USDT"}, cfg.TradingPairs)
	assert.Equal(t, int64(-100123), cfg.BroadcastChatID)
}

func TestLoadFromFileEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "log_level: debug\ntext_echo_limit: 50\ntimeframes:\n  - 15m\n  - 1h\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("TEXT_ECHO_LIMIT", "80")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 80, cfg.TextEchoLimit)
	assert.Equal(t, []string{"15m", "1h"}, cfg.Timeframes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Mode:             ModePolling,
			HTTPAddr:         ":8080",
			SendRatePerSec:   25,
			SendMaxRetry:     time.Second,
			MoversSampleSize: 5,
			TextEchoLimit:    200,
			Timezone:         "UTC",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"неизвестный режим", func(c *Config) { c.Mode = "carrier-pigeon" }},
		{"webhook без URL", func(c *Config) { c.Mode = ModeWebhook }},
		{"нулевая частота отправки", func(c *Config) { c.SendRatePerSec = 0 }},
		{"нулевой ретрай", func(c *Config) { c.SendMaxRetry = 0 }},
		{"нулевая выборка", func(c *Config) { c.MoversSampleSize = 0 }},
		{"отрицательный лимит эха", func(c *Config) { c.TextEchoLimit = -1 }},
		{"неверная зона", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"расписание без чата", func(c *Config) { c.BroadcastSchedule = "@hourly" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLocation(t *testing.T) {
	c := Config{Timezone: "Europe/Moscow"}
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	c.Timezone = ""
	loc, err = c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
