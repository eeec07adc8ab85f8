package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// ErrMissingToken is returned by RequireToken when no bot token is configured.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// Config holds all application configuration
type Config struct {
	TelegramToken string `mapstructure:"telegram_bot_token"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	Debug         bool   `mapstructure:"debug"`

	Mode        string        `mapstructure:"bot_mode"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
	WebhookURL  string        `mapstructure:"webhook_url"`
	HTTPAddr    string        `mapstructure:"http_addr"`

	SendRatePerSec float64       `mapstructure:"send_rate_per_sec"`
	SendMaxRetry   time.Duration `mapstructure:"send_max_retry"`

	MoversSampleSize int      `mapstructure:"movers_sample_size"`
	TextEchoLimit    int      `mapstructure:"text_echo_limit"`
	Timezone         string   `mapstructure:"timezone"`
	TradingPairs     []string `mapstructure:"trading_pairs"`
	Timeframes       []string `mapstructure:"timeframes"`

	BroadcastChatID   int64  `mapstructure:"broadcast_chat_id"`
	BroadcastSchedule string `mapstructure:"broadcast_schedule"`
}

var defaults = map[string]any{
	"telegram_bot_token": "",
	"log_level":          "info",
	"log_format":         "console",
	"debug":              false,
	"bot_mode":           ModePolling,
	"poll_timeout":       "60s",
	"webhook_url":        "",
	"http_addr":          ":8080",
	"send_rate_per_sec":  25.0,
	"send_max_retry":     "30s",
	"movers_sample_size": 5,
	"text_echo_limit":    200,
	"timezone":           "Local",
	"trading_pairs":      []string{},
	"timeframes":         []string{},
	"broadcast_chat_id":  int64(0),
	"broadcast_schedule": "",
}

// Load reads configuration from an optional YAML file at path, then from the
// environment (a .env file is loaded first if present). Environment variables
// use the upper-cased key, e.g. BOT_MODE for bot_mode.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.TradingPairs = cleanList(cfg.TradingPairs)
	cfg.Timeframes = cleanList(cfg.Timeframes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that every command depends on. The bot token is
// checked separately by RequireToken because offline commands do not need it.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.WebhookURL == "" {
			return errors.New("WEBHOOK_URL is required in webhook mode")
		}
		if c.HTTPAddr == "" {
			return errors.New("HTTP_ADDR is required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown BOT_MODE %q", c.Mode)
	}

	if c.PollTimeout < 0 {
		return fmt.Errorf("POLL_TIMEOUT must not be negative, got %s", c.PollTimeout)
	}
	if c.SendRatePerSec <= 0 {
		return fmt.Errorf("SEND_RATE_PER_SEC must be positive, got %v", c.SendRatePerSec)
	}
	if c.SendMaxRetry <= 0 {
		return fmt.Errorf("SEND_MAX_RETRY must be positive, got %s", c.SendMaxRetry)
	}
	if c.MoversSampleSize < 1 {
		return fmt.Errorf("MOVERS_SAMPLE_SIZE must be positive, got %d", c.MoversSampleSize)
	}
	if c.TextEchoLimit < 1 {
		return fmt.Errorf("TEXT_ECHO_LIMIT must be positive, got %d", c.TextEchoLimit)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.BroadcastSchedule != "" && c.BroadcastChatID == 0 {
		return errors.New("BROADCAST_CHAT_ID is required when BROADCAST_SCHEDULE is set")
	}
	return nil
}

// RequireToken reports ErrMissingToken when the bot cannot authenticate.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.TelegramToken) == "" {
		return ErrMissingToken
	}
	return nil
}

// Location resolves the configured timezone used for timestamps.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// cleanList trims entries and drops empty ones. A single env value such as
// "BTC/USDT, ETH/USDT" arrives already split on commas.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
