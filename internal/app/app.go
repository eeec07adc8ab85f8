// Package app wires configuration into the components shared by the binaries.
package app

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Alias1177/cryptosignals/internal/analyze"
	"github.com/Alias1177/cryptosignals/internal/bot"
	"github.com/Alias1177/cryptosignals/internal/config"
	"github.com/Alias1177/cryptosignals/internal/platform/telegram"
	"github.com/Alias1177/cryptosignals/internal/pools"
)

// NewAnalyzer builds the content generator from configuration. rnd may be nil
// for the process-wide random source.
func NewAnalyzer(cfg *config.Config, rnd analyze.Rand, logger zerolog.Logger) (*analyze.Analyzer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	p := pools.Default().WithPairs(cfg.TradingPairs).WithTimeframes(cfg.Timeframes)

	a, err := analyze.New(analyze.Options{
		Pools:            p,
		Rand:             rnd,
		Location:         loc,
		MoversSampleSize: cfg.MoversSampleSize,
		EchoLimit:        cfg.TextEchoLimit,
		Logger:           &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	return a, nil
}

// NewResponder is NewAnalyzer wrapped in the never-failing responder.
func NewResponder(cfg *config.Config, rnd analyze.Rand, logger zerolog.Logger) (*bot.Responder, error) {
	a, err := NewAnalyzer(cfg, rnd, logger)
	if err != nil {
		return nil, err
	}
	return bot.NewResponder(a, logger), nil
}

// NewTelegram authorizes against the Bot API and wraps it in the rate limited
// client.
func NewTelegram(cfg *config.Config, logger zerolog.Logger) (*tgbotapi.BotAPI, *telegram.Client, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize Telegram bot: %w", err)
	}
	api.Debug = cfg.Debug
	logger.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	client := telegram.NewClient(api, telegram.ClientOptions{
		RequestsPerSec:  cfg.SendRatePerSec,
		MaxRetryTimeout: cfg.SendMaxRetry,
		Logger:          &logger,
	})
	return api, client, nil
}
