package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/cryptosignals/internal/analyze"
	"github.com/Alias1177/cryptosignals/internal/app"
	"github.com/Alias1177/cryptosignals/internal/bot"
	"github.com/Alias1177/cryptosignals/internal/broadcast"
	"github.com/Alias1177/cryptosignals/internal/config"
	"github.com/Alias1177/cryptosignals/internal/logger"
	"github.com/Alias1177/cryptosignals/internal/models"
	httpserver "github.com/Alias1177/cryptosignals/internal/platform/http"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath string
	seed       uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tgbot",
		Short:        "CryptoSignals Telegram bot",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an optional YAML configuration file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the bot (long polling or webhook)",
		RunE:  runServe,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Prints a generated message to stdout",
	}
	generateCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for reproducible output (0 = random)")
	generateCmd.AddCommand(
		&cobra.Command{
			Use:   "idea",
			Short: "Random trading idea",
			Args:  cobra.NoArgs,
			RunE: generate(func(r *bot.Responder, _ []string) string {
				return r.Idea()
			}),
		},
		&cobra.Command{
			Use:   "market",
			Short: "Market overview",
			Args:  cobra.NoArgs,
			RunE: generate(func(r *bot.Responder, _ []string) string {
				return r.Market()
			}),
		},
		&cobra.Command{
			Use:   "photo [file-id]",
			Short: "Chart analysis for an image submission",
			Args:  cobra.MaximumNArgs(1),
			RunE: generate(func(r *bot.Responder, args []string) string {
				image := models.ImageMetadata{FileID: "local"}
				if len(args) == 1 {
					image.FileID = args[0]
				}
				return r.Photo(image)
			}),
		},
		&cobra.Command{
			Use:   "text <text>",
			Short: "Keyword sentiment of a trade description",
			Args:  cobra.MinimumNArgs(1),
			RunE: generate(func(r *bot.Responder, args []string) string {
				return r.Text(strings.Join(args, " "))
			}),
		},
	)

	rootCmd.AddCommand(serveCmd, generateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing tgbot CLI: %s\n", err)
		os.Exit(1)
	}
}

func generate(produce func(r *bot.Responder, args []string) string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

		var rnd analyze.Rand
		if seed != 0 {
			rnd = analyze.NewLockedRand(seed)
		}
		responder, err := app.NewResponder(cfg, rnd, appLogger)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), produce(responder, args))
		return nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLogger.Info().Str("mode", cfg.Mode).Msg("Starting CryptoSignals bot")

	responder, err := app.NewResponder(cfg, nil, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Invalid generator configuration")
	}

	api, client, err := app.NewTelegram(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	handler := bot.NewHandler(client, responder, appLogger)

	var (
		updates    tgbotapi.UpdatesChannel
		stopSource func(context.Context)
	)

	switch cfg.Mode {
	case config.ModeWebhook:
		server := httpserver.NewServer(httpserver.ServerOptions{
			Addr:        cfg.HTTPAddr,
			WebhookPath: httpserver.WebhookPath(cfg.TelegramToken),
			Logger:      &appLogger,
		})

		hook, err := tgbotapi.NewWebhook(strings.TrimRight(cfg.WebhookURL, "/") + server.Path())
		if err != nil {
			appLogger.Fatal().Err(err).Msg("Invalid webhook URL")
		}
		if _, err := client.Request(ctx, hook); err != nil {
			appLogger.Fatal().Err(err).Msg("Failed to register webhook")
		}
		appLogger.Info().Str("url", cfg.WebhookURL).Msg("Webhook registered")

		go func() {
			if err := server.Start(); err != nil {
				appLogger.Error().Err(err).Msg("HTTP server failed")
				stop()
			}
		}()

		updates = server.Updates()
		stopSource = func(shutdownCtx context.Context) {
			if err := server.Shutdown(shutdownCtx); err != nil {
				appLogger.Error().Err(err).Msg("HTTP server forced to shutdown")
			}
			if _, err := client.Request(shutdownCtx, tgbotapi.DeleteWebhookConfig{}); err != nil {
				appLogger.Warn().Err(err).Msg("Failed to remove webhook")
			}
		}

	default:
		// getUpdates is refused while a webhook is set.
		if _, err := client.Request(ctx, tgbotapi.DeleteWebhookConfig{}); err != nil {
			appLogger.Warn().Err(err).Msg("Failed to remove webhook before polling")
		}

		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = int(cfg.PollTimeout.Seconds())
		updates = api.GetUpdatesChan(updateConfig)
		stopSource = func(context.Context) { api.StopReceivingUpdates() }
	}

	var scheduler *broadcast.Scheduler
	if cfg.BroadcastSchedule != "" {
		scheduler, err = newScheduler(cfg, client, responder, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("Failed to schedule broadcast")
		}
		scheduler.Start()
	}

	// On a signal, stop the update source so the channel closes and the
	// handler drains; give up on stragglers after shutdownTimeout.
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	go func() {
		<-ctx.Done()
		appLogger.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		stopSource(shutdownCtx)
		if scheduler != nil {
			scheduler.Stop(shutdownCtx)
		}
		<-shutdownCtx.Done()
		cancelRun()
	}()

	if err := handler.Run(runCtx, updates); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error().Err(err).Msg("Update loop failed")
		return err
	}

	appLogger.Info().Msg("Bot stopped")
	return nil
}

func newScheduler(cfg *config.Config, client broadcast.Poster, responder *bot.Responder, logger zerolog.Logger) (*broadcast.Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	scheduler := broadcast.NewScheduler(client, responder.Market, broadcast.Options{
		ChatID:   cfg.BroadcastChatID,
		Location: loc,
		Logger:   &logger,
	})
	if _, err := scheduler.Schedule(cfg.BroadcastSchedule); err != nil {
		return nil, err
	}
	return scheduler, nil
}
