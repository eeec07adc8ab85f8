package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/cryptosignals/internal/app"
	"github.com/Alias1177/cryptosignals/internal/broadcast"
	"github.com/Alias1177/cryptosignals/internal/config"
	"github.com/Alias1177/cryptosignals/internal/logger"
)

var (
	configPath string
	chatID     int64
	schedule   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "broadcast",
		Short:        "Posts a market overview to a chat or channel",
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to an optional YAML configuration file")
	rootCmd.Flags().Int64Var(&chatID, "chat", 0, "Target chat id (defaults to BROADCAST_CHAT_ID)")
	rootCmd.Flags().StringVar(&schedule, "schedule", "", "Cron spec; when set, keeps running and posts on schedule")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing broadcast CLI: %s\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if chatID == 0 {
		chatID = cfg.BroadcastChatID
	}
	if chatID == 0 {
		return errors.New("no target chat: pass --chat or set BROADCAST_CHAT_ID")
	}
	if schedule != "" {
		if err := broadcast.ParseSchedule(schedule); err != nil {
			return err
		}
	}

	responder, err := app.NewResponder(cfg, nil, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Invalid generator configuration")
	}
	_, client, err := app.NewTelegram(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	scheduler := broadcast.NewScheduler(client, responder.Market, broadcast.Options{
		ChatID:   chatID,
		Location: loc,
		Logger:   &appLogger,
	})

	if schedule == "" {
		return scheduler.Post(ctx)
	}

	if _, err := scheduler.Schedule(schedule); err != nil {
		return err
	}
	scheduler.Start()
	appLogger.Info().Str("schedule", schedule).Int64("chat_id", chatID).Msg("Broadcast running")

	<-ctx.Done()
	appLogger.Info().Msg("Stopping broadcast...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	return nil
}
