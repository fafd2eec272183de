package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	log, closer := logger.New(config.LoadLogging())
	defer closer.Close()

	log.Info("Homework status bot starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load application configuration: %v", err)
	}
	log.Infof("Configuration loaded. Environment: %s, endpoint: %s, schedule: %s, chat ID: %d",
		cfg.Log.Environment, cfg.PracticumURL, cfg.RetryScheduleRaw, cfg.TelegramChatID)

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.HTTPTimeout)
	if err != nil {
		log.Fatalf("Could not create Telegram bot: %v", err)
	}
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, log)

	apiClient := practicum.NewClient(cfg.PracticumURL, cfg.PracticumToken, log, practicum.WithTimeout(cfg.HTTPTimeout))
	statusService := app.NewStatusService(apiClient, cfg.Verdicts, log)

	poller := scheduler.NewStatusPoller(statusService, notifier, cfg.RetrySchedule, log, time.Now().Unix())

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller.Run(ctx) // Blocks until a signal is received

	log.Info("Homework status bot shut down gracefully.")
}
