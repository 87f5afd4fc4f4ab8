package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"todocli/internal/cli"
	"todocli/internal/config"
	"todocli/internal/notify"
	"todocli/internal/repository"
	"todocli/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo, logger)
	reminderSvc := service.NewReminderService(taskRepo, buildNotifier(cfg, logger), cfg.ReminderWindow, logger)

	// Boot check: one notification pass for tasks due soon. Failures are
	// logged and never block the CLI.
	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if notified, err := reminderSvc.CheckDueTasks(bootCtx, time.Now()); err != nil {
		logger.Warn().Err(err).Msg("due task check failed")
	} else if notified > 0 {
		fmt.Fprintf(os.Stderr, "Reminder: %d task(s) due soon.\n", notified)
	}
	cancel()

	if cfg.CheckInterval > 0 {
		scheduler := service.NewScheduler(time.Local)
		if _, err := scheduler.Every(cfg.CheckInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := reminderSvc.CheckDueTasks(jobCtx, time.Now()); err != nil {
				logger.Warn().Err(err).Msg("periodic due task check failed")
			}
		}); err != nil {
			logger.Warn().Err(err).Msg("schedule due task check")
		} else {
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	root := cli.New(taskSvc, logger).RootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.WarnLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}

func buildNotifier(cfg config.Config, logger zerolog.Logger) notify.Notifier {
	var sinks notify.Multi
	if cfg.DesktopNotify {
		sinks = append(sinks, notify.NewDesktop())
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram notifications disabled")
		} else {
			sinks = append(sinks, telegram)
		}
	}
	return sinks
}
