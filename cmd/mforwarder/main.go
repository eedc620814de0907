package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/senoth99/mforwarder/internal/config"
	"github.com/senoth99/mforwarder/internal/forwarder"
	"github.com/senoth99/mforwarder/internal/receiver"
	"github.com/senoth99/mforwarder/internal/telegram"
	"github.com/senoth99/mforwarder/internal/watchdog"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mforwarder",
		Short: "Forward unseen IMAP messages to a Telegram chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.LogLevel)
			return run(cfg, logger)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("mforwarder starting", "accounts", len(cfg.Accounts))

	bot := telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	accounts := make([]forwarder.Account, 0, len(cfg.Accounts))
	for _, acct := range cfg.Accounts {
		accounts = append(accounts, forwarder.Account{
			Name:     acct.Label(),
			Username: acct.Username,
			Mailbox: receiver.NewIMAP(
				acct.Host, acct.GetPort(),
				acct.Username, acct.Password,
				acct.TLS(), acct.GetFolder(), logger,
			),
		})
	}

	var dog *watchdog.Watchdog
	if cfg.Watchdog != nil {
		dog = watchdog.New(watchdog.Options{
			URL:         cfg.Watchdog.URL,
			Interval:    cfg.Watchdog.CheckInterval(),
			DownMessage: cfg.Watchdog.DownMessage,
			UpMessage:   cfg.Watchdog.UpMessage,
		}, watchdog.NewProber(), bot, logger)
		logger.Info("watchdog enabled", "url", cfg.Watchdog.URL, "interval", cfg.Watchdog.CheckInterval())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fwd := forwarder.New(accounts, bot, dog, cfg.PollInterval(), logger)
	fwd.Run(ctx)

	logger.Info("mforwarder stopped")
	return nil
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
