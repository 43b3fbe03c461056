package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/CharLedger_Go/internal/config"
	"github.com/osse101/CharLedger_Go/internal/discord"
	"github.com/osse101/CharLedger_Go/internal/logger"
)

const serviceName = "charledger-discord"

func main() {
	cfg, err := config.LoadDiscord()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, serviceName, "", "", false))
	slog.Info("Configured API URL", "url", cfg.APIURL)
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}
	if len(cfg.ModRoleIDs) == 0 {
		slog.Info("MOD_ROLE_IDS not set, moderator commands limited to administrators")
	}

	bot, err := discord.New(discord.Config{
		Token:          cfg.Token,
		AppID:          cfg.AppID,
		APIURL:         cfg.APIURL,
		APIKey:         cfg.APIKey,
		ModRoleIDs:     cfg.ModRoleIDs,
		OperatorUserID: cfg.OperatorUserID,
	})
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	httpServer := discord.NewHTTPServer(cfg.HealthPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	bot.RegisterDefaults()

	if cfg.ForceCommandUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, cfg.ForceCommandUpdate); err != nil {
		// Commands registered by an earlier run keep working
		slog.Error("Failed to register commands", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}
