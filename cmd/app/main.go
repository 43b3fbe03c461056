package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/CharLedger_Go/internal/bootstrap"
	"github.com/osse101/CharLedger_Go/internal/config"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/pending"
	"github.com/osse101/CharLedger_Go/internal/server"
	"github.com/osse101/CharLedger_Go/internal/shop"
	"github.com/osse101/CharLedger_Go/internal/telemetry"
)

const (
	shutdownTimeout = 15 * time.Second
	catalogCacheTTL = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flushTraces, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.ServiceName, cfg.Version)
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	catalog := shop.NewCatalog(store.Shop(), catalogCacheTTL)
	if err := bootstrap.SyncShopCatalog(ctx, cfg.ShopCatalogPath, store.Shop(), catalog); err != nil {
		_ = store.Close()
		return err
	}

	ledgerService := ledger.NewService(store.Characters(), store.Ledger(), catalog)
	pendingService := pending.NewService(store.Pending(), store.Characters())
	sweeper := bootstrap.StartSweeper(pendingService, cfg.WorkerCount, cfg.PendingTTL, cfg.PendingSweepInterval)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Services{
		Store:   store,
		Ledger:  ledgerService,
		Pending: pendingService,
		Catalog: catalog,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Sweeper:   sweeper,
		Store:     store,
		Telemetry: flushTraces,
	})
	return serveErr
}
