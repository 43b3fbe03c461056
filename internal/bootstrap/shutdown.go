package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/server"
)

// ShutdownComponents holds everything that needs graceful shutdown
type ShutdownComponents struct {
	Server    *server.Server
	Sweeper   *Sweeper
	Store     repository.Store
	Telemetry func(context.Context) error
}

// GracefulShutdown stops accepting requests, stops the sweeper, closes the
// store and flushes traces, in that order. Errors are logged and shutdown
// continues.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Sweeper != nil {
		slog.Info(LogMsgStoppingSweeper)
		c.Sweeper.Stop()
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	if c.Telemetry != nil {
		if err := c.Telemetry(ctx); err != nil {
			slog.Error(LogMsgTelemetryFlushFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
