package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CharLedger_Go/internal/config"
	"github.com/osse101/CharLedger_Go/internal/database"
	"github.com/osse101/CharLedger_Go/internal/database/postgres"
	"github.com/osse101/CharLedger_Go/internal/database/sqlite"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// OpenStore connects to the configured store driver and applies migrations
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "path", cfg.DatabasePath)
		return store, nil

	case config.StoreDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns,
			database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return postgres.NewStore(pool), nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, cfg.StoreDriver)
}
