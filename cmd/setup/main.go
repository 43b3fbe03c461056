// Command setup prepares the store: it creates the postgres database when
// missing, applies migrations and syncs the shop catalog.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CharLedger_Go/internal/bootstrap"
	"github.com/osse101/CharLedger_Go/internal/config"
	"github.com/osse101/CharLedger_Go/internal/shop"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	bootstrap.InitLogger(cfg, os.Stdout)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("Setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Setup completed")
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.StoreDriver == config.StoreDriverPostgres {
		if err := ensureDatabase(ctx, cfg); err != nil {
			return err
		}
	}

	// OpenStore applies migrations for both drivers
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return bootstrap.SyncShopCatalog(ctx, cfg.ShopCatalogPath, store.Shop(), shop.NewCatalog(store.Shop(), 0))
}

// ensureDatabase connects to the maintenance database and creates cfg.DBName if it does not exist
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	admin := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, admin)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		slog.Info("Database already exists", "db", cfg.DBName)
		return nil
	}

	slog.Info("Creating database", "db", cfg.DBName)
	ident := pgx.Identifier{cfg.DBName}.Sanitize()
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
