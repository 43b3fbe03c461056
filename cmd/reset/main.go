// Command reset wipes the configured store and rebuilds it from migrations.
// Postgres databases are dropped and recreated; sqlite files are removed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CharLedger_Go/internal/bootstrap"
	"github.com/osse101/CharLedger_Go/internal/config"
	"github.com/osse101/CharLedger_Go/internal/database"
	"github.com/osse101/CharLedger_Go/internal/shop"
)

const confirmYes = "yes"

func main() {
	confirm := flag.String("confirm", "", "type \"yes\" to drop all character data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	bootstrap.InitLogger(cfg, os.Stdout)

	if *confirm != confirmYes {
		slog.Error("Refusing to reset without -confirm=yes", "driver", cfg.StoreDriver)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := reset(ctx, cfg); err != nil {
		slog.Error("Reset failed", "error", err)
		os.Exit(1)
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to migrate fresh store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := bootstrap.SyncShopCatalog(ctx, cfg.ShopCatalogPath, store.Shop(), shop.NewCatalog(store.Shop(), 0)); err != nil {
		slog.Warn("Shop catalog not loaded", "error", err)
	}
	slog.Info("Reset complete")
}

func reset(ctx context.Context, cfg *config.Config) error {
	if cfg.StoreDriver == config.StoreDriverSQLite {
		slog.Info("Removing sqlite file", "path", cfg.DatabasePath)
		if err := os.Remove(cfg.DatabasePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", cfg.DatabasePath, err)
		}
		return nil
	}

	serverConn := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	pool, err := database.NewPool(serverConn, 2, 30*time.Minute, time.Hour)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres server: %w", err)
	}
	defer pool.Close()

	slog.Info("Terminating existing connections", "db", cfg.DBName)
	_, err = pool.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName)
	if err != nil {
		slog.Warn("Failed to terminate connections", "error", err)
	}

	ident := pgx.Identifier{cfg.DBName}.Sanitize()
	slog.Info("Dropping database", "db", cfg.DBName)
	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	slog.Info("Creating database", "db", cfg.DBName)
	if _, err := pool.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
