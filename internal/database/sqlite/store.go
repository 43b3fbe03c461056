// Package sqlite provides a single-file SQLite store for running the ledger
// without a PostgreSQL server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/osse101/CharLedger_Go/internal/database"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// Store persists ledger state in SQLite. All access goes through one
// connection, and transactions start with BEGIN IMMEDIATE, so writers are
// serialized and a transaction's reads stay valid until it commits.
type Store struct {
	sqlDB      *sql.DB
	characters *CharacterRepository
	ledger     *LedgerRepository
	shop       *ShopRepository
	pending    *PendingRepository
}

// Open opens (creating if needed) the database file at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?" + strings.Join([]string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_txlock=immediate",
	}, "&")

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := database.MigrateSQLite(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		sqlDB:      sqlDB,
		characters: &CharacterRepository{db: sqlDB},
		ledger:     &LedgerRepository{db: sqlDB},
		shop:       &ShopRepository{db: sqlDB},
		pending:    &PendingRepository{db: sqlDB},
	}, nil
}

func (s *Store) Characters() repository.Character { return s.characters }
func (s *Store) Ledger() repository.Ledger        { return s.ledger }
func (s *Store) Shop() repository.Shop            { return s.shop }
func (s *Store) Pending() repository.Pending      { return s.pending }

// Ping checks the handle is usable
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// txHelper implements repository.Tx over *sql.Tx
type txHelper struct {
	tx *sql.Tx
}

func beginTx(ctx context.Context, db *sql.DB) (*txHelper, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &txHelper{tx: tx}, nil
}

// Commit commits the transaction
func (h *txHelper) Commit(_ context.Context) error {
	if err := h.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction; rolling back a finished transaction is a no-op
func (h *txHelper) Rollback(_ context.Context) error {
	if err := h.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
