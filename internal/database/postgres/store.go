package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CharLedger_Go/internal/repository"
)

// Store bundles the PostgreSQL repositories over one connection pool
type Store struct {
	db         *pgxpool.Pool
	characters *CharacterRepository
	ledger     *LedgerRepository
	shop       *ShopRepository
	pending    *PendingRepository
}

// NewStore creates a Store; the pool must already be migrated
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:         db,
		characters: NewCharacterRepository(db),
		ledger:     NewLedgerRepository(db),
		shop:       NewShopRepository(db),
		pending:    NewPendingRepository(db),
	}
}

func (s *Store) Characters() repository.Character { return s.characters }
func (s *Store) Ledger() repository.Ledger        { return s.ledger }
func (s *Store) Shop() repository.Shop            { return s.shop }
func (s *Store) Pending() repository.Pending      { return s.pending }

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}
