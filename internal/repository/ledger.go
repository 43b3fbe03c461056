package repository

import (
	"context"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// Ledger defines persistence for credit balances and inventory lines.
// Item names are matched case-insensitively by the implementation.
type Ledger interface {
	// ListInventoryPage returns up to limit lines whose item key sorts after afterKey
	ListInventoryPage(ctx context.Context, characterID int64, afterKey string, limit int) ([]domain.InventoryLine, error)
	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is a transaction scoped to one character's balance and inventory
type LedgerTx interface {
	Tx

	// LockCharacter must be the first call; it serializes ledger work per character
	LockCharacter(ctx context.Context, id int64) (*domain.Character, error)

	// AddCredits applies delta only if the resulting balance stays non-negative.
	// applied is false, and the balance untouched, when it would go negative.
	AddCredits(ctx context.Context, id int64, delta int64) (balance int64, applied bool, err error)

	// GetInventoryLine returns nil when the character holds no such item
	GetInventoryLine(ctx context.Context, characterID int64, item string) (*domain.InventoryLine, error)
	InsertInventoryLine(ctx context.Context, line domain.InventoryLine) error
	// UpdateInventoryLine sets quantity and one-time flag; the stored casing is kept
	UpdateInventoryLine(ctx context.Context, line domain.InventoryLine) error
	DeleteInventoryLine(ctx context.Context, characterID int64, item string) error
}
