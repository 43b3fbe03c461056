package repository

import (
	"context"
	"time"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// Pending defines persistence for open slot-selection prompts
type Pending interface {
	// UpsertPending replaces any entry with the same prompt id
	UpsertPending(ctx context.Context, promptID, ownerID, proposedName string) (*domain.PendingSelection, error)
	DeletePending(ctx context.Context, promptID string) error
	DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
	BeginTx(ctx context.Context) (PendingTx, error)
}

// PendingTx consumes a prompt and creates the character atomically
type PendingTx interface {
	Tx
	// GetPendingForUpdate returns domain.ErrPendingNotFound when absent
	GetPendingForUpdate(ctx context.Context, promptID string) (*domain.PendingSelection, error)
	DeletePending(ctx context.Context, promptID string) error
	GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error)
	// InsertCharacter returns domain.ErrSlotOccupied when (owner, slot) is taken.
	// The transaction is unusable afterwards and must be rolled back.
	InsertCharacter(ctx context.Context, ownerID string, slot int, name string) (*domain.Character, error)
}
