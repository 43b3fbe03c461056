package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CharLedger_Go/internal/database/generated"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// PendingRepository implements repository.Pending for PostgreSQL
type PendingRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewPendingRepository creates a new PendingRepository
func NewPendingRepository(db *pgxpool.Pool) *PendingRepository {
	return &PendingRepository{
		db: db,
		q:  generated.New(db),
	}
}

// PendingTx implements repository.PendingTx
type PendingTx struct {
	*txHelper
}

// BeginTx starts a new transaction
func (r *PendingRepository) BeginTx(ctx context.Context) (repository.PendingTx, error) {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}
	return &PendingTx{txHelper: h}, nil
}

// UpsertPending opens or replaces a prompt
func (r *PendingRepository) UpsertPending(ctx context.Context, promptID, ownerID, proposedName string) (*domain.PendingSelection, error) {
	row, err := r.q.UpsertPendingSelection(ctx, generated.UpsertPendingSelectionParams{
		PromptID:     promptID,
		OwnerID:      ownerID,
		ProposedName: proposedName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertPending, err)
	}
	return mapPending(row), nil
}

// DeletePending removes a prompt outside any transaction
func (r *PendingRepository) DeletePending(ctx context.Context, promptID string) error {
	return deletePending(ctx, r.q, promptID)
}

// DeletePendingBefore removes prompts opened before cutoff
func (r *PendingRepository) DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.q.DeletePendingSelectionsBefore(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSweepPending, err)
	}
	return n, nil
}

// GetPendingForUpdate locks a prompt row
func (t *PendingTx) GetPendingForUpdate(ctx context.Context, promptID string) (*domain.PendingSelection, error) {
	row, err := t.q.GetPendingSelectionForUpdate(ctx, promptID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPendingNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPending, err)
	}
	return mapPending(row), nil
}

// DeletePending consumes the prompt
func (t *PendingTx) DeletePending(ctx context.Context, promptID string) error {
	return deletePending(ctx, t.q, promptID)
}

// GetCharacterBySlot reads the slot inside the transaction
func (t *PendingTx) GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	row, err := t.q.GetCharacterBySlotForUpdate(ctx, generated.GetCharacterBySlotForUpdateParams{
		OwnerID: ownerID,
		Slot:    int32(slot),
	})
	return characterResult(row, err, ErrMsgFailedToGetCharacter)
}

// InsertCharacter creates a character with zero credits
func (t *PendingTx) InsertCharacter(ctx context.Context, ownerID string, slot int, name string) (*domain.Character, error) {
	row, err := t.q.InsertCharacter(ctx, generated.InsertCharacterParams{
		OwnerID: ownerID,
		Slot:    int32(slot),
		Name:    name,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlotOccupied
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertCharacter, err)
	}
	return mapCharacter(row), nil
}

func deletePending(ctx context.Context, q *generated.Queries, promptID string) error {
	if err := q.DeletePendingSelection(ctx, promptID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePending, err)
	}
	return nil
}
