package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CharLedger_Go/internal/database/generated"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		db: db,
		q:  generated.New(db),
	}
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	*txHelper
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}
	return &LedgerTx{txHelper: h}, nil
}

// ListInventoryPage returns one keyset page of a character's inventory
func (r *LedgerRepository) ListInventoryPage(ctx context.Context, characterID int64, afterKey string, limit int) ([]domain.InventoryLine, error) {
	rows, err := r.q.ListInventoryPage(ctx, generated.ListInventoryPageParams{
		CharacterID: characterID,
		ItemKey:     afterKey,
		Limit:       int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventory, err)
	}

	lines := make([]domain.InventoryLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, *mapInventoryLine(row))
	}
	return lines, nil
}

// LockCharacter takes the row lock that serializes all ledger work on one character
func (t *LedgerTx) LockCharacter(ctx context.Context, id int64) (*domain.Character, error) {
	row, err := t.q.GetCharacterByIDForUpdate(ctx, id)
	return characterResult(row, err, ErrMsgFailedToLockCharacter)
}

// AddCredits applies delta with a single conditional update
func (t *LedgerTx) AddCredits(ctx context.Context, id int64, delta int64) (int64, bool, error) {
	balance, err := t.q.AddCredits(ctx, generated.AddCreditsParams{Delta: delta, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%s: %w", ErrMsgFailedToAddCredits, err)
	}
	return balance, true, nil
}

// GetInventoryLine looks a line up by the case-insensitive item key
func (t *LedgerTx) GetInventoryLine(ctx context.Context, characterID int64, item string) (*domain.InventoryLine, error) {
	row, err := t.q.GetInventoryLine(ctx, generated.GetInventoryLineParams{
		CharacterID: characterID,
		ItemKey:     naming.Key(item),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventoryLine, err)
	}
	return mapInventoryLine(row), nil
}

// InsertInventoryLine stores a new line under the given casing
func (t *LedgerTx) InsertInventoryLine(ctx context.Context, line domain.InventoryLine) error {
	err := t.q.InsertInventoryLine(ctx, generated.InsertInventoryLineParams{
		CharacterID: line.CharacterID,
		Item:        naming.Clean(line.Item),
		ItemKey:     naming.Key(line.Item),
		Quantity:    line.Quantity,
		OneTime:     line.OneTime,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertInventoryLine, err)
	}
	return nil
}

// UpdateInventoryLine sets quantity and one-time flag
func (t *LedgerTx) UpdateInventoryLine(ctx context.Context, line domain.InventoryLine) error {
	err := t.q.UpdateInventoryLine(ctx, generated.UpdateInventoryLineParams{
		CharacterID: line.CharacterID,
		ItemKey:     naming.Key(line.Item),
		Quantity:    line.Quantity,
		OneTime:     line.OneTime,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventoryLine, err)
	}
	return nil
}

// DeleteInventoryLine removes a line
func (t *LedgerTx) DeleteInventoryLine(ctx context.Context, characterID int64, item string) error {
	err := t.q.DeleteInventoryLine(ctx, generated.DeleteInventoryLineParams{
		CharacterID: characterID,
		ItemKey:     naming.Key(item),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteInventoryLine, err)
	}
	return nil
}
