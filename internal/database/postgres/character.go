package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CharLedger_Go/internal/database/generated"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// CharacterRepository implements repository.Character for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{
		db: db,
		q:  generated.New(db),
	}
}

// CharacterTx implements repository.CharacterTx
type CharacterTx struct {
	*txHelper
}

// BeginTx starts a new transaction
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}
	return &CharacterTx{txHelper: h}, nil
}

// GetCharacterByID retrieves a character by surrogate id
func (r *CharacterRepository) GetCharacterByID(ctx context.Context, id int64) (*domain.Character, error) {
	row, err := r.q.GetCharacterByID(ctx, id)
	return characterResult(row, err, ErrMsgFailedToGetCharacter)
}

// GetCharacterBySlot retrieves the character an owner keeps in slot
func (r *CharacterRepository) GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	row, err := r.q.GetCharacterBySlot(ctx, generated.GetCharacterBySlotParams{
		OwnerID: ownerID,
		Slot:    int32(slot),
	})
	return characterResult(row, err, ErrMsgFailedToGetCharacter)
}

// ListCharactersByOwner returns an owner's characters ordered by slot
func (r *CharacterRepository) ListCharactersByOwner(ctx context.Context, ownerID string) ([]domain.Character, error) {
	rows, err := r.q.ListCharactersByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCharacters, err)
	}
	return mapCharacters(rows), nil
}

// GetLeaderboard returns the richest characters, oldest first on ties
func (r *CharacterRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.Character, error) {
	rows, err := r.q.GetLeaderboard(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	return mapCharacters(rows), nil
}

// GetCharacterByNameForUpdate locks the owner's lowest-slot character with this exact name
func (t *CharacterTx) GetCharacterByNameForUpdate(ctx context.Context, ownerID, name string) (*domain.Character, error) {
	row, err := t.q.GetCharacterByNameForUpdate(ctx, generated.GetCharacterByNameForUpdateParams{
		OwnerID: ownerID,
		Name:    name,
	})
	return characterResult(row, err, ErrMsgFailedToLockCharacter)
}

// GetCharacterBySlotForUpdate locks the character in an owner's slot
func (t *CharacterTx) GetCharacterBySlotForUpdate(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	row, err := t.q.GetCharacterBySlotForUpdate(ctx, generated.GetCharacterBySlotForUpdateParams{
		OwnerID: ownerID,
		Slot:    int32(slot),
	})
	return characterResult(row, err, ErrMsgFailedToLockCharacter)
}

// RenameCharacter changes only the name
func (t *CharacterTx) RenameCharacter(ctx context.Context, id int64, name string) error {
	n, err := t.q.RenameCharacter(ctx, generated.RenameCharacterParams{ID: id, Name: name})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRenameCharacter, err)
	}
	if n == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

// DeleteCharacter removes the inventory and then the character
func (t *CharacterTx) DeleteCharacter(ctx context.Context, id int64) error {
	if err := t.q.DeleteInventoryByCharacter(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteInventory, err)
	}
	n, err := t.q.DeleteCharacter(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteCharacter, err)
	}
	if n == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
