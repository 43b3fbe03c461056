package repository

import (
	"context"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// Character defines read access to characters plus transactional maintenance.
// Lookups that miss return domain.ErrCharacterNotFound.
type Character interface {
	GetCharacterByID(ctx context.Context, id int64) (*domain.Character, error)
	GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error)
	ListCharactersByOwner(ctx context.Context, ownerID string) ([]domain.Character, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.Character, error)
	BeginTx(ctx context.Context) (CharacterTx, error)
}

// CharacterTx locks characters for rename and delete
type CharacterTx interface {
	Tx
	GetCharacterByNameForUpdate(ctx context.Context, ownerID, name string) (*domain.Character, error)
	GetCharacterBySlotForUpdate(ctx context.Context, ownerID string, slot int) (*domain.Character, error)
	RenameCharacter(ctx context.Context, id int64, name string) error
	// DeleteCharacter removes the character and all of its inventory lines
	DeleteCharacter(ctx context.Context, id int64) error
}
