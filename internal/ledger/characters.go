package ledger

import (
	"context"
	"errors"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/naming"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/telemetry"
)

// Characters lists the owner's characters ordered by slot
func (s *service) Characters(ctx context.Context, ownerID string) ([]domain.Character, error) {
	list, err := s.characters.ListCharactersByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError(ErrMsgListCharacters, err)
	}
	if list == nil {
		list = []domain.Character{}
	}
	return list, nil
}

// CharacterBySlot returns the owner's character in slot
func (s *service) CharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	c, err := s.characters.GetCharacterBySlot(ctx, ownerID, slot)
	if err != nil {
		return nil, storeError(ErrMsgLookupCharacter, err)
	}
	return c, nil
}

// Leaderboard ranks characters by credits, ties broken by creation order.
// limit outside 1..domain.LeaderboardSize means domain.LeaderboardSize.
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > domain.LeaderboardSize {
		limit = domain.LeaderboardSize
	}
	list, err := s.characters.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, storeError(ErrMsgLoadLeaderboard, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(list))
	for i, c := range list {
		entries = append(entries, domain.LeaderboardEntry{Rank: i + 1, Character: c})
	}
	return entries, nil
}

// DeleteCharacter deletes the owner's character named exactly name, together
// with its inventory. With several matches the lowest slot goes.
func (s *service) DeleteCharacter(ctx context.Context, ownerID, name string) (result *DeleteResult, err error) {
	ctx, span := s.tracer.Start(ctx, OpDeleteCharacter)
	span.SetAttributes(telemetry.AttrOwnerID.String(ownerID))
	defer func() { s.finish(ctx, span, OpDeleteCharacter, err) }()

	name = naming.Clean(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	tx, err := s.characters.BeginTx(ctx)
	if err != nil {
		return nil, storeError(ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	character, err := tx.GetCharacterByNameForUpdate(ctx, ownerID, name)
	if errors.Is(err, domain.ErrCharacterNotFound) {
		return &DeleteResult{Deleted: false}, nil
	}
	if err != nil {
		return nil, storeError(ErrMsgLookupCharacter, err)
	}

	if err := tx.DeleteCharacter(ctx, character.ID); err != nil {
		return nil, storeError(ErrMsgDeleteCharacter, err)
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.CharactersDeleted.Inc()
	logger.FromContext(ctx).Info(LogMsgCharacterDeleted,
		"character_id", character.ID, "owner_id", ownerID, "slot", character.Slot, "name", character.Name)

	return &DeleteResult{Deleted: true, Character: character}, nil
}

// RenameCharacter changes the name of the character in the owner's slot
func (s *service) RenameCharacter(ctx context.Context, ownerID string, slot int, newName string) (result *domain.Character, err error) {
	ctx, span := s.tracer.Start(ctx, OpRenameCharacter)
	span.SetAttributes(telemetry.AttrOwnerID.String(ownerID), telemetry.AttrSlot.Int(slot))
	defer func() { s.finish(ctx, span, OpRenameCharacter, err) }()

	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	name, err := CleanCharacterName(newName)
	if err != nil {
		return nil, err
	}

	tx, err := s.characters.BeginTx(ctx)
	if err != nil {
		return nil, storeError(ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	character, err := tx.GetCharacterBySlotForUpdate(ctx, ownerID, slot)
	if err != nil {
		return nil, storeError(ErrMsgLookupCharacter, err)
	}
	if err := tx.RenameCharacter(ctx, character.ID, name); err != nil {
		return nil, storeError(ErrMsgRenameCharacter, err)
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCharacterRenamed,
		"character_id", character.ID, "old_name", character.Name, "new_name", name)
	character.Name = name
	return character, nil
}
