package ledger

import (
	"context"
	"math"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// GrantItem adds quantity of item to the character's inventory.
//
// Item identity is case-insensitive and the first casing stored wins. A
// one-time grant pins the line to quantity 1 and marks it one-time. A
// stackable grant adds to the line, except that a line already marked
// one-time stays as it is.
func (s *service) GrantItem(ctx context.Context, characterID int64, item string, quantity int64, oneTime bool) (result *GrantResult, err error) {
	ctx, span := s.start(ctx, OpGrantItem, characterID)
	itemAttrs(span, item, quantity)
	defer func() { s.finish(ctx, span, OpGrantItem, err) }()

	name, err := cleanItemName(item)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(quantity); err != nil {
		return nil, err
	}

	tx, _, err := s.beginLocked(ctx, characterID)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	line, err := grantLine(ctx, tx, characterID, name, quantity, oneTime)
	if err != nil {
		return nil, err
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.ItemsGranted.WithLabelValues(line.Item).Add(float64(quantity))
	logger.FromContext(ctx).Info(LogMsgItemGranted,
		"character_id", characterID, "item", line.Item, "granted", quantity, "quantity", line.Quantity, "one_time", line.OneTime)

	return &GrantResult{
		CharacterID: characterID,
		Item:        line.Item,
		Granted:     quantity,
		Quantity:    line.Quantity,
		OneTime:     line.OneTime,
	}, nil
}

// grantLine applies the grant rule inside tx and returns the resulting line
func grantLine(ctx context.Context, tx repository.LedgerTx, characterID int64, name string, quantity int64, oneTime bool) (domain.InventoryLine, error) {
	line, err := tx.GetInventoryLine(ctx, characterID, name)
	if err != nil {
		return domain.InventoryLine{}, storeError(ErrMsgGetLine, err)
	}

	if line == nil {
		created := domain.InventoryLine{CharacterID: characterID, Item: name, Quantity: quantity, OneTime: oneTime}
		if oneTime {
			created.Quantity = 1
		}
		if err := tx.InsertInventoryLine(ctx, created); err != nil {
			return domain.InventoryLine{}, storeError(ErrMsgWriteLine, err)
		}
		return created, nil
	}

	switch {
	case oneTime:
		line.Quantity = 1
		line.OneTime = true
	case line.OneTime:
		// one-time lines never stack
		return *line, nil
	default:
		if line.Quantity > math.MaxInt64-quantity {
			return domain.InventoryLine{}, domain.ErrInvalidAmount
		}
		line.Quantity += quantity
	}

	if err := tx.UpdateInventoryLine(ctx, *line); err != nil {
		return domain.InventoryLine{}, storeError(ErrMsgWriteLine, err)
	}
	return *line, nil
}

// RemoveItem takes quantity of item away from the character. A one-time
// line is removed whole regardless of quantity. A stackable line that would
// drop to zero is deleted.
func (s *service) RemoveItem(ctx context.Context, characterID int64, item string, quantity int64) (result *RemoveResult, err error) {
	ctx, span := s.start(ctx, OpRemoveItem, characterID)
	itemAttrs(span, item, quantity)
	defer func() { s.finish(ctx, span, OpRemoveItem, err) }()

	name, err := cleanItemName(item)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(quantity); err != nil {
		return nil, err
	}

	tx, _, err := s.beginLocked(ctx, characterID)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	line, err := tx.GetInventoryLine(ctx, characterID, name)
	if err != nil {
		return nil, storeError(ErrMsgGetLine, err)
	}
	if line == nil {
		return nil, &domain.LedgerError{Reason: domain.ErrNotOwned, CharacterID: characterID, Item: name}
	}

	result = &RemoveResult{CharacterID: characterID, Item: line.Item}
	switch {
	case line.OneTime:
		result.Removed = line.Quantity
		result.RemovedAll = true
	case line.Quantity < quantity:
		return nil, &domain.LedgerError{
			Reason:      domain.ErrNotEnough,
			CharacterID: characterID,
			Item:        line.Item,
			Quantity:    line.Quantity,
			Required:    quantity,
		}
	default:
		result.Removed = quantity
		result.Remaining = line.Quantity - quantity
		result.RemovedAll = result.Remaining == 0
	}

	if result.RemovedAll {
		err = tx.DeleteInventoryLine(ctx, characterID, line.Item)
	} else {
		line.Quantity = result.Remaining
		err = tx.UpdateInventoryLine(ctx, *line)
	}
	if err != nil {
		return nil, storeError(ErrMsgWriteLine, err)
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.ItemsRemoved.WithLabelValues(result.Item).Add(float64(result.Removed))
	logger.FromContext(ctx).Info(LogMsgItemRemoved,
		"character_id", characterID, "item", result.Item, "removed", result.Removed, "remaining", result.Remaining)

	return result, nil
}
