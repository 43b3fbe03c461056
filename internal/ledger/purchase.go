package ledger

import (
	"context"
	"math"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/telemetry"
)

// Purchase buys quantity of a shop item for the character.
//
// An unknown item fails with domain.ErrShopItemNotFound carrying the closest
// catalog names. One-time items are always bought singly and only when not
// already held.
func (s *service) Purchase(ctx context.Context, characterID int64, shopItemName string, quantity int64) (result *PurchaseResult, err error) {
	ctx, span := s.start(ctx, OpPurchase, characterID)
	itemAttrs(span, shopItemName, quantity)
	defer func() { s.finish(ctx, span, OpPurchase, err) }()

	query, err := cleanItemName(shopItemName)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(quantity); err != nil {
		return nil, err
	}

	item, err := s.catalog.Item(ctx, query)
	if err != nil {
		return nil, storeError(ErrMsgLookupShopItem, err)
	}
	if item == nil {
		suggestions, err := s.catalog.Suggest(ctx, query, domain.ShopSuggestionLimit)
		if err != nil {
			return nil, storeError(ErrMsgLookupShopItem, err)
		}
		return nil, &domain.LedgerError{
			Reason:      domain.ErrShopItemNotFound,
			CharacterID: characterID,
			Item:        query,
			Suggestions: suggestions,
		}
	}

	if item.OneTime {
		quantity = 1
	}
	if item.Price > 0 && quantity > math.MaxInt64/item.Price {
		return nil, domain.ErrInvalidAmount
	}
	span.SetAttributes(telemetry.AttrAmount.Int64(item.Price * quantity))

	return s.purchase(ctx, characterID, item.Name, quantity, item.Price*quantity, item.OneTime)
}

// purchase runs the ownership check, the conditional deduction and the grant
// in one transaction. Nothing is written unless all three succeed.
func (s *service) purchase(ctx context.Context, characterID int64, itemName string, quantity, totalCost int64, oneTime bool) (*PurchaseResult, error) {
	tx, character, err := s.beginLocked(ctx, characterID)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if oneTime {
		owned, err := tx.GetInventoryLine(ctx, characterID, itemName)
		if err != nil {
			return nil, storeError(ErrMsgGetLine, err)
		}
		if owned != nil {
			return nil, &domain.LedgerError{
				Reason:      domain.ErrAlreadyOwned,
				CharacterID: characterID,
				Item:        owned.Item,
				Balance:     character.Credits,
			}
		}
	}

	balance := character.Credits
	if totalCost > 0 {
		balance, err = applyCredits(ctx, tx, character, -totalCost)
		if err != nil {
			return nil, err
		}
	}

	line, err := grantLine(ctx, tx, characterID, itemName, quantity, oneTime)
	if err != nil {
		return nil, err
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.Purchases.WithLabelValues(itemName).Inc()
	if totalCost > 0 {
		metrics.CreditsDeducted.Add(float64(totalCost))
	}
	logger.FromContext(ctx).Info(LogMsgPurchaseCompleted,
		"character_id", characterID, "item", itemName, "quantity", quantity, "total_cost", totalCost, "balance", balance)

	return &PurchaseResult{
		CharacterID: characterID,
		Item:        itemName,
		Quantity:    quantity,
		TotalCost:   totalCost,
		Balance:     balance,
		Line:        line,
	}, nil
}
