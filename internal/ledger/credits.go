package ledger

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/telemetry"
)

// AdjustCredits adds delta to the character's balance. A negative delta is
// applied only when the balance covers it; otherwise a LedgerError wrapping
// domain.ErrInsufficientFunds reports the current balance and nothing changes.
func (s *service) AdjustCredits(ctx context.Context, characterID, delta int64) (result *CreditResult, err error) {
	ctx, span := s.start(ctx, OpAdjustCredits, characterID)
	span.SetAttributes(telemetry.AttrAmount.Int64(delta))
	defer func() { s.finish(ctx, span, OpAdjustCredits, err) }()

	if err := validateDelta(delta); err != nil {
		return nil, err
	}

	tx, character, err := s.beginLocked(ctx, characterID)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := applyCredits(ctx, tx, character, delta)
	if err != nil {
		return nil, err
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	recordCredits(delta)
	logger.FromContext(ctx).Info(LogMsgCreditsAdjusted, "character_id", characterID, "delta", delta, "balance", balance)

	return &CreditResult{CharacterID: characterID, Delta: delta, Balance: balance}, nil
}

// GrantCredits adds a positive amount
func (s *service) GrantCredits(ctx context.Context, characterID, amount int64) (*CreditResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	return s.AdjustCredits(ctx, characterID, amount)
}

// DeductCredits removes a positive amount
func (s *service) DeductCredits(ctx context.Context, characterID, amount int64) (*CreditResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	return s.AdjustCredits(ctx, characterID, -amount)
}

// applyCredits runs the conditional balance update inside tx
func applyCredits(ctx context.Context, tx repository.LedgerTx, character *domain.Character, delta int64) (int64, error) {
	balance, applied, err := tx.AddCredits(ctx, character.ID, delta)
	if err != nil {
		return 0, storeError(ErrMsgAddCredits, err)
	}
	if !applied {
		return 0, &domain.LedgerError{
			Reason:      domain.ErrInsufficientFunds,
			CharacterID: character.ID,
			Balance:     character.Credits,
			Required:    -delta,
		}
	}
	return balance, nil
}

func recordCredits(delta int64) {
	if delta > 0 {
		metrics.CreditsGranted.Add(float64(delta))
	} else {
		metrics.CreditsDeducted.Add(float64(-delta))
	}
}

func itemAttrs(span trace.Span, item string, quantity int64) {
	span.SetAttributes(telemetry.AttrItem.String(item), telemetry.AttrQuantity.Int64(quantity))
}
