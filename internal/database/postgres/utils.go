package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CharLedger_Go/internal/database/generated"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// ---- Common Helper Functions ----

// txHelper wraps common transaction begin logic and implements repository.Tx.
type txHelper struct {
	tx pgx.Tx
	q  *generated.Queries
}

// beginTx starts a new transaction and returns a txHelper bound to it.
func beginTx(ctx context.Context, db *pgxpool.Pool, q *generated.Queries) (*txHelper, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &txHelper{
		tx: tx,
		q:  q.WithTx(tx),
	}, nil
}

// Commit commits the transaction
func (h *txHelper) Commit(ctx context.Context) error {
	if err := h.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback rolls back the transaction; rolling back a finished transaction is a no-op
func (h *txHelper) Rollback(ctx context.Context) error {
	if err := h.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// ---- End Common Helper Functions ----

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

func mapCharacter(row generated.Character) *domain.Character {
	return &domain.Character{
		ID:      row.ID,
		OwnerID: row.OwnerID,
		Slot:    int(row.Slot),
		Name:    row.Name,
		Credits: row.Credits,
	}
}

func mapCharacters(rows []generated.Character) []domain.Character {
	out := make([]domain.Character, 0, len(rows))
	for _, row := range rows {
		out = append(out, *mapCharacter(row))
	}
	return out
}

func mapInventoryLine(row generated.InventoryLine) *domain.InventoryLine {
	return &domain.InventoryLine{
		CharacterID: row.CharacterID,
		Item:        row.Item,
		Quantity:    row.Quantity,
		OneTime:     row.OneTime,
	}
}

func mapShopItem(row generated.ShopItem) *domain.ShopItem {
	return &domain.ShopItem{
		ID:          row.ID,
		Name:        row.Name,
		Price:       row.Price,
		Description: row.Description,
		OneTime:     row.OneTime,
	}
}

func mapPending(row generated.PendingSelection) *domain.PendingSelection {
	return &domain.PendingSelection{
		PromptID:     row.PromptID,
		OwnerID:      row.OwnerID,
		ProposedName: row.ProposedName,
		CreatedAt:    row.CreatedAt.Time,
	}
}

// characterResult converts a single-row character lookup into the domain shape
func characterResult(row generated.Character, err error, op string) (*domain.Character, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return mapCharacter(row), nil
}
