package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// LedgerRepository implements repository.Ledger
type LedgerRepository struct {
	db *sql.DB
}

// LedgerTx implements repository.LedgerTx. The immediate transaction
// already holds the database write lock, so LockCharacter only has to
// confirm the character exists.
type LedgerTx struct {
	*txHelper
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	h, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &LedgerTx{txHelper: h}, nil
}

// ListInventoryPage returns one keyset page of a character's inventory
func (r *LedgerRepository) ListInventoryPage(ctx context.Context, characterID int64, afterKey string, limit int) ([]domain.InventoryLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT character_id, item, quantity, one_time FROM inventory_lines
		 WHERE character_id = ? AND item_key > ?
		 ORDER BY item_key
		 LIMIT ?`,
		characterID, afterKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.InventoryLine, 0, limit)
	for rows.Next() {
		var line domain.InventoryLine
		if err := rows.Scan(&line.CharacterID, &line.Item, &line.Quantity, &line.OneTime); err != nil {
			return nil, fmt.Errorf("failed to scan inventory line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}
	return lines, nil
}

func (t *LedgerTx) LockCharacter(ctx context.Context, id int64) (*domain.Character, error) {
	return getCharacterByID(ctx, t.tx, id)
}

// AddCredits applies delta with a single conditional update
func (t *LedgerTx) AddCredits(ctx context.Context, id int64, delta int64) (int64, bool, error) {
	var balance int64
	err := t.tx.QueryRowContext(ctx,
		`UPDATE characters SET credits = credits + ?
		 WHERE id = ? AND credits + ? >= 0
		 RETURNING credits`,
		delta, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to add credits: %w", err)
	}
	return balance, true, nil
}

func (t *LedgerTx) GetInventoryLine(ctx context.Context, characterID int64, item string) (*domain.InventoryLine, error) {
	var line domain.InventoryLine
	err := t.tx.QueryRowContext(ctx,
		`SELECT character_id, item, quantity, one_time FROM inventory_lines
		 WHERE character_id = ? AND item_key = ?`,
		characterID, naming.Key(item)).Scan(&line.CharacterID, &line.Item, &line.Quantity, &line.OneTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory line: %w", err)
	}
	return &line, nil
}

func (t *LedgerTx) InsertInventoryLine(ctx context.Context, line domain.InventoryLine) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO inventory_lines (character_id, item, item_key, quantity, one_time)
		 VALUES (?, ?, ?, ?, ?)`,
		line.CharacterID, naming.Clean(line.Item), naming.Key(line.Item), line.Quantity, line.OneTime)
	if err != nil {
		return fmt.Errorf("failed to insert inventory line: %w", err)
	}
	return nil
}

func (t *LedgerTx) UpdateInventoryLine(ctx context.Context, line domain.InventoryLine) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE inventory_lines SET quantity = ?, one_time = ?
		 WHERE character_id = ? AND item_key = ?`,
		line.Quantity, line.OneTime, line.CharacterID, naming.Key(line.Item))
	if err != nil {
		return fmt.Errorf("failed to update inventory line: %w", err)
	}
	return nil
}

func (t *LedgerTx) DeleteInventoryLine(ctx context.Context, characterID int64, item string) error {
	_, err := t.tx.ExecContext(ctx,
		`DELETE FROM inventory_lines WHERE character_id = ? AND item_key = ?`,
		characterID, naming.Key(item))
	if err != nil {
		return fmt.Errorf("failed to delete inventory line: %w", err)
	}
	return nil
}
