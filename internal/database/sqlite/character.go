package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

const characterColumns = `id, owner_id, slot, name, credits`

// CharacterRepository implements repository.Character
type CharacterRepository struct {
	db *sql.DB
}

// CharacterTx implements repository.CharacterTx
type CharacterTx struct {
	*txHelper
}

// BeginTx starts a new transaction
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	h, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &CharacterTx{txHelper: h}, nil
}

func (r *CharacterRepository) GetCharacterByID(ctx context.Context, id int64) (*domain.Character, error) {
	return getCharacterByID(ctx, r.db, id)
}

func (r *CharacterRepository) GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	return getCharacterBySlot(ctx, r.db, ownerID, slot)
}

func (r *CharacterRepository) ListCharactersByOwner(ctx context.Context, ownerID string) ([]domain.Character, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE owner_id = ? ORDER BY slot`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return scanCharacters(rows)
}

func (r *CharacterRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.Character, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY credits DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return scanCharacters(rows)
}

func (t *CharacterTx) GetCharacterByNameForUpdate(ctx context.Context, ownerID, name string) (*domain.Character, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE owner_id = ? AND name = ? ORDER BY slot LIMIT 1`,
		ownerID, name)
	return scanCharacter(row)
}

func (t *CharacterTx) GetCharacterBySlotForUpdate(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	return getCharacterBySlot(ctx, t.tx, ownerID, slot)
}

func (t *CharacterTx) RenameCharacter(ctx context.Context, id int64, name string) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE characters SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename character: %w", err)
	}
	return requireAffected(res)
}

func (t *CharacterTx) DeleteCharacter(ctx context.Context, id int64) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM inventory_lines WHERE character_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete inventory: %w", err)
	}
	res, err := t.tx.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return requireAffected(res)
}

func getCharacterByID(ctx context.Context, q queryer, id int64) (*domain.Character, error) {
	row := q.QueryRowContext(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)
	return scanCharacter(row)
}

func getCharacterBySlot(ctx context.Context, q queryer, ownerID string, slot int) (*domain.Character, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE owner_id = ? AND slot = ?`, ownerID, slot)
	return scanCharacter(row)
}

func insertCharacter(ctx context.Context, q queryer, ownerID string, slot int, name string) (*domain.Character, error) {
	row := q.QueryRowContext(ctx,
		`INSERT INTO characters (owner_id, slot, name, credits, created_at) VALUES (?, ?, ?, 0, ?)
		 RETURNING `+characterColumns,
		ownerID, slot, name, toMillis(time.Now()))
	c, err := scanCharacter(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlotOccupied
		}
		return nil, fmt.Errorf("failed to insert character: %w", err)
	}
	return c, nil
}

func scanCharacter(row *sql.Row) (*domain.Character, error) {
	var c domain.Character
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Slot, &c.Name, &c.Credits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

func scanCharacters(rows *sql.Rows) ([]domain.Character, error) {
	defer rows.Close()

	var out []domain.Character
	for rows.Next() {
		var c domain.Character
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Slot, &c.Name, &c.Credits); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", err)
	}
	return out, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
