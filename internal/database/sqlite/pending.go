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

// PendingRepository implements repository.Pending
type PendingRepository struct {
	db *sql.DB
}

// PendingTx implements repository.PendingTx
type PendingTx struct {
	*txHelper
}

// BeginTx starts a new transaction
func (r *PendingRepository) BeginTx(ctx context.Context) (repository.PendingTx, error) {
	h, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &PendingTx{txHelper: h}, nil
}

// UpsertPending opens or replaces a prompt
func (r *PendingRepository) UpsertPending(ctx context.Context, promptID, ownerID, proposedName string) (*domain.PendingSelection, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO pending_selections (prompt_id, owner_id, proposed_name, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (prompt_id) DO UPDATE SET
		   owner_id = excluded.owner_id,
		   proposed_name = excluded.proposed_name,
		   created_at = excluded.created_at
		 RETURNING prompt_id, owner_id, proposed_name, created_at`,
		promptID, ownerID, proposedName, toMillis(time.Now()))
	p, err := scanPending(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pending selection: %w", err)
	}
	return p, nil
}

func (r *PendingRepository) DeletePending(ctx context.Context, promptID string) error {
	return deletePending(ctx, r.db, promptID)
}

// DeletePendingBefore removes prompts opened before cutoff
func (r *PendingRepository) DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_selections WHERE created_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to sweep pending selections: %w", err)
	}
	return res.RowsAffected()
}

func (t *PendingTx) GetPendingForUpdate(ctx context.Context, promptID string) (*domain.PendingSelection, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT prompt_id, owner_id, proposed_name, created_at FROM pending_selections WHERE prompt_id = ?`,
		promptID)
	p, err := scanPending(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPendingNotFound
		}
		return nil, fmt.Errorf("failed to get pending selection: %w", err)
	}
	return p, nil
}

func (t *PendingTx) DeletePending(ctx context.Context, promptID string) error {
	return deletePending(ctx, t.tx, promptID)
}

func (t *PendingTx) GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	return getCharacterBySlot(ctx, t.tx, ownerID, slot)
}

func (t *PendingTx) InsertCharacter(ctx context.Context, ownerID string, slot int, name string) (*domain.Character, error) {
	return insertCharacter(ctx, t.tx, ownerID, slot, name)
}

func deletePending(ctx context.Context, q queryer, promptID string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM pending_selections WHERE prompt_id = ?`, promptID); err != nil {
		return fmt.Errorf("failed to delete pending selection: %w", err)
	}
	return nil
}

func scanPending(row *sql.Row) (*domain.PendingSelection, error) {
	var (
		p         domain.PendingSelection
		createdAt int64
	)
	if err := row.Scan(&p.PromptID, &p.OwnerID, &p.ProposedName, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}
