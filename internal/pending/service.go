// Package pending coordinates the two-step character creation flow: a user
// proposes a name, then picks a slot from a prompt. Each prompt is consumed
// exactly once, even when slot choices for it race.
package pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/telemetry"
)

// OpenResult is an opened prompt plus the owner's characters, so callers can
// show which slots are taken.
type OpenResult struct {
	Selection  *domain.PendingSelection `json:"selection"`
	Characters []domain.Character       `json:"characters"`
}

// Service defines the interface for the slot-selection workflow
type Service interface {
	Open(ctx context.Context, promptID, ownerID, proposedName string) (*OpenResult, error)
	ChooseSlot(ctx context.Context, promptID, responderID string, slot int) (*domain.Character, error)
	Sweep(ctx context.Context, olderThan time.Duration) (int64, error)
}

type service struct {
	pending    repository.Pending
	characters repository.Character
	tracer     trace.Tracer
	now        func() time.Time
}

// NewService creates a new pending-selection service
func NewService(pending repository.Pending, characters repository.Character) Service {
	return &service{
		pending:    pending,
		characters: characters,
		tracer:     telemetry.Tracer(tracerName),
		now:        time.Now,
	}
}

// Open records a prompt for ownerID's proposed name. Re-opening an existing
// prompt id replaces its owner and name.
func (s *service) Open(ctx context.Context, promptID, ownerID, proposedName string) (result *OpenResult, err error) {
	ctx, span := s.tracer.Start(ctx, OpOpen, trace.WithAttributes(
		telemetry.AttrPromptID.String(promptID), telemetry.AttrOwnerID.String(ownerID)))
	defer func() { finish(ctx, span, OpOpen, err) }()

	if promptID == "" || ownerID == "" {
		return nil, fmt.Errorf("%w: prompt id and owner id are required", domain.ErrInvalidInput)
	}
	name, err := ledger.CleanCharacterName(proposedName)
	if err != nil {
		return nil, err
	}

	selection, err := s.pending.UpsertPending(ctx, promptID, ownerID, name)
	if err != nil {
		return nil, storeError(ErrMsgUpsertPending, err)
	}
	list, err := s.characters.ListCharactersByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError(ErrMsgListCharacters, err)
	}
	if list == nil {
		list = []domain.Character{}
	}

	logger.FromContext(ctx).Info(LogMsgPromptOpened, "prompt_id", promptID, "owner_id", ownerID, "name", name)
	return &OpenResult{Selection: selection, Characters: list}, nil
}

// ChooseSlot answers a prompt with a slot and creates the character there.
//
// A responder other than the prompt's owner is refused with
// domain.ErrNotPromptOwner and the prompt stays open. An occupied slot
// consumes the prompt and fails with a LedgerError wrapping
// domain.ErrSlotOccupied whose Existing field holds the occupant. An already
// consumed prompt reports the occupant of the responder's slot the same way,
// or domain.ErrPendingNotFound when that slot is free.
func (s *service) ChooseSlot(ctx context.Context, promptID, responderID string, slot int) (created *domain.Character, err error) {
	ctx, span := s.tracer.Start(ctx, OpChooseSlot, trace.WithAttributes(
		telemetry.AttrPromptID.String(promptID),
		telemetry.AttrOwnerID.String(responderID),
		telemetry.AttrSlot.Int(slot)))
	defer func() { finish(ctx, span, OpChooseSlot, err) }()

	if !domain.ValidSlot(slot) {
		return nil, domain.ErrInvalidSlot
	}

	tx, err := s.pending.BeginTx(ctx)
	if err != nil {
		return nil, storeError(ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	selection, err := tx.GetPendingForUpdate(ctx, promptID)
	if errors.Is(err, domain.ErrPendingNotFound) {
		return nil, staleChoice(ctx, tx, responderID, slot)
	}
	if err != nil {
		return nil, storeError(ErrMsgGetPending, err)
	}

	if selection.OwnerID != responderID {
		return nil, fmt.Errorf("%w: prompt %s", domain.ErrNotPromptOwner, promptID)
	}

	existing, err := slotOccupant(ctx, tx, responderID, slot)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := tx.DeletePending(ctx, promptID); err != nil {
			return nil, storeError(ErrMsgDeletePending, err)
		}
		if err := commit(ctx, tx); err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info(LogMsgSlotOccupied, "prompt_id", promptID, "slot", slot, "existing", existing.Name)
		return nil, occupied(promptID, existing)
	}

	created, err = tx.InsertCharacter(ctx, responderID, slot, selection.ProposedName)
	if errors.Is(err, domain.ErrSlotOccupied) {
		repository.SafeRollback(ctx, tx)
		return nil, s.resolveRace(ctx, promptID, responderID, slot)
	}
	if err != nil {
		return nil, storeError(ErrMsgInsert, err)
	}
	if err := tx.DeletePending(ctx, promptID); err != nil {
		return nil, storeError(ErrMsgDeletePending, err)
	}
	if err := commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.CharactersCreated.Inc()
	logger.FromContext(ctx).Info(LogMsgCharacterCreated,
		"character_id", created.ID, "owner_id", responderID, "slot", slot, "name", created.Name)
	return created, nil
}

// staleChoice reports a choice against a prompt that no longer exists
func staleChoice(ctx context.Context, tx repository.PendingTx, responderID string, slot int) error {
	existing, err := slotOccupant(ctx, tx, responderID, slot)
	if err != nil {
		return err
	}
	if existing != nil {
		return occupied("", existing)
	}
	return domain.ErrPendingNotFound
}

// resolveRace runs after InsertCharacter lost a unique (owner, slot) race.
// The failed transaction is gone, so the prompt is consumed in a fresh one.
func (s *service) resolveRace(ctx context.Context, promptID, responderID string, slot int) error {
	tx, err := s.pending.BeginTx(ctx)
	if err != nil {
		return storeError(ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	existing, err := slotOccupant(ctx, tx, responderID, slot)
	if err != nil {
		return err
	}
	if err := tx.DeletePending(ctx, promptID); err != nil {
		return storeError(ErrMsgDeletePending, err)
	}
	if err := commit(ctx, tx); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgSlotRaceLost, "prompt_id", promptID, "slot", slot)
	return occupied(promptID, existing)
}

// Sweep deletes prompts opened more than olderThan ago
func (s *service) Sweep(ctx context.Context, olderThan time.Duration) (swept int64, err error) {
	ctx, span := s.tracer.Start(ctx, OpSweep)
	defer func() { finish(ctx, span, OpSweep, err) }()

	if olderThan <= 0 {
		return 0, fmt.Errorf("%w: sweep age must be positive", domain.ErrInvalidInput)
	}

	swept, err = s.pending.DeletePendingBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, storeError(ErrMsgSweep, err)
	}
	if swept > 0 {
		metrics.PendingSwept.Add(float64(swept))
		logger.FromContext(ctx).Info(LogMsgPromptsSwept, "count", swept, "older_than", olderThan)
	}
	return swept, nil
}

// slotOccupant returns nil when the slot is free
func slotOccupant(ctx context.Context, tx repository.PendingTx, ownerID string, slot int) (*domain.Character, error) {
	c, err := tx.GetCharacterBySlot(ctx, ownerID, slot)
	if errors.Is(err, domain.ErrCharacterNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(ErrMsgGetSlot, err)
	}
	return c, nil
}

func occupied(promptID string, existing *domain.Character) error {
	le := &domain.LedgerError{Op: OpChooseSlot, Reason: domain.ErrSlotOccupied, Existing: existing}
	if existing != nil {
		le.CharacterID = existing.ID
	}
	if promptID != "" {
		return fmt.Errorf("prompt %s: %w", promptID, le)
	}
	return le
}

func finish(ctx context.Context, span trace.Span, op string, err error) {
	if err != nil {
		log := logger.FromContext(ctx)
		if reason := metrics.ReasonFor(err); reason != "" {
			metrics.RecordRejection(op, err)
			log.Warn(LogMsgOperationRejected, "operation", op, "reason", reason, "error", err)
		} else {
			log.Error(LogMsgOperationFailed, "operation", op, "error", err)
		}
	}
	telemetry.End(span, err)
}

func storeError(msg string, err error) error {
	if errors.Is(err, domain.ErrDatabaseError) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, msg, err)
}

func commit(ctx context.Context, tx repository.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return storeError(ErrMsgCommitTx, err)
	}
	return nil
}
