// Package ledger implements credit balances, inventories and shop purchases
// for characters. Every mutation runs in one store transaction that locks
// the character first, so concurrent operations on one character serialize.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/telemetry"
)

// CreditResult reports a balance change
type CreditResult struct {
	CharacterID int64 `json:"character_id"`
	Delta       int64 `json:"delta"`
	Balance     int64 `json:"balance"`
}

// GrantResult reports the inventory line after a grant
type GrantResult struct {
	CharacterID int64  `json:"character_id"`
	Item        string `json:"item"`
	Granted     int64  `json:"granted"`
	Quantity    int64  `json:"quantity"`
	OneTime     bool   `json:"one_time"`
}

// RemoveResult reports the inventory line after a removal
type RemoveResult struct {
	CharacterID int64  `json:"character_id"`
	Item        string `json:"item"`
	Removed     int64  `json:"removed"`
	Remaining   int64  `json:"remaining"`
	RemovedAll  bool   `json:"removed_all"`
}

// PurchaseResult reports a completed purchase
type PurchaseResult struct {
	CharacterID int64                `json:"character_id"`
	Item        string               `json:"item"`
	Quantity    int64                `json:"quantity"`
	TotalCost   int64                `json:"total_cost"`
	Balance     int64                `json:"balance"`
	Line        domain.InventoryLine `json:"line"`
}

// DeleteResult reports a character deletion. A missing character is not an
// error: Deleted is false and Character is nil.
type DeleteResult struct {
	Deleted   bool              `json:"deleted"`
	Character *domain.Character `json:"character,omitempty"`
}

// Catalog is the read side of the shop the engine prices purchases from
type Catalog interface {
	// Item returns nil when no shop item matches name case-insensitively
	Item(ctx context.Context, name string) (*domain.ShopItem, error)
	Suggest(ctx context.Context, query string, limit int) ([]string, error)
}

// Service defines the interface for ledger operations
type Service interface {
	AdjustCredits(ctx context.Context, characterID, delta int64) (*CreditResult, error)
	GrantCredits(ctx context.Context, characterID, amount int64) (*CreditResult, error)
	DeductCredits(ctx context.Context, characterID, amount int64) (*CreditResult, error)

	GrantItem(ctx context.Context, characterID int64, item string, quantity int64, oneTime bool) (*GrantResult, error)
	RemoveItem(ctx context.Context, characterID int64, item string, quantity int64) (*RemoveResult, error)
	Purchase(ctx context.Context, characterID int64, shopItemName string, quantity int64) (*PurchaseResult, error)

	ListInventory(ctx context.Context, characterID int64) iter.Seq2[domain.InventoryLine, error]
	Inventory(ctx context.Context, characterID int64) ([]domain.InventoryLine, error)

	Characters(ctx context.Context, ownerID string) ([]domain.Character, error)
	CharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	DeleteCharacter(ctx context.Context, ownerID, name string) (*DeleteResult, error)
	RenameCharacter(ctx context.Context, ownerID string, slot int, newName string) (*domain.Character, error)
}

type service struct {
	characters repository.Character
	ledger     repository.Ledger
	catalog    Catalog
	tracer     trace.Tracer
	pageSize   int
}

// NewService creates a new ledger service
func NewService(characters repository.Character, ledger repository.Ledger, catalog Catalog) Service {
	return &service{
		characters: characters,
		ledger:     ledger,
		catalog:    catalog,
		tracer:     telemetry.Tracer(tracerName),
		pageSize:   InventoryPageSize,
	}
}

func (s *service) start(ctx context.Context, op string, characterID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, op, trace.WithAttributes(telemetry.AttrCharacterID.Int64(characterID)))
}

// finish logs, counts and traces the outcome of op exactly once
func (s *service) finish(ctx context.Context, span trace.Span, op string, err error) {
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

// storeError tags a store failure with domain.ErrDatabaseError. Domain
// errors raised by the store, such as a missing character, pass through.
func storeError(msg string, err error) error {
	if isDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, msg, err)
}

func isDomainError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrDatabaseError,
		domain.ErrCharacterNotFound,
		domain.ErrSlotOccupied,
		domain.ErrPendingNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// beginLocked opens a ledger transaction holding the character's lock
func (s *service) beginLocked(ctx context.Context, characterID int64) (repository.LedgerTx, *domain.Character, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, nil, storeError(ErrMsgBeginTx, err)
	}
	character, err := tx.LockCharacter(ctx, characterID)
	if err != nil {
		repository.SafeRollback(ctx, tx)
		return nil, nil, storeError(ErrMsgLockCharacter, err)
	}
	return tx, character, nil
}

func commit(ctx context.Context, tx repository.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return storeError(ErrMsgCommitTx, err)
	}
	return nil
}
