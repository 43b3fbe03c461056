package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// MockCharacters implements repository.Character for testing
type MockCharacters struct {
	mock.Mock
}

func (m *MockCharacters) GetCharacterByID(ctx context.Context, id int64) (*domain.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) GetCharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	args := m.Called(ctx, ownerID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) ListCharactersByOwner(ctx context.Context, ownerID string) ([]domain.Character, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacters) GetLeaderboard(ctx context.Context, limit int) ([]domain.Character, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacters) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CharacterTx), args.Error(1)
}

// MockCharacterTx implements repository.CharacterTx for testing
type MockCharacterTx struct {
	mock.Mock
}

func (m *MockCharacterTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCharacterTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCharacterTx) GetCharacterByNameForUpdate(ctx context.Context, ownerID, name string) (*domain.Character, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterTx) GetCharacterBySlotForUpdate(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	args := m.Called(ctx, ownerID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterTx) RenameCharacter(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockCharacterTx) DeleteCharacter(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockLedger implements repository.Ledger for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListInventoryPage(ctx context.Context, characterID int64, afterKey string, limit int) ([]domain.InventoryLine, error) {
	args := m.Called(ctx, characterID, afterKey, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryLine), args.Error(1)
}

func (m *MockLedger) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LedgerTx), args.Error(1)
}

// MockLedgerTx implements repository.LedgerTx for testing
type MockLedgerTx struct {
	mock.Mock
}

func (m *MockLedgerTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLedgerTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLedgerTx) LockCharacter(ctx context.Context, id int64) (*domain.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockLedgerTx) AddCredits(ctx context.Context, id int64, delta int64) (int64, bool, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLedgerTx) GetInventoryLine(ctx context.Context, characterID int64, item string) (*domain.InventoryLine, error) {
	args := m.Called(ctx, characterID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryLine), args.Error(1)
}

func (m *MockLedgerTx) InsertInventoryLine(ctx context.Context, line domain.InventoryLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockLedgerTx) UpdateInventoryLine(ctx context.Context, line domain.InventoryLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockLedgerTx) DeleteInventoryLine(ctx context.Context, characterID int64, item string) error {
	return m.Called(ctx, characterID, item).Error(0)
}

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Item(ctx context.Context, name string) (*domain.ShopItem, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopItem), args.Error(1)
}

func (m *MockCatalog) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
