package handler

import (
	"context"
	"iter"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/pending"
)

// MockLedgerService is a mock implementation of ledger.Service
type MockLedgerService struct {
	mock.Mock
}

var _ ledger.Service = (*MockLedgerService)(nil)

func (m *MockLedgerService) AdjustCredits(ctx context.Context, characterID, delta int64) (*ledger.CreditResult, error) {
	args := m.Called(ctx, characterID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CreditResult), args.Error(1)
}

func (m *MockLedgerService) GrantCredits(ctx context.Context, characterID, amount int64) (*ledger.CreditResult, error) {
	args := m.Called(ctx, characterID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CreditResult), args.Error(1)
}

func (m *MockLedgerService) DeductCredits(ctx context.Context, characterID, amount int64) (*ledger.CreditResult, error) {
	args := m.Called(ctx, characterID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CreditResult), args.Error(1)
}

func (m *MockLedgerService) GrantItem(ctx context.Context, characterID int64, item string, quantity int64, oneTime bool) (*ledger.GrantResult, error) {
	args := m.Called(ctx, characterID, item, quantity, oneTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.GrantResult), args.Error(1)
}

func (m *MockLedgerService) RemoveItem(ctx context.Context, characterID int64, item string, quantity int64) (*ledger.RemoveResult, error) {
	args := m.Called(ctx, characterID, item, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RemoveResult), args.Error(1)
}

func (m *MockLedgerService) Purchase(ctx context.Context, characterID int64, shopItemName string, quantity int64) (*ledger.PurchaseResult, error) {
	args := m.Called(ctx, characterID, shopItemName, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PurchaseResult), args.Error(1)
}

func (m *MockLedgerService) ListInventory(ctx context.Context, characterID int64) iter.Seq2[domain.InventoryLine, error] {
	args := m.Called(ctx, characterID)
	return args.Get(0).(iter.Seq2[domain.InventoryLine, error])
}

func (m *MockLedgerService) Inventory(ctx context.Context, characterID int64) ([]domain.InventoryLine, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryLine), args.Error(1)
}

func (m *MockLedgerService) Characters(ctx context.Context, ownerID string) ([]domain.Character, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockLedgerService) CharacterBySlot(ctx context.Context, ownerID string, slot int) (*domain.Character, error) {
	args := m.Called(ctx, ownerID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockLedgerService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLedgerService) DeleteCharacter(ctx context.Context, ownerID, name string) (*ledger.DeleteResult, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.DeleteResult), args.Error(1)
}

func (m *MockLedgerService) RenameCharacter(ctx context.Context, ownerID string, slot int, newName string) (*domain.Character, error) {
	args := m.Called(ctx, ownerID, slot, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

// MockPendingService is a mock implementation of pending.Service
type MockPendingService struct {
	mock.Mock
}

var _ pending.Service = (*MockPendingService)(nil)

func (m *MockPendingService) Open(ctx context.Context, promptID, ownerID, proposedName string) (*pending.OpenResult, error) {
	args := m.Called(ctx, promptID, ownerID, proposedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pending.OpenResult), args.Error(1)
}

func (m *MockPendingService) ChooseSlot(ctx context.Context, promptID, responderID string, slot int) (*domain.Character, error) {
	args := m.Called(ctx, promptID, responderID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockPendingService) Sweep(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockShopCatalog is a mock implementation of ShopCatalog
type MockShopCatalog struct {
	mock.Mock
}

func (m *MockShopCatalog) Items(ctx context.Context) ([]domain.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}

func (m *MockShopCatalog) Match(ctx context.Context, query string, limit int) ([]domain.ShopItem, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}
