package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

var errStoreDown = errors.New("connection reset")

type mockDeps struct {
	characters *MockCharacters
	ledger     *MockLedger
	catalog    *MockCatalog
}

func newMockService() (Service, *mockDeps) {
	deps := &mockDeps{
		characters: &MockCharacters{},
		ledger:     &MockLedger{},
		catalog:    &MockCatalog{},
	}
	return NewService(deps.characters, deps.ledger, deps.catalog), deps
}

func TestAdjustCredits_BeginFailure(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	deps.ledger.On("BeginTx", mock.Anything).Return(nil, errStoreDown)

	_, err := svc.GrantCredits(ctx, 1, 10)
	require.ErrorIs(t, err, domain.ErrDatabaseError)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestAdjustCredits_AddFailureRollsBack(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockLedgerTx{}
	deps.ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("LockCharacter", mock.Anything, int64(1)).Return(&domain.Character{ID: 1, Credits: 5}, nil)
	tx.On("AddCredits", mock.Anything, int64(1), int64(10)).Return(int64(0), false, errStoreDown)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.GrantCredits(ctx, 1, 10)
	require.ErrorIs(t, err, domain.ErrDatabaseError)
	tx.AssertCalled(t, "Rollback", mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdjustCredits_CommitFailure(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockLedgerTx{}
	deps.ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("LockCharacter", mock.Anything, int64(1)).Return(&domain.Character{ID: 1, Credits: 5}, nil)
	tx.On("AddCredits", mock.Anything, int64(1), int64(10)).Return(int64(15), true, nil)
	tx.On("Commit", mock.Anything).Return(errStoreDown)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.GrantCredits(ctx, 1, 10)
	assert.ErrorIs(t, err, domain.ErrDatabaseError)
}

func TestAdjustCredits_MissingCharacterPassesThrough(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockLedgerTx{}
	deps.ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("LockCharacter", mock.Anything, int64(9)).Return(nil, domain.ErrCharacterNotFound)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.DeductCredits(ctx, 9, 1)
	require.ErrorIs(t, err, domain.ErrCharacterNotFound)
	assert.NotErrorIs(t, err, domain.ErrDatabaseError)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestGrantItem_WriteFailureRollsBack(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockLedgerTx{}
	deps.ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("LockCharacter", mock.Anything, int64(1)).Return(&domain.Character{ID: 1}, nil)
	tx.On("GetInventoryLine", mock.Anything, int64(1), "Rope").Return(nil, nil)
	tx.On("InsertInventoryLine", mock.Anything, mock.Anything).Return(errStoreDown)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.GrantItem(ctx, 1, " Rope ", 2, false)
	require.ErrorIs(t, err, domain.ErrDatabaseError)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestGrantItem_QuantityOverflow(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockLedgerTx{}
	deps.ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("LockCharacter", mock.Anything, int64(1)).Return(&domain.Character{ID: 1}, nil)
	tx.On("GetInventoryLine", mock.Anything, int64(1), "Rope").
		Return(&domain.InventoryLine{CharacterID: 1, Item: "Rope", Quantity: 1<<63 - 1}, nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.GrantItem(ctx, 1, "Rope", 1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	tx.AssertNotCalled(t, "UpdateInventoryLine", mock.Anything, mock.Anything)
}

func TestPurchase_CatalogFailure(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	deps.catalog.On("Item", mock.Anything, "Potion").Return(nil, errStoreDown)

	_, err := svc.Purchase(ctx, 1, "Potion", 1)
	require.ErrorIs(t, err, domain.ErrDatabaseError)
	deps.ledger.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestPurchase_GrantFailureLeavesNothingCommitted(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockLedgerTx{}
	deps.catalog.On("Item", mock.Anything, "potion").Return(&domain.ShopItem{Name: "Potion", Price: 30}, nil)
	deps.ledger.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("LockCharacter", mock.Anything, int64(1)).Return(&domain.Character{ID: 1, Credits: 100}, nil)
	tx.On("AddCredits", mock.Anything, int64(1), int64(-60)).Return(int64(40), true, nil)
	tx.On("GetInventoryLine", mock.Anything, int64(1), "Potion").Return(nil, errStoreDown)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.Purchase(ctx, 1, "potion", 2)
	require.ErrorIs(t, err, domain.ErrDatabaseError)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestPurchase_SuggestFailure(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	deps.catalog.On("Item", mock.Anything, "Potoin").Return(nil, nil)
	deps.catalog.On("Suggest", mock.Anything, "Potoin", domain.ShopSuggestionLimit).Return(nil, errStoreDown)

	_, err := svc.Purchase(ctx, 1, "Potoin", 1)
	assert.ErrorIs(t, err, domain.ErrDatabaseError)
}

func TestListInventory_StoreFailureYieldsOnce(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	deps.characters.On("GetCharacterByID", mock.Anything, int64(1)).Return(&domain.Character{ID: 1}, nil)
	deps.ledger.On("ListInventoryPage", mock.Anything, int64(1), "", InventoryPageSize).Return(nil, errStoreDown)

	var errs []error
	for _, err := range svc.ListInventory(ctx, 1) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrDatabaseError)
}

func TestListInventory_FollowsKeysAcrossPages(t *testing.T) {
	svc, deps := newMockService()
	svc.(*service).pageSize = 2
	ctx := context.Background()
	deps.characters.On("GetCharacterByID", mock.Anything, int64(1)).Return(&domain.Character{ID: 1}, nil)
	deps.ledger.On("ListInventoryPage", mock.Anything, int64(1), "", 2).
		Return([]domain.InventoryLine{{Item: "Apple", Quantity: 1}, {Item: "Bread", Quantity: 2}}, nil)
	deps.ledger.On("ListInventoryPage", mock.Anything, int64(1), "bread", 2).
		Return([]domain.InventoryLine{{Item: "Cheese", Quantity: 3}}, nil)

	lines, err := svc.Inventory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Cheese", lines[2].Item)
	deps.ledger.AssertNumberOfCalls(t, "ListInventoryPage", 2)
}

func TestDeleteCharacter_DeleteFailure(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	tx := &MockCharacterTx{}
	deps.characters.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetCharacterByNameForUpdate", mock.Anything, "owner", "Hero").Return(&domain.Character{ID: 3, Slot: 1, Name: "Hero"}, nil)
	tx.On("DeleteCharacter", mock.Anything, int64(3)).Return(errStoreDown)
	tx.On("Rollback", mock.Anything).Return(nil)

	res, err := svc.DeleteCharacter(ctx, "owner", "Hero")
	require.ErrorIs(t, err, domain.ErrDatabaseError)
	assert.Nil(t, res)
}

func TestLeaderboard_ClampsLimit(t *testing.T) {
	svc, deps := newMockService()
	ctx := context.Background()
	deps.characters.On("GetLeaderboard", mock.Anything, domain.LeaderboardSize).Return([]domain.Character{}, nil)

	board, err := svc.Leaderboard(ctx, 500)
	require.NoError(t, err)
	assert.Empty(t, board)
	deps.characters.AssertExpectations(t)
}
