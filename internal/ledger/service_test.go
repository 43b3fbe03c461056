package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/database/sqlite"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/shop"
	"github.com/osse101/CharLedger_Go/internal/testing/storetest"
)

var testShopItems = []domain.ShopItem{
	{Name: "Potion", Price: 30},
	{Name: "Rope", Price: 5},
	{Name: "Horse", Price: 100, OneTime: true},
	{Name: "Pebble", Price: 0},
	{Name: "Crown", Price: domain.MaxTransactionAmount},
}

func newTestService(t *testing.T) (Service, repository.Store) {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Shop().ReplaceShopItems(ctx, testShopItems)
	require.NoError(t, err)

	catalog := shop.NewCatalog(store.Shop(), time.Minute)
	return NewService(store.Characters(), store.Ledger(), catalog), store
}

func balanceOf(t *testing.T, store repository.Store, id int64) int64 {
	t.Helper()
	c, err := store.Characters().GetCharacterByID(context.Background(), id)
	require.NoError(t, err)
	return c.Credits
}

func TestAdjustCredits(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	res, err := svc.GrantCredits(ctx, c.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(30), res.Balance)
	assert.Equal(t, int64(30), res.Delta)

	res, err = svc.DeductCredits(ctx, c.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.Balance)
	assert.Equal(t, int64(-10), res.Delta)
}

func TestAdjustCredits_InsufficientFundsLeavesBalance(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")
	storetest.Fund(t, store, c.ID, 30)

	_, err := svc.DeductCredits(ctx, c.ID, 50)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	le, ok := domain.AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, int64(30), le.Balance)
	assert.Equal(t, int64(50), le.Required)
	assert.Equal(t, int64(30), balanceOf(t, store, c.ID))
}

func TestAdjustCredits_Validation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.AdjustCredits(ctx, c.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.GrantCredits(ctx, c.ID, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AdjustCredits(ctx, c.ID, domain.MaxTransactionAmount+1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.GrantCredits(ctx, 987654, 5)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestGrantItem_CaseInsensitiveStacking(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	res, err := svc.GrantItem(ctx, c.ID, "Iron Sword", 1, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Quantity)

	res, err = svc.GrantItem(ctx, c.ID, "iron  SWORD", 2, false)
	require.NoError(t, err)
	assert.Equal(t, "Iron Sword", res.Item)
	assert.Equal(t, int64(3), res.Quantity)

	lines, err := svc.Inventory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Iron Sword", lines[0].Item)
	assert.Equal(t, int64(3), lines[0].Quantity)
}

func TestGrantItem_OneTimeIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	for i := 0; i < 3; i++ {
		res, err := svc.GrantItem(ctx, c.ID, "Medal", 4, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Quantity)
		assert.True(t, res.OneTime)
	}
}

func TestGrantItem_OneTimeLineDoesNotStack(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.GrantItem(ctx, c.ID, "Medal", 1, true)
	require.NoError(t, err)

	res, err := svc.GrantItem(ctx, c.ID, "medal", 5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Quantity)
	assert.True(t, res.OneTime)
}

func TestGrantItem_OneTimeOverStackable(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.GrantItem(ctx, c.ID, "Coin", 7, false)
	require.NoError(t, err)

	res, err := svc.GrantItem(ctx, c.ID, "Coin", 1, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Quantity)
	assert.True(t, res.OneTime)
}

func TestGrantItem_Validation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.GrantItem(ctx, c.ID, "   ", 1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GrantItem(ctx, c.ID, "Rope", 0, false)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRemoveItem(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.GrantItem(ctx, c.ID, "Arrow", 10, false)
	require.NoError(t, err)

	res, err := svc.RemoveItem(ctx, c.ID, "ARROW", 4)
	require.NoError(t, err)
	assert.Equal(t, "Arrow", res.Item)
	assert.Equal(t, int64(4), res.Removed)
	assert.Equal(t, int64(6), res.Remaining)
	assert.False(t, res.RemovedAll)

	_, err = svc.RemoveItem(ctx, c.ID, "arrow", 7)
	require.ErrorIs(t, err, domain.ErrNotEnough)
	le, ok := domain.AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, int64(6), le.Quantity)
	assert.Equal(t, int64(7), le.Required)

	res, err = svc.RemoveItem(ctx, c.ID, "arrow", 6)
	require.NoError(t, err)
	assert.True(t, res.RemovedAll)
	assert.Equal(t, int64(0), res.Remaining)

	lines, err := svc.Inventory(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = svc.RemoveItem(ctx, c.ID, "arrow", 1)
	assert.ErrorIs(t, err, domain.ErrNotOwned)
}

func TestRemoveItem_OneTimeLineRemovedWhole(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.GrantItem(ctx, c.ID, "Medal", 1, true)
	require.NoError(t, err)

	res, err := svc.RemoveItem(ctx, c.ID, "medal", 5)
	require.NoError(t, err)
	assert.True(t, res.RemovedAll)
	assert.Equal(t, int64(1), res.Removed)
}

func TestPurchase(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")
	storetest.Fund(t, store, c.ID, 100)

	res, err := svc.Purchase(ctx, c.ID, "rope", 3)
	require.NoError(t, err)
	assert.Equal(t, "Rope", res.Item)
	assert.Equal(t, int64(15), res.TotalCost)
	assert.Equal(t, int64(85), res.Balance)
	assert.Equal(t, int64(3), res.Line.Quantity)

	res, err = svc.Purchase(ctx, c.ID, "ROPE", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Line.Quantity)
	assert.Equal(t, int64(75), balanceOf(t, store, c.ID))
}

func TestPurchase_OneTimeForcesSingleAndRejectsRepeat(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")
	storetest.Fund(t, store, c.ID, 500)

	res, err := svc.Purchase(ctx, c.ID, "horse", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Quantity)
	assert.Equal(t, int64(100), res.TotalCost)
	assert.True(t, res.Line.OneTime)

	_, err = svc.Purchase(ctx, c.ID, "Horse", 1)
	require.ErrorIs(t, err, domain.ErrAlreadyOwned)
	assert.Equal(t, int64(400), balanceOf(t, store, c.ID))
}

func TestPurchase_InsufficientFundsWritesNothing(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")
	storetest.Fund(t, store, c.ID, 50)

	_, err := svc.Purchase(ctx, c.ID, "Potion", 2)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	le, ok := domain.AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, int64(50), le.Balance)
	assert.Equal(t, int64(60), le.Required)

	lines, err := svc.Inventory(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, int64(50), balanceOf(t, store, c.ID))
}

func TestPurchase_UnknownItemSuggests(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.Purchase(ctx, c.ID, "potoin", 1)
	require.ErrorIs(t, err, domain.ErrShopItemNotFound)

	le, ok := domain.AsLedgerError(err)
	require.True(t, ok)
	require.NotEmpty(t, le.Suggestions)
	assert.Equal(t, "Potion", le.Suggestions[0])
	assert.LessOrEqual(t, len(le.Suggestions), domain.ShopSuggestionLimit)
}

func TestPurchase_FreeItemNeedsNoCredits(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	res, err := svc.Purchase(ctx, c.ID, "pebble", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.TotalCost)
	assert.Equal(t, int64(0), res.Balance)
	assert.Equal(t, int64(4), res.Line.Quantity)
}

func TestPurchase_CostOverflow(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	_, err := svc.Purchase(ctx, c.ID, "Crown", domain.MaxTransactionAmount)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestPurchase_ConcurrentDoubleSpend(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")
	storetest.Fund(t, store, c.ID, 100)

	const buyers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, c.ID, "Potion", 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrInsufficientFunds):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, buyers-3, refused)
	assert.Equal(t, int64(10), balanceOf(t, store, c.ID))

	lines, err := svc.Inventory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].Quantity)
}

func TestListInventory_PagesInOrder(t *testing.T) {
	svc, store := newTestService(t)
	svc.(*service).pageSize = 2
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")

	for _, name := range []string{"Torch", "apple", "Rope", "banana", "Quill"} {
		_, err := svc.GrantItem(ctx, c.ID, name, 1, false)
		require.NoError(t, err)
	}

	var got []string
	for line, err := range svc.ListInventory(ctx, c.ID) {
		require.NoError(t, err)
		got = append(got, line.Item)
	}
	assert.Equal(t, []string{"apple", "banana", "Quill", "Rope", "Torch"}, got)

	// restartable, and stopping early is fine
	var first []string
	for line, err := range svc.ListInventory(ctx, c.ID) {
		require.NoError(t, err)
		first = append(first, line.Item)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"apple", "banana", "Quill"}, first)
}

func TestListInventory_UnknownCharacter(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Inventory(context.Background(), 4242)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestDeleteCharacter(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 2, "Hero")
	storetest.CreateCharacter(t, store, "owner", 1, "Sidekick")
	_, err := svc.GrantItem(ctx, c.ID, "Rope", 2, false)
	require.NoError(t, err)

	res, err := svc.DeleteCharacter(ctx, "owner", "Nobody")
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Nil(t, res.Character)

	list, err := svc.Characters(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	res, err = svc.DeleteCharacter(ctx, "owner", "Hero")
	require.NoError(t, err)
	require.True(t, res.Deleted)
	assert.Equal(t, 2, res.Character.Slot)

	list, err = svc.Characters(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sidekick", list[0].Name)

	lines, err := store.Ledger().ListInventoryPage(ctx, c.ID, "", 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDeleteCharacter_OtherOwnerUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	storetest.CreateCharacter(t, store, "alice", 1, "Hero")

	res, err := svc.DeleteCharacter(ctx, "bob", "Hero")
	require.NoError(t, err)
	assert.False(t, res.Deleted)

	_, err = svc.CharacterBySlot(ctx, "alice", 1)
	assert.NoError(t, err)
}

func TestRenameCharacter(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := storetest.CreateCharacter(t, store, "owner", 1, "Hero")
	storetest.Fund(t, store, c.ID, 40)

	renamed, err := svc.RenameCharacter(ctx, "owner", 1, "  Legend ")
	require.NoError(t, err)
	assert.Equal(t, "Legend", renamed.Name)
	assert.Equal(t, int64(40), renamed.Credits)

	_, err = svc.RenameCharacter(ctx, "owner", 2, "Ghost")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	_, err = svc.RenameCharacter(ctx, "owner", 4, "Ghost")
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)

	_, err = svc.RenameCharacter(ctx, "owner", 1, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLeaderboard(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for i, credits := range []int64{10, 300, 50} {
		c := storetest.CreateCharacter(t, store, "owner", i+1, string(rune('A'+i)))
		storetest.Fund(t, store, c.ID, credits)
	}

	board, err := svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "B", board[0].Name)
	assert.Equal(t, "C", board[1].Name)
	assert.Equal(t, 3, board[2].Rank)

	board, err = svc.Leaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, board, 1)
}

func TestCharacterBySlot_InvalidSlot(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CharacterBySlot(context.Background(), "owner", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}
