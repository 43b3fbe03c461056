// Package storetest holds the behaviour every repository.Store backend must share.
// Backend packages call Run from their own tests with a factory that hands out
// an empty store.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// Factory returns an empty, migrated store. The factory owns cleanup.
type Factory func(t *testing.T) repository.Store

// Run executes the shared store suite
func Run(t *testing.T, newStore Factory) {
	t.Run("Characters", func(t *testing.T) { testCharacters(t, newStore(t)) })
	t.Run("Leaderboard", func(t *testing.T) { testLeaderboard(t, newStore(t)) })
	t.Run("RenameAndDelete", func(t *testing.T) { testRenameAndDelete(t, newStore(t)) })
	t.Run("Credits", func(t *testing.T) { testCredits(t, newStore(t)) })
	t.Run("InventoryLines", func(t *testing.T) { testInventoryLines(t, newStore(t)) })
	t.Run("InventoryPaging", func(t *testing.T) { testInventoryPaging(t, newStore(t)) })
	t.Run("Shop", func(t *testing.T) { testShop(t, newStore(t)) })
	t.Run("Pending", func(t *testing.T) { testPending(t, newStore(t)) })
	t.Run("SlotConflict", func(t *testing.T) { testSlotConflict(t, newStore(t)) })
	t.Run("ConcurrentDeduct", func(t *testing.T) { testConcurrentDeduct(t, newStore(t)) })
}

// CreateCharacter inserts a character through a pending transaction and commits it
func CreateCharacter(t *testing.T, store repository.Store, ownerID string, slot int, name string) *domain.Character {
	t.Helper()
	ctx := context.Background()

	tx, err := store.Pending().BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	c, err := tx.InsertCharacter(ctx, ownerID, slot, name)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return c
}

// Fund adds credits to a character and commits
func Fund(t *testing.T, store repository.Store, id int64, amount int64) {
	t.Helper()
	ctx := context.Background()

	tx, err := store.Ledger().BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.LockCharacter(ctx, id)
	require.NoError(t, err)
	_, applied, err := tx.AddCredits(ctx, id, amount)
	require.NoError(t, err)
	require.True(t, applied)
	require.NoError(t, tx.Commit(ctx))
}

func testCharacters(t *testing.T, store repository.Store) {
	ctx := context.Background()

	second := CreateCharacter(t, store, "owner-1", 2, "Bravo")
	first := CreateCharacter(t, store, "owner-1", 1, "Alpha")
	CreateCharacter(t, store, "owner-2", 1, "Other")

	assert.Equal(t, int64(0), first.Credits)
	assert.Equal(t, "owner-1", first.OwnerID)

	got, err := store.Characters().GetCharacterBySlot(ctx, "owner-1", 2)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "Bravo", got.Name)

	got, err = store.Characters().GetCharacterByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Slot)

	list, err := store.Characters().ListCharactersByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int{1, 2}, []int{list[0].Slot, list[1].Slot})

	_, err = store.Characters().GetCharacterBySlot(ctx, "owner-1", 3)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	_, err = store.Characters().GetCharacterByID(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	list, err = store.Characters().ListCharactersByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testLeaderboard(t *testing.T, store repository.Store) {
	ctx := context.Background()

	a := CreateCharacter(t, store, "lb-1", 1, "A")
	b := CreateCharacter(t, store, "lb-2", 1, "B")
	c := CreateCharacter(t, store, "lb-3", 1, "C")
	Fund(t, store, a.ID, 50)
	Fund(t, store, b.ID, 200)
	Fund(t, store, c.ID, 50)

	board, err := store.Characters().GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, b.ID, board[0].ID)
	// ties keep creation order
	assert.Equal(t, a.ID, board[1].ID)
	assert.Equal(t, c.ID, board[2].ID)

	board, err = store.Characters().GetLeaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, board, 1)
}

func testRenameAndDelete(t *testing.T, store repository.Store) {
	ctx := context.Background()

	c := CreateCharacter(t, store, "owner-r", 1, "Twin")
	CreateCharacter(t, store, "owner-r", 3, "Twin")

	tx, err := store.Characters().BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetCharacterBySlotForUpdate(ctx, "owner-r", 1)
	require.NoError(t, err)
	require.NoError(t, tx.RenameCharacter(ctx, locked.ID, "Renamed"))
	require.NoError(t, tx.Commit(ctx))

	got, err := store.Characters().GetCharacterByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	// give the slot 3 character inventory so the delete has something to cascade
	slot3, err := store.Characters().GetCharacterBySlot(ctx, "owner-r", 3)
	require.NoError(t, err)
	ltx, err := store.Ledger().BeginTx(ctx)
	require.NoError(t, err)
	_, err = ltx.LockCharacter(ctx, slot3.ID)
	require.NoError(t, err)
	require.NoError(t, ltx.InsertInventoryLine(ctx, domain.InventoryLine{CharacterID: slot3.ID, Item: "Rope", Quantity: 2}))
	require.NoError(t, ltx.Commit(ctx))

	tx, err = store.Characters().BeginTx(ctx)
	require.NoError(t, err)
	byName, err := tx.GetCharacterByNameForUpdate(ctx, "owner-r", "Twin")
	require.NoError(t, err)
	assert.Equal(t, 3, byName.Slot)
	require.NoError(t, tx.DeleteCharacter(ctx, byName.ID))
	require.NoError(t, tx.Commit(ctx))

	_, err = store.Characters().GetCharacterByID(ctx, slot3.ID)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	lines, err := store.Ledger().ListInventoryPage(ctx, slot3.ID, "", 10)
	require.NoError(t, err)
	assert.Empty(t, lines)

	tx, err = store.Characters().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.GetCharacterByNameForUpdate(ctx, "owner-r", "Twin")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	require.NoError(t, tx.Rollback(ctx))
}

func testCredits(t *testing.T, store repository.Store) {
	ctx := context.Background()
	c := CreateCharacter(t, store, "owner-c", 1, "Saver")

	tx, err := store.Ledger().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.LockCharacter(ctx, c.ID)
	require.NoError(t, err)

	balance, applied, err := tx.AddCredits(ctx, c.ID, 100)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(100), balance)

	balance, applied, err = tx.AddCredits(ctx, c.ID, -101)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, int64(0), balance)

	balance, applied, err = tx.AddCredits(ctx, c.ID, -100)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(0), balance)
	require.NoError(t, tx.Commit(ctx))

	tx, err = store.Ledger().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.LockCharacter(ctx, 424242)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	require.NoError(t, tx.Rollback(ctx))
}

func testInventoryLines(t *testing.T, store repository.Store) {
	ctx := context.Background()
	c := CreateCharacter(t, store, "owner-i", 1, "Holder")

	tx, err := store.Ledger().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.LockCharacter(ctx, c.ID)
	require.NoError(t, err)

	line, err := tx.GetInventoryLine(ctx, c.ID, "Sword")
	require.NoError(t, err)
	assert.Nil(t, line)

	require.NoError(t, tx.InsertInventoryLine(ctx, domain.InventoryLine{CharacterID: c.ID, Item: "Iron  Sword", Quantity: 1}))

	line, err = tx.GetInventoryLine(ctx, c.ID, "iron sword")
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, "Iron Sword", line.Item)
	assert.Equal(t, int64(1), line.Quantity)
	assert.False(t, line.OneTime)

	require.NoError(t, tx.UpdateInventoryLine(ctx, domain.InventoryLine{CharacterID: c.ID, Item: "IRON SWORD", Quantity: 5, OneTime: true}))
	line, err = tx.GetInventoryLine(ctx, c.ID, "Iron Sword")
	require.NoError(t, err)
	assert.Equal(t, "Iron Sword", line.Item)
	assert.Equal(t, int64(5), line.Quantity)
	assert.True(t, line.OneTime)

	require.NoError(t, tx.DeleteInventoryLine(ctx, c.ID, "iron SWORD"))
	line, err = tx.GetInventoryLine(ctx, c.ID, "Iron Sword")
	require.NoError(t, err)
	assert.Nil(t, line)
	require.NoError(t, tx.Commit(ctx))
}

func testInventoryPaging(t *testing.T, store repository.Store) {
	ctx := context.Background()
	c := CreateCharacter(t, store, "owner-p", 1, "Packrat")

	tx, err := store.Ledger().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.LockCharacter(ctx, c.ID)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		item := fmt.Sprintf("item-%02d", 6-i)
		require.NoError(t, tx.InsertInventoryLine(ctx, domain.InventoryLine{CharacterID: c.ID, Item: item, Quantity: int64(i + 1)}))
	}
	require.NoError(t, tx.Commit(ctx))

	var got []string
	after := ""
	for {
		page, err := store.Ledger().ListInventoryPage(ctx, c.ID, after, 3)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, line := range page {
			got = append(got, line.Item)
		}
		after = page[len(page)-1].Item
	}

	assert.Equal(t, []string{"item-00", "item-01", "item-02", "item-03", "item-04", "item-05", "item-06"}, got)
}

func testShop(t *testing.T, store repository.Store) {
	ctx := context.Background()
	shop := store.Shop()

	removed, err := shop.ReplaceShopItems(ctx, []domain.ShopItem{
		{Name: "Potion", Price: 10, Description: "Heals"},
		{Name: "Crown", Price: 500, OneTime: true},
		{Name: "Rope", Price: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	items, err := shop.ListShopItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Crown", items[0].Name)

	item, err := shop.GetShopItemByName(ctx, "POTION")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(10), item.Price)
	assert.Equal(t, "Heals", item.Description)

	removed, err = shop.ReplaceShopItems(ctx, []domain.ShopItem{
		{Name: "potion", Price: 12},
		{Name: "Crown", Price: 450, OneTime: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	item, err = shop.GetShopItemByName(ctx, "Potion")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(12), item.Price)

	item, err = shop.GetShopItemByName(ctx, "Rope")
	require.NoError(t, err)
	assert.Nil(t, item)

	hash, err := shop.GetSyncHash(ctx, "shop.json")
	require.NoError(t, err)
	assert.Empty(t, hash)

	require.NoError(t, shop.SetSyncHash(ctx, "shop.json", "abc"))
	require.NoError(t, shop.SetSyncHash(ctx, "shop.json", "def"))
	hash, err = shop.GetSyncHash(ctx, "shop.json")
	require.NoError(t, err)
	assert.Equal(t, "def", hash)
}

func testPending(t *testing.T, store repository.Store) {
	ctx := context.Background()
	pending := store.Pending()

	p, err := pending.UpsertPending(ctx, "prompt-1", "owner-x", "First")
	require.NoError(t, err)
	assert.Equal(t, "prompt-1", p.PromptID)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)

	p, err = pending.UpsertPending(ctx, "prompt-1", "owner-x", "Second")
	require.NoError(t, err)
	assert.Equal(t, "Second", p.ProposedName)

	tx, err := pending.BeginTx(ctx)
	require.NoError(t, err)
	got, err := tx.GetPendingForUpdate(ctx, "prompt-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.ProposedName)
	assert.Equal(t, "owner-x", got.OwnerID)

	_, err = tx.GetPendingForUpdate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)

	_, err = tx.GetCharacterBySlot(ctx, "owner-x", 1)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	require.NoError(t, tx.DeletePending(ctx, "prompt-1"))
	require.NoError(t, tx.Commit(ctx))

	tx, err = pending.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.GetPendingForUpdate(ctx, "prompt-1")
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)
	require.NoError(t, tx.Rollback(ctx))

	_, err = pending.UpsertPending(ctx, "prompt-2", "owner-x", "Old")
	require.NoError(t, err)
	n, err := pending.DeletePendingBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	n, err = pending.DeletePendingBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func testSlotConflict(t *testing.T, store repository.Store) {
	ctx := context.Background()
	CreateCharacter(t, store, "owner-s", 2, "Taken")

	tx, err := store.Pending().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.InsertCharacter(ctx, "owner-s", 2, "Usurper")
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	require.NoError(t, tx.Rollback(ctx))

	got, err := store.Characters().GetCharacterBySlot(ctx, "owner-s", 2)
	require.NoError(t, err)
	assert.Equal(t, "Taken", got.Name)
}

// testConcurrentDeduct races deductions that together exceed the balance;
// exactly the affordable number must apply.
func testConcurrentDeduct(t *testing.T, store repository.Store) {
	ctx := context.Background()
	c := CreateCharacter(t, store, "owner-race", 1, "Spender")
	Fund(t, store, c.ID, 50)

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := store.Ledger().BeginTx(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer func() { _ = tx.Rollback(ctx) }()

			if _, err := tx.LockCharacter(ctx, c.ID); !assert.NoError(t, err) {
				return
			}
			_, ok, err := tx.AddCredits(ctx, c.ID, -10)
			if !assert.NoError(t, err) {
				return
			}
			if assert.NoError(t, tx.Commit(ctx)) && ok {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, applied)
	got, err := store.Characters().GetCharacterByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Credits)
}
