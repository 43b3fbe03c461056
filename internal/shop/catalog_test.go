package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

func testCatalog() (*Catalog, *fakeRepo) {
	repo := newFakeRepo(
		domain.ShopItem{Name: "Potion", Price: 25},
		domain.ShopItem{Name: "Portal Scroll", Price: 90},
		domain.ShopItem{Name: "Rope", Price: 5},
		domain.ShopItem{Name: "Horse", Price: 900, OneTime: true},
	)
	return NewCatalog(repo, time.Minute), repo
}

func TestCatalog_Item_CaseInsensitive(t *testing.T) {
	catalog, _ := testCatalog()
	ctx := context.Background()

	item, err := catalog.Item(ctx, "  pOtIoN ")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Potion", item.Name)
	assert.Equal(t, int64(25), item.Price)

	item, err = catalog.Item(ctx, "Lantern")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCatalog_CachesReads(t *testing.T) {
	catalog, repo := testCatalog()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := catalog.Items(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.listCalls)

	catalog.Invalidate()
	_, err := catalog.Item(ctx, "rope")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCatalog_ItemsReturnsCopy(t *testing.T) {
	catalog, _ := testCatalog()
	ctx := context.Background()

	items, err := catalog.Items(ctx)
	require.NoError(t, err)
	items[0].Price = 1

	again, err := catalog.Items(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), again[0].Price)
}

func TestCatalog_Suggest(t *testing.T) {
	catalog, _ := testCatalog()

	names, err := catalog.Suggest(context.Background(), "potoin", 5)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "Potion", names[0])
}

func TestCatalog_Match_EmptyQueryListsByName(t *testing.T) {
	catalog, _ := testCatalog()

	items, err := catalog.Match(context.Background(), "", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Horse", items[0].Name)
	assert.Equal(t, "Portal Scroll", items[1].Name)
}

func TestCatalog_StoreError(t *testing.T) {
	catalog, repo := testCatalog()
	repo.listErr = errors.New("connection refused")

	_, err := catalog.Item(context.Background(), "rope")
	assert.ErrorContains(t, err, "connection refused")
}
