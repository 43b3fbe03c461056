// Package shop serves the shop catalog and keeps it in line with the JSON
// catalog file.
package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/fuzzy"
	"github.com/osse101/CharLedger_Go/internal/naming"
	"github.com/osse101/CharLedger_Go/internal/repository"
)

// snapshot is one read of the whole catalog, indexed by name key
type snapshot struct {
	items []domain.ShopItem
	byKey map[string]int
}

// Catalog reads shop items through a short-lived cache. The catalog is
// small and read on every purchase and autocomplete, so it is cached whole.
type Catalog struct {
	repo  repository.Shop
	cache *expirable.LRU[string, *snapshot]
}

// NewCatalog creates a Catalog; ttl <= 0 means DefaultCacheTTL
func NewCatalog(repo repository.Shop, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Catalog{
		repo:  repo,
		cache: expirable.NewLRU[string, *snapshot](1, nil, ttl),
	}
}

func (c *Catalog) load(ctx context.Context) (*snapshot, error) {
	if snap, ok := c.cache.Get(catalogCacheKey); ok {
		return snap, nil
	}

	items, err := c.repo.ListShopItems(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}

	snap := &snapshot{items: items, byKey: make(map[string]int, len(items))}
	for i, item := range items {
		snap.byKey[naming.Key(item.Name)] = i
	}
	c.cache.Add(catalogCacheKey, snap)
	return snap, nil
}

// Items returns every shop item ordered by name
func (c *Catalog) Items(ctx context.Context) ([]domain.ShopItem, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ShopItem, len(snap.items))
	copy(out, snap.items)
	return out, nil
}

// Item returns the item named name in any casing, or nil
func (c *Catalog) Item(ctx context.Context, name string) (*domain.ShopItem, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	i, ok := snap.byKey[naming.Key(name)]
	if !ok {
		return nil, nil
	}
	item := snap.items[i]
	return &item, nil
}

// Suggest returns up to limit item names closest to query
func (c *Catalog) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	items, err := c.Match(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names, nil
}

// Match returns up to limit items closest to query. An empty query lists
// the first items by name, which suits autocomplete before typing starts.
func (c *Catalog) Match(ctx context.Context, query string, limit int) ([]domain.ShopItem, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > fuzzy.AutocompleteLimit {
		limit = fuzzy.AutocompleteLimit
	}

	if naming.Clean(query) == "" {
		n := min(limit, len(snap.items))
		out := make([]domain.ShopItem, n)
		copy(out, snap.items[:n])
		return out, nil
	}
	return fuzzy.Suggest(query, snap.items, func(item domain.ShopItem) string { return item.Name }, limit), nil
}

// Invalidate drops the cached catalog so the next read hits the store
func (c *Catalog) Invalidate() {
	c.cache.Purge()
}
