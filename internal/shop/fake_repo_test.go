package shop

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
)

// fakeRepo is an in-memory repository.Shop
type fakeRepo struct {
	mu        sync.Mutex
	items     map[string]domain.ShopItem
	hashes    map[string]string
	listCalls int
	replaces  int
	listErr   error
}

func newFakeRepo(items ...domain.ShopItem) *fakeRepo {
	r := &fakeRepo{items: map[string]domain.ShopItem{}, hashes: map[string]string{}}
	for i, item := range items {
		item.ID = int64(i + 1)
		r.items[naming.Key(item.Name)] = item
	}
	return r
}

func (r *fakeRepo) ListShopItems(_ context.Context) ([]domain.ShopItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.ShopItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return naming.Key(out[i].Name) < naming.Key(out[j].Name) })
	return out, nil
}

func (r *fakeRepo) GetShopItemByName(_ context.Context, name string) (*domain.ShopItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[naming.Key(name)]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeRepo) ReplaceShopItems(_ context.Context, items []domain.ShopItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	next := make(map[string]domain.ShopItem, len(items))
	for _, item := range items {
		next[naming.Key(item.Name)] = item
	}
	var removed int64
	for key := range r.items {
		if _, ok := next[key]; !ok {
			removed++
		}
	}
	r.items = next
	return removed, nil
}

func (r *fakeRepo) GetSyncHash(_ context.Context, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hashes[name], nil
}

func (r *fakeRepo) SetSyncHash(_ context.Context, name, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[name] = hash
	return nil
}
