package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CharLedger_Go/internal/database/generated"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
)

// ShopRepository implements repository.Shop for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{
		db: db,
		q:  generated.New(db),
	}
}

// ListShopItems returns the catalog ordered by name
func (r *ShopRepository) ListShopItems(ctx context.Context) ([]domain.ShopItem, error) {
	rows, err := r.q.ListShopItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListShopItems, err)
	}

	items := make([]domain.ShopItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, *mapShopItem(row))
	}
	return items, nil
}

// GetShopItemByName looks an item up case-insensitively
func (r *ShopRepository) GetShopItemByName(ctx context.Context, name string) (*domain.ShopItem, error) {
	row, err := r.q.GetShopItemByKey(ctx, naming.Key(name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetShopItem, err)
	}
	return mapShopItem(row), nil
}

// ReplaceShopItems makes the catalog equal to items in one transaction
func (r *ShopRepository) ReplaceShopItems(ctx context.Context, items []domain.ShopItem) (int64, error) {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return 0, err
	}
	defer SafeRollback(ctx, h.tx)

	keys := make([]string, 0, len(items))
	for _, item := range items {
		key := naming.Key(item.Name)
		keys = append(keys, key)
		if _, err := h.q.UpsertShopItem(ctx, generated.UpsertShopItemParams{
			Name:        naming.Clean(item.Name),
			NameKey:     key,
			Price:       item.Price,
			Description: item.Description,
			OneTime:     item.OneTime,
		}); err != nil {
			return 0, fmt.Errorf("%s %q: %w", ErrMsgFailedToUpsertShopItem, item.Name, err)
		}
	}

	removed, err := h.q.DeleteShopItemsNotIn(ctx, keys)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteShopItems, err)
	}

	if err := h.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

// GetSyncHash returns the stored hash of the last synced config file
func (r *ShopRepository) GetSyncHash(ctx context.Context, configName string) (string, error) {
	row, err := r.q.GetSyncMetadata(ctx, configName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToGetSyncMetadata, err)
	}
	return row.FileHash, nil
}

// SetSyncHash records the hash of a synced config file
func (r *ShopRepository) SetSyncHash(ctx context.Context, configName, hash string) error {
	if err := r.q.UpsertSyncMetadata(ctx, generated.UpsertSyncMetadataParams{
		ConfigName: configName,
		FileHash:   hash,
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertSyncMetadata, err)
	}
	return nil
}
