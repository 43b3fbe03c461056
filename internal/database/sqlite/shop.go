package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
)

const shopColumns = `id, name, price, description, one_time`

// ShopRepository implements repository.Shop
type ShopRepository struct {
	db *sql.DB
}

func (r *ShopRepository) ListShopItems(ctx context.Context) ([]domain.ShopItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shopColumns+` FROM shop_items ORDER BY name_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop items: %w", err)
	}
	defer rows.Close()

	var items []domain.ShopItem
	for rows.Next() {
		var item domain.ShopItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Description, &item.OneTime); err != nil {
			return nil, fmt.Errorf("failed to scan shop item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shop items: %w", err)
	}
	return items, nil
}

func (r *ShopRepository) GetShopItemByName(ctx context.Context, name string) (*domain.ShopItem, error) {
	var item domain.ShopItem
	err := r.db.QueryRowContext(ctx,
		`SELECT `+shopColumns+` FROM shop_items WHERE name_key = ?`, naming.Key(name)).
		Scan(&item.ID, &item.Name, &item.Price, &item.Description, &item.OneTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shop item: %w", err)
	}
	return &item, nil
}

// ReplaceShopItems makes the catalog equal to items in one transaction
func (r *ShopRepository) ReplaceShopItems(ctx context.Context, items []domain.ShopItem) (int64, error) {
	h, err := beginTx(ctx, r.db)
	if err != nil {
		return 0, err
	}
	defer func() { _ = h.Rollback(ctx) }()

	keys := make([]any, 0, len(items))
	for _, item := range items {
		key := naming.Key(item.Name)
		keys = append(keys, key)
		if _, err := h.tx.ExecContext(ctx,
			`INSERT INTO shop_items (name, name_key, price, description, one_time)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (name_key) DO UPDATE SET
			   name = excluded.name,
			   price = excluded.price,
			   description = excluded.description,
			   one_time = excluded.one_time`,
			naming.Clean(item.Name), key, item.Price, item.Description, item.OneTime); err != nil {
			return 0, fmt.Errorf("failed to upsert shop item %q: %w", item.Name, err)
		}
	}

	query := `DELETE FROM shop_items`
	if len(keys) > 0 {
		query += ` WHERE name_key NOT IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`
	}
	res, err := h.tx.ExecContext(ctx, query, keys...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale shop items: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := h.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *ShopRepository) GetSyncHash(ctx context.Context, configName string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT file_hash FROM config_sync_metadata WHERE config_name = ?`, configName).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get sync metadata: %w", err)
	}
	return hash, nil
}

func (r *ShopRepository) SetSyncHash(ctx context.Context, configName, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO config_sync_metadata (config_name, file_hash, synced_at) VALUES (?, ?, ?)
		 ON CONFLICT (config_name) DO UPDATE SET file_hash = excluded.file_hash, synced_at = excluded.synced_at`,
		configName, hash, toMillis(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to upsert sync metadata: %w", err)
	}
	return nil
}
