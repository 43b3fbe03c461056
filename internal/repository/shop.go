package repository

import (
	"context"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// Shop defines persistence for the shop catalog
type Shop interface {
	ListShopItems(ctx context.Context) ([]domain.ShopItem, error)
	// GetShopItemByName returns nil when no item matches case-insensitively
	GetShopItemByName(ctx context.Context, name string) (*domain.ShopItem, error)
	// ReplaceShopItems upserts items and removes every item not listed
	ReplaceShopItems(ctx context.Context, items []domain.ShopItem) (removed int64, err error)
	// GetSyncHash returns "" when configName was never synced
	GetSyncHash(ctx context.Context, configName string) (string, error)
	SetSyncHash(ctx context.Context, configName, hash string) error
}
