package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/shop"
)

// SyncShopCatalog loads and validates the catalog file at path and writes it
// to the store. The store's sync hash makes an unchanged file a no-op.
func SyncShopCatalog(ctx context.Context, path string, repo repository.Shop, catalog *shop.Catalog) error {
	slog.Info(LogMsgSyncingShopCatalog, "path", path)

	result, err := shop.Sync(ctx, path, repo, catalog)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncShop, err)
	}

	if result.Skipped {
		slog.Info(LogMsgShopCatalogSkipped)
		return nil
	}
	slog.Info(LogMsgShopCatalogSynced, "upserted", result.Upserted, "removed", result.Removed)
	return nil
}
