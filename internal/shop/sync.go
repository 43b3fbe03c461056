package shop

import (
	"context"

	"github.com/osse101/CharLedger_Go/internal/repository"
)

// Sync loads the catalog file at path, validates it, writes it to the store
// and drops the catalog's cache
func Sync(ctx context.Context, path string, repo repository.Shop, catalog *Catalog) (*SyncResult, error) {
	l := NewLoader()

	config, raw, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(config); err != nil {
		return nil, err
	}

	result, err := l.SyncToDatabase(ctx, config, raw, repo)
	if err != nil {
		return nil, err
	}
	if catalog != nil && !result.Skipped {
		catalog.Invalidate()
	}
	return result, nil
}
