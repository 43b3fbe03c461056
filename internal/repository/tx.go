package repository

import "context"

// Tx defines the commit/rollback half shared by every transactional repository.
// Rollback after Commit must return nil.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
