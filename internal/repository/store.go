package repository

import "context"

// Store is an opened persistence backend. It is created once at startup,
// injected into services, and closed at shutdown.
type Store interface {
	Characters() Character
	Ledger() Ledger
	Shop() Shop
	Pending() Pending
	Ping(ctx context.Context) error
	Close() error
}
