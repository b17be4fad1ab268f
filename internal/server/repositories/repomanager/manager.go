// Package repomanager owns the persistence connection: it opens the pool,
// applies migrations, exposes the repositories bound to it, and reports
// readiness for the per-request service-unavailable gate.
package repomanager

import (
	"context"

	"pocketledger/internal/server/repositories/entries"
	"pocketledger/internal/server/repositories/users"
)

type Manager interface {
	Users() users.Repository
	Entries() entries.Repository

	// Ready reports whether the persistence connection has been
	// established and migrated. Checked on every protected request.
	Ready() bool

	Ping(ctx context.Context) error
	Close() error
}
