// Package ports holds the outbound interfaces that are neither repositories
// nor services: event publishing and cross-instance locking.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// LedgerEventPublisher announces committed ledger changes to other systems.
// Publishing is best effort; callers log failures and carry on.
type LedgerEventPublisher interface {
	PublishJournalPosted(ctx context.Context, entry domain.JournalEntry) error
	Close() error
}

// ErrLockNotObtained is returned by Locker when another holder owns the key.
var ErrLockNotObtained = errors.New("lock not obtained")

// Locker grants short exclusive leases on named keys.
type Locker interface {
	// Obtain returns a release func on success and ErrLockNotObtained when
	// the key is held elsewhere.
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
