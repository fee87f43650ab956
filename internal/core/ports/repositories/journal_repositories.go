package repositories

import (
	"context"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// JournalCursor is the keyset position after which a page starts.
type JournalCursor struct {
	EntryDate time.Time
	CreatedAt time.Time
	EntryID   string
}

// JournalFilter narrows journal listing. Zero Limit means no limit.
type JournalFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
	After *JournalCursor
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry with its lines.
	FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries returns entries with lines, most recent first
	// (entry date, then creation time, then id, all descending).
	ListJournalEntries(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data. Entries are
// append-only, so there is no update or delete.
type JournalWriter interface {
	// SaveJournalEntry persists the entry and its lines atomically.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
