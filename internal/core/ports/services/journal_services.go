package services

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries returns entries most recent first. A zero limit
	// returns every entry in range.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ExportJournalEntries returns every entry in range together with the
	// accounts its lines reference, for spreadsheet export.
	ExportJournalEntries(ctx context.Context, from, to string) ([]domain.JournalEntry, map[string]domain.Account, error)
}

// JournalWriterSvc defines posting operations. Entries are immutable once posted.
type JournalWriterSvc interface {
	// PostJournalEntry validates balance, then account references, then
	// persists. Errors: apperrors.UnbalancedEntryError, ErrInvalidAccountReference,
	// ErrValidation.
	PostJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostSale records a POS sale or online order using the default accounts.
	PostSale(ctx context.Context, req dto.PostSaleRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
