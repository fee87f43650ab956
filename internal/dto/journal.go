package dto

import (
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual journal entry. Missing or
// non-numeric amounts count as zero.
type JournalLineRequest struct {
	AccountID   string `json:"accountId" binding:"required"`
	Description string `json:"description"`
	Debit       Amount `json:"debit"`
	Credit      Amount `json:"credit"`
}

// CreateJournalEntryRequest is the body of POST /journals.
type CreateJournalEntryRequest struct {
	Date   *Date                `json:"date"`
	Source string               `json:"source" binding:"max=40"`
	Ref    string               `json:"ref" binding:"max=120"`
	Notes  string               `json:"notes"`
	Lines  []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	From      string `form:"from"`
	To        string `form:"to"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// JournalLineResponse is a persisted journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse is a persisted journal entry.
type JournalEntryResponse struct {
	EntryID   string                `json:"entryID"`
	Date      time.Time             `json:"date"`
	Source    string                `json:"source"`
	Ref       string                `json:"ref"`
	Notes     string                `json:"notes"`
	Lines     []JournalLineResponse `json:"lines"`
	CreatedAt time.Time             `json:"createdAt"`
	CreatedBy string                `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// UnbalancedEntryResponse is returned when debits and credits differ.
type UnbalancedEntryResponse struct {
	Error     string          `json:"error"`
	SumDebit  decimal.Decimal `json:"sumDebit"`
	SumCredit decimal.Decimal `json:"sumCredit"`
}

// ToJournalEntryResponse converts a domain entry into its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:   e.EntryID,
		Date:      e.EntryDate,
		Source:    e.Source,
		Ref:       e.Ref,
		Notes:     e.Notes,
		Lines:     lines,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
}

// ToListJournalEntriesResponse converts a slice of entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return ListJournalEntriesResponse{Entries: res, NextToken: nextToken}
}
