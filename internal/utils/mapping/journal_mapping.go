package mapping

import (
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
)

// ToModelJournalEntry converts the entry header. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:   d.EntryID,
		EntryDate: d.EntryDate,
		Source:    d.Source,
		Ref:       NullString(d.Ref),
		Notes:     NullString(d.Notes),
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainJournalEntry converts a header row; Lines is left empty.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:   m.EntryID,
		EntryDate: m.EntryDate,
		Source:    m.Source,
		Ref:       m.Ref.String,
		Notes:     m.Notes.String,
		Lines:     []domain.JournalLine{},
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		Description: NullString(d.Description),
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		Description: m.Description.String,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}
