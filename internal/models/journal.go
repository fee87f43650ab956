package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table. Entries are append-only
// so only creation audit columns exist.
type JournalEntry struct {
	EntryID   string         `db:"entry_id"`
	EntryDate time.Time      `db:"entry_date"`
	Source    string         `db:"source"`
	Ref       sql.NullString `db:"ref"`
	Notes     sql.NullString `db:"notes"`
	CreatedAt time.Time      `db:"created_at"`
	CreatedBy string         `db:"created_by"`
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Description sql.NullString  `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
