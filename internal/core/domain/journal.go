package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known journal sources. Source is free text; these are the values the
// system itself writes.
const (
	SourceManual  = "MANUAL"
	SourceExpense = "EXPENSE"
	SourcePOS     = "POS"
	SourceOrder   = "ORDER"
)

// JournalEntry is an immutable, balanced set of journal lines.
type JournalEntry struct {
	EntryID   string        `json:"entryID"`
	EntryDate time.Time     `json:"date"`
	Source    string        `json:"source"`
	Ref       string        `json:"ref"`
	Notes     string        `json:"notes"`
	Lines     []JournalLine `json:"lines"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy"`
}

// JournalLine is one debit or credit posting against an account.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Totals returns the summed debit and credit sides of the entry.
func (e JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}
