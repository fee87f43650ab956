package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID      string          `db:"expense_id"`
	ExpenseDate    time.Time       `db:"expense_date"`
	Category       string          `db:"category"`
	Amount         decimal.Decimal `db:"amount"`
	PaymentMethod  string          `db:"payment_method"`
	Description    sql.NullString  `db:"description"`
	AttachmentURL  sql.NullString  `db:"attachment_url"`
	Posted         bool            `db:"posted"`
	JournalEntryID sql.NullString  `db:"journal_entry_id"`
	AuditFields
}

// ExpensePostingRetry is a row of the expense_posting_retries outbox table.
type ExpensePostingRetry struct {
	RetryID       string         `db:"retry_id"`
	ExpenseID     string         `db:"expense_id"`
	Status        string         `db:"status"`
	Attempts      int            `db:"attempts"`
	LastError     sql.NullString `db:"last_error"`
	NextAttemptAt time.Time      `db:"next_attempt_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
