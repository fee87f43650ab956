package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies which cash-side account settles an expense or sale.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentBank   PaymentMethod = "BANK"
	PaymentCredit PaymentMethod = "CREDIT" // sales only, settles against receivables
)

// Expense is a business expense that is auto-posted to the ledger when the
// target accounts resolve.
type Expense struct {
	ExpenseID      string          `json:"expenseID"`
	ExpenseDate    time.Time       `json:"date"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	Description    string          `json:"description"`
	AttachmentURL  *string         `json:"attachmentUrl,omitempty"`
	Posted         bool            `json:"posted"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}
