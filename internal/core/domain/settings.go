package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the singleton settings row.
const SettingsID = 1

// DefaultAccounts maps business roles to ledger accounts. Every field is optional.
type DefaultAccounts struct {
	CashAccountID       *string `json:"cashAccountId,omitempty"`
	BankAccountID       *string `json:"bankAccountId,omitempty"`
	SalesAccountID      *string `json:"salesAccountId,omitempty"`
	COGSAccountID       *string `json:"cogsAccountId,omitempty"`
	InventoryAccountID  *string `json:"inventoryAccountId,omitempty"`
	ReceivableAccountID *string `json:"receivableAccountId,omitempty"`
	TaxPayableAccountID *string `json:"taxPayableAccountId,omitempty"`
}

// TaxRate is a named tax percentage.
type TaxRate struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// ExpenseRule routes an expense category to an account code when Keyword is
// a case-insensitive substring of the category.
type ExpenseRule struct {
	Keyword     string `json:"keyword"`
	AccountCode string `json:"accountCode"`
}

// Settings is the single configuration document read by every auto-posting path.
type Settings struct {
	DefaultAccounts            DefaultAccounts `json:"defaultAccounts"`
	TaxRates                   []TaxRate       `json:"taxRates"`
	ExpenseRules               []ExpenseRule   `json:"expenseRules"`
	FallbackExpenseAccountCode string          `json:"fallbackExpenseAccountCode"`
	UpdatedAt                  time.Time       `json:"updatedAt"`
	UpdatedBy                  string          `json:"updatedBy"`
}

// DefaultExpenseRules is the rule table used when settings carry none.
func DefaultExpenseRules() []ExpenseRule {
	return []ExpenseRule{
		{Keyword: "util", AccountCode: "5100"},
		{Keyword: "rent", AccountCode: "5200"},
	}
}

// DefaultFallbackExpenseAccountCode is the catch-all misc expense account.
const DefaultFallbackExpenseAccountCode = "5400"

// DefaultTaxRates is the tax table a freshly created settings document starts with.
func DefaultTaxRates() []TaxRate {
	return []TaxRate{{Name: "VAT", Rate: decimal.Zero}}
}

// WithSeededAccounts returns s with the default accounts and audit fields of
// seeded. Tax rates, expense rules and the fallback code are kept.
func (s Settings) WithSeededAccounts(seeded Settings) Settings {
	s.DefaultAccounts = seeded.DefaultAccounts
	s.UpdatedAt = seeded.UpdatedAt
	s.UpdatedBy = seeded.UpdatedBy
	return s
}
