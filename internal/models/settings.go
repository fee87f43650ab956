package models

import "time"

// Settings is the single row of the settings table. The nested documents are
// stored as jsonb and kept as raw bytes here.
type Settings struct {
	ID                         int       `db:"id"`
	DefaultAccounts            []byte    `db:"default_accounts"`
	TaxRates                   []byte    `db:"tax_rates"`
	ExpenseRules               []byte    `db:"expense_rules"`
	FallbackExpenseAccountCode string    `db:"fallback_expense_account_code"`
	UpdatedAt                  time.Time `db:"updated_at"`
	UpdatedBy                  string    `db:"updated_by"`
}
