package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PAndLMethod selects how journal lines are classified for the P&L.
type PAndLMethod string

const (
	// PAndLByAccountType classifies by the joined account type.
	PAndLByAccountType PAndLMethod = "account_type"
	// PAndLByKeyword classifies by substrings of the line description.
	PAndLByKeyword PAndLMethod = "keyword"
)

// PAndLReport is a profit and loss summary over a date range.
type PAndLReport struct {
	From             *time.Time      `json:"from,omitempty"`
	To               *time.Time      `json:"to,omitempty"`
	Method           PAndLMethod     `json:"method"`
	Revenue          decimal.Decimal `json:"revenue"`
	COGS             decimal.Decimal `json:"cogs"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	OperatingExpense decimal.Decimal `json:"expenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	Lines            []AccountAmount `json:"lines,omitempty"`
}

// AccountAmount is an account with its net contribution to a report.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// TrialBalanceRow is a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists per-account totals as of a date.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}
