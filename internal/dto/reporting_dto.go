package dto

import (
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProfitAndLossParams defines query parameters for the P&L report.
type ProfitAndLossParams struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Method string `form:"method" binding:"omitempty,oneof=account_type keyword"`
}

// TrialBalanceParams defines query parameters for the trial balance.
type TrialBalanceParams struct {
	AsOf string `form:"asOf"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate    *time.Time             `json:"fromDate,omitempty"`
	ToDate      *time.Time             `json:"toDate,omitempty"`
	Method      domain.PAndLMethod     `json:"method"`
	Revenue     decimal.Decimal        `json:"revenue"`
	COGS        decimal.Decimal        `json:"cogs"`
	GrossProfit decimal.Decimal        `json:"grossProfit"`
	Expenses    decimal.Decimal        `json:"expenses"`
	NetProfit   decimal.Decimal        `json:"netProfit"`
	Lines       []domain.AccountAmount `json:"lines"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   time.Time                `json:"asOf"`
	Rows   []domain.TrialBalanceRow `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToProfitAndLossResponse converts a domain report.
func ToProfitAndLossResponse(r *domain.PAndLReport) ProfitAndLossResponse {
	lines := r.Lines
	if lines == nil {
		lines = []domain.AccountAmount{}
	}
	return ProfitAndLossResponse{
		FromDate:    r.From,
		ToDate:      r.To,
		Method:      r.Method,
		Revenue:     r.Revenue,
		COGS:        r.COGS,
		GrossProfit: r.GrossProfit,
		Expenses:    r.OperatingExpense,
		NetProfit:   r.NetProfit,
		Lines:       lines,
	}
}

// ToTrialBalanceResponse converts a domain report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{AsOf: r.AsOf, Rows: r.Rows}
	if resp.Rows == nil {
		resp.Rows = []domain.TrialBalanceRow{}
	}
	resp.Totals.Debit = r.TotalDebit
	resp.Totals.Credit = r.TotalCredit
	return resp
}
