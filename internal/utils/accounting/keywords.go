package accounting

import (
	"strings"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineClass is the P&L bucket a line falls into.
type LineClass int

const (
	Unclassified LineClass = iota
	RevenueLine
	COGSLine
	OperatingExpenseLine
)

var expenseKeywords = []string{"expense", "util", "rent", "salary"}

// ClassifyByKeywords buckets a line by substrings of its description. It is
// an approximation kept for lines whose account cannot be resolved.
func ClassifyByKeywords(description string) LineClass {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "sale"):
		return RevenueLine
	case strings.Contains(d, "cogs"):
		return COGSLine
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(d, kw) {
			return OperatingExpenseLine
		}
	}
	return Unclassified
}

// PAndLTotals are the aggregate figures of a profit and loss computation.
type PAndLTotals struct {
	Revenue          decimal.Decimal
	COGS             decimal.Decimal
	OperatingExpense decimal.Decimal
}

// GrossProfit is revenue less cost of goods sold.
func (t PAndLTotals) GrossProfit() decimal.Decimal {
	return t.Revenue.Sub(t.COGS)
}

// NetProfit is gross profit less operating expenses.
func (t PAndLTotals) NetProfit() decimal.Decimal {
	return t.GrossProfit().Sub(t.OperatingExpense)
}

// AddKeywordLine folds a single line into the totals using the keyword rules:
// revenue takes the credit side, COGS and expenses the debit side.
func (t *PAndLTotals) AddKeywordLine(l domain.JournalLine) {
	switch ClassifyByKeywords(l.Description) {
	case RevenueLine:
		t.Revenue = t.Revenue.Add(l.Credit)
	case COGSLine:
		t.COGS = t.COGS.Add(l.Debit)
	case OperatingExpenseLine:
		t.OperatingExpense = t.OperatingExpense.Add(l.Debit)
	}
}

// ComputeProfitAndLossByKeywords aggregates every line of every entry using
// description keywords only.
func ComputeProfitAndLossByKeywords(entries []domain.JournalEntry) PAndLTotals {
	totals := PAndLTotals{Revenue: decimal.Zero, COGS: decimal.Zero, OperatingExpense: decimal.Zero}
	for _, e := range entries {
		for _, l := range e.Lines {
			totals.AddKeywordLine(l)
		}
	}
	return totals
}
