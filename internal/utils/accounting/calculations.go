package accounting

import (
	"strings"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the precision every ledger amount is stored with.
const AmountPlaces = 2

// RoundAmount rounds d to AmountPlaces, half away from zero.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// BalanceTolerance is the largest debit/credit difference accepted for an entry.
var BalanceTolerance = decimal.RequireFromString("0.001")

// SumLines totals the debit and credit sides of a set of lines.
func SumLines(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	return domain.JournalEntry{Lines: lines}.Totals()
}

// CheckBalanced returns an *apperrors.UnbalancedEntryError when the two sides
// differ by more than BalanceTolerance.
func CheckBalanced(sumDebit, sumCredit decimal.Decimal) error {
	if sumDebit.Sub(sumCredit).Abs().GreaterThan(BalanceTolerance) {
		return apperrors.NewUnbalancedEntryError(sumDebit, sumCredit)
	}
	return nil
}

// NetForType returns the movement of an account in the direction of its normal
// balance: debit-normal for assets and expenses, credit-normal otherwise.
func NetForType(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.ExpenseType:
		return debit.Sub(credit)
	default:
		return credit.Sub(debit)
	}
}

// ResolveExpenseAccountCode walks rules in order and returns the account code
// of the first rule whose keyword is contained in category, ignoring case.
// fallback is returned when nothing matches.
func ResolveExpenseAccountCode(category string, rules []domain.ExpenseRule, fallback string) string {
	c := strings.ToLower(category)
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" {
			continue
		}
		if strings.Contains(c, kw) {
			return r.AccountCode
		}
	}
	return fallback
}
