package accounting

import (
	"errors"
	"testing"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRoundAmount(t *testing.T) {
	assert.True(t, RoundAmount(d("10.005")).Equal(d("10.01")))
	assert.True(t, RoundAmount(d("10.004")).Equal(d("10")))
	assert.True(t, RoundAmount(d("-2.345")).Equal(d("-2.35")))
	assert.True(t, RoundAmount(d("7")).Equal(d("7")))
}

func TestCheckBalanced(t *testing.T) {
	tests := []struct {
		name    string
		debit   decimal.Decimal
		credit  decimal.Decimal
		wantErr bool
	}{
		{"equal", d("500"), d("500"), false},
		{"within tolerance", d("100.0005"), d("100"), false},
		{"exactly tolerance", d("100.001"), d("100"), false},
		{"beyond tolerance", d("100.0011"), d("100"), true},
		{"credit heavy", d("100"), d("150"), true},
		{"both zero", decimal.Zero, decimal.Zero, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBalanced(tt.debit, tt.credit)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, apperrors.ErrUnbalancedEntry))
			var ue *apperrors.UnbalancedEntryError
			assert.True(t, errors.As(err, &ue))
			assert.True(t, ue.SumDebit.Equal(tt.debit))
			assert.True(t, ue.SumCredit.Equal(tt.credit))
		})
	}
}

func TestSumLines(t *testing.T) {
	debit, credit := SumLines([]domain.JournalLine{
		{Debit: d("10.25")},
		{Credit: d("4.25")},
		{Credit: d("6")},
	})
	assert.True(t, debit.Equal(d("10.25")))
	assert.True(t, credit.Equal(d("10.25")))
}

func TestNetForType(t *testing.T) {
	assert.True(t, NetForType(domain.Asset, d("100"), d("30")).Equal(d("70")))
	assert.True(t, NetForType(domain.ExpenseType, d("100"), d("0")).Equal(d("100")))
	assert.True(t, NetForType(domain.Revenue, d("20"), d("120")).Equal(d("100")))
	assert.True(t, NetForType(domain.Liability, d("0"), d("40")).Equal(d("40")))
	assert.True(t, NetForType(domain.Equity, d("50"), d("0")).Equal(d("-50")))
}

func TestResolveExpenseAccountCode(t *testing.T) {
	rules := domain.DefaultExpenseRules()
	tests := []struct {
		category string
		want     string
	}{
		{"Electricity Utility Bill", "5100"},
		{"UTILITIES", "5100"},
		{"Shop Rent March", "5200"},
		{"Parental leave cover", "5200"}, // "rent" substring
		{"Office snacks", "5400"},
		{"", "5400"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveExpenseAccountCode(tt.category, rules, "5400"), tt.category)
	}
}

func TestResolveExpenseAccountCodeOrderAndBlankKeywords(t *testing.T) {
	rules := []domain.ExpenseRule{
		{Keyword: "  ", AccountCode: "9999"},
		{Keyword: "rent", AccountCode: "5200"},
		{Keyword: "rental utility", AccountCode: "5100"},
	}
	assert.Equal(t, "5200", ResolveExpenseAccountCode("rental utility", rules, "5400"))
	assert.Equal(t, "5400", ResolveExpenseAccountCode("fuel", rules, "5400"))
	assert.Equal(t, "", ResolveExpenseAccountCode("fuel", nil, ""))
}
