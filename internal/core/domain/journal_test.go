package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalEntryTotals(t *testing.T) {
	entry := JournalEntry{
		Lines: []JournalLine{
			{AccountID: "a", Debit: decimal.RequireFromString("300.50")},
			{AccountID: "b", Debit: decimal.RequireFromString("199.50")},
			{AccountID: "c", Credit: decimal.NewFromInt(500)},
		},
	}

	debit, credit := entry.Totals()
	assert.True(t, debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, credit.Equal(decimal.NewFromInt(500)))

	debit, credit = JournalEntry{}.Totals()
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestAccountTypeIsValid(t *testing.T) {
	tests := []struct {
		in   AccountType
		want bool
	}{
		{Asset, true},
		{Liability, true},
		{Equity, true},
		{Revenue, true},
		{ExpenseType, true},
		{"INCOME", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.IsValid(), string(tt.in))
	}
}
