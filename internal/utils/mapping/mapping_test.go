package mapping

import (
	"testing"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountMapping_ParentNullability(t *testing.T) {
	m := ToModelAccount(domain.Account{AccountID: "a", Code: "1000", AccountType: domain.Asset})
	assert.False(t, m.ParentAccountID.Valid)
	assert.Nil(t, ToDomainAccount(m).ParentAccountID)

	parent := "p"
	m = ToModelAccount(domain.Account{AccountID: "b", ParentAccountID: &parent})
	require.True(t, m.ParentAccountID.Valid)
	assert.Equal(t, "p", *ToDomainAccount(m).ParentAccountID)
}

func TestSettingsMapping_NilSlicesStoredAsEmptyArrays(t *testing.T) {
	m, err := ToModelSettings(domain.Settings{FallbackExpenseAccountCode: "5400"})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(m.TaxRates))
	assert.JSONEq(t, `[]`, string(m.ExpenseRules))
	assert.JSONEq(t, `{}`, string(m.DefaultAccounts))
}

func TestSettingsMapping_DecodesDocuments(t *testing.T) {
	cash := "cash-id"
	src := domain.Settings{
		DefaultAccounts:            domain.DefaultAccounts{CashAccountID: &cash},
		TaxRates:                   []domain.TaxRate{{Name: "VAT", Rate: decimal.RequireFromString("7.5")}},
		ExpenseRules:               domain.DefaultExpenseRules(),
		FallbackExpenseAccountCode: "5400",
	}
	m, err := ToModelSettings(src)
	require.NoError(t, err)

	got, err := ToDomainSettings(m)
	require.NoError(t, err)
	require.NotNil(t, got.DefaultAccounts.CashAccountID)
	assert.Equal(t, cash, *got.DefaultAccounts.CashAccountID)
	assert.Nil(t, got.DefaultAccounts.BankAccountID)
	assert.True(t, got.TaxRates[0].Rate.Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, src.ExpenseRules, got.ExpenseRules)
}

func TestSettingsMapping_BadJSON(t *testing.T) {
	m, err := ToModelSettings(domain.Settings{})
	require.NoError(t, err)
	m.ExpenseRules = []byte(`{not json`)
	_, err = ToDomainSettings(m)
	assert.Error(t, err)
}

func TestDeliveryMapping_ShopCoordinates(t *testing.T) {
	lat, lng := 6.52, 3.37
	m, err := ToModelDeliveryArea(domain.DeliveryArea{AreaID: "x", City: "Lagos", ShopLat: &lat, ShopLng: &lng})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(m.SubAreas))

	d, err := ToDomainDeliveryArea(m)
	require.NoError(t, err)
	require.NotNil(t, d.ShopLat)
	assert.Equal(t, lat, *d.ShopLat)
	assert.Empty(t, d.SubAreas)

	m.ShopLat.Valid = false
	d, err = ToDomainDeliveryArea(m)
	require.NoError(t, err)
	assert.Nil(t, d.ShopLat)
}
