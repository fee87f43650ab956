package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
)

// ToModelSettings encodes the nested documents for the jsonb columns.
func ToModelSettings(d domain.Settings) (models.Settings, error) {
	accounts, err := json.Marshal(d.DefaultAccounts)
	if err != nil {
		return models.Settings{}, fmt.Errorf("encode default accounts: %w", err)
	}
	taxRates := d.TaxRates
	if taxRates == nil {
		taxRates = []domain.TaxRate{}
	}
	rates, err := json.Marshal(taxRates)
	if err != nil {
		return models.Settings{}, fmt.Errorf("encode tax rates: %w", err)
	}
	expenseRules := d.ExpenseRules
	if expenseRules == nil {
		expenseRules = []domain.ExpenseRule{}
	}
	rules, err := json.Marshal(expenseRules)
	if err != nil {
		return models.Settings{}, fmt.Errorf("encode expense rules: %w", err)
	}
	return models.Settings{
		ID:                         domain.SettingsID,
		DefaultAccounts:            accounts,
		TaxRates:                   rates,
		ExpenseRules:               rules,
		FallbackExpenseAccountCode: d.FallbackExpenseAccountCode,
		UpdatedAt:                  d.UpdatedAt,
		UpdatedBy:                  d.UpdatedBy,
	}, nil
}

// ToDomainSettings decodes the jsonb columns. Empty columns yield empty values.
func ToDomainSettings(m models.Settings) (domain.Settings, error) {
	d := domain.Settings{
		TaxRates:                   []domain.TaxRate{},
		ExpenseRules:               []domain.ExpenseRule{},
		FallbackExpenseAccountCode: m.FallbackExpenseAccountCode,
		UpdatedAt:                  m.UpdatedAt,
		UpdatedBy:                  m.UpdatedBy,
	}
	if len(m.DefaultAccounts) > 0 {
		if err := json.Unmarshal(m.DefaultAccounts, &d.DefaultAccounts); err != nil {
			return domain.Settings{}, fmt.Errorf("decode default accounts: %w", err)
		}
	}
	if len(m.TaxRates) > 0 {
		if err := json.Unmarshal(m.TaxRates, &d.TaxRates); err != nil {
			return domain.Settings{}, fmt.Errorf("decode tax rates: %w", err)
		}
	}
	if len(m.ExpenseRules) > 0 {
		if err := json.Unmarshal(m.ExpenseRules, &d.ExpenseRules); err != nil {
			return domain.Settings{}, fmt.Errorf("decode expense rules: %w", err)
		}
	}
	return d, nil
}
