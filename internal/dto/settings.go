package dto

import (
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// TaxRateRequest is a named tax percentage.
type TaxRateRequest struct {
	Name string `json:"name" validate:"required,max=40"`
	Rate Amount `json:"rate"`
}

// ExpenseRuleRequest routes expense categories containing Keyword to AccountCode.
type ExpenseRuleRequest struct {
	Keyword     string `json:"keyword" validate:"required,max=60"`
	AccountCode string `json:"accountCode" validate:"required,max=20"`
}

// DefaultAccountsRequest maps business roles to account ids.
type DefaultAccountsRequest struct {
	CashAccountID       *string `json:"cashAccountId" validate:"omitempty,uuid"`
	BankAccountID       *string `json:"bankAccountId" validate:"omitempty,uuid"`
	SalesAccountID      *string `json:"salesAccountId" validate:"omitempty,uuid"`
	COGSAccountID       *string `json:"cogsAccountId" validate:"omitempty,uuid"`
	InventoryAccountID  *string `json:"inventoryAccountId" validate:"omitempty,uuid"`
	ReceivableAccountID *string `json:"receivableAccountId" validate:"omitempty,uuid"`
	TaxPayableAccountID *string `json:"taxPayableAccountId" validate:"omitempty,uuid"`
}

// SaveSettingsRequest replaces the whole settings document. Omitted fields
// are cleared.
type SaveSettingsRequest struct {
	DefaultAccounts            DefaultAccountsRequest `json:"defaultAccounts"`
	TaxRates                   []TaxRateRequest       `json:"taxRates" validate:"dive"`
	ExpenseRules               []ExpenseRuleRequest   `json:"expenseRules" validate:"dive"`
	FallbackExpenseAccountCode string                 `json:"fallbackExpenseAccountCode" validate:"max=20"`
}

// SettingsResponse is the body of GET /settings.
type SettingsResponse struct {
	Settings domain.Settings   `json:"settings"`
	Accounts []AccountResponse `json:"accounts"`
}

// ToDomainSettings converts the request into the stored document shape.
func (r SaveSettingsRequest) ToDomainSettings() domain.Settings {
	s := domain.Settings{
		DefaultAccounts: domain.DefaultAccounts{
			CashAccountID:       blankToNil(r.DefaultAccounts.CashAccountID),
			BankAccountID:       blankToNil(r.DefaultAccounts.BankAccountID),
			SalesAccountID:      blankToNil(r.DefaultAccounts.SalesAccountID),
			COGSAccountID:       blankToNil(r.DefaultAccounts.COGSAccountID),
			InventoryAccountID:  blankToNil(r.DefaultAccounts.InventoryAccountID),
			ReceivableAccountID: blankToNil(r.DefaultAccounts.ReceivableAccountID),
			TaxPayableAccountID: blankToNil(r.DefaultAccounts.TaxPayableAccountID),
		},
		TaxRates:                   make([]domain.TaxRate, 0, len(r.TaxRates)),
		ExpenseRules:               make([]domain.ExpenseRule, 0, len(r.ExpenseRules)),
		FallbackExpenseAccountCode: r.FallbackExpenseAccountCode,
	}
	for _, t := range r.TaxRates {
		s.TaxRates = append(s.TaxRates, domain.TaxRate{Name: t.Name, Rate: t.Rate.Decimal})
	}
	for _, er := range r.ExpenseRules {
		s.ExpenseRules = append(s.ExpenseRules, domain.ExpenseRule{Keyword: er.Keyword, AccountCode: er.AccountCode})
	}
	return s
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
