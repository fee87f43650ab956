package services

import (
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/google/uuid"
)

// Codes of the standard chart that posting rules and settings refer to.
const (
	CodeCash               = "1000"
	CodeBank               = "1010"
	CodeAccountsReceivable = "1100"
	CodeInventory          = "1200"
	CodeAccountsPayable    = "2000"
	CodeTaxPayable         = "2100"
	CodeOwnersEquity       = "3000"
	CodeSales              = "4000"
	CodeCOGS               = "5000"
	CodeUtilities          = "5100"
	CodeRent               = "5200"
	CodeSalaries           = "5300"
	CodeMiscExpense        = "5400"
)

type chartAccount struct {
	code        string
	name        string
	accountType domain.AccountType
}

var standardChart = []chartAccount{
	{CodeCash, "Cash", domain.Asset},
	{CodeBank, "Bank", domain.Asset},
	{CodeAccountsReceivable, "Accounts Receivable", domain.Asset},
	{CodeInventory, "Inventory", domain.Asset},
	{CodeAccountsPayable, "Accounts Payable", domain.Liability},
	{CodeTaxPayable, "Tax Payable", domain.Liability},
	{CodeOwnersEquity, "Owner's Equity", domain.Equity},
	{CodeSales, "Sales", domain.Revenue},
	{CodeCOGS, "Cost of Goods Sold", domain.ExpenseType},
	{CodeUtilities, "Utilities", domain.ExpenseType},
	{CodeRent, "Rent", domain.ExpenseType},
	{CodeSalaries, "Salaries", domain.ExpenseType},
	{CodeMiscExpense, "Misc Expense", domain.ExpenseType},
}

// StandardChart builds fresh accounts for the standard chart, stamped with
// the given audit user and time.
func StandardChart(userID string, now time.Time) []domain.Account {
	accounts := make([]domain.Account, 0, len(standardChart))
	for _, c := range standardChart {
		accounts = append(accounts, domain.Account{
			AccountID:   uuid.NewString(),
			Code:        c.code,
			Name:        c.name,
			AccountType: c.accountType,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return accounts
}

// DefaultSettings is the document created on first read.
func DefaultSettings(userID string, now time.Time) domain.Settings {
	return domain.Settings{
		DefaultAccounts:            domain.DefaultAccounts{},
		TaxRates:                   domain.DefaultTaxRates(),
		ExpenseRules:               domain.DefaultExpenseRules(),
		FallbackExpenseAccountCode: domain.DefaultFallbackExpenseAccountCode,
		UpdatedAt:                  now,
		UpdatedBy:                  userID,
	}
}

// SeededSettings wires the default accounts to the freshly built chart.
func SeededSettings(accounts []domain.Account, userID string, now time.Time) domain.Settings {
	byCode := make(map[string]string, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a.AccountID
	}
	ref := func(code string) *string {
		if id, ok := byCode[code]; ok {
			return &id
		}
		return nil
	}

	s := DefaultSettings(userID, now)
	s.DefaultAccounts = domain.DefaultAccounts{
		CashAccountID:       ref(CodeCash),
		BankAccountID:       ref(CodeBank),
		SalesAccountID:      ref(CodeSales),
		COGSAccountID:       ref(CodeCOGS),
		InventoryAccountID:  ref(CodeInventory),
		ReceivableAccountID: ref(CodeAccountsReceivable),
		TaxPayableAccountID: ref(CodeTaxPayable),
	}
	return s
}
