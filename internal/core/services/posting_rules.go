package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// settingsResolver is the slice of the settings service the posting rules need.
type settingsResolver interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

// postingRules turns business events into balanced journal entries using the
// configured default accounts. Resolution problems are reported as
// apperrors.ErrValidation so callers can tell them apart from storage failures.
type postingRules struct {
	accountRepo portsrepo.AccountReader
	settings    settingsResolver
}

func newPostingRules(accountRepo portsrepo.AccountReader, settings settingsResolver) *postingRules {
	return &postingRules{accountRepo: accountRepo, settings: settings}
}

// newJournalEntry assigns ids and line numbers.
func newJournalEntry(date time.Time, source, ref, notes, userID string, lines []domain.JournalLine) domain.JournalEntry {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	entry := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		EntryDate: date,
		Source:    source,
		Ref:       ref,
		Notes:     notes,
		Lines:     make([]domain.JournalLine, len(lines)),
		CreatedAt: now,
		CreatedBy: userID,
	}
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.EntryID = entry.EntryID
		l.LineNo = i + 1
		entry.Lines[i] = l
	}
	return entry
}

// requireAccount checks that a configured default account is set and exists.
func (p *postingRules) requireAccount(ctx context.Context, id *string, role string) (*domain.Account, error) {
	if id == nil || *id == "" {
		return nil, fmt.Errorf("%w: no default %s account configured", apperrors.ErrValidation, role)
	}
	acc, err := p.accountRepo.FindAccountByID(ctx, *id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: default %s account %s does not exist", apperrors.ErrValidation, role, *id)
		}
		return nil, err
	}
	return acc, nil
}

// ExpenseEntry builds the entry for an expense: debit the expense account
// chosen by the category rules, credit cash or bank.
func (p *postingRules) ExpenseEntry(ctx context.Context, expense domain.Expense, userID string) (*domain.JournalEntry, error) {
	settings, err := p.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	cashID, role := settings.DefaultAccounts.CashAccountID, "cash"
	if expense.PaymentMethod == domain.PaymentBank {
		cashID, role = settings.DefaultAccounts.BankAccountID, "bank"
	}
	cashAccount, err := p.requireAccount(ctx, cashID, role)
	if err != nil {
		return nil, err
	}

	rules := settings.ExpenseRules
	if len(rules) == 0 {
		rules = domain.DefaultExpenseRules()
	}
	fallback := settings.FallbackExpenseAccountCode
	if fallback == "" {
		fallback = domain.DefaultFallbackExpenseAccountCode
	}
	code := accounting.ResolveExpenseAccountCode(expense.Category, rules, fallback)
	expenseAccount, err := p.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: expense account with code %s does not exist", apperrors.ErrValidation, code)
		}
		return nil, err
	}

	amount := accounting.RoundAmount(expense.Amount)
	description := expense.Category
	if expense.Description != "" {
		description = expense.Category + ": " + expense.Description
	}
	entry := newJournalEntry(expense.ExpenseDate, domain.SourceExpense, expense.ExpenseID, description, userID, []domain.JournalLine{
		{AccountID: expenseAccount.AccountID, Description: "Expense " + description, Debit: amount, Credit: decimal.Zero},
		{AccountID: cashAccount.AccountID, Description: "Paid " + description, Debit: decimal.Zero, Credit: amount},
	})
	return &entry, nil
}

// SaleEntry builds the entry for a POS sale or online order:
// Dr cash/bank/receivable (net+tax), Cr sales (net), Cr tax payable (tax),
// and when a cost is given Dr COGS, Cr inventory.
func (p *postingRules) SaleEntry(ctx context.Context, sale domain.Sale, userID string) (*domain.JournalEntry, error) {
	sale.NetAmount = accounting.RoundAmount(sale.NetAmount)
	sale.TaxAmount = accounting.RoundAmount(sale.TaxAmount)
	sale.CostAmount = accounting.RoundAmount(sale.CostAmount)
	if !sale.NetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: netAmount must be greater than zero", apperrors.ErrValidation)
	}
	if sale.TaxAmount.IsNegative() || sale.CostAmount.IsNegative() {
		return nil, fmt.Errorf("%w: taxAmount and costAmount cannot be negative", apperrors.ErrValidation)
	}

	settings, err := p.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	defaults := settings.DefaultAccounts

	var receiptID *string
	var receiptRole string
	switch sale.PaymentMethod {
	case domain.PaymentBank:
		receiptID, receiptRole = defaults.BankAccountID, "bank"
	case domain.PaymentCredit:
		receiptID, receiptRole = defaults.ReceivableAccountID, "receivable"
	default:
		receiptID, receiptRole = defaults.CashAccountID, "cash"
	}
	receipt, err := p.requireAccount(ctx, receiptID, receiptRole)
	if err != nil {
		return nil, err
	}
	sales, err := p.requireAccount(ctx, defaults.SalesAccountID, "sales")
	if err != nil {
		return nil, err
	}

	label := sale.Source + " " + sale.Ref
	lines := []domain.JournalLine{
		{AccountID: receipt.AccountID, Description: "Receipt for " + label, Debit: sale.NetAmount.Add(sale.TaxAmount), Credit: decimal.Zero},
		{AccountID: sales.AccountID, Description: "Sale " + label, Debit: decimal.Zero, Credit: sale.NetAmount},
	}

	if sale.TaxAmount.IsPositive() {
		taxPayable, err := p.requireAccount(ctx, defaults.TaxPayableAccountID, "tax payable")
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.JournalLine{AccountID: taxPayable.AccountID, Description: "Tax collected for " + label, Debit: decimal.Zero, Credit: sale.TaxAmount})
	}

	if sale.CostAmount.IsPositive() {
		cogs, err := p.requireAccount(ctx, defaults.COGSAccountID, "COGS")
		if err != nil {
			return nil, err
		}
		inventory, err := p.requireAccount(ctx, defaults.InventoryAccountID, "inventory")
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			domain.JournalLine{AccountID: cogs.AccountID, Description: "COGS for " + label, Debit: sale.CostAmount, Credit: decimal.Zero},
			domain.JournalLine{AccountID: inventory.AccountID, Description: "Inventory out for " + label, Debit: decimal.Zero, Credit: sale.CostAmount},
		)
	}

	entry := newJournalEntry(sale.SaleDate, sale.Source, sale.Ref, sale.Notes, userID, lines)
	return &entry, nil
}
