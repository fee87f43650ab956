package services

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	// CreateExpense stores the expense and attempts to auto-post it. Failure
	// to resolve accounts leaves it unposted with a pending retry and is not
	// reported as an error.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)

	// PostExpense retries auto-posting on demand. Unresolved accounts are
	// reported as apperrors.ErrValidation; already posted as ErrConflict.
	PostExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error)
}

// ExpensePostingRetrier drains the posting outbox.
type ExpensePostingRetrier interface {
	// RetryPendingPostings processes up to batchSize due retries and returns
	// how many were posted.
	RetryPendingPostings(ctx context.Context, batchSize int) (int, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpensePostingRetrier
}
