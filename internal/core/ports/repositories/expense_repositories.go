package repositories

import (
	"context"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses returns expenses in the optional date range, most recent first.
	ListExpenses(ctx context.Context, from, to *time.Time) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses
type ExpenseWriter interface {
	// SaveExpense writes the expense in a single transaction together with
	// either its journal entry (auto-posted) or a pending retry record.
	SaveExpense(ctx context.Context, expense domain.Expense, entry *domain.JournalEntry, retry *domain.ExpensePostingRetry) error

	// MarkExpensePosted writes entry, links it to the unposted expense and
	// closes any pending retry, atomically. It returns apperrors.ErrConflict
	// when the expense is already posted.
	MarkExpensePosted(ctx context.Context, expenseID string, entry domain.JournalEntry) error
}

// PostingRetryRepository manages the expense posting outbox.
type PostingRetryRepository interface {
	// ClaimDueRetries locks up to limit pending rows due at now, pushes their
	// next attempt out by lease so concurrent workers skip them, and returns them.
	ClaimDueRetries(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.ExpensePostingRetry, error)

	// UpdateRetry stores the outcome of an attempt (status, attempts, error, next attempt).
	UpdateRetry(ctx context.Context, retry domain.ExpensePostingRetry) error

	// FindRetryByExpenseID returns apperrors.ErrNotFound when the expense has no retry row.
	FindRetryByExpenseID(ctx context.Context, expenseID string) (*domain.ExpensePostingRetry, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
