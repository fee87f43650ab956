package repositories

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrNotFound when the id does not exist.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode returns apperrors.ErrNotFound when the code does not exist.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs returns the subset of accounts that exist, keyed by id.
	// Ids that are not valid UUIDs are silently treated as missing.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns every account ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CountAccounts returns the number of accounts in the chart.
	CountAccounts(ctx context.Context) (int, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name, parent and active flag. The type is never written.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SeedChartOfAccounts inserts accounts and settings in one transaction,
	// but only when the chart is empty. It reports whether anything was written.
	SeedChartOfAccounts(ctx context.Context, accounts []domain.Account, settings domain.Settings) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
