package services

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
}

// ChartSeederSvc bootstraps the standard chart of accounts.
type ChartSeederSvc interface {
	// SeedChartOfAccounts inserts the standard chart and wires the settings
	// document to it, but only when no account exists yet. The returned flag
	// tells whether anything was written.
	SeedChartOfAccounts(ctx context.Context, userID string) (bool, []domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	ChartSeederSvc
}
