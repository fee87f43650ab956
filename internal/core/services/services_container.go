package services

import (
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/platform/config"
	"github.com/bazaarhq/storefront_backoffice/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher ports.LedgerEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first: every auto-posting path resolves accounts through it.
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.AccountRepo)
	container.Account = NewAccountService(repos.AccountRepo)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Settings,
		WithJournalPublisher(publisher),
	)
	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.PostingRetryRepo,
		repos.AccountRepo,
		container.Settings,
		WithExpensePublisher(publisher),
		WithRetryPolicy(cfg.PostingRetryMaxAttempts, cfg.PostingRetryInterval),
	)

	container.Delivery = NewDeliveryService(
		repos.DeliveryRepo,
		WithMatchStrategy(domain.DeliveryMatchStrategy(cfg.DeliveryMatchStrategy)),
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.JournalRepo, container.Settings)

	container.Auth = NewAuthService(AuthConfig{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		Token: utils.AccessTokenOptions{
			Secret: cfg.JWTSecret,
			Issuer: cfg.JWTIssuer,
			TTL:    cfg.JWTExpiryDuration,
		},
	})

	return container
}
