package pgsql

import (
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		PostingRetryRepo: newPgxPostingRetryRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
		DeliveryRepo:     newPgxDeliveryAreaRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
