package repositories

import (
	"context"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetAccountTotals sums debits and credits per account for entries dated
	// within the optional range. Accounts without activity are omitted.
	GetAccountTotals(ctx context.Context, from, to *time.Time) ([]domain.TrialBalanceRow, error)
}
