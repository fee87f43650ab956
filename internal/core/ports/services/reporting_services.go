package services

import (
	"context"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ProfitAndLoss recomputes the P&L from every entry in the range.
	ProfitAndLoss(ctx context.Context, from, to *time.Time, method domain.PAndLMethod) (*domain.PAndLReport, error)

	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)
}
