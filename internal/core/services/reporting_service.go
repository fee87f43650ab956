package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalReader
	settings      settingsResolver
}

// NewReportingService creates a new reporting service
func NewReportingService(reportingRepo portsrepo.ReportingRepository, journalRepo portsrepo.JournalReader, settings portssvc.SettingsSvcFacade) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		journalRepo:   journalRepo,
		settings:      settings,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// ProfitAndLoss recomputes the report from journal lines on every call.
// Both bounds are inclusive calendar dates.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to *time.Time, method domain.PAndLMethod) (*domain.PAndLReport, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from date must not be after to date", apperrors.ErrValidation)
	}
	if method == "" {
		method = domain.PAndLByAccountType
	}

	var (
		report *domain.PAndLReport
		err    error
	)
	switch method {
	case domain.PAndLByAccountType:
		report, err = s.profitAndLossByAccountType(ctx, from, to)
	case domain.PAndLByKeyword:
		report, err = s.profitAndLossByKeyword(ctx, from, to)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", apperrors.ErrValidation, method)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to compute profit and loss", slog.String("method", string(method)))
		return nil, err
	}

	report.From = from
	report.To = to
	report.Method = method
	report.GrossProfit = report.Revenue.Sub(report.COGS)
	report.NetProfit = report.GrossProfit.Sub(report.OperatingExpense)
	return report, nil
}

func (s *reportingService) profitAndLossByAccountType(ctx context.Context, from, to *time.Time) (*domain.PAndLReport, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	var cogsAccountID string
	if settings.DefaultAccounts.COGSAccountID != nil {
		cogsAccountID = *settings.DefaultAccounts.COGSAccountID
	}

	totals, err := s.reportingRepo.GetAccountTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		Revenue:          decimal.Zero,
		COGS:             decimal.Zero,
		OperatingExpense: decimal.Zero,
		Lines:            []domain.AccountAmount{},
	}
	for _, row := range totals {
		if row.AccountType != domain.Revenue && row.AccountType != domain.ExpenseType {
			continue
		}
		net := accounting.NetForType(row.AccountType, row.Debit, row.Credit)
		switch {
		case row.AccountType == domain.Revenue:
			report.Revenue = report.Revenue.Add(net)
		case isCOGSAccount(row, cogsAccountID):
			report.COGS = report.COGS.Add(net)
		default:
			report.OperatingExpense = report.OperatingExpense.Add(net)
		}
		report.Lines = append(report.Lines, domain.AccountAmount{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.AccountName,
			AccountType: row.AccountType,
			NetAmount:   net,
		})
	}
	return report, nil
}

// isCOGSAccount uses the configured COGS account, or the standard chart code
// when none is configured.
func isCOGSAccount(row domain.TrialBalanceRow, cogsAccountID string) bool {
	if cogsAccountID != "" {
		return row.AccountID == cogsAccountID
	}
	return row.Code == CodeCOGS
}

func (s *reportingService) profitAndLossByKeyword(ctx context.Context, from, to *time.Time) (*domain.PAndLReport, error) {
	entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	totals := accounting.ComputeProfitAndLossByKeywords(entries)
	return &domain.PAndLReport{
		Revenue:          totals.Revenue,
		COGS:             totals.COGS,
		OperatingExpense: totals.OperatingExpense,
	}, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetAccountTotals(ctx, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance", slog.Time("as_of", asOf))
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	return report, nil
}
