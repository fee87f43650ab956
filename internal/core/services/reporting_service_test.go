package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockJournalRepo   *MockJournalRepository
	mockSettings      *MockSettingsService
	service           portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockSettings = new(MockSettingsService)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockJournalRepo, suite.mockSettings)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ByAccountType() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	cogsID := "cogs-id"
	suite.mockSettings.On("GetSettings", ctx).Return(&domain.Settings{
		DefaultAccounts: domain.DefaultAccounts{COGSAccountID: &cogsID},
	}, nil).Once()
	suite.mockReportingRepo.On("GetAccountTotals", ctx, &from, &to).Return([]domain.TrialBalanceRow{
		{AccountID: "cash", Code: "1000", AccountType: domain.Asset, Debit: dec("5000"), Credit: dec("300")},
		{AccountID: "sales", Code: "4000", AccountType: domain.Revenue, Debit: dec("0"), Credit: dec("5000")},
		{AccountID: cogsID, Code: "5000", AccountType: domain.ExpenseType, Debit: dec("1200"), Credit: dec("0")},
		{AccountID: "util", Code: "5100", AccountType: domain.ExpenseType, Debit: dec("300"), Credit: dec("0")},
	}, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, &from, &to, domain.PAndLByAccountType)

	suite.Require().NoError(err)
	suite.Equal(domain.PAndLByAccountType, report.Method)
	suite.True(report.Revenue.Equal(dec("5000")))
	suite.True(report.COGS.Equal(dec("1200")))
	suite.True(report.GrossProfit.Equal(dec("3800")))
	suite.True(report.OperatingExpense.Equal(dec("300")))
	suite.True(report.NetProfit.Equal(dec("3500")))
	suite.Len(report.Lines, 3)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_COGSByCodeWhenUnconfigured() {
	ctx := context.Background()
	suite.mockSettings.On("GetSettings", ctx).Return(&domain.Settings{}, nil).Once()
	suite.mockReportingRepo.On("GetAccountTotals", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return([]domain.TrialBalanceRow{
		{AccountID: "a", Code: services.CodeCOGS, AccountType: domain.ExpenseType, Debit: dec("70"), Credit: dec("10")},
		{AccountID: "b", Code: services.CodeRent, AccountType: domain.ExpenseType, Debit: dec("40"), Credit: dec("0")},
	}, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, nil, nil, "")

	suite.Require().NoError(err)
	suite.Equal(domain.PAndLByAccountType, report.Method)
	suite.True(report.COGS.Equal(dec("60")))
	suite.True(report.OperatingExpense.Equal(dec("40")))
	suite.True(report.NetProfit.Equal(dec("-100")))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ByKeyword() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{EntryID: "e1", Lines: []domain.JournalLine{
			{Description: "Cash Sale Jan", Debit: dec("5000"), Credit: dec("0")},
			{Description: "Cash Sale Jan", Debit: dec("0"), Credit: dec("5000")},
		}},
		{EntryID: "e2", Lines: []domain.JournalLine{
			{Description: "COGS for POS R1", Debit: dec("800"), Credit: dec("0")},
			{Description: "Expense Utilities", Debit: dec("100"), Credit: dec("0")},
		}},
	}
	suite.mockJournalRepo.On("ListJournalEntries", ctx, portsrepo.JournalFilter{}).Return(entries, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, nil, nil, domain.PAndLByKeyword)

	suite.Require().NoError(err)
	suite.True(report.Revenue.Equal(dec("5000")))
	suite.True(report.COGS.Equal(dec("800")))
	suite.True(report.OperatingExpense.Equal(dec("100")))
	suite.True(report.NetProfit.Equal(dec("4100")))
	suite.mockSettings.AssertNotCalled(suite.T(), "GetSettings", mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvalidRange() {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ProfitAndLoss(context.Background(), &from, &to, domain.PAndLByAccountType)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_UnknownMethod() {
	_, err := suite.service.ProfitAndLoss(context.Background(), nil, nil, "vibes")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("GetAccountTotals", ctx, (*time.Time)(nil), &asOf).Return([]domain.TrialBalanceRow{
		{AccountID: "cash", Debit: dec("150"), Credit: dec("20")},
		{AccountID: "sales", Debit: dec("0"), Credit: dec("130")},
	}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalDebit.Equal(dec("150")))
	suite.True(report.TotalCredit.Equal(dec("150")))
	suite.Len(report.Rows, 2)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
