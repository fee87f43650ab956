package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleReport(method domain.PAndLMethod) *domain.PAndLReport {
	return &domain.PAndLReport{
		Method:           method,
		Revenue:          decimal.NewFromInt(5000),
		COGS:             decimal.NewFromInt(1200),
		GrossProfit:      decimal.NewFromInt(3800),
		OperatingExpense: decimal.NewFromInt(300),
		NetProfit:        decimal.NewFromInt(3500),
	}
}

func (suite *HandlerTestSuite) TestProfitAndLoss_DateRangeInclusive() {
	suite.mockReporting.On("ProfitAndLoss", mock.Anything,
		mock.MatchedBy(func(from *time.Time) bool {
			return from != nil && from.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(to *time.Time) bool {
			return to != nil && to.Day() == 31 && to.Hour() == 23
		}),
		domain.PAndLMethod(""),
	).Return(sampleReport(domain.PAndLByAccountType), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-01-01&to=2024-01-31", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProfitAndLossResponse
	suite.decode(w, &resp)
	suite.True(resp.NetProfit.Equal(decimal.NewFromInt(3500)))
	suite.True(resp.Expenses.Equal(decimal.NewFromInt(300)))
	suite.NotNil(resp.Lines)
}

func (suite *HandlerTestSuite) TestProfitAndLoss_KeywordMethod() {
	suite.mockReporting.On("ProfitAndLoss", mock.Anything, (*time.Time)(nil), (*time.Time)(nil), domain.PAndLByKeyword).
		Return(sampleReport(domain.PAndLByKeyword), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?method=keyword", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestProfitAndLoss_BadInput() {
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?method=vibes", nil, true).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=01/02/2024", nil, true).Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestProfitAndLoss_InvertedRange() {
	suite.mockReporting.On("ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-02-01&to=2024-01-01", nil, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestProfitAndLoss_Export() {
	suite.mockReporting.On("ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(sampleReport(domain.PAndLByAccountType), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss/export", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	suite.NotZero(w.Body.Len())
}

func (suite *HandlerTestSuite) TestTrialBalance() {
	report := &domain.TrialBalanceReport{
		AsOf:        time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC),
		Rows:        []domain.TrialBalanceRow{{AccountID: "cash", Debit: decimal.NewFromInt(10), Credit: decimal.Zero}},
		TotalDebit:  decimal.NewFromInt(10),
		TotalCredit: decimal.NewFromInt(10),
	}
	suite.mockReporting.On("TrialBalance", mock.Anything, report.AsOf).Return(report, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2024-03-31", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.decode(w, &resp)
	suite.Len(resp.Rows, 1)
	suite.True(resp.Totals.Debit.Equal(decimal.NewFromInt(10)))
}

func (suite *HandlerTestSuite) TestSettings_GetAndSave() {
	settings := &domain.Settings{FallbackExpenseAccountCode: "5400"}
	suite.mockSettings.On("GetSettingsWithAccounts", mock.Anything).Return(settings, []domain.Account{{AccountID: "a", Code: "1000"}}, nil).Once()
	suite.mockSettings.On("SaveSettings", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: unknown default account", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/settings", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SettingsResponse
	suite.decode(w, &resp)
	suite.Equal("5400", resp.Settings.FallbackExpenseAccountCode)
	suite.Len(resp.Accounts, 1)

	w = suite.do(http.MethodPut, "/api/v1/settings", `{"defaultAccounts":{}}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPostExpense_AlreadyPosted() {
	suite.mockExpense.On("PostExpense", mock.Anything, "exp-1", suite.userID).
		Return(nil, fmt.Errorf("%w: expense already posted", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses/exp-1/post", nil, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateExpense_Unposted() {
	expense := &domain.Expense{ExpenseID: "exp-1", Category: "Utilities", Amount: decimal.NewFromInt(50), PaymentMethod: domain.PaymentCash}
	suite.mockExpense.On("CreateExpense", mock.Anything, mock.MatchedBy(func(r dto.CreateExpenseRequest) bool {
		return r.Category == "Utilities" && r.Amount.Equal(decimal.NewFromInt(50))
	}), suite.userID).Return(expense, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses", `{"category":"Utilities","amount":"50","paymentMethod":"CASH"}`, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.decode(w, &resp)
	suite.False(resp.Posted)
}
