package handlers_test

import (
	"errors"
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

func (suite *HandlerTestSuite) TestPostJournalEntry_Success() {
	entry := &domain.JournalEntry{
		EntryID:   "entry-1",
		EntryDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Lines: []domain.JournalLine{
			{LineNo: 1, AccountID: "cash", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			{LineNo: 2, AccountID: "sales", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		},
	}
	suite.mockJournal.On("PostJournalEntry", mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return len(r.Lines) == 2 && r.Lines[0].Debit.Equal(decimal.NewFromInt(100)) && r.Lines[1].Debit.IsZero()
	}), suite.userID).Return(entry, nil).Once()

	body := `{"date":"2024-01-15","lines":[{"accountId":"cash","debit":"100"},{"accountId":"sales","credit":100}]}`
	w := suite.do(http.MethodPost, "/api/v1/journals", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("entry-1", resp.EntryID)
	suite.Len(resp.Lines, 2)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPostJournalEntry_Unbalanced() {
	unbalanced := apperrors.NewUnbalancedEntryError(decimal.NewFromInt(100), decimal.NewFromInt(90))
	suite.mockJournal.On("PostJournalEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("post: %w", unbalanced)).Once()

	body := `{"lines":[{"accountId":"cash","debit":100},{"accountId":"sales","credit":90}]}`
	w := suite.do(http.MethodPost, "/api/v1/journals", body, true)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.UnbalancedEntryResponse
	suite.decode(w, &resp)
	suite.True(resp.SumDebit.Equal(decimal.NewFromInt(100)))
	suite.True(resp.SumCredit.Equal(decimal.NewFromInt(90)))
}

func (suite *HandlerTestSuite) TestPostJournalEntry_InvalidAccountReference() {
	suite.mockJournal.On("PostJournalEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: ghost", apperrors.ErrInvalidAccountReference)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", `{"lines":[{"accountId":"ghost","debit":1},{"accountId":"ghost","credit":1}]}`, true)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestPostJournalEntry_NoLines() {
	w := suite.do(http.MethodPost, "/api/v1/journals", `{"lines":[]}`, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "PostJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostJournalEntry_UnexpectedErrorIsGeneric() {
	suite.mockJournal.On("PostJournalEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", `{"lines":[{"accountId":"a","debit":1},{"accountId":"b","credit":1}]}`, true)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestPostSale_SettingsMissing() {
	suite.mockJournal.On("PostSale", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: sales account not configured", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/sales", `{"source":"POS","ref":"R1","paymentMethod":"CASH","netAmount":100}`, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListJournalEntries_PassesQuery() {
	next := "tok"
	suite.mockJournal.On("ListJournalEntries", mock.Anything, dto.ListJournalEntriesParams{From: "2024-01-01", Limit: 10}).
		Return(&dto.ListJournalEntriesResponse{Entries: []dto.JournalEntryResponse{}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals?from=2024-01-01&limit=10", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListJournalEntries_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/journals?limit=1000", nil, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetJournalEntry_ExportRouteNotShadowed() {
	entries := []domain.JournalEntry{{EntryID: "e1", Lines: []domain.JournalLine{{AccountID: "cash", Debit: decimal.NewFromInt(5)}}}}
	suite.mockJournal.On("ExportJournalEntries", mock.Anything, "2024-01-01", "").
		Return(entries, map[string]domain.Account{"cash": {Code: "1000", Name: "Cash"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals/export?from=2024-01-01", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "journal.xlsx")
	suite.NotZero(w.Body.Len())
	suite.mockJournal.AssertNotCalled(suite.T(), "GetJournalEntry", mock.Anything, mock.Anything)
}
