package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/handlers"
	"github.com/bazaarhq/storefront_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// HandlerTestSuite drives the real router, auth middleware and limiters with
// mocked services behind them.
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string
	userID    string

	mockAuth      *MockAuthService
	mockAccount   *MockAccountService
	mockJournal   *MockJournalService
	mockExpense   *MockExpenseService
	mockSettings  *MockSettingsService
	mockDelivery  *MockDeliveryService
	mockReporting *MockReportingService
}

func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "admin"

	suite.mockAuth = new(MockAuthService)
	suite.mockAccount = new(MockAccountService)
	suite.mockJournal = new(MockJournalService)
	suite.mockExpense = new(MockExpenseService)
	suite.mockSettings = new(MockSettingsService)
	suite.mockDelivery = new(MockDeliveryService)
	suite.mockReporting = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		IsProduction:    true,
		LoginRateLimit:  "5-M",
		PublicRateLimit: "3-M",
	}
	services := &portssvc.ServiceContainer{
		Auth:      suite.mockAuth,
		Account:   suite.mockAccount,
		Journal:   suite.mockJournal,
		Expense:   suite.mockExpense,
		Settings:  suite.mockSettings,
		Delivery:  suite.mockDelivery,
		Reporting: suite.mockReporting,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services, nil))
}

// do sends an authenticated request unless token is empty.
func (suite *HandlerTestSuite) do(method, url string, body interface{}, authenticated bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			suite.Require().NoError(err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRouteRequiresToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts", nil, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "6000", Name: "Marketing", AccountType: domain.ExpenseType}
	created := &domain.Account{AccountID: uuid.NewString(), Code: "6000", Name: "Marketing", AccountType: domain.ExpenseType, IsActive: true}
	suite.mockAccount.On("CreateAccount", mock.Anything, req, suite.userID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(created.AccountID, resp.AccountID)
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"6000","name":"X","accountType":"GADGET"}`, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.mockAccount.On("CreateAccount", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1000","name":"Cash","accountType":"ASSET"}`, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccount.On("GetAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestSeedAccounts() {
	accounts := []domain.Account{{AccountID: uuid.NewString(), Code: "1000"}, {AccountID: uuid.NewString(), Code: "1010"}}
	suite.mockAccount.On("SeedChartOfAccounts", mock.Anything, suite.userID).Return(true, accounts, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/seed", nil, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SeedAccountsResponse
	suite.decode(w, &resp)
	suite.True(resp.Seeded)
	suite.Len(resp.Accounts, 2)
}

func (suite *HandlerTestSuite) TestSeedAccounts_AlreadySeeded() {
	suite.mockAccount.On("SeedChartOfAccounts", mock.Anything, suite.userID).Return(false, []domain.Account{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/seed", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SeedAccountsResponse
	suite.decode(w, &resp)
	suite.False(resp.Seeded)
}

func (suite *HandlerTestSuite) TestLogin() {
	expires := time.Now().Add(time.Hour).UTC()
	suite.mockAuth.On("Login", mock.Anything, dto.LoginRequest{Username: "admin", Password: "pw"}).
		Return(&dto.LoginResponse{Token: "tok", ExpiresAt: expires}, nil).Once()
	suite.mockAuth.On("Login", mock.Anything, dto.LoginRequest{Username: "admin", Password: "bad"}).
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "pw"}, false)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("tok", resp.Token)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "bad"}, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_MissingFields() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"admin"}`, false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
