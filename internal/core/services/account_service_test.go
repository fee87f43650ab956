package services_test

import (
	"context"
	"testing"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/core/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = "admin"
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: " 6000 ", Name: "Marketing", AccountType: domain.ExpenseType}
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "6000" && a.AccountType == domain.ExpenseType && a.IsActive && a.ParentAccountID == nil
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(acc.AccountID)
	suite.Equal(suite.userID, acc.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownParent() {
	ctx := context.Background()
	parent := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "1001", Name: "Petty cash", AccountType: domain.Asset, ParentAccountID: &parent}
	suite.mockRepo.On("FindAccountByID", ctx, parent).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	req := dto.CreateAccountRequest{Code: "9000", Name: "Odd", AccountType: "INCOME"}

	_, err := suite.service.CreateAccount(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialKeepsType() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "5100", Name: "Utilities", AccountType: domain.ExpenseType, IsActive: true}
	name := "Utilities & Power"
	inactive := false
	suite.mockRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == name && !a.IsActive && a.AccountType == domain.ExpenseType && a.Code == "5100"
	})).Return(nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Name: &name, IsActive: &inactive}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(name, acc.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParent() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset}
	suite.mockRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{ParentAccountID: &existing.AccountID}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSeedChartOfAccounts_EmptyLedger() {
	ctx := context.Background()
	suite.mockRepo.On("CountAccounts", ctx).Return(0, nil).Once()
	suite.mockRepo.On("SeedChartOfAccounts", ctx, mock.AnythingOfType("[]domain.Account"), mock.MatchedBy(func(s domain.Settings) bool {
		return s.DefaultAccounts.CashAccountID != nil &&
			s.DefaultAccounts.SalesAccountID != nil &&
			s.DefaultAccounts.COGSAccountID != nil
	})).Return(true, nil).Once()

	seeded, accounts, err := suite.service.SeedChartOfAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(seeded)
	suite.Len(accounts, 13)
	codes := make(map[string]domain.AccountType, len(accounts))
	for _, a := range accounts {
		codes[a.Code] = a.AccountType
	}
	suite.Equal(domain.Asset, codes[services.CodeCash])
	suite.Equal(domain.Revenue, codes[services.CodeSales])
	suite.Equal(domain.ExpenseType, codes[services.CodeMiscExpense])
	suite.Equal(domain.Liability, codes[services.CodeTaxPayable])
	suite.Equal(domain.Equity, codes[services.CodeOwnersEquity])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedChartOfAccounts_Idempotent() {
	ctx := context.Background()
	suite.mockRepo.On("CountAccounts", ctx).Return(13, nil).Once()

	seeded, accounts, err := suite.service.SeedChartOfAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.False(seeded)
	suite.Empty(accounts)
	suite.mockRepo.AssertNotCalled(suite.T(), "SeedChartOfAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSeedChartOfAccounts_LostRace() {
	ctx := context.Background()
	suite.mockRepo.On("CountAccounts", ctx).Return(0, nil).Once()
	suite.mockRepo.On("SeedChartOfAccounts", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()

	seeded, accounts, err := suite.service.SeedChartOfAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.False(seeded)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_Error() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListAccounts(ctx)

	suite.ErrorIs(err, assert.AnError)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func TestSeededSettingsReferencesChart(t *testing.T) {
	accounts := services.StandardChart("admin", fixedNow)
	s := services.SeededSettings(accounts, "admin", fixedNow)

	byID := make(map[string]string, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a.Code
	}
	assert.Equal(t, services.CodeCash, byID[*s.DefaultAccounts.CashAccountID])
	assert.Equal(t, services.CodeBank, byID[*s.DefaultAccounts.BankAccountID])
	assert.Equal(t, services.CodeInventory, byID[*s.DefaultAccounts.InventoryAccountID])
	assert.Equal(t, services.CodeAccountsReceivable, byID[*s.DefaultAccounts.ReceivableAccountID])
	assert.Equal(t, domain.DefaultFallbackExpenseAccountCode, s.FallbackExpenseAccountCode)
	assert.NotEmpty(t, s.ExpenseRules)
}
