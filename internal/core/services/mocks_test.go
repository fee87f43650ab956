package services_test

import (
	"context"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SeedChartOfAccounts(ctx context.Context, accounts []domain.Account, settings domain.Settings) (bool, error) {
	args := m.Called(ctx, accounts, settings)
	return args.Bool(0), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, from, to *time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, entry *domain.JournalEntry, retry *domain.ExpensePostingRetry) error {
	args := m.Called(ctx, expense, entry, retry)
	return args.Error(0)
}

func (m *MockExpenseRepository) MarkExpensePosted(ctx context.Context, expenseID string, entry domain.JournalEntry) error {
	args := m.Called(ctx, expenseID, entry)
	return args.Error(0)
}

// --- Mock PostingRetryRepository ---
type MockPostingRetryRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRetryRepository = (*MockPostingRetryRepository)(nil)

func (m *MockPostingRetryRepository) ClaimDueRetries(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.ExpensePostingRetry, error) {
	args := m.Called(ctx, now, limit, lease)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpensePostingRetry), args.Error(1)
}

func (m *MockPostingRetryRepository) UpdateRetry(ctx context.Context, retry domain.ExpensePostingRetry) error {
	args := m.Called(ctx, retry)
	return args.Error(0)
}

func (m *MockPostingRetryRepository) FindRetryByExpenseID(ctx context.Context, expenseID string) (*domain.ExpensePostingRetry, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpensePostingRetry), args.Error(1)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepository = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) EnsureSettings(ctx context.Context, defaults domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock DeliveryAreaRepository ---
type MockDeliveryRepository struct {
	mock.Mock
}

var _ portsrepo.DeliveryAreaRepositoryFacade = (*MockDeliveryRepository)(nil)

func (m *MockDeliveryRepository) FindDeliveryAreaByID(ctx context.Context, areaID string) (*domain.DeliveryArea, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryArea), args.Error(1)
}

func (m *MockDeliveryRepository) ListDeliveryAreas(ctx context.Context, filter domain.DeliveryAreaFilter) ([]domain.DeliveryArea, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryArea), args.Error(1)
}

func (m *MockDeliveryRepository) SaveDeliveryArea(ctx context.Context, area domain.DeliveryArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateDeliveryArea(ctx context.Context, area domain.DeliveryArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockDeliveryRepository) DeleteDeliveryArea(ctx context.Context, areaID string) error {
	args := m.Called(ctx, areaID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountTotals(ctx context.Context, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock SettingsService (as used by posting rules and reporting) ---
type MockSettingsService struct {
	mock.Mock
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsService) GetSettingsWithAccounts(ctx context.Context) (*domain.Settings, []domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Settings), args.Get(1).([]domain.Account), args.Error(2)
}

func (m *MockSettingsService) SaveSettings(ctx context.Context, req dto.SaveSettingsRequest, userID string) (*domain.Settings, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

// --- Mock LedgerEventPublisher ---
type MockPublisher struct {
	mock.Mock
}

var _ ports.LedgerEventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishJournalPosted(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
