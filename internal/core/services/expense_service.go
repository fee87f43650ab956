package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	defaultRetryMaxAttempts = 10
	defaultRetryBackoff     = time.Minute
	maxRetryBackoff         = time.Hour
	retryLease              = 5 * time.Minute
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	retryRepo   portsrepo.PostingRetryRepository
	rules       *postingRules
	maxAttempts int
	backoff     time.Duration
	now         func() time.Time
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithExpensePublisher sets the publisher notified after each auto-posted entry.
func WithExpensePublisher(p ports.LedgerEventPublisher) ExpenseServiceOption {
	return func(s *expenseService) {
		s.Publisher = p
	}
}

// WithRetryPolicy overrides the retry budget and the base backoff delay.
func WithRetryPolicy(maxAttempts int, backoff time.Duration) ExpenseServiceOption {
	return func(s *expenseService) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if backoff > 0 {
			s.backoff = backoff
		}
	}
}

// WithExpenseClock replaces time.Now, mainly for tests.
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// NewExpenseService creates a new expense service with the provided options
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	retryRepo portsrepo.PostingRetryRepository,
	accountRepo portsrepo.AccountReader,
	settings portssvc.SettingsSvcFacade,
	options ...ExpenseServiceOption,
) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		retryRepo:   retryRepo,
		rules:       newPostingRules(accountRepo, settings),
		maxAttempts: defaultRetryMaxAttempts,
		backoff:     defaultRetryBackoff,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records the expense and tries to post it. When the accounts
// cannot be resolved the expense is still saved, unposted, with a retry queued
// in the same transaction.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	amount := accounting.RoundAmount(req.Amount.Decimal)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}

	now := s.now()
	expenseDate := now
	if req.Date != nil && !req.Date.IsZero() {
		expenseDate = req.Date.Time
	}
	attachment := req.AttachmentURL
	if attachment != nil && strings.TrimSpace(*attachment) == "" {
		attachment = nil
	}

	expense := domain.Expense{
		ExpenseID:     uuid.NewString(),
		ExpenseDate:   expenseDate,
		Category:      category,
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		Description:   strings.TrimSpace(req.Description),
		AttachmentURL: attachment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entry, resolveErr := s.rules.ExpenseEntry(ctx, expense, userID)
	if resolveErr != nil {
		s.LogWarn(ctx, "Expense saved unposted, posting queued for retry",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("reason", resolveErr.Error()))
		retry := &domain.ExpensePostingRetry{
			RetryID:       uuid.NewString(),
			ExpenseID:     expense.ExpenseID,
			Status:        domain.RetryPending,
			LastError:     resolveErr.Error(),
			NextAttemptAt: now.Add(s.backoff),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.expenseRepo.SaveExpense(ctx, expense, nil, retry); err != nil {
			s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
			return nil, err
		}
		return &expense, nil
	}

	expense.Posted = true
	expense.JournalEntryID = &entry.EntryID
	if err := s.expenseRepo.SaveExpense(ctx, expense, entry, nil); err != nil {
		s.LogError(ctx, err, "Failed to save expense with journal entry", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created and posted",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("entry_id", entry.EntryID))
	s.PublishPosted(ctx, *entry)
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, from, dto.EndOfDay(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	return expenses, nil
}

// PostExpense is the explicit, user-triggered retry, so resolution failures
// are returned rather than queued.
func (s *expenseService) PostExpense(ctx context.Context, expenseID string, userID string) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Posted {
		return nil, fmt.Errorf("%w: expense %s is already posted", apperrors.ErrConflict, expenseID)
	}

	entry, err := s.rules.ExpenseEntry(ctx, *expense, userID)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.MarkExpensePosted(ctx, expense.ExpenseID, *entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to mark expense posted", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	expense.Posted = true
	expense.JournalEntryID = &entry.EntryID
	expense.LastUpdatedAt = entry.CreatedAt
	expense.LastUpdatedBy = userID

	s.LogInfo(ctx, "Expense posted manually",
		slog.String("expense_id", expenseID),
		slog.String("entry_id", entry.EntryID))
	s.PublishPosted(ctx, *entry)
	return expense, nil
}

// RetryPendingPostings drains due retries. Each retry is handled on its own;
// one failure does not stop the batch.
func (s *expenseService) RetryPendingPostings(ctx context.Context, batchSize int) (int, error) {
	now := s.now()
	retries, err := s.retryRepo.ClaimDueRetries(ctx, now, batchSize, retryLease)
	if err != nil {
		s.LogError(ctx, err, "Failed to claim posting retries")
		return 0, err
	}

	posted := 0
	for _, retry := range retries {
		if ctx.Err() != nil {
			return posted, ctx.Err()
		}
		ok, err := s.retryOne(ctx, retry, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to record posting retry outcome", slog.String("retry_id", retry.RetryID))
			continue
		}
		if ok {
			posted++
		}
	}
	if len(retries) > 0 {
		s.LogInfo(ctx, "Processed posting retries", slog.Int("claimed", len(retries)), slog.Int("posted", posted))
	}
	return posted, nil
}

func (s *expenseService) retryOne(ctx context.Context, retry domain.ExpensePostingRetry, now time.Time) (bool, error) {
	retry.UpdatedAt = now

	expense, err := s.expenseRepo.FindExpenseByID(ctx, retry.ExpenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			retry.Status = domain.RetryDead
			retry.LastError = "expense no longer exists"
			return false, s.retryRepo.UpdateRetry(ctx, retry)
		}
		return false, s.recordFailure(ctx, retry, err, now)
	}
	if expense.Posted {
		retry.Status = domain.RetryDone
		return false, s.retryRepo.UpdateRetry(ctx, retry)
	}

	entry, err := s.rules.ExpenseEntry(ctx, *expense, domain.SystemUserID)
	if err == nil {
		err = s.expenseRepo.MarkExpensePosted(ctx, expense.ExpenseID, *entry)
	}
	switch {
	case err == nil:
		s.LogInfo(ctx, "Expense posted by retry worker",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("entry_id", entry.EntryID),
			slog.Int("attempt", retry.Attempts+1))
		s.PublishPosted(ctx, *entry)
		return true, nil
	case errors.Is(err, apperrors.ErrConflict):
		retry.Status = domain.RetryDone
		return false, s.retryRepo.UpdateRetry(ctx, retry)
	default:
		return false, s.recordFailure(ctx, retry, err, now)
	}
}

func (s *expenseService) recordFailure(ctx context.Context, retry domain.ExpensePostingRetry, cause error, now time.Time) error {
	retry.Attempts++
	retry.LastError = cause.Error()
	if retry.Attempts >= s.maxAttempts {
		retry.Status = domain.RetryDead
		s.LogWarn(ctx, "Giving up on expense posting",
			slog.String("expense_id", retry.ExpenseID),
			slog.Int("attempts", retry.Attempts),
			slog.String("reason", retry.LastError))
	} else {
		retry.NextAttemptAt = now.Add(s.backoffFor(retry.Attempts))
	}
	return s.retryRepo.UpdateRetry(ctx, retry)
}

// backoffFor doubles the base delay per attempt up to maxRetryBackoff.
func (s *expenseService) backoffFor(attempts int) time.Duration {
	d := s.backoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxRetryBackoff {
			return maxRetryBackoff
		}
	}
	return d
}
