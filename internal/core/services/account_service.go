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
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, *req.ParentAccountID)
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", *req.ParentAccountID))
			return nil, err
		}
	} else {
		req.ParentAccountID = nil
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            strings.TrimSpace(req.Code),
		Name:            strings.TrimSpace(req.Name),
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies a partial update. The account type never changes.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.ParentAccountID != nil {
		parentID := *req.ParentAccountID
		switch {
		case parentID == "":
			account.ParentAccountID = nil
		case parentID == account.AccountID:
			return nil, fmt.Errorf("%w: an account cannot be its own parent", apperrors.ErrValidation)
		default:
			if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, parentID)
				}
				return nil, err
			}
			account.ParentAccountID = &parentID
		}
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// SeedChartOfAccounts inserts the standard chart only into an empty ledger.
func (s *accountService) SeedChartOfAccounts(ctx context.Context, userID string) (bool, []domain.Account, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts before seeding")
		return false, nil, err
	}
	if count > 0 {
		s.LogDebug(ctx, "Chart of accounts already present, skipping seed", slog.Int("count", count))
		return false, []domain.Account{}, nil
	}

	now := time.Now().UTC()
	accounts := StandardChart(userID, now)
	settings := SeededSettings(accounts, userID, now)

	// The repository re-checks emptiness under a lock, so a concurrent seed
	// that won the race turns this call into a no-op.
	seeded, err := s.accountRepo.SeedChartOfAccounts(ctx, accounts, settings)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts")
		return false, nil, err
	}
	if !seeded {
		return false, []domain.Account{}, nil
	}

	s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("accounts", len(accounts)))
	return true, accounts, nil
}
