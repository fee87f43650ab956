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
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
	accountRepo  portsrepo.AccountReader
}

// NewSettingsService creates the settings resolver.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, accountRepo portsrepo.AccountReader) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo, accountRepo: accountRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load settings")
		return nil, err
	}

	settings, err = s.settingsRepo.EnsureSettings(ctx, DefaultSettings(domain.SystemUserID, time.Now().UTC()))
	if err != nil {
		s.LogError(ctx, err, "Failed to create default settings")
		return nil, err
	}
	s.LogInfo(ctx, "Default settings created")
	return settings, nil
}

func (s *settingsService) GetSettingsWithAccounts(ctx context.Context) (*domain.Settings, []domain.Account, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for settings")
		return nil, nil, err
	}
	return settings, accounts, nil
}

// SaveSettings replaces the whole document; fields left out are cleared.
func (s *settingsService) SaveSettings(ctx context.Context, req dto.SaveSettingsRequest, userID string) (*domain.Settings, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	settings := req.ToDomainSettings()
	for i := range settings.ExpenseRules {
		settings.ExpenseRules[i].Keyword = strings.TrimSpace(settings.ExpenseRules[i].Keyword)
		settings.ExpenseRules[i].AccountCode = strings.TrimSpace(settings.ExpenseRules[i].AccountCode)
	}
	for _, t := range settings.TaxRates {
		if t.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: tax rate %s cannot be negative", apperrors.ErrValidation, t.Name)
		}
	}

	if err := s.checkDefaultAccounts(ctx, settings.DefaultAccounts); err != nil {
		return nil, err
	}

	settings.UpdatedAt = time.Now().UTC()
	settings.UpdatedBy = userID
	if err := s.settingsRepo.UpsertSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save settings")
		return nil, err
	}
	s.LogInfo(ctx, "Settings saved", slog.String("updated_by", userID))
	return &settings, nil
}

func (s *settingsService) checkDefaultAccounts(ctx context.Context, d domain.DefaultAccounts) error {
	var ids []string
	for _, id := range []*string{
		d.CashAccountID, d.BankAccountID, d.SalesAccountID, d.COGSAccountID,
		d.InventoryAccountID, d.ReceivableAccountID, d.TaxPayableAccountID,
	} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to verify default accounts")
		return err
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: default account %s does not exist", apperrors.ErrValidation, id)
		}
	}
	return nil
}
