package services

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
)

// SettingsSvcFacade resolves and stores the singleton settings document.
type SettingsSvcFacade interface {
	// GetSettings returns the settings, creating the default document on first use.
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// GetSettingsWithAccounts returns the settings plus the full chart of
	// accounts so a UI can render account pickers.
	GetSettingsWithAccounts(ctx context.Context) (*domain.Settings, []domain.Account, error)

	// SaveSettings replaces the whole document.
	SaveSettings(ctx context.Context, req dto.SaveSettingsRequest, userID string) (*domain.Settings, error)
}
