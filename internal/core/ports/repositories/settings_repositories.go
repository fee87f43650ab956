package repositories

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
)

// SettingsRepository persists the singleton settings document.
type SettingsRepository interface {
	// GetSettings returns apperrors.ErrNotFound when no document exists yet.
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// EnsureSettings inserts defaults when no document exists and returns the
	// stored document either way.
	EnsureSettings(ctx context.Context, defaults domain.Settings) (*domain.Settings, error)

	// UpsertSettings replaces the whole document.
	UpsertSettings(ctx context.Context, settings domain.Settings) error
}
