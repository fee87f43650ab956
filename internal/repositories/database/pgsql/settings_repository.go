package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func getSettings(ctx context.Context, db dbtx) (*domain.Settings, error) {
	query := `
		SELECT id, default_accounts, tax_rates, expense_rules, fallback_expense_account_code, updated_at, updated_by
		FROM settings
		WHERE id = $1;
	`
	var m models.Settings
	err := db.QueryRow(ctx, query, domain.SettingsID).Scan(
		&m.ID,
		&m.DefaultAccounts,
		&m.TaxRates,
		&m.ExpenseRules,
		&m.FallbackExpenseAccountCode,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	s, err := mapping.ToDomainSettings(m)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// upsertSettings writes the whole document, replacing any previous one.
func upsertSettings(ctx context.Context, db dbtx, settings domain.Settings) error {
	m, err := mapping.ToModelSettings(settings)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO settings (id, default_accounts, tax_rates, expense_rules, fallback_expense_account_code, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			default_accounts = EXCLUDED.default_accounts,
			tax_rates = EXCLUDED.tax_rates,
			expense_rules = EXCLUDED.expense_rules,
			fallback_expense_account_code = EXCLUDED.fallback_expense_account_code,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	_, err = db.Exec(ctx, query,
		m.ID,
		string(m.DefaultAccounts),
		string(m.TaxRates),
		string(m.ExpenseRules),
		m.FallbackExpenseAccountCode,
		m.UpdatedAt,
		m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return getSettings(ctx, r.Pool)
}

// EnsureSettings inserts defaults only if the row is missing. Concurrent
// first calls converge on a single document because of ON CONFLICT DO NOTHING.
func (r *PgxSettingsRepository) EnsureSettings(ctx context.Context, defaults domain.Settings) (*domain.Settings, error) {
	m, err := mapping.ToModelSettings(defaults)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO settings (id, default_accounts, tax_rates, expense_rules, fallback_expense_account_code, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING;
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ID,
		string(m.DefaultAccounts),
		string(m.TaxRates),
		string(m.ExpenseRules),
		m.FallbackExpenseAccountCode,
		m.UpdatedAt,
		m.UpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	return getSettings(ctx, r.Pool)
}

func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, settings domain.Settings) error {
	return upsertSettings(ctx, r.Pool, settings)
}
