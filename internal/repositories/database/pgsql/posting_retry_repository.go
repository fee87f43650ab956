package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postingRetryColumns = `retry_id, expense_id, status, attempts, last_error, next_attempt_at, created_at, updated_at`

type PgxPostingRetryRepository struct {
	BaseRepository
}

func newPgxPostingRetryRepository(pool *pgxpool.Pool) portsrepo.PostingRetryRepository {
	return &PgxPostingRetryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingRetryRepository = (*PgxPostingRetryRepository)(nil)

func insertPostingRetry(ctx context.Context, db dbtx, retry domain.ExpensePostingRetry) error {
	m := mapping.ToModelPostingRetry(retry)
	query := `
		INSERT INTO expense_posting_retries (` + postingRetryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := db.Exec(ctx, query, m.RetryID, m.ExpenseID, m.Status, m.Attempts, m.LastError, m.NextAttemptAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to queue posting retry for expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func scanPostingRetry(row pgx.Row) (domain.ExpensePostingRetry, error) {
	var m models.ExpensePostingRetry
	if err := row.Scan(&m.RetryID, &m.ExpenseID, &m.Status, &m.Attempts, &m.LastError, &m.NextAttemptAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.ExpensePostingRetry{}, err
	}
	return mapping.ToDomainPostingRetry(m), nil
}

// ClaimDueRetries leases due rows. SKIP LOCKED lets several instances drain
// the table without handing the same row to two workers.
func (r *PgxPostingRetryRepository) ClaimDueRetries(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.ExpensePostingRetry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		SELECT ` + postingRetryColumns + `
		FROM expense_posting_retries
		WHERE status = $1 AND next_attempt_at <= $2
		ORDER BY next_attempt_at
		LIMIT $3
		FOR UPDATE SKIP LOCKED;
	`
	rows, err := tx.Query(ctx, query, string(domain.RetryPending), now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due posting retries: %w", err)
	}
	claimed := []domain.ExpensePostingRetry{}
	ids := []string{}
	for rows.Next() {
		retry, err := scanPostingRetry(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan posting retry row: %w", err)
		}
		claimed = append(claimed, retry)
		ids = append(ids, retry.RetryID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting retry rows: %w", err)
	}
	if len(claimed) == 0 {
		return claimed, nil
	}

	leaseUntil := now.Add(lease)
	if _, err := tx.Exec(ctx, `UPDATE expense_posting_retries SET next_attempt_at = $2, updated_at = $3 WHERE retry_id = ANY($1::uuid[]);`, ids, leaseUntil, now); err != nil {
		return nil, fmt.Errorf("failed to lease posting retries: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *PgxPostingRetryRepository) UpdateRetry(ctx context.Context, retry domain.ExpensePostingRetry) error {
	m := mapping.ToModelPostingRetry(retry)
	query := `
		UPDATE expense_posting_retries
		SET status = $2, attempts = $3, last_error = $4, next_attempt_at = $5, updated_at = $6
		WHERE retry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.RetryID, m.Status, m.Attempts, m.LastError, m.NextAttemptAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update posting retry %s: %w", m.RetryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPostingRetryRepository) FindRetryByExpenseID(ctx context.Context, expenseID string) (*domain.ExpensePostingRetry, error) {
	query := `SELECT ` + postingRetryColumns + ` FROM expense_posting_retries WHERE expense_id::text = $1;`
	retry, err := scanPostingRetry(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find posting retry for expense %s: %w", expenseID, err)
	}
	return &retry, nil
}
