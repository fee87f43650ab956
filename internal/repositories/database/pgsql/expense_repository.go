package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, expense_date, category, amount, payment_method, description, attachment_url, posted, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ExpenseDate,
		&m.Category,
		&m.Amount,
		&m.PaymentMethod,
		&m.Description,
		&m.AttachmentURL,
		&m.Posted,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Expense{}, err
	}
	return mapping.ToDomainExpense(m), nil
}

// SaveExpense stores the expense together with its journal entry or its
// pending retry, so an expense is never left both unposted and untracked.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, entry *domain.JournalEntry, retry *domain.ExpensePostingRetry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if entry != nil {
		if err := insertJournalEntry(ctx, tx, *entry); err != nil {
			return err
		}
	}

	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.ExpenseID,
		m.ExpenseDate,
		m.Category,
		m.Amount,
		m.PaymentMethod,
		m.Description,
		m.AttachmentURL,
		m.Posted,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s already exists", apperrors.ErrDuplicate, m.ExpenseID)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}

	if retry != nil {
		if err := insertPostingRetry(ctx, tx, *retry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// MarkExpensePosted writes the entry and flips the expense to posted. The
// expense row is locked first so two concurrent posts cannot both succeed.
func (r *PgxExpenseRepository) MarkExpensePosted(ctx context.Context, expenseID string, entry domain.JournalEntry) error {
	if _, err := uuid.Parse(expenseID); err != nil {
		return apperrors.ErrNotFound
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var posted bool
	err = tx.QueryRow(ctx, `SELECT posted FROM expenses WHERE expense_id = $1 FOR UPDATE;`, expenseID).Scan(&posted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock expense %s: %w", expenseID, err)
	}
	if posted {
		return fmt.Errorf("%w: expense %s is already posted", apperrors.ErrConflict, expenseID)
	}

	if err := insertJournalEntry(ctx, tx, entry); err != nil {
		return err
	}

	updateQuery := `
		UPDATE expenses
		SET posted = TRUE, journal_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE expense_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, expenseID, entry.EntryID, entry.CreatedAt, entry.CreatedBy); err != nil {
		return fmt.Errorf("failed to mark expense %s posted: %w", expenseID, err)
	}

	retryQuery := `
		UPDATE expense_posting_retries
		SET status = $2, updated_at = $3
		WHERE expense_id = $1 AND status = $4;
	`
	if _, err := tx.Exec(ctx, retryQuery, expenseID, string(domain.RetryDone), entry.CreatedAt, string(domain.RetryPending)); err != nil {
		return fmt.Errorf("failed to close posting retry for expense %s: %w", expenseID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if _, err := uuid.Parse(expenseID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	exp, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return &exp, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, from, to *time.Time) ([]domain.Expense, error) {
	var conditions []string
	var args []any
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, "expense_date >= $"+strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, "expense_date <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY expense_date DESC, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
