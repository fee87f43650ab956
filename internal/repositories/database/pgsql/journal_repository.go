package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalEntryColumns = `entry_id, entry_date, source, ref, notes, created_at, created_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournalEntry saves the entry header and all its lines within a DB transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalEntry(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// insertJournalEntry writes the header and lines using the caller's transaction.
func insertJournalEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, headerQuery, m.EntryID, m.EntryDate, m.Source, m.Ref, m.Notes, m.CreatedAt, m.CreatedBy); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery, l.LineID, l.EntryID, l.LineNo, l.AccountID, l.Description, l.Debit, l.Credit)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range entry.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert line %d of journal entry %s: %w", i+1, m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

func scanJournalEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	if err := row.Scan(&m.EntryID, &m.EntryDate, &m.Source, &m.Ref, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

// FindJournalEntryByID retrieves an entry and its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return &entry, nil
}

// ListJournalEntries lists entries most recent first using keyset pagination.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	var conditions []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.From != nil {
		conditions = append(conditions, "entry_date >= "+next(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "entry_date <= "+next(*filter.To))
	}
	if filter.After != nil {
		// Tuple comparison keeps the ordering stable across pages.
		conditions = append(conditions, fmt.Sprintf("(entry_date, created_at, entry_id) < (%s, %s, %s)",
			next(filter.After.EntryDate), next(filter.After.CreatedAt), next(filter.After.EntryID)))
	}

	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + next(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	ids := []string{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, entry)
		ids = append(ids, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// findLinesByEntryIDs loads lines for many entries in one round trip. Every
// requested id gets a non-nil slice.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT line_id, entry_id, line_no, account_id, description, debit, credit
		FROM journal_lines
		WHERE entry_id = ANY($1::uuid[])
		ORDER BY entry_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.LineNo, &m.AccountID, &m.Description, &m.Debit, &m.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	for _, id := range entryIDs {
		if _, ok := result[id]; !ok {
			result[id] = []domain.JournalLine{}
		}
	}
	return result, nil
}
