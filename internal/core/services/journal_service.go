package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	portsrepo "github.com/bazaarhq/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/accounting"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/pagination"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	rules       *postingRules
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalPublisher sets the publisher notified after each committed entry.
func WithJournalPublisher(p ports.LedgerEventPublisher) JournalServiceOption {
	return func(s *journalService) {
		s.Publisher = p
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, settings portssvc.SettingsSvcFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		rules:       newPostingRules(accountRepo, settings),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostJournalEntry checks balance before account references so a caller
// always learns about the totals first. Amounts are rounded to cents before
// the check, so what is stored is what balanced.
func (s *journalService) PostJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: a journal entry needs at least one line", apperrors.ErrValidation)
	}

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	for i, l := range req.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		lines = append(lines, domain.JournalLine{
			AccountID:   strings.TrimSpace(l.AccountID),
			Description: l.Description,
			Debit:       accounting.RoundAmount(l.Debit.Decimal),
			Credit:      accounting.RoundAmount(l.Credit.Decimal),
		})
	}

	sumDebit, sumCredit := accounting.SumLines(lines)
	if err := accounting.CheckBalanced(sumDebit, sumCredit); err != nil {
		s.LogDebug(ctx, "Rejected unbalanced journal entry",
			slog.String("sum_debit", sumDebit.String()),
			slog.String("sum_credit", sumCredit.String()))
		return nil, err
	}

	if err := s.checkAccountReferences(ctx, lines); err != nil {
		return nil, err
	}

	var entryDate time.Time
	if req.Date != nil {
		entryDate = req.Date.Time
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = domain.SourceManual
	}
	entry := newJournalEntry(entryDate, source, req.Ref, req.Notes, userID, lines)

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("source", entry.Source),
		slog.Int("lines", len(entry.Lines)))
	s.PublishPosted(ctx, entry)
	return &entry, nil
}

// checkAccountReferences requires every distinct referenced id to exist.
func (s *journalService) checkAccountReferences(ctx context.Context, lines []domain.JournalLine) error {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up journal line accounts")
		return err
	}
	if len(accounts) == len(ids) {
		return nil
	}

	var missing []string
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: unknown accounts %s", apperrors.ErrInvalidAccountReference, strings.Join(missing, ", "))
}

func (s *journalService) PostSale(ctx context.Context, req dto.PostSaleRequest, userID string) (*domain.JournalEntry, error) {
	sale := domain.Sale{
		Source:        req.Source,
		Ref:           strings.TrimSpace(req.Ref),
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		NetAmount:     req.NetAmount.Decimal,
		TaxAmount:     req.TaxAmount.Decimal,
		CostAmount:    req.CostAmount.Decimal,
	}
	if req.Date != nil {
		sale.SaleDate = req.Date.Time
	}

	entry, err := s.rules.SaleEntry(ctx, sale, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to build sale entry", slog.String("ref", sale.Ref))
		}
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to save sale entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("source", entry.Source),
		slog.String("ref", entry.Ref))
	s.PublishPosted(ctx, *entry)
	return entry, nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
	}

	filter := portsrepo.JournalFilter{From: from, To: dto.EndOfDay(to)}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		filter.After = &portsrepo.JournalCursor{
			EntryDate: cursor.EntryDate,
			CreatedAt: cursor.CreatedAt,
			EntryID:   cursor.EntryID,
		}
	}
	// One extra row tells whether another page exists.
	if params.Limit > 0 {
		filter.Limit = params.Limit + 1
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	var nextToken *string
	if params.Limit > 0 && len(entries) > params.Limit {
		last := entries[params.Limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			EntryDate: last.EntryDate,
			CreatedAt: last.CreatedAt,
			EntryID:   last.EntryID,
		})
		nextToken = &token
		entries = entries[:params.Limit]
	}

	resp := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &resp, nil
}

func (s *journalService) ExportJournalEntries(ctx context.Context, from, to string) ([]domain.JournalEntry, map[string]domain.Account, error) {
	fromDate, err := dto.ParseOptionalDate(from)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
	}
	toDate, err := dto.ParseOptionalDate(to)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{From: fromDate, To: dto.EndOfDay(toDate)})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries for export")
		return nil, nil, err
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, e := range entries {
		for _, l := range e.Lines {
			if _, ok := seen[l.AccountID]; !ok {
				seen[l.AccountID] = struct{}{}
				ids = append(ids, l.AccountID)
			}
		}
	}
	if len(ids) == 0 {
		return entries, map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for export")
		return nil, nil, err
	}
	return entries, accounts, nil
}
