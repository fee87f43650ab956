package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
)

// ExpensePostingLockKey guards the retry sweep so only one instance drains
// the outbox at a time.
const ExpensePostingLockKey = "lock:expense-posting-retry"

// ExpensePostingWorker periodically retries expenses whose auto-posting failed.
type ExpensePostingWorker struct {
	retrier   portssvc.ExpensePostingRetrier
	locker    ports.Locker
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// NewExpensePostingWorker creates the worker. A nil logger falls back to slog.Default.
func NewExpensePostingWorker(retrier portssvc.ExpensePostingRetrier, locker ports.Locker, logger *slog.Logger, interval time.Duration, batchSize int) *ExpensePostingWorker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	return &ExpensePostingWorker{
		retrier:   retrier,
		locker:    locker,
		logger:    logger.With(slog.String("worker", "expense_posting")),
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run sweeps once per interval until ctx is cancelled.
func (w *ExpensePostingWorker) Run(ctx context.Context) {
	w.logger.Info("Expense posting worker started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Expense posting worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs a single retry batch under the shared lock. It returns the
// number of expenses posted.
func (w *ExpensePostingWorker) Sweep(ctx context.Context) int {
	// The lease outlives one interval only if a sweep hangs.
	release, err := w.locker.Obtain(ctx, ExpensePostingLockKey, w.interval)
	if err != nil {
		if errors.Is(err, ports.ErrLockNotObtained) {
			w.logger.Debug("Another instance holds the posting lock, skipping sweep")
		} else {
			w.logger.Error("Failed to obtain posting lock", slog.String("error", err.Error()))
		}
		return 0
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			w.logger.Warn("Failed to release posting lock", slog.String("error", rerr.Error()))
		}
	}()

	sweepCtx := middleware.WithUserID(ctx, domain.SystemUserID)
	sweepCtx = middleware.WithLogger(sweepCtx, w.logger)

	posted, err := w.retrier.RetryPendingPostings(sweepCtx, w.batchSize)
	if err != nil {
		w.logger.Error("Expense posting sweep failed", slog.String("error", err.Error()))
		return posted
	}
	if posted > 0 {
		w.logger.Info("Expense posting sweep completed", slog.Int("posted", posted))
	}
	return posted
}
