package services

import (
	"context"
	"log/slog"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Publisher ports.LedgerEventPublisher
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a recoverable problem
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// PublishPosted announces a committed entry. Failures are logged and swallowed;
// the ledger is the source of truth.
func (s *BaseService) PublishPosted(ctx context.Context, entry domain.JournalEntry) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishJournalPosted(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to publish journal posted event",
			slog.String("entry_id", entry.EntryID))
	}
}
