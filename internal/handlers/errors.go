package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto a status and JSON body.
// Messages of client errors are returned as-is; anything unexpected is logged
// and collapsed into fallbackMsg.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var unbalanced *apperrors.UnbalancedEntryError
	switch {
	case errors.As(err, &unbalanced):
		logger.Warn("Journal entry not balanced",
			slog.String("sum_debit", unbalanced.SumDebit.String()),
			slog.String("sum_credit", unbalanced.SumCredit.String()))
		c.JSON(http.StatusUnprocessableEntity, dto.UnbalancedEntryResponse{
			Error:     "Entry does not balance",
			SumDebit:  unbalanced.SumDebit,
			SumCredit: unbalanced.SumCredit,
		})
	case errors.Is(err, apperrors.ErrInvalidAccountReference):
		logger.Warn("Invalid account reference", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallbackMsg})
	}
}

// requireUserID reads the authenticated operator, writing a 401 when absent.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
