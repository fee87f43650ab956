package services

import (
	"context"

	"github.com/bazaarhq/storefront_backoffice/internal/dto"
)

// AuthSvc authenticates back-office operators.
type AuthSvc interface {
	// Login returns apperrors.ErrUnauthorized for bad credentials.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
