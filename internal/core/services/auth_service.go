package services

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/bazaarhq/storefront_backoffice/internal/apperrors"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/utils"
)

// AuthConfig describes the single back-office operator and token settings.
type AuthConfig struct {
	Username     string
	PasswordHash string
	Token        utils.AccessTokenOptions
}

type authService struct {
	BaseService
	cfg AuthConfig
}

// NewAuthService creates the operator login service.
func NewAuthService(cfg AuthConfig) portssvc.AuthSvc {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.PasswordHash == "" {
		s.LogWarn(ctx, "Login attempted while no operator password is configured")
		return nil, apperrors.ErrUnauthorized
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) == 1
	passOK := utils.CheckPasswordHash(req.Password, s.cfg.PasswordHash)
	if !userOK || !passOK {
		s.LogInfo(ctx, "Login rejected", slog.String("username", req.Username))
		return nil, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := utils.GenerateJWT(s.cfg.Username, s.cfg.Token)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue access token")
		return nil, err
	}
	s.LogInfo(ctx, "Operator logged in", slog.String("username", s.cfg.Username))
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
