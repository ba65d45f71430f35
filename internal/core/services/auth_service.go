package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/creditkeep/creditkeep/internal/utils"
	"github.com/creditkeep/creditkeep/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepository
}

// NewAuthService creates the login service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a signed JWT. A bad username and a bad
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		logger.Warn("Login attempt for inactive user", slog.Int64("user_id", user.ID))
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", username))
		return nil, apperrors.ErrUnauthorized
	}

	now := time.Now()
	claims := middleware.AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User logged in", slog.Int64("user_id", user.ID))
	return &dto.LoginResponse{Token: signed, User: *user}, nil
}
