package services

import (
	"context"
	"log/slog"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/creditkeep/creditkeep/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the staff account service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	user := domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         domain.Role(req.Role),
	}
	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("Failed to create user", slog.String("error", err.Error()), slog.String("username", req.Username))
		return nil, err
	}
	logger.Info("User created", slog.Int64("user_id", created.ID), slog.String("role", req.Role))
	return created, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing.FullName = req.FullName
	existing.Role = domain.Role(req.Role)
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return nil, err
	}
	logger.Info("User updated", slog.Int64("user_id", userID))
	return existing, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		logger.Error("Failed to change password", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return err
	}
	logger.Info("Password changed", slog.Int64("user_id", userID))
	return nil
}
