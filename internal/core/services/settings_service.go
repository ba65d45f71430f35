package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/middleware"
)

type settingsService struct {
	settingsRepo portsrepo.SettingsRepository
}

// NewSettingsService creates the settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.settingsRepo.GetSetting(ctx, key)
}

func (s *settingsService) SetSetting(ctx context.Context, key, value string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.settingsRepo.SetSetting(ctx, key, value); err != nil {
		logger.Error("Failed to write setting", slog.String("error", err.Error()), slog.String("key", key))
		return err
	}
	logger.Info("Setting updated", slog.String("key", key))
	return nil
}
