package services

import (
	"context"
	"log/slog"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/middleware"
)

type backupService struct {
	backupRepo portsrepo.BackupRepository
}

// NewBackupService creates the backup and restore service.
func NewBackupService(backupRepo portsrepo.BackupRepository) portssvc.BackupSvcFacade {
	return &backupService{backupRepo: backupRepo}
}

var _ portssvc.BackupSvcFacade = (*backupService)(nil)

func (s *backupService) Snapshot(ctx context.Context) (*domain.BackupSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot, err := s.backupRepo.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to build backup snapshot", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Backup snapshot built", slog.Int("customers", len(snapshot.Customers)),
		slog.Int("entries", len(snapshot.Entries)))
	return snapshot, nil
}

func (s *backupService) Restore(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if snapshot == nil || len(snapshot.Customers) == 0 {
		return apperrors.NewAppError(400, "snapshot has no customers", apperrors.ErrValidation)
	}
	if err := s.backupRepo.Restore(ctx, snapshot); err != nil {
		logger.Error("Failed to restore backup", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Backup restored", slog.Int("customers", len(snapshot.Customers)),
		slog.Int("entries", len(snapshot.Entries)))
	return nil
}
