package repositories

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
)

// UserRepository is the persistence port for staff accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// AuditRepository records and reads the append-only audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, record domain.AuditRecord) error
	ListAuditRecords(ctx context.Context, limit int, userID *int64, tableName string) ([]domain.AuditRecord, error)
}

// SettingsRepository is a string key/value store seeded by migration.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
