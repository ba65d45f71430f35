package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, fmt.Sprintf("failed to read setting %q", key), err)
	}
	return value, nil
}

func (r *PgxSettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	if _, err := r.Pool.Exec(ctx, query, key, value); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to write setting %q", key), err)
	}
	return nil
}
