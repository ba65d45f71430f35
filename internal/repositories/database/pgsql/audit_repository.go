package pgsql

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/creditkeep/creditkeep/internal/models"
	"github.com/creditkeep/creditkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// insertAuditTx writes an audit row inside an existing transaction. Ledger and
// donation repositories call this so the audit row commits or rolls back with
// the change it records.
func insertAuditTx(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_log (user_id, action, table_name, record_id, old_values, new_values, ip_address)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''));
	`
	_, err := tx.Exec(ctx, query,
		record.UserID,
		record.Action,
		record.TableName,
		record.RecordID,
		record.OldValues,
		record.NewValues,
		record.IPAddress,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record", err)
	}
	return nil
}

// Insert writes a standalone audit row.
func (r *PgxAuditRepository) Insert(ctx context.Context, record domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertAuditTx(ctx, tx, record); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ListAuditRecords returns the newest audit rows, optionally filtered.
func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, limit int, userID *int64, tableName string) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, user_id, action, table_name, record_id, old_values, new_values, ip_address, created_at
		FROM audit_log
		WHERE ($1::bigint IS NULL OR user_id = $1)
		AND ($2 = '' OR table_name = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, tableName, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit records", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Action,
			&m.TableName,
			&m.RecordID,
			&m.OldValues,
			&m.NewValues,
			&m.IPAddress,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit record row", err)
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit record rows", err)
	}
	return records, nil
}
