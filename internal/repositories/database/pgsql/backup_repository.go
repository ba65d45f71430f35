package pgsql

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/creditkeep/creditkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBackupRepository struct {
	BaseRepository
}

func newPgxBackupRepository(pool *pgxpool.Pool) portsrepo.BackupRepository {
	return &PgxBackupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BackupRepository = (*PgxBackupRepository)(nil)

// Snapshot reads every table into one document. Voided and deleted ledger rows
// are included: a backup that silently dropped them would change balances on
// restore.
func (r *PgxBackupRepository) Snapshot(ctx context.Context) (*domain.BackupSnapshot, error) {
	snapshot := &domain.BackupSnapshot{Settings: map[string]string{}}

	customerRepo := &PgxCustomerRepository{BaseRepository: r.BaseRepository}
	customers, err := customerRepo.queryCustomers(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	snapshot.Customers = customers

	productRepo := &PgxProductRepository{BaseRepository: r.BaseRepository}
	products, err := productRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Products = products

	if err := r.snapshotUsers(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := r.snapshotLedger(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := r.snapshotDonations(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := r.snapshotSettings(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *PgxBackupRepository) snapshotUsers(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id;`)
	if err != nil {
		return apperrors.NewAppError(500, "failed to snapshot users", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return apperrors.NewAppError(500, "failed to scan user snapshot row", err)
		}
		u := domain.User{
			ID:        m.ID,
			Username:  m.Username,
			FullName:  m.FullName,
			Role:      domain.Role(m.Role),
			IsActive:  m.IsActive,
			CreatedAt: m.CreatedAt,
		}
		snapshot.Users = append(snapshot.Users, domain.BackupUser{User: u, PasswordHash: m.PasswordHash})
	}
	return rows.Err()
}

func (r *PgxBackupRepository) snapshotLedger(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	ledgerRepo := &PgxLedgerRepository{BaseRepository: r.BaseRepository}

	rows, err := r.Pool.Query(ctx, `SELECT `+ledgerColumns+` FROM ledger ORDER BY id;`)
	if err != nil {
		return apperrors.NewAppError(500, "failed to snapshot ledger", err)
	}
	defer rows.Close()
	entryIDs := []int64{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return apperrors.NewAppError(500, "failed to scan ledger snapshot row", err)
		}
		snapshot.Entries = append(snapshot.Entries, mapping.ToDomainLedgerEntry(m))
		entryIDs = append(entryIDs, m.ID)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating ledger snapshot rows", err)
	}

	itemsByEntry, err := ledgerRepo.findItemsForEntries(ctx, entryIDs)
	if err != nil {
		return err
	}
	for _, items := range itemsByEntry {
		snapshot.Items = append(snapshot.Items, items...)
	}
	return nil
}

func (r *PgxBackupRepository) snapshotDonations(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	donationRepo := &PgxDonationRepository{BaseRepository: r.BaseRepository}
	donations, err := donationRepo.ListDonations(ctx)
	if err != nil {
		return err
	}
	snapshot.Donations = donations

	usages, err := donationRepo.ListUsage(ctx, nil)
	if err != nil {
		return err
	}
	snapshot.Usage = usages
	return nil
}

func (r *PgxBackupRepository) snapshotSettings(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	rows, err := r.Pool.Query(ctx, `SELECT key, value FROM settings;`)
	if err != nil {
		return apperrors.NewAppError(500, "failed to snapshot settings", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return apperrors.NewAppError(500, "failed to scan setting snapshot row", err)
		}
		snapshot.Settings[key] = value
	}
	return rows.Err()
}

// Restore imports a snapshot in one transaction. Every table gets fresh ids;
// idMap carries old id to new id so foreign keys are stitched back together.
// Ledger rows are inserted in old-id order to keep the insertion sequence, and
// balance_after comes over verbatim.
func (r *PgxBackupRepository) Restore(ctx context.Context, snapshot *domain.BackupSnapshot) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	customerIDs, err := restoreCustomers(ctx, tx, snapshot.Customers)
	if err != nil {
		return err
	}
	userIDs, err := restoreUsers(ctx, tx, snapshot.Users)
	if err != nil {
		return err
	}
	if err := restoreProducts(ctx, tx, snapshot.Products); err != nil {
		return err
	}
	entryIDs, err := restoreLedger(ctx, tx, snapshot.Entries, customerIDs, userIDs)
	if err != nil {
		return err
	}
	if err := restoreItems(ctx, tx, snapshot.Items, entryIDs); err != nil {
		return err
	}
	donationIDs, err := restoreDonations(ctx, tx, snapshot.Donations)
	if err != nil {
		return err
	}
	if err := restoreUsage(ctx, tx, snapshot.Usage, donationIDs, customerIDs); err != nil {
		return err
	}
	for key, value := range snapshot.Settings {
		_, err := tx.Exec(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
		`, key, value)
		if err != nil {
			return apperrors.NewAppError(500, "failed to restore settings", err)
		}
	}

	audit := domain.AuditRecord{
		Action:    "RESTORE_BACKUP",
		TableName: "ledger",
		NewValues: "Backup restored",
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func restoreCustomers(ctx context.Context, tx pgx.Tx, customers []domain.Customer) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(customers))
	for _, c := range customers {
		var newID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO customers (name, phone, email, address, credit_limit, grace_period_days, is_active, notes, created_at)
			VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9)
			RETURNING id;
		`, c.Name, c.Phone, c.Email, c.Address, c.CreditLimit, c.GracePeriodDays, c.IsActive, c.Notes, c.CreatedAt).Scan(&newID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to restore customer", err)
		}
		ids[c.ID] = newID
	}
	return ids, nil
}

func restoreUsers(ctx context.Context, tx pgx.Tx, users []domain.BackupUser) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(users))
	for _, u := range users {
		var newID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, password_hash, full_name, role, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash,
				full_name = EXCLUDED.full_name, role = EXCLUDED.role, is_active = EXCLUDED.is_active
			RETURNING id;
		`, u.Username, u.PasswordHash, u.FullName, string(u.Role), u.IsActive, u.CreatedAt).Scan(&newID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to restore user", err)
		}
		ids[u.ID] = newID
	}
	return ids, nil
}

func restoreProducts(ctx context.Context, tx pgx.Tx, products []domain.Product) error {
	for _, p := range products {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (name, price, category, is_prescription, created_at)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5)
			ON CONFLICT (name) DO NOTHING;
		`, p.Name, p.Price, p.Category, p.IsPrescription, p.CreatedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to restore product", err)
		}
	}
	return nil
}

func restoreLedger(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry, customerIDs, userIDs map[int64]int64) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(entries))
	remapUser := func(old *int64) *int64 {
		if old == nil {
			return nil
		}
		if newID, ok := userIDs[*old]; ok {
			return &newID
		}
		return nil
	}
	// Two passes: reference_id may point at any other entry, so all new ids
	// must exist before references are rewritten.
	for _, e := range entries {
		customerID, ok := customerIDs[e.CustomerID]
		if !ok {
			return nil, apperrors.NewAppError(500, "ledger entry references unknown customer", nil)
		}
		var newID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO ledger (customer_id, entry_type, amount, balance_after, rx_number, description, notes,
				payment_method, created_by, created_at, is_voided, voided_by, voided_at, void_reason,
				is_deleted, deleted_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
				$9, $10, $11, $12, $13, NULLIF($14, ''), $15, $16)
			RETURNING id;
		`, customerID, string(e.EntryType), e.Amount, e.BalanceAfter, e.RxNumber, e.Description, e.Notes,
			string(e.PaymentMethod), remapUser(e.CreatedBy), e.CreatedAt,
			e.IsVoided, remapUser(e.VoidedBy), e.VoidedAt, e.VoidReason,
			e.IsDeleted, e.DeletedAt).Scan(&newID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to restore ledger entry", err)
		}
		ids[e.ID] = newID
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		if e.ReferenceID == nil {
			continue
		}
		if refID, ok := ids[*e.ReferenceID]; ok {
			batch.Queue(`UPDATE ledger SET reference_id = $2 WHERE id = $1`, ids[e.ID], refID)
		}
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to restore ledger references", err)
		}
	}
	return ids, nil
}

func restoreItems(ctx context.Context, tx pgx.Tx, items []domain.LedgerItem, entryIDs map[int64]int64) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		entryID, ok := entryIDs[item.LedgerID]
		if !ok {
			return apperrors.NewAppError(500, "ledger item references unknown entry", nil)
		}
		batch.Queue(`
			INSERT INTO ledger_items (ledger_id, product_name, price, quantity, rx_number)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''));
		`, entryID, item.ProductName, item.Price, item.Quantity, item.RxNumber)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to restore ledger items", err)
	}
	return nil
}

func restoreDonations(ctx context.Context, tx pgx.Tx, donations []domain.Donation) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(donations))
	for _, d := range donations {
		var newID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO donations (amount, donor_name, notes, is_active, created_at)
			VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
			RETURNING id;
		`, d.Amount, d.DonorName, d.Notes, d.IsActive, d.CreatedAt).Scan(&newID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to restore donation", err)
		}
		ids[d.ID] = newID
	}
	return ids, nil
}

func restoreUsage(ctx context.Context, tx pgx.Tx, usages []domain.DonationUsage, donationIDs, customerIDs map[int64]int64) error {
	for _, u := range usages {
		donationID, ok := donationIDs[u.DonationID]
		if !ok {
			return apperrors.NewAppError(500, "donation usage references unknown donation", nil)
		}
		customerID, ok := customerIDs[u.CustomerID]
		if !ok {
			return apperrors.NewAppError(500, "donation usage references unknown customer", nil)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO donation_usage (donation_id, customer_id, amount_used, notes, created_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5);
		`, donationID, customerID, u.AmountUsed, u.Notes, u.CreatedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to restore donation usage", err)
		}
	}
	return nil
}
