package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/creditkeep/creditkeep/internal/models"
	"github.com/creditkeep/creditkeep/internal/utils/accounting"
	"github.com/creditkeep/creditkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository for ledger entries and items.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const ledgerColumns = `id, customer_id, entry_type, amount, balance_after, rx_number, description, notes,
	payment_method, reference_id, created_by, created_at, is_voided, voided_by, voided_at, void_reason,
	is_deleted, deleted_at`

// balanceQuery is the single authoritative balance expression: a signed sum
// over every row of the customer, voided and deleted included.
const balanceQuery = `SELECT COALESCE(SUM(` + accounting.SignedSumSQL + `), 0) FROM ledger WHERE customer_id = $1`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.ID,
		&m.CustomerID,
		&m.EntryType,
		&m.Amount,
		&m.BalanceAfter,
		&m.RxNumber,
		&m.Description,
		&m.Notes,
		&m.PaymentMethod,
		&m.ReferenceID,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.IsVoided,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.VoidReason,
		&m.IsDeleted,
		&m.DeletedAt,
	)
	return m, err
}

func auditAction(entryType domain.EntryType) string {
	switch entryType {
	case domain.EntryNewDebt:
		return "ADD_DEBT"
	case domain.EntryPayment:
		return "ADD_PAYMENT"
	case domain.EntryAdjustment:
		return "ADD_ADJUSTMENT"
	case domain.EntryRefund:
		return "ADD_REFUND"
	case domain.EntryWriteOff:
		return "WRITE_OFF"
	default:
		return "ADD_ENTRY"
	}
}

// AppendEntry inserts entry (and its items, for NEW_DEBT) in one transaction,
// computing balance_after from the running balance read inside that
// transaction.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry, items []domain.LedgerItem) (*domain.LedgerEntry, error) {
	signed, err := accounting.SignedAmount(entry.EntryType, entry.Amount)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign entry amount", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var balanceBefore decimal.Decimal
	if err := tx.QueryRow(ctx, balanceQuery, entry.CustomerID).Scan(&balanceBefore); err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute running balance", err)
	}
	entry.BalanceAfter = balanceBefore.Add(signed)

	m := mapping.ToModelLedgerEntry(entry)
	insertQuery := `
		INSERT INTO ledger (customer_id, entry_type, amount, balance_after, rx_number, description, notes,
			payment_method, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`
	if err := tx.QueryRow(ctx, insertQuery,
		m.CustomerID,
		m.EntryType,
		m.Amount,
		m.BalanceAfter,
		m.RxNumber,
		m.Description,
		m.Notes,
		m.PaymentMethod,
		m.ReferenceID,
		m.CreatedBy,
		m.CreatedAt,
	).Scan(&entry.ID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry", err)
	}

	if len(items) > 0 {
		if err := insertItemsTx(ctx, tx, entry.ID, items); err != nil {
			return nil, err
		}
	}

	audit := domain.AuditRecord{
		UserID:    entry.CreatedBy,
		Action:    auditAction(entry.EntryType),
		TableName: "ledger",
		RecordID:  entry.ID,
		NewValues: "Amount: " + entry.Amount.StringFixed(2),
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	entry.Items = items
	return &entry, nil
}

func insertItemsTx(ctx context.Context, tx pgx.Tx, entryID int64, items []domain.LedgerItem) error {
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO ledger_items (ledger_id, product_name, price, quantity, rx_number)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''));
	`
	for _, item := range items {
		batch.Queue(itemQuery, entryID, item.ProductName, item.Price, item.Quantity, item.RxNumber)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to insert items for ledger entry %d", entryID), err)
	}
	return nil
}

// FindEntryByID returns an entry regardless of void or delete flags.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE id = $1;`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find ledger entry %d", entryID), err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindItemsByEntryID returns the line items of an entry.
func (r *PgxLedgerRepository) FindItemsByEntryID(ctx context.Context, entryID int64) ([]domain.LedgerItem, error) {
	itemsByEntry, err := r.findItemsForEntries(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}
	return itemsByEntry[entryID], nil
}

func (r *PgxLedgerRepository) findItemsForEntries(ctx context.Context, entryIDs []int64) (map[int64][]domain.LedgerItem, error) {
	if len(entryIDs) == 0 {
		return map[int64][]domain.LedgerItem{}, nil
	}
	query := `
		SELECT id, ledger_id, product_name, price, quantity, rx_number
		FROM ledger_items
		WHERE ledger_id = ANY($1)
		ORDER BY ledger_id, id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger items", err)
	}
	defer rows.Close()

	itemsByEntry := make(map[int64][]domain.LedgerItem)
	for rows.Next() {
		var m models.LedgerItem
		if err := rows.Scan(&m.ID, &m.LedgerID, &m.ProductName, &m.Price, &m.Quantity, &m.RxNumber); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger item row", err)
		}
		itemsByEntry[m.LedgerID] = append(itemsByEntry[m.LedgerID], mapping.ToDomainLedgerItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger item rows", err)
	}
	return itemsByEntry, nil
}

// ListEntriesForCustomer returns entries newest-first with creator names and,
// for NEW_DEBT entries, their items. Soft-deleted rows are always excluded;
// voided rows only when includeVoided.
func (r *PgxLedgerRepository) ListEntriesForCustomer(ctx context.Context, customerID int64, includeVoided bool) ([]domain.LedgerEntry, error) {
	query := `
		SELECT l.id, l.customer_id, l.entry_type, l.amount, l.balance_after, l.rx_number, l.description, l.notes,
			l.payment_method, l.reference_id, l.created_by, l.created_at, l.is_voided, l.voided_by, l.voided_at,
			l.void_reason, l.is_deleted, l.deleted_at, u.full_name
		FROM ledger l
		LEFT JOIN users u ON l.created_by = u.id
		WHERE l.customer_id = $1 AND l.is_deleted = FALSE AND ($2 OR l.is_voided = FALSE)
		ORDER BY l.created_at DESC, l.id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID, includeVoided)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query ledger for customer %d", customerID), err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	debtIDs := []int64{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.ID, &m.CustomerID, &m.EntryType, &m.Amount, &m.BalanceAfter, &m.RxNumber, &m.Description,
			&m.Notes, &m.PaymentMethod, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt, &m.IsVoided, &m.VoidedBy,
			&m.VoidedAt, &m.VoidReason, &m.IsDeleted, &m.DeletedAt, &m.CreatedByName,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		entry := mapping.ToDomainLedgerEntry(m)
		if entry.EntryType == domain.EntryNewDebt {
			debtIDs = append(debtIDs, entry.ID)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}

	itemsByEntry, err := r.findItemsForEntries(ctx, debtIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].EntryType == domain.EntryNewDebt {
			entries[i].Items = itemsByEntry[entries[i].ID]
		}
	}
	return entries, nil
}

// Balance returns the customer's current balance.
func (r *PgxLedgerRepository) Balance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, balanceQuery, customerID).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, fmt.Sprintf("failed to compute balance for customer %d", customerID), err)
	}
	return balance, nil
}

// UpdateEntry rewrites an entry's amount and notes, optionally replaces its
// items wholesale, and recalculates balance_after for the entry and every
// later entry of the customer, all in one transaction.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entryID int64, amount decimal.Decimal, notes string, items []domain.LedgerItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var customerID int64
	var entryType string
	var oldAmount decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT customer_id, entry_type, amount FROM ledger WHERE id = $1 FOR UPDATE`, entryID).
		Scan(&customerID, &entryType, &oldAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to lock ledger entry %d", entryID), err)
	}

	_, err = tx.Exec(ctx, `UPDATE ledger SET amount = $2, notes = NULLIF($3, '') WHERE id = $1`, entryID, amount, notes)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update ledger entry %d", entryID), err)
	}

	if items != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM ledger_items WHERE ledger_id = $1`, entryID); err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to clear items for ledger entry %d", entryID), err)
		}
		if err := insertItemsTx(ctx, tx, entryID, items); err != nil {
			return err
		}
	}

	if err := r.recalculateFromTx(ctx, tx, customerID, entryID, domain.EntryType(entryType), amount); err != nil {
		return err
	}

	audit := domain.AuditRecord{
		Action:    "EDIT_ENTRY",
		TableName: "ledger",
		RecordID:  entryID,
		OldValues: "Amount: " + oldAmount.StringFixed(2),
		NewValues: "Amount: " + amount.StringFixed(2),
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// recalculateFromTx rewrites balance_after for the edited entry and everything
// after it. Ordering is by insertion id: created_at may be backdated and
// cannot be trusted as a sequence.
func (r *PgxLedgerRepository) recalculateFromTx(ctx context.Context, tx pgx.Tx, customerID, entryID int64, entryType domain.EntryType, amount decimal.Decimal) error {
	var balanceBefore decimal.Decimal
	beforeQuery := balanceQuery + ` AND id < $2`
	if err := tx.QueryRow(ctx, beforeQuery, customerID, entryID).Scan(&balanceBefore); err != nil {
		return apperrors.NewAppError(500, "failed to compute balance before edited entry", err)
	}

	signed, err := accounting.SignedAmount(entryType, amount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to sign edited entry amount", err)
	}
	balanceAfter := balanceBefore.Add(signed)

	if _, err := tx.Exec(ctx, `UPDATE ledger SET balance_after = $2 WHERE id = $1`, entryID, balanceAfter); err != nil {
		return apperrors.NewAppError(500, "failed to rewrite edited entry balance", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT id, entry_type, amount FROM ledger WHERE customer_id = $1 AND id > $2 ORDER BY id ASC`,
		customerID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query subsequent ledger entries", err)
	}
	later := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		var entryType string
		if err := rows.Scan(&e.ID, &entryType, &e.Amount); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan subsequent ledger entry", err)
		}
		e.EntryType = domain.EntryType(entryType)
		later = append(later, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating subsequent ledger entries", err)
	}

	snapshots, err := accounting.Recalculate(balanceAfter, later)
	if err != nil {
		return apperrors.NewAppError(500, "failed to recalculate balances", err)
	}

	batch := &pgx.Batch{}
	for i, e := range later {
		batch.Queue(`UPDATE ledger SET balance_after = $2 WHERE id = $1`, e.ID, snapshots[i])
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to write recalculated balances", err)
	}
	return nil
}

// SetVoided marks an entry voided. Balance is untouched: voiding is a
// visibility toggle, not a reversal.
func (r *PgxLedgerRepository) SetVoided(ctx context.Context, entryID int64, reason string, actorID *int64) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE ledger SET is_voided = TRUE, voided_by = $2, voided_at = NOW(), void_reason = $3
		WHERE id = $1 AND is_voided = FALSE;
	`, entryID, actorID, reason)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to void ledger entry %d", entryID), err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	audit := domain.AuditRecord{
		UserID:    actorID,
		Action:    "VOID_ENTRY",
		TableName: "ledger",
		RecordID:  entryID,
		NewValues: "Reason: " + reason,
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return false, err
	}
	return true, r.Commit(ctx, tx)
}

// SetUnvoided clears the void flag and its metadata.
func (r *PgxLedgerRepository) SetUnvoided(ctx context.Context, entryID int64, actorID *int64) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE ledger SET is_voided = FALSE, voided_by = NULL, voided_at = NULL, void_reason = NULL
		WHERE id = $1 AND is_voided = TRUE;
	`, entryID)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to unvoid ledger entry %d", entryID), err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	audit := domain.AuditRecord{
		UserID:    actorID,
		Action:    "UNVOID_ENTRY",
		TableName: "ledger",
		RecordID:  entryID,
		NewValues: "Entry restored",
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return false, err
	}
	return true, r.Commit(ctx, tx)
}

// SetDeleted soft-deletes an entry. The row stays and keeps counting toward
// the balance; there is no undelete.
func (r *PgxLedgerRepository) SetDeleted(ctx context.Context, entryID int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ledger SET is_deleted = TRUE, deleted_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE;
	`, entryID)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to delete ledger entry %d", entryID), err)
	}
	return tag.RowsAffected() > 0, nil
}
