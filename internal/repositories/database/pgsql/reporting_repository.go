package pgsql

import (
	"context"
	"fmt"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/creditkeep/creditkeep/internal/models"
	"github.com/creditkeep/creditkeep/internal/utils/accounting"
	"github.com/creditkeep/creditkeep/internal/utils/mapping"
	"github.com/creditkeep/creditkeep/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// visibleFilter hides voided and soft-deleted rows from reports. Balance
// queries never apply it.
const visibleFilter = `is_voided = FALSE AND is_deleted = FALSE`

// customerDebtQuery aggregates visible entries per active customer using the
// same signed-sum formula the balance engine uses. oldest_debt_date is the
// earliest visible NEW_DEBT not referenced by any later entry.
const customerDebtQuery = `
	SELECT c.id, c.name, c.phone, c.email, c.address, c.credit_limit, c.grace_period_days,
		c.is_active, c.notes, c.created_at,
		COALESCE(SUM(` + accounting.SignedSumSQL + `), 0) AS debt,
		COALESCE(SUM(CASE WHEN entry_type = 'NEW_DEBT' THEN amount ELSE 0 END), 0) AS total_debt_added,
		COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN amount ELSE 0 END), 0) AS total_paid,
		MIN(CASE WHEN entry_type = 'NEW_DEBT' AND l.id NOT IN (
			SELECT reference_id FROM ledger WHERE reference_id IS NOT NULL
		) THEN l.created_at END) AS oldest_debt_date
	FROM customers c
	JOIN ledger l ON l.customer_id = c.id AND l.` + visibleFilter + `
	WHERE c.is_active = TRUE
	GROUP BY c.id
	HAVING COALESCE(SUM(` + accounting.SignedSumSQL + `), 0) > 0
`

func scanCustomerDebtRow(rows pgx.Rows) (domain.CustomerDebtRow, error) {
	var m models.Customer
	var row domain.CustomerDebtRow
	err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.CreditLimit,
		&m.GracePeriodDays, &m.IsActive, &m.Notes, &m.CreatedAt,
		&row.Debt, &row.TotalDebtAdded, &row.TotalPaid, &row.OldestDebtDate)
	if err != nil {
		return domain.CustomerDebtRow{}, err
	}
	row.Customer = mapping.ToDomainCustomer(m)
	return row, nil
}

func (r *PgxReportingRepository) queryDebtRows(ctx context.Context, query string, args ...any) ([]domain.CustomerDebtRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customer debt rows", err)
	}
	defer rows.Close()

	result := []domain.CustomerDebtRow{}
	for rows.Next() {
		row, err := scanCustomerDebtRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer debt row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer debt rows", err)
	}
	return result, nil
}

func (r *PgxReportingRepository) TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debt), 0) FROM (
			SELECT SUM(` + accounting.SignedSumSQL + `) AS debt
			FROM ledger l
			JOIN customers c ON c.id = l.customer_id AND c.is_active = TRUE
			WHERE l.` + visibleFilter + `
			GROUP BY l.customer_id
			HAVING SUM(` + accounting.SignedSumSQL + `) > 0
		) t;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute total outstanding debt", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) CustomersWithDebt(ctx context.Context) ([]domain.CustomerDebtRow, error) {
	return r.queryDebtRows(ctx, customerDebtQuery+` ORDER BY debt DESC;`)
}

func (r *PgxReportingRepository) OverdueCustomers(ctx context.Context, days int) ([]domain.CustomerDebtRow, error) {
	query := customerDebtQuery + `
		AND MIN(CASE WHEN entry_type = 'NEW_DEBT' AND l.id NOT IN (
			SELECT reference_id FROM ledger WHERE reference_id IS NOT NULL
		) THEN l.created_at END) < NOW() - make_interval(days => $1)
		ORDER BY oldest_debt_date ASC;`
	return r.queryDebtRows(ctx, query, days)
}

func (r *PgxReportingRepository) DailyReconciliation(ctx context.Context, date string) (*domain.DailyReconciliation, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN entry_type = 'NEW_DEBT' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type = 'WRITE_OFF' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type IN ('ADJUSTMENT', 'REFUND') THEN amount ELSE 0 END), 0),
			COALESCE(SUM(` + accounting.SignedSumSQL + `), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE entry_type = 'NEW_DEBT'),
			COUNT(*) FILTER (WHERE entry_type = 'PAYMENT')
		FROM ledger
		WHERE created_at::DATE = $1::DATE AND ` + visibleFilter + `;
	`
	rec := domain.DailyReconciliation{Date: date}
	err := r.Pool.QueryRow(ctx, query, date).Scan(
		&rec.DebtAdded, &rec.Payments, &rec.WriteOffs, &rec.Adjustments, &rec.NetChange,
		&rec.TransactionCount, &rec.DebtCount, &rec.PaymentCount)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to reconcile %s", date), err)
	}
	return &rec, nil
}

// TransactionsByDate pages through visible entries of a date range, newest
// first. The cursor is the (created_at, id) pair of the last row returned.
func (r *PgxReportingRepository) TransactionsByDate(ctx context.Context, startDate, endDate string, customerID *int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `
		SELECT l.id, l.customer_id, l.entry_type, l.amount, l.balance_after, l.rx_number, l.description, l.notes,
			l.payment_method, l.reference_id, l.created_by, l.created_at, l.is_voided, l.voided_by, l.voided_at,
			l.void_reason, l.is_deleted, l.deleted_at, u.full_name, c.name
		FROM ledger l
		JOIN customers c ON l.customer_id = c.id
		LEFT JOIN users u ON l.created_by = u.id
		WHERE l.` + visibleFilter + `
			AND l.created_at >= $1::DATE AND l.created_at < $2::DATE + INTERVAL '1 day'
			AND ($3::BIGINT IS NULL OR l.customer_id = $3)
	`
	args := []any{startDate, endDate, customerID}
	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (l.created_at, l.id) < ($4, $5)`
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY l.created_at DESC, l.id DESC LIMIT %d;`, limit+1)

	entries, err := r.queryJoinedEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ID)
		newToken = &token
	}
	return entries, newToken, nil
}

func (r *PgxReportingRepository) RecentActivity(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT l.id, l.customer_id, l.entry_type, l.amount, l.balance_after, l.rx_number, l.description, l.notes,
			l.payment_method, l.reference_id, l.created_by, l.created_at, l.is_voided, l.voided_by, l.voided_at,
			l.void_reason, l.is_deleted, l.deleted_at, u.full_name, c.name
		FROM ledger l
		JOIN customers c ON l.customer_id = c.id
		LEFT JOIN users u ON l.created_by = u.id
		WHERE l.is_deleted = FALSE
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1;
	`
	entries, err := r.queryJoinedEntries(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return entries, r.attachDebtItems(ctx, entries)
}

func (r *PgxReportingRepository) queryJoinedEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger report rows", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.ID, &m.CustomerID, &m.EntryType, &m.Amount, &m.BalanceAfter, &m.RxNumber, &m.Description,
			&m.Notes, &m.PaymentMethod, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt, &m.IsVoided, &m.VoidedBy,
			&m.VoidedAt, &m.VoidReason, &m.IsDeleted, &m.DeletedAt, &m.CreatedByName, &m.CustomerName,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger report row", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger report rows", err)
	}
	return entries, nil
}

func (r *PgxReportingRepository) attachDebtItems(ctx context.Context, entries []domain.LedgerEntry) error {
	debtIDs := []int64{}
	for _, e := range entries {
		if e.EntryType == domain.EntryNewDebt {
			debtIDs = append(debtIDs, e.ID)
		}
	}
	if len(debtIDs) == 0 {
		return nil
	}

	query := `
		SELECT id, ledger_id, product_name, price, quantity, rx_number
		FROM ledger_items
		WHERE ledger_id = ANY($1)
		ORDER BY ledger_id, id;
	`
	rows, err := r.Pool.Query(ctx, query, debtIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query report items", err)
	}
	defer rows.Close()

	itemsByEntry := map[int64][]domain.LedgerItem{}
	for rows.Next() {
		var m models.LedgerItem
		if err := rows.Scan(&m.ID, &m.LedgerID, &m.ProductName, &m.Price, &m.Quantity, &m.RxNumber); err != nil {
			return apperrors.NewAppError(500, "failed to scan report item row", err)
		}
		itemsByEntry[m.LedgerID] = append(itemsByEntry[m.LedgerID], mapping.ToDomainLedgerItem(m))
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating report item rows", err)
	}

	for i := range entries {
		if entries[i].EntryType == domain.EntryNewDebt {
			entries[i].Items = itemsByEntry[entries[i].ID]
		}
	}
	return nil
}
