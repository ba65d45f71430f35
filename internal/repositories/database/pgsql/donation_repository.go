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

type PgxDonationRepository struct {
	BaseRepository
}

func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepository {
	return &PgxDonationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonationRepository = (*PgxDonationRepository)(nil)

// donationColumns joins in the derived used/remaining amounts so every read
// carries them.
const donationColumns = `
	d.id, d.amount, d.donor_name, d.notes, d.is_active, d.created_at,
	COALESCE(u.used, 0) AS amount_used,
	d.amount - COALESCE(u.used, 0) AS amount_remaining
`

const donationFrom = `
	FROM donations d
	LEFT JOIN (
		SELECT donation_id, SUM(amount_used) AS used
		FROM donation_usage
		GROUP BY donation_id
	) u ON u.donation_id = d.id
`

func scanDonation(row pgx.Row) (models.Donation, error) {
	var m models.Donation
	err := row.Scan(&m.ID, &m.Amount, &m.DonorName, &m.Notes, &m.IsActive, &m.CreatedAt,
		&m.AmountUsed, &m.AmountRemaining)
	return m, err
}

func (r *PgxDonationRepository) CreateDonation(ctx context.Context, donation domain.Donation) (*domain.Donation, error) {
	var id int64
	query := `
		INSERT INTO donations (amount, donor_name, notes, is_active)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), TRUE)
		RETURNING id;
	`
	if err := r.Pool.QueryRow(ctx, query, donation.Amount, donation.DonorName, donation.Notes).Scan(&id); err != nil {
		return nil, apperrors.NewAppError(500, "failed to create donation", err)
	}
	return r.FindDonationByID(ctx, id)
}

func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, donationID int64) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + donationFrom + ` WHERE d.id = $1;`
	m, err := scanDonation(r.Pool.QueryRow(ctx, query, donationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find donation %d", donationID), err)
	}
	d := mapping.ToDomainDonation(m)
	return &d, nil
}

func (r *PgxDonationRepository) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + donationFrom + ` ORDER BY d.created_at DESC, d.id DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query donations", err)
	}
	defer rows.Close()

	donations := []domain.Donation{}
	for rows.Next() {
		m, err := scanDonation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan donation row", err)
		}
		donations = append(donations, mapping.ToDomainDonation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating donation rows", err)
	}
	return donations, nil
}

// UseDonation debits the pool and posts a CASH payment to the customer's
// ledger in one transaction. Remaining funds and the customer's balance are
// re-checked after locking the donation row, so two concurrent usages cannot
// overdraw the pool.
func (r *PgxDonationRepository) UseDonation(ctx context.Context, donationID, customerID int64, amount decimal.Decimal, notes string) (*domain.DonationUsage, int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Rollback(ctx, tx)

	var donorName *string
	var total decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT donor_name, amount FROM donations WHERE id = $1 AND is_active = TRUE FOR UPDATE`,
		donationID).Scan(&donorName, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrNotFound
		}
		return nil, 0, apperrors.NewAppError(500, fmt.Sprintf("failed to lock donation %d", donationID), err)
	}

	var used decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_used), 0) FROM donation_usage WHERE donation_id = $1`,
		donationID).Scan(&used)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to compute donation usage", err)
	}
	if total.Sub(used).LessThan(amount) {
		return nil, 0, apperrors.ErrInsufficientFunds
	}

	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, balanceQuery, customerID).Scan(&balance); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to compute customer balance", err)
	}
	if balance.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(balance) {
		return nil, 0, apperrors.ErrExceedsDebt
	}

	signed, err := accounting.SignedAmount(domain.EntryPayment, amount)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to sign payment amount", err)
	}

	donor := "Anonymous"
	if donorName != nil && *donorName != "" {
		donor = *donorName
	}
	entryNotes := "Donation from " + donor
	if notes != "" {
		entryNotes += " - " + notes
	}

	var entryID int64
	entryQuery := `
		INSERT INTO ledger (customer_id, entry_type, amount, balance_after, notes, payment_method)
		VALUES ($1, 'PAYMENT', $2, $3, $4, 'CASH')
		RETURNING id;
	`
	if err := tx.QueryRow(ctx, entryQuery, customerID, amount, balance.Add(signed), entryNotes).Scan(&entryID); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to post donation payment entry", err)
	}

	usage := domain.DonationUsage{
		DonationID: donationID,
		CustomerID: customerID,
		AmountUsed: amount,
		Notes:      notes,
	}
	usageQuery := `
		INSERT INTO donation_usage (donation_id, customer_id, amount_used, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, created_at;
	`
	if err := tx.QueryRow(ctx, usageQuery, donationID, customerID, amount, notes).Scan(&usage.ID, &usage.CreatedAt); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to record donation usage", err)
	}

	audit := domain.AuditRecord{
		Action:    "USE_DONATION",
		TableName: "donation_usage",
		RecordID:  usage.ID,
		NewValues: fmt.Sprintf("Donation %d applied %s to customer %d", donationID, amount.StringFixed(2), customerID),
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return nil, 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}
	return &usage, entryID, nil
}

func (r *PgxDonationRepository) ListUsage(ctx context.Context, donationID *int64) ([]domain.DonationUsage, error) {
	query := `
		SELECT du.id, du.donation_id, du.customer_id, du.amount_used, du.notes, du.created_at,
			c.name, d.donor_name
		FROM donation_usage du
		JOIN customers c ON du.customer_id = c.id
		JOIN donations d ON du.donation_id = d.id
		WHERE $1::BIGINT IS NULL OR du.donation_id = $1
		ORDER BY du.created_at DESC, du.id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, donationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query donation usage", err)
	}
	defer rows.Close()

	usages := []domain.DonationUsage{}
	for rows.Next() {
		var m models.DonationUsage
		if err := rows.Scan(&m.ID, &m.DonationID, &m.CustomerID, &m.AmountUsed, &m.Notes, &m.CreatedAt,
			&m.CustomerName, &m.DonorName); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan donation usage row", err)
		}
		usages = append(usages, mapping.ToDomainDonationUsage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating donation usage rows", err)
	}
	return usages, nil
}

func (r *PgxDonationRepository) DonationTotals(ctx context.Context) (*domain.DonationTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM donations WHERE is_active = TRUE), 0),
			COALESCE((SELECT SUM(du.amount_used) FROM donation_usage du
				JOIN donations d ON du.donation_id = d.id WHERE d.is_active = TRUE), 0);
	`
	var totals domain.DonationTotals
	if err := r.Pool.QueryRow(ctx, query).Scan(&totals.TotalDonated, &totals.TotalUsed); err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute donation totals", err)
	}
	totals.TotalAvailable = totals.TotalDonated.Sub(totals.TotalUsed)
	return &totals, nil
}

func (r *PgxDonationRepository) ListDonorNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT donor_name FROM donations
		WHERE donor_name IS NOT NULL AND donor_name <> ''
		ORDER BY donor_name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query donor names", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan donor name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating donor names", err)
	}
	return names, nil
}
