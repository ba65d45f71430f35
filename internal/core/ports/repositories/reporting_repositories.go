package repositories

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository serves read-only derived views over the ledger. Reports
// exclude voided and soft-deleted rows (visibility filtering), but use the
// same signed-sum formula as the balance engine.
type ReportingRepository interface {
	// TotalOutstandingDebt sums visible entries across active customers.
	TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error)

	// CustomersWithDebt returns every active customer with balance, totals
	// and the oldest open debt date.
	CustomersWithDebt(ctx context.Context) ([]domain.CustomerDebtRow, error)

	// DailyReconciliation summarizes one day (YYYY-MM-DD) of visible activity.
	DailyReconciliation(ctx context.Context, date string) (*domain.DailyReconciliation, error)

	// TransactionsByDate lists visible entries in [startDate, endDate]
	// (YYYY-MM-DD, inclusive), newest first, cursor-paginated, optionally for
	// one customer.
	TransactionsByDate(ctx context.Context, startDate, endDate string, customerID *int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// RecentActivity returns the latest non-deleted entries with customer and
	// creator names, debt items attached.
	RecentActivity(ctx context.Context, limit int) ([]domain.LedgerEntry, error)

	// OverdueCustomers returns active customers owing money whose oldest open
	// debt is older than the given number of days.
	OverdueCustomers(ctx context.Context, days int) ([]domain.CustomerDebtRow, error)
}

// BackupRepository serializes and restores the full entity set.
type BackupRepository interface {
	Snapshot(ctx context.Context) (*domain.BackupSnapshot, error)
	// Restore imports a snapshot into an empty database in one transaction,
	// remapping old ids to newly assigned ids for every foreign key.
	Restore(ctx context.Context, snapshot *domain.BackupSnapshot) error
}
