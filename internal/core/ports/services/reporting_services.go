package services

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade serves derived read-only views over the ledger.
type ReportingSvcFacade interface {
	TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error)
	CustomersWithDebt(ctx context.Context) ([]domain.CustomerDebtRow, error)
	AgingReport(ctx context.Context) ([]domain.AgingRow, error)
	DailyReconciliation(ctx context.Context, date string) (*domain.DailyReconciliation, error)
	TransactionsByDate(ctx context.Context, startDate, endDate string, customerID *int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
	OverdueCustomers(ctx context.Context, days int) ([]domain.CustomerDebtRow, error)
	OverLimitCustomers(ctx context.Context) ([]domain.CustomerDebtRow, error)
	AuditTrail(ctx context.Context, limit int, userID *int64, tableName string) ([]domain.AuditRecord, error)
}

// BackupSvcFacade serializes and restores the full entity set.
type BackupSvcFacade interface {
	Snapshot(ctx context.Context) (*domain.BackupSnapshot, error)
	Restore(ctx context.Context, snapshot *domain.BackupSnapshot) error
}

// SettingsSvcFacade reads and writes application settings.
type SettingsSvcFacade interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
