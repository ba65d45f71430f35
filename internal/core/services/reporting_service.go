package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	auditRepo     portsrepo.AuditRepository
}

// NewReportingService creates the read-only reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, auditRepo portsrepo.AuditRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, auditRepo: auditRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error) {
	return s.reportingRepo.TotalOutstandingDebt(ctx)
}

func (s *reportingService) CustomersWithDebt(ctx context.Context) ([]domain.CustomerDebtRow, error) {
	return s.reportingRepo.CustomersWithDebt(ctx)
}

// AgingReport assigns each debtor's whole balance to one bucket based on the
// age of their oldest open debt.
func (s *reportingService) AgingReport(ctx context.Context) ([]domain.AgingRow, error) {
	debtors, err := s.reportingRepo.CustomersWithDebt(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := make([]domain.AgingRow, 0, len(debtors))
	for _, d := range debtors {
		row := domain.AgingRow{
			CustomerID: d.ID,
			Name:       d.Name,
			Phone:      d.Phone,
			TotalDebt:  d.Debt,
			Days0To30:  decimal.Zero,
			Days31To60: decimal.Zero,
			Days61To90: decimal.Zero,
			Days90Plus: decimal.Zero,
		}

		// No dateable open debt (every debt is referenced by a correction):
		// the total is reported but no bucket can claim it.
		if d.OldestDebtDate != nil {
			ageDays := int(now.Sub(*d.OldestDebtDate).Hours() / 24)
			switch {
			case ageDays <= 30:
				row.Days0To30 = d.Debt
			case ageDays <= 60:
				row.Days31To60 = d.Debt
			case ageDays <= 90:
				row.Days61To90 = d.Debt
			default:
				row.Days90Plus = d.Debt
			}
		}
		report = append(report, row)
	}
	return report, nil
}

func (s *reportingService) DailyReconciliation(ctx context.Context, date string) (*domain.DailyReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	rec, err := s.reportingRepo.DailyReconciliation(ctx, date)
	if err != nil {
		logger.Error("Failed to build daily reconciliation", slog.String("error", err.Error()), slog.String("date", date))
		return nil, err
	}
	return rec, nil
}

func (s *reportingService) TransactionsByDate(ctx context.Context, startDate, endDate string, customerID *int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.reportingRepo.TransactionsByDate(ctx, startDate, endDate, customerID, limit, nextToken)
}

func (s *reportingService) RecentActivity(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return s.reportingRepo.RecentActivity(ctx, limit)
}

func (s *reportingService) OverdueCustomers(ctx context.Context, days int) ([]domain.CustomerDebtRow, error) {
	if days <= 0 {
		days = 30
	}
	return s.reportingRepo.OverdueCustomers(ctx, days)
}

// OverLimitCustomers returns debtors whose balance exceeds their configured
// credit limit. Customers without a limit are never over it.
func (s *reportingService) OverLimitCustomers(ctx context.Context) ([]domain.CustomerDebtRow, error) {
	debtors, err := s.reportingRepo.CustomersWithDebt(ctx)
	if err != nil {
		return nil, err
	}
	over := []domain.CustomerDebtRow{}
	for _, d := range debtors {
		if d.CreditLimit.IsPositive() && d.Debt.GreaterThan(d.CreditLimit) {
			over = append(over, d)
		}
	}
	return over, nil
}

func (s *reportingService) AuditTrail(ctx context.Context, limit int, userID *int64, tableName string) ([]domain.AuditRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.auditRepo.ListAuditRecords(ctx, limit, userID, tableName)
}
