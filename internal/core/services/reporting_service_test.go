package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) CustomersWithDebt(ctx context.Context) ([]domain.CustomerDebtRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerDebtRow), args.Error(1)
}

func (m *MockReportingRepository) DailyReconciliation(ctx context.Context, date string) (*domain.DailyReconciliation, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyReconciliation), args.Error(1)
}

func (m *MockReportingRepository) TransactionsByDate(ctx context.Context, startDate, endDate string, customerID *int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, startDate, endDate, customerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}

func (m *MockReportingRepository) RecentActivity(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockReportingRepository) OverdueCustomers(ctx context.Context, days int) ([]domain.CustomerDebtRow, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerDebtRow), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Insert(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditRecords(ctx context.Context, limit int, userID *int64, tableName string) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, limit, userID, tableName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAuditRepo     *MockAuditRepository
	service           portssvc.ReportingSvcFacade
	ctx               context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAuditRepo)
	suite.ctx = context.Background()
}

func daysAgo(n int) *time.Time {
	t := time.Now().AddDate(0, 0, -n)
	return &t
}

func (suite *ReportingServiceTestSuite) TestAgingReport_BucketsByOldestDebt() {
	debtors := []domain.CustomerDebtRow{
		{Customer: domain.Customer{ID: 1, Name: "Fresh"}, Debt: decimal.NewFromInt(100), OldestDebtDate: daysAgo(10)},
		{Customer: domain.Customer{ID: 2, Name: "Aging"}, Debt: decimal.NewFromInt(200), OldestDebtDate: daysAgo(45)},
		{Customer: domain.Customer{ID: 3, Name: "Stale"}, Debt: decimal.NewFromInt(300), OldestDebtDate: daysAgo(75)},
		{Customer: domain.Customer{ID: 4, Name: "Ancient"}, Debt: decimal.NewFromInt(400), OldestDebtDate: daysAgo(120)},
	}
	suite.mockReportingRepo.On("CustomersWithDebt", suite.ctx).Return(debtors, nil)

	report, err := suite.service.AgingReport(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(report, 4)
	suite.True(report[0].Days0To30.Equal(decimal.NewFromInt(100)))
	suite.True(report[1].Days31To60.Equal(decimal.NewFromInt(200)))
	suite.True(report[2].Days61To90.Equal(decimal.NewFromInt(300)))
	suite.True(report[3].Days90Plus.Equal(decimal.NewFromInt(400)))
	// The whole balance lands in exactly one bucket.
	suite.True(report[3].Days0To30.IsZero())
	suite.True(report[3].Days31To60.IsZero())
	suite.True(report[3].Days61To90.IsZero())
}

func (suite *ReportingServiceTestSuite) TestAgingReport_NoOldestDateLeavesBucketsEmpty() {
	debtors := []domain.CustomerDebtRow{
		{Customer: domain.Customer{ID: 5, Name: "Adjusted Only"}, Debt: decimal.NewFromInt(50)},
	}
	suite.mockReportingRepo.On("CustomersWithDebt", suite.ctx).Return(debtors, nil)

	report, err := suite.service.AgingReport(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(report, 1)
	suite.True(report[0].TotalDebt.Equal(decimal.NewFromInt(50)))
	suite.True(report[0].Days0To30.IsZero())
	suite.True(report[0].Days31To60.IsZero())
	suite.True(report[0].Days61To90.IsZero())
	suite.True(report[0].Days90Plus.IsZero())
}

func (suite *ReportingServiceTestSuite) TestOverLimitCustomers() {
	debtors := []domain.CustomerDebtRow{
		{Customer: domain.Customer{ID: 1, CreditLimit: decimal.NewFromInt(100)}, Debt: decimal.NewFromInt(150)},
		{Customer: domain.Customer{ID: 2, CreditLimit: decimal.NewFromInt(500)}, Debt: decimal.NewFromInt(150)},
		{Customer: domain.Customer{ID: 3, CreditLimit: decimal.Zero}, Debt: decimal.NewFromInt(9999)},
	}
	suite.mockReportingRepo.On("CustomersWithDebt", suite.ctx).Return(debtors, nil)

	over, err := suite.service.OverLimitCustomers(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(over, 1)
	suite.Equal(int64(1), over[0].ID)
}

func (suite *ReportingServiceTestSuite) TestDailyReconciliation_DefaultsToToday() {
	today := time.Now().Format("2006-01-02")
	suite.mockReportingRepo.On("DailyReconciliation", suite.ctx, today).
		Return(&domain.DailyReconciliation{Date: today}, nil)

	rec, err := suite.service.DailyReconciliation(suite.ctx, "")

	suite.Require().NoError(err)
	suite.Equal(today, rec.Date)
}

func (suite *ReportingServiceTestSuite) TestRecentActivity_ClampsLimit() {
	suite.mockReportingRepo.On("RecentActivity", suite.ctx, 20).Return([]domain.LedgerEntry{}, nil)

	_, err := suite.service.RecentActivity(suite.ctx, -5)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
