package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/core/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry, items []domain.LedgerItem) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindItemsByEntryID(ctx context.Context, entryID int64) ([]domain.LedgerItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerItem), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesForCustomer(ctx context.Context, customerID int64, includeVoided bool) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, includeVoided)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Balance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entryID int64, amount decimal.Decimal, notes string, items []domain.LedgerItem) error {
	args := m.Called(ctx, entryID, amount, notes, items)
	return args.Error(0)
}

func (m *MockLedgerRepository) SetVoided(ctx context.Context, entryID int64, reason string, actorID *int64) (bool, error) {
	args := m.Called(ctx, entryID, reason, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) SetUnvoided(ctx context.Context, entryID int64, actorID *int64) (bool, error) {
	args := m.Called(ctx, entryID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) SetDeleted(ctx context.Context, entryID int64) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeactivateCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.LedgerSvcFacade
	ctx              context.Context

	activeCustomer   *domain.Customer
	inactiveCustomer *domain.Customer
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockCustomerRepo)
	suite.ctx = context.Background()

	suite.activeCustomer = &domain.Customer{
		ID:          1,
		Name:        "Maria Lopez",
		CreditLimit: decimal.NewFromInt(500),
		IsActive:    true,
	}
	suite.inactiveCustomer = &domain.Customer{
		ID:       2,
		Name:     "Closed Account",
		IsActive: false,
	}
}

func (suite *LedgerServiceTestSuite) TestAddDebt_SumsItems() {
	req := dto.AddDebtRequest{
		Items: []dto.ItemInput{
			{ProductName: "Amoxicillin", Price: decimal.NewFromInt(10), Quantity: 2},
			{ProductName: "Bandages", Price: decimal.NewFromInt(5)},
		},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryNewDebt && e.Amount.Equal(decimal.NewFromInt(25))
	}), mock.AnythingOfType("[]domain.LedgerItem")).Return(&domain.LedgerEntry{
		ID:           10,
		CustomerID:   1,
		EntryType:    domain.EntryNewDebt,
		Amount:       decimal.NewFromInt(25),
		BalanceAfter: decimal.NewFromInt(25),
	}, nil)

	entry, err := suite.service.AddDebt(suite.ctx, 1, req, nil)

	suite.Require().NoError(err)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(25)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddDebt_BackdatedDate() {
	req := dto.AddDebtRequest{
		Items:    []dto.ItemInput{{ProductName: "Vitamins", Price: decimal.NewFromInt(8), Quantity: 1}},
		DebtDate: "2026-01-15",
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		y, m, d := e.CreatedAt.Date()
		return y == 2026 && m == time.January && d == 15
	}), mock.Anything).Return(&domain.LedgerEntry{ID: 11}, nil)

	_, err := suite.service.AddDebt(suite.ctx, 1, req, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddDebt_InactiveCustomer() {
	req := dto.AddDebtRequest{
		Items: []dto.ItemInput{{ProductName: "Aspirin", Price: decimal.NewFromInt(3), Quantity: 1}},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(2)).Return(suite.inactiveCustomer, nil)

	_, err := suite.service.AddDebt(suite.ctx, 2, req, nil)

	suite.ErrorIs(err, apperrors.ErrInactiveCustomer)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry")
}

func (suite *LedgerServiceTestSuite) TestAddDebt_CustomerNotFound() {
	req := dto.AddDebtRequest{
		Items: []dto.ItemInput{{ProductName: "Aspirin", Price: decimal.NewFromInt(3), Quantity: 1}},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(99)).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.AddDebt(suite.ctx, 99, req, nil)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestAddDebt_RejectsNonPositiveItemPrice() {
	req := dto.AddDebtRequest{
		Items: []dto.ItemInput{{ProductName: "Free sample", Price: decimal.Zero, Quantity: 1}},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)

	_, err := suite.service.AddDebt(suite.ctx, 1, req, nil)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry")
}

func (suite *LedgerServiceTestSuite) TestAddPayment_DefaultsToCash() {
	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(10)}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("Balance", suite.ctx, int64(1)).Return(decimal.NewFromInt(40), nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryPayment && e.PaymentMethod == domain.PayCash
	}), mock.Anything).Return(&domain.LedgerEntry{ID: 12, BalanceAfter: decimal.NewFromInt(30)}, nil)

	entry, err := suite.service.AddPayment(suite.ctx, 1, req, nil)

	suite.Require().NoError(err)
	suite.True(entry.BalanceAfter.Equal(decimal.NewFromInt(30)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddPayment_RejectsWhenNoDebt() {
	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(10)}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("Balance", suite.ctx, int64(1)).Return(decimal.Zero, nil)

	_, err := suite.service.AddPayment(suite.ctx, 1, req, nil)

	suite.ErrorIs(err, apperrors.ErrExceedsDebt)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry")
}

func (suite *LedgerServiceTestSuite) TestAddPayment_RejectsOverpayment() {
	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(50)}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("Balance", suite.ctx, int64(1)).Return(decimal.NewFromInt(40), nil)

	_, err := suite.service.AddPayment(suite.ctx, 1, req, nil)

	suite.ErrorIs(err, apperrors.ErrExceedsDebt)
}

func (suite *LedgerServiceTestSuite) TestAddPayment_RejectsNonPositiveAmount() {
	req := dto.AddPaymentRequest{Amount: decimal.NewFromInt(-5)}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)

	_, err := suite.service.AddPayment(suite.ctx, 1, req, nil)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestWriteOff_RecordsReason() {
	req := dto.WriteOffRequest{Amount: decimal.NewFromInt(15), Reason: "Uncollectable"}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryWriteOff && e.Notes == "Uncollectable"
	}), mock.Anything).Return(&domain.LedgerEntry{ID: 13}, nil)

	_, err := suite.service.WriteOff(suite.ctx, 1, req, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestWriteOff_AcceptsDeactivatedCustomer() {
	// Settling a closed account's books is the main use of a write-off, so
	// corrections skip the active check that guards debts and payments.
	req := dto.WriteOffRequest{Amount: decimal.NewFromInt(25), Reason: "Account closed"}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(2)).Return(suite.inactiveCustomer, nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryWriteOff && e.CustomerID == 2
	}), mock.Anything).Return(&domain.LedgerEntry{ID: 15, CustomerID: 2, EntryType: domain.EntryWriteOff}, nil)

	entry, err := suite.service.WriteOff(suite.ctx, 2, req, nil)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryWriteOff, entry.EntryType)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddRefund_AcceptsDeactivatedCustomer() {
	req := dto.AddRefundRequest{Amount: decimal.NewFromInt(5), Reason: "Returned goods"}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(2)).Return(suite.inactiveCustomer, nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryRefund && e.CustomerID == 2
	}), mock.Anything).Return(&domain.LedgerEntry{ID: 16, CustomerID: 2, EntryType: domain.EntryRefund}, nil)

	_, err := suite.service.AddRefund(suite.ctx, 2, req, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddAdjustment_CarriesReference() {
	refID := int64(7)
	req := dto.AddAdjustmentRequest{Amount: decimal.NewFromInt(5), Reason: "Price correction", ReferenceID: &refID}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("AppendEntry", suite.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryAdjustment && e.ReferenceID != nil && *e.ReferenceID == refID
	}), mock.Anything).Return(&domain.LedgerEntry{ID: 14}, nil)

	_, err := suite.service.AddAdjustment(suite.ctx, 1, req, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestEditDebtEntry_RejectsOtherTypes() {
	payment := &domain.LedgerEntry{ID: 20, EntryType: domain.EntryPayment}
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, int64(20)).Return(payment, nil)

	err := suite.service.EditDebtEntry(suite.ctx, 20, dto.EditDebtRequest{
		Items: []dto.ItemInput{{ProductName: "Aspirin", Price: decimal.NewFromInt(3), Quantity: 1}},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "UpdateEntry")
}

func (suite *LedgerServiceTestSuite) TestEditDebtEntry_RecomputesAmountFromItems() {
	debt := &domain.LedgerEntry{ID: 21, EntryType: domain.EntryNewDebt, Amount: decimal.NewFromInt(25)}
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, int64(21)).Return(debt, nil)
	suite.mockLedgerRepo.On("UpdateEntry", suite.ctx, int64(21),
		mock.MatchedBy(func(amount decimal.Decimal) bool { return amount.Equal(decimal.NewFromInt(40)) }),
		"", mock.AnythingOfType("[]domain.LedgerItem")).Return(nil)

	err := suite.service.EditDebtEntry(suite.ctx, 21, dto.EditDebtRequest{
		Items: []dto.ItemInput{{ProductName: "Amoxicillin", Price: decimal.NewFromInt(20), Quantity: 2}},
	})

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestEditPaymentEntry_NoItemReplacement() {
	payment := &domain.LedgerEntry{ID: 22, EntryType: domain.EntryPayment, Amount: decimal.NewFromInt(10)}
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, int64(22)).Return(payment, nil)
	suite.mockLedgerRepo.On("UpdateEntry", suite.ctx, int64(22),
		mock.MatchedBy(func(amount decimal.Decimal) bool { return amount.Equal(decimal.NewFromInt(12)) }),
		"typo fix", mock.Anything).Run(func(args mock.Arguments) {
		suite.Nil(args.Get(4))
	}).Return(nil)

	err := suite.service.EditPaymentEntry(suite.ctx, 22, dto.EditPaymentRequest{
		Amount: decimal.NewFromInt(12),
		Notes:  "typo fix",
	})

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_IdempotentSecondCall() {
	entry := &domain.LedgerEntry{ID: 30, EntryType: domain.EntryNewDebt, IsVoided: true}
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, int64(30)).Return(entry, nil)
	suite.mockLedgerRepo.On("SetVoided", suite.ctx, int64(30), "duplicate", (*int64)(nil)).Return(false, nil)

	voided, err := suite.service.VoidEntry(suite.ctx, 30, "duplicate", nil)

	suite.Require().NoError(err)
	suite.False(voided)
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_NotFound() {
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, int64(99)).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.VoidEntry(suite.ctx, 99, "nope", nil)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_ReportsAlreadyDeleted() {
	entry := &domain.LedgerEntry{ID: 31, EntryType: domain.EntryPayment, IsDeleted: true}
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, int64(31)).Return(entry, nil)
	suite.mockLedgerRepo.On("SetDeleted", suite.ctx, int64(31)).Return(false, nil)

	deleted, err := suite.service.DeleteEntry(suite.ctx, 31)

	suite.Require().NoError(err)
	suite.False(deleted)
}

func (suite *LedgerServiceTestSuite) TestCheckCreditLimit_OverLimit() {
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("Balance", suite.ctx, int64(1)).Return(decimal.NewFromInt(450), nil)

	check, err := suite.service.CheckCreditLimit(suite.ctx, 1, decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.False(check.Allowed)
	suite.True(check.OverBy.Equal(decimal.NewFromInt(50)))
	suite.True(check.Available.Equal(decimal.NewFromInt(50)))
}

func (suite *LedgerServiceTestSuite) TestCheckCreditLimit_NoLimitConfigured() {
	noLimit := &domain.Customer{ID: 3, Name: "No Limit", CreditLimit: decimal.Zero, IsActive: true}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(3)).Return(noLimit, nil)
	suite.mockLedgerRepo.On("Balance", suite.ctx, int64(3)).Return(decimal.NewFromInt(1000), nil)

	check, err := suite.service.CheckCreditLimit(suite.ctx, 3, decimal.NewFromInt(500))

	suite.Require().NoError(err)
	suite.True(check.Allowed)
}

func (suite *LedgerServiceTestSuite) TestGetBalance_PassesThrough() {
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(suite.activeCustomer, nil)
	suite.mockLedgerRepo.On("Balance", suite.ctx, int64(1)).Return(decimal.RequireFromString("37.50"), nil)

	balance, err := suite.service.GetBalance(suite.ctx, 1)

	suite.Require().NoError(err)
	assert.True(suite.T(), balance.Equal(decimal.RequireFromString("37.50")))
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
