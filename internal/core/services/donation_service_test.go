package services_test

import (
	"context"
	"testing"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/core/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DonationRepository ---
type MockDonationRepository struct {
	mock.Mock
}

var _ portsrepo.DonationRepository = (*MockDonationRepository)(nil)

func (m *MockDonationRepository) CreateDonation(ctx context.Context, donation domain.Donation) (*domain.Donation, error) {
	args := m.Called(ctx, donation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, donationID int64) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) UseDonation(ctx context.Context, donationID, customerID int64, amount decimal.Decimal, notes string) (*domain.DonationUsage, int64, error) {
	args := m.Called(ctx, donationID, customerID, amount, notes)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.DonationUsage), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) ListUsage(ctx context.Context, donationID *int64) ([]domain.DonationUsage, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DonationUsage), args.Error(1)
}

func (m *MockDonationRepository) DonationTotals(ctx context.Context) (*domain.DonationTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonationTotals), args.Error(1)
}

func (m *MockDonationRepository) ListDonorNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Test Suite ---
type DonationServiceTestSuite struct {
	suite.Suite
	mockDonationRepo *MockDonationRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.DonationSvcFacade
	ctx              context.Context
}

func (suite *DonationServiceTestSuite) SetupTest() {
	suite.mockDonationRepo = new(MockDonationRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewDonationService(suite.mockDonationRepo, suite.mockCustomerRepo)
	suite.ctx = context.Background()
}

func (suite *DonationServiceTestSuite) TestCreateDonation_RejectsNonPositiveAmount() {
	_, err := suite.service.CreateDonation(suite.ctx, dto.CreateDonationRequest{Amount: decimal.Zero})

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "CreateDonation")
}

func (suite *DonationServiceTestSuite) TestUseDonation_Success() {
	customer := &domain.Customer{ID: 1, Name: "Maria Lopez", IsActive: true}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(customer, nil)
	suite.mockDonationRepo.On("UseDonation", suite.ctx, int64(5), int64(1),
		decimal.NewFromInt(20), "church fund").Return(&domain.DonationUsage{ID: 3}, int64(42), nil)

	resp, err := suite.service.UseDonation(suite.ctx, 5, dto.UseDonationRequest{
		CustomerID: 1,
		Amount:     decimal.NewFromInt(20),
		Notes:      "church fund",
	})

	suite.Require().NoError(err)
	suite.Equal(int64(3), resp.UsageID)
	suite.Equal(int64(42), resp.EntryID)
}

func (suite *DonationServiceTestSuite) TestUseDonation_InactiveCustomer() {
	customer := &domain.Customer{ID: 2, Name: "Closed Account", IsActive: false}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(2)).Return(customer, nil)

	_, err := suite.service.UseDonation(suite.ctx, 5, dto.UseDonationRequest{
		CustomerID: 2,
		Amount:     decimal.NewFromInt(20),
	})

	suite.ErrorIs(err, apperrors.ErrInactiveCustomer)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "UseDonation")
}

func (suite *DonationServiceTestSuite) TestUseDonation_PropagatesInsufficientFunds() {
	customer := &domain.Customer{ID: 1, Name: "Maria Lopez", IsActive: true}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(customer, nil)
	suite.mockDonationRepo.On("UseDonation", suite.ctx, int64(5), int64(1),
		decimal.NewFromInt(200), "").Return(nil, int64(0), apperrors.ErrInsufficientFunds)

	_, err := suite.service.UseDonation(suite.ctx, 5, dto.UseDonationRequest{
		CustomerID: 1,
		Amount:     decimal.NewFromInt(200),
	})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *DonationServiceTestSuite) TestUseDonation_PropagatesExceedsDebt() {
	customer := &domain.Customer{ID: 1, Name: "Maria Lopez", IsActive: true}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, int64(1)).Return(customer, nil)
	suite.mockDonationRepo.On("UseDonation", suite.ctx, int64(5), int64(1),
		decimal.NewFromInt(60), "").Return(nil, int64(0), apperrors.ErrExceedsDebt)

	_, err := suite.service.UseDonation(suite.ctx, 5, dto.UseDonationRequest{
		CustomerID: 1,
		Amount:     decimal.NewFromInt(60),
	})

	suite.ErrorIs(err, apperrors.ErrExceedsDebt)
}

func (suite *DonationServiceTestSuite) TestListAvailableDonations_FiltersSpentAndInactive() {
	donations := []domain.Donation{
		{ID: 1, IsActive: true, AmountRemaining: decimal.NewFromInt(50)},
		{ID: 2, IsActive: true, AmountRemaining: decimal.Zero},
		{ID: 3, IsActive: false, AmountRemaining: decimal.NewFromInt(10)},
	}
	suite.mockDonationRepo.On("ListDonations", suite.ctx).Return(donations, nil)

	available, err := suite.service.ListAvailableDonations(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(available, 1)
	suite.Equal(int64(1), available[0].ID)
}

func TestDonationService(t *testing.T) {
	suite.Run(t, new(DonationServiceTestSuite))
}
