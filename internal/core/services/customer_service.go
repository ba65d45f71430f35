package services

import (
	"context"
	"log/slog"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/shopspring/decimal"
)

type customerService struct {
	customerRepo       portsrepo.CustomerRepository
	defaultCreditLimit decimal.Decimal
}

// NewCustomerService creates the customer account service.
func NewCustomerService(customerRepo portsrepo.CustomerRepository, defaultCreditLimit decimal.Decimal) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo, defaultCreditLimit: defaultCreditLimit}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creditLimit := s.defaultCreditLimit
	if req.CreditLimit != nil {
		creditLimit = *req.CreditLimit
	}
	gracePeriod := 30
	if req.GracePeriodDays != nil {
		gracePeriod = *req.GracePeriodDays
	}

	customer := domain.Customer{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		CreditLimit:     creditLimit,
		GracePeriodDays: gracePeriod,
		Notes:           req.Notes,
	}
	created, err := s.customerRepo.CreateCustomer(ctx, customer)
	if err != nil {
		logger.Error("Failed to create customer", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}
	logger.Info("Customer created", slog.Int64("customer_id", created.ID))
	return created, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx)
}

func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	if query == "" {
		return s.customerRepo.ListCustomers(ctx)
	}
	return s.customerRepo.SearchCustomers(ctx, query)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.Notes = req.Notes
	if req.CreditLimit != nil {
		existing.CreditLimit = *req.CreditLimit
	}
	if req.GracePeriodDays != nil {
		existing.GracePeriodDays = *req.GracePeriodDays
	}

	if err := s.customerRepo.UpdateCustomer(ctx, *existing); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.Int64("customer_id", customerID))
		return nil, err
	}
	logger.Info("Customer updated", slog.Int64("customer_id", customerID))
	return existing, nil
}

func (s *customerService) DeactivateCustomer(ctx context.Context, customerID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}
	if err := s.customerRepo.DeactivateCustomer(ctx, customerID); err != nil {
		logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.Int64("customer_id", customerID))
		return err
	}
	logger.Info("Customer deactivated", slog.Int64("customer_id", customerID))
	return nil
}
