package services

import (
	"context"
	"log/slog"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
)

type donationService struct {
	donationRepo portsrepo.DonationRepository
	customerRepo portsrepo.CustomerRepository
}

// NewDonationService creates the donation pool service.
func NewDonationService(donationRepo portsrepo.DonationRepository, customerRepo portsrepo.CustomerRepository) portssvc.DonationSvcFacade {
	return &donationService{donationRepo: donationRepo, customerRepo: customerRepo}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

func (s *donationService) CreateDonation(ctx context.Context, req dto.CreateDonationRequest) (*domain.Donation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	donation := domain.Donation{
		Amount:    req.Amount,
		DonorName: req.DonorName,
		Notes:     req.Notes,
	}
	created, err := s.donationRepo.CreateDonation(ctx, donation)
	if err != nil {
		logger.Error("Failed to create donation", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Donation recorded", slog.Int64("donation_id", created.ID), slog.String("amount", created.Amount.StringFixed(2)))
	return created, nil
}

func (s *donationService) GetDonation(ctx context.Context, donationID int64) (*domain.Donation, error) {
	return s.donationRepo.FindDonationByID(ctx, donationID)
}

func (s *donationService) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	return s.donationRepo.ListDonations(ctx)
}

// ListAvailableDonations returns active donations with funds remaining.
func (s *donationService) ListAvailableDonations(ctx context.Context) ([]domain.Donation, error) {
	donations, err := s.donationRepo.ListDonations(ctx)
	if err != nil {
		return nil, err
	}
	available := []domain.Donation{}
	for _, d := range donations {
		if d.IsActive && d.AmountRemaining.IsPositive() {
			available = append(available, d)
		}
	}
	return available, nil
}

// UseDonation applies donation funds to a customer's debt. The repository
// performs the funds and balance checks inside the write transaction; this
// layer only vets the inputs.
func (s *donationService) UseDonation(ctx context.Context, donationID int64, req dto.UseDonationRequest) (*dto.UseDonationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, apperrors.ErrInactiveCustomer
	}

	usage, entryID, err := s.donationRepo.UseDonation(ctx, donationID, req.CustomerID, req.Amount, req.Notes)
	if err != nil {
		logger.Error("Failed to use donation", slog.String("error", err.Error()),
			slog.Int64("donation_id", donationID), slog.Int64("customer_id", req.CustomerID))
		return nil, err
	}
	logger.Info("Donation applied", slog.Int64("usage_id", usage.ID), slog.Int64("entry_id", entryID),
		slog.String("amount", req.Amount.StringFixed(2)))
	return &dto.UseDonationResponse{UsageID: usage.ID, EntryID: entryID}, nil
}

func (s *donationService) UsageHistory(ctx context.Context, donationID *int64) ([]domain.DonationUsage, error) {
	if donationID != nil {
		if _, err := s.donationRepo.FindDonationByID(ctx, *donationID); err != nil {
			return nil, err
		}
	}
	return s.donationRepo.ListUsage(ctx, donationID)
}

func (s *donationService) DonationTotals(ctx context.Context) (*domain.DonationTotals, error) {
	return s.donationRepo.DonationTotals(ctx)
}

func (s *donationService) DonorNames(ctx context.Context) ([]string, error) {
	return s.donationRepo.ListDonorNames(ctx)
}
