package repositories

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DonationRepository is the persistence port for the donation sub-ledger.
// Donation reads always carry computed amount_used and amount_remaining.
type DonationRepository interface {
	CreateDonation(ctx context.Context, donation domain.Donation) (*domain.Donation, error)
	FindDonationByID(ctx context.Context, donationID int64) (*domain.Donation, error)
	ListDonations(ctx context.Context) ([]domain.Donation, error)

	// UseDonation debits the pool and posts a PAYMENT ledger entry for the
	// customer in one transaction. It re-checks remaining funds and the
	// customer balance inside that transaction, failing with
	// ErrInsufficientFunds or ErrExceedsDebt without writing anything.
	UseDonation(ctx context.Context, donationID, customerID int64, amount decimal.Decimal, notes string) (*domain.DonationUsage, int64, error)

	// ListUsage returns usage history, optionally restricted to one donation.
	ListUsage(ctx context.Context, donationID *int64) ([]domain.DonationUsage, error)

	DonationTotals(ctx context.Context) (*domain.DonationTotals, error)
	ListDonorNames(ctx context.Context) ([]string, error)
}
