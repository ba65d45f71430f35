package services

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the core ledger surface consumed by the web layer.
type LedgerSvcFacade interface {
	AddDebt(ctx context.Context, customerID int64, req dto.AddDebtRequest, actorID *int64) (*domain.LedgerEntry, error)
	AddPayment(ctx context.Context, customerID int64, req dto.AddPaymentRequest, actorID *int64) (*domain.LedgerEntry, error)
	AddAdjustment(ctx context.Context, customerID int64, req dto.AddAdjustmentRequest, actorID *int64) (*domain.LedgerEntry, error)
	AddRefund(ctx context.Context, customerID int64, req dto.AddRefundRequest, actorID *int64) (*domain.LedgerEntry, error)
	WriteOff(ctx context.Context, customerID int64, req dto.WriteOffRequest, actorID *int64) (*domain.LedgerEntry, error)

	EditDebtEntry(ctx context.Context, entryID int64, req dto.EditDebtRequest) error
	EditPaymentEntry(ctx context.Context, entryID int64, req dto.EditPaymentRequest) error

	VoidEntry(ctx context.Context, entryID int64, reason string, actorID *int64) (bool, error)
	UnvoidEntry(ctx context.Context, entryID int64, actorID *int64) (bool, error)
	DeleteEntry(ctx context.Context, entryID int64) (bool, error)

	GetBalance(ctx context.Context, customerID int64) (decimal.Decimal, error)
	ListForCustomer(ctx context.Context, customerID int64, includeVoided bool) ([]domain.LedgerEntry, error)
	CheckCreditLimit(ctx context.Context, customerID int64, additional decimal.Decimal) (*domain.CreditCheck, error)
}

// DonationSvcFacade manages donation pools and their application to debts.
type DonationSvcFacade interface {
	CreateDonation(ctx context.Context, req dto.CreateDonationRequest) (*domain.Donation, error)
	GetDonation(ctx context.Context, donationID int64) (*domain.Donation, error)
	ListDonations(ctx context.Context) ([]domain.Donation, error)
	ListAvailableDonations(ctx context.Context) ([]domain.Donation, error)
	UseDonation(ctx context.Context, donationID int64, req dto.UseDonationRequest) (*dto.UseDonationResponse, error)
	UsageHistory(ctx context.Context, donationID *int64) ([]domain.DonationUsage, error)
	DonationTotals(ctx context.Context) (*domain.DonationTotals, error)
	DonorNames(ctx context.Context) ([]string, error)
}
