package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation mirrors the donations table. AmountUsed and AmountRemaining are
// derived columns computed by the query, never stored.
type Donation struct {
	ID              int64
	Amount          decimal.Decimal
	DonorName       *string
	Notes           *string
	IsActive        bool
	CreatedAt       time.Time
	AmountUsed      decimal.Decimal
	AmountRemaining decimal.Decimal
}

// DonationUsage mirrors the donation_usage table.
type DonationUsage struct {
	ID         int64
	DonationID int64
	CustomerID int64
	AmountUsed decimal.Decimal
	Notes      *string
	CreatedAt  time.Time

	// Join columns populated by history queries.
	CustomerName *string
	DonorName    *string
}
