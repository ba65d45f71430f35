package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a pool of funds that can be applied to customer debts.
// AmountUsed and AmountRemaining are computed on read, never stored.
type Donation struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	DonorName       string          `json:"donorName,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AmountRemaining decimal.Decimal `json:"amountRemaining"`
}

// DonorDisplayName returns the donor's name, or "Anonymous" when blank.
func (d Donation) DonorDisplayName() string {
	if strings.TrimSpace(d.DonorName) == "" {
		return "Anonymous"
	}
	return d.DonorName
}

// DonationUsage records a debit against a donation's pool. Each usage is
// paired with a PAYMENT ledger entry posted to the customer in the same
// transaction.
type DonationUsage struct {
	ID           int64           `json:"id"`
	DonationID   int64           `json:"donationID"`
	CustomerID   int64           `json:"customerID"`
	AmountUsed   decimal.Decimal `json:"amountUsed"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CustomerName string          `json:"customerName,omitempty"`
	DonorName    string          `json:"donorName,omitempty"`
}
