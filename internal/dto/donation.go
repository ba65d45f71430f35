package dto

import "github.com/shopspring/decimal"

type CreateDonationRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DonorName string          `json:"donorName"`
	Notes     string          `json:"notes"`
}

type UseDonationRequest struct {
	CustomerID int64           `json:"customerID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Notes      string          `json:"notes"`
}

// UseDonationResponse carries both halves of the coupled write.
type UseDonationResponse struct {
	UsageID int64 `json:"usageID"`
	EntryID int64 `json:"entryID"`
}
