package dto

import "github.com/creditkeep/creditkeep/internal/core/domain"

// TransactionsByDateResponse is one page of a date-range transaction listing.
type TransactionsByDateResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}
