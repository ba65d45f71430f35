package mapping

import (
	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/models"
)

// ToDomainDonation converts a model Donation to a domain Donation.
func ToDomainDonation(m models.Donation) domain.Donation {
	return domain.Donation{
		ID:              m.ID,
		Amount:          m.Amount,
		DonorName:       strOrEmpty(m.DonorName),
		Notes:           strOrEmpty(m.Notes),
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		AmountUsed:      m.AmountUsed,
		AmountRemaining: m.AmountRemaining,
	}
}

// ToDomainDonationUsage converts a model DonationUsage to a domain DonationUsage.
func ToDomainDonationUsage(m models.DonationUsage) domain.DonationUsage {
	return domain.DonationUsage{
		ID:           m.ID,
		DonationID:   m.DonationID,
		CustomerID:   m.CustomerID,
		AmountUsed:   m.AmountUsed,
		Notes:        strOrEmpty(m.Notes),
		CreatedAt:    m.CreatedAt,
		CustomerName: strOrEmpty(m.CustomerName),
		DonorName:    strOrEmpty(m.DonorName),
	}
}
