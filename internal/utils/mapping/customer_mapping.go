package mapping

import (
	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/models"
)

// ToDomainCustomer converts a model Customer to a domain Customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		ID:              m.ID,
		Name:            m.Name,
		Phone:           strOrEmpty(m.Phone),
		Email:           strOrEmpty(m.Email),
		Address:         strOrEmpty(m.Address),
		CreditLimit:     m.CreditLimit,
		GracePeriodDays: m.GracePeriodDays,
		IsActive:        m.IsActive,
		Notes:           strOrEmpty(m.Notes),
		CreatedAt:       m.CreatedAt,
	}
}

// ToModelCustomer converts a domain Customer to a model Customer.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           strPtrOrNil(d.Phone),
		Email:           strPtrOrNil(d.Email),
		Address:         strPtrOrNil(d.Address),
		CreditLimit:     d.CreditLimit,
		GracePeriodDays: d.GracePeriodDays,
		IsActive:        d.IsActive,
		Notes:           strPtrOrNil(d.Notes),
		CreatedAt:       d.CreatedAt,
	}
}
