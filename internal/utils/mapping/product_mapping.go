package mapping

import (
	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ID:             m.ID,
		Name:           m.Name,
		Price:          m.Price,
		Category:       strOrEmpty(m.Category),
		IsPrescription: m.IsPrescription,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ID:             d.ID,
		Name:           d.Name,
		Price:          d.Price,
		Category:       strPtrOrNil(d.Category),
		IsPrescription: d.IsPrescription,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainAuditRecord converts a model AuditRecord to a domain AuditRecord.
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	var recordID int64
	if m.RecordID != nil {
		recordID = *m.RecordID
	}
	return domain.AuditRecord{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		TableName: strOrEmpty(m.TableName),
		RecordID:  recordID,
		OldValues: strOrEmpty(m.OldValues),
		NewValues: strOrEmpty(m.NewValues),
		IPAddress: strOrEmpty(m.IPAddress),
		CreatedAt: m.CreatedAt,
	}
}
