package mapping

import (
	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/models"
)

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		EntryType:     domain.EntryType(m.EntryType),
		Amount:        m.Amount,
		BalanceAfter:  m.BalanceAfter,
		RxNumber:      strOrEmpty(m.RxNumber),
		Description:   strOrEmpty(m.Description),
		Notes:         strOrEmpty(m.Notes),
		PaymentMethod: domain.PaymentMethod(strOrEmpty(m.PaymentMethod)),
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedByName: strOrEmpty(m.CreatedByName),
		CustomerName:  strOrEmpty(m.CustomerName),
		CreatedAt:     m.CreatedAt,
		IsVoided:      m.IsVoided,
		VoidedBy:      m.VoidedBy,
		VoidedAt:      m.VoidedAt,
		VoidReason:    strOrEmpty(m.VoidReason),
		IsDeleted:     m.IsDeleted,
		DeletedAt:     m.DeletedAt,
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		ID:            d.ID,
		CustomerID:    d.CustomerID,
		EntryType:     string(d.EntryType),
		Amount:        d.Amount,
		BalanceAfter:  d.BalanceAfter,
		RxNumber:      strPtrOrNil(d.RxNumber),
		Description:   strPtrOrNil(d.Description),
		Notes:         strPtrOrNil(d.Notes),
		PaymentMethod: strPtrOrNil(string(d.PaymentMethod)),
		ReferenceID:   d.ReferenceID,
		CreatedBy:     d.CreatedBy,
		CreatedAt:     d.CreatedAt,
		IsVoided:      d.IsVoided,
		VoidedBy:      d.VoidedBy,
		VoidedAt:      d.VoidedAt,
		VoidReason:    strPtrOrNil(d.VoidReason),
		IsDeleted:     d.IsDeleted,
		DeletedAt:     d.DeletedAt,
	}
}

// ToDomainLedgerItem converts a model LedgerItem to a domain LedgerItem.
func ToDomainLedgerItem(m models.LedgerItem) domain.LedgerItem {
	return domain.LedgerItem{
		ID:          m.ID,
		LedgerID:    m.LedgerID,
		ProductName: m.ProductName,
		Price:       m.Price,
		Quantity:    m.Quantity,
		RxNumber:    strOrEmpty(m.RxNumber),
	}
}

// ToDomainLedgerItemSlice converts model LedgerItems to domain LedgerItems.
func ToDomainLedgerItemSlice(ms []models.LedgerItem) []domain.LedgerItem {
	ds := make([]domain.LedgerItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerItem(m)
	}
	return ds
}
