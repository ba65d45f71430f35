package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item used to price debt line items.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category,omitempty"`
	IsPrescription bool            `json:"isPrescription"`
	CreatedAt      time.Time       `json:"createdAt"`
}
