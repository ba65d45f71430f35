package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the products table.
type Product struct {
	ID             int64
	Name           string
	Price          decimal.Decimal
	Category       *string
	IsPrescription bool
	CreatedAt      time.Time
}
