package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer mirrors the customers table.
type Customer struct {
	ID              int64
	Name            string
	Phone           *string
	Email           *string
	Address         *string
	CreditLimit     decimal.Decimal
	GracePeriodDays int
	IsActive        bool
	Notes           *string
	CreatedAt       time.Time
}
