package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a credit account holder. Deactivation is a soft flag: a
// deactivated customer rejects new debts and payments but stays in balance
// calculations and reports.
type Customer struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	GracePeriodDays int             `json:"gracePeriodDays"`
	IsActive        bool            `json:"isActive"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
