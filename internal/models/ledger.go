package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry mirrors the ledger table. Nullable columns are pointers.
type LedgerEntry struct {
	ID            int64
	CustomerID    int64
	EntryType     string
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	RxNumber      *string
	Description   *string
	Notes         *string
	PaymentMethod *string
	ReferenceID   *int64
	CreatedBy     *int64
	CreatedAt     time.Time
	IsVoided      bool
	VoidedBy      *int64
	VoidedAt      *time.Time
	VoidReason    *string
	IsDeleted     bool
	DeletedAt     *time.Time

	// Join columns populated by listing queries.
	CreatedByName *string
	CustomerName  *string
}

// LedgerItem mirrors the ledger_items table.
type LedgerItem struct {
	ID          int64
	LedgerID    int64
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	RxNumber    *string
}
