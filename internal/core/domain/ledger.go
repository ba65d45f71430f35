package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry. The sign of an entry's contribution to
// the customer balance is implied by its type; the stored amount is always
// positive.
type EntryType string

const (
	EntryNewDebt    EntryType = "NEW_DEBT"
	EntryPayment    EntryType = "PAYMENT"
	EntryAdjustment EntryType = "ADJUSTMENT"
	EntryRefund     EntryType = "REFUND"
	EntryWriteOff   EntryType = "WRITE_OFF"
	// EntryVoid is reserved in the schema check constraint but never written;
	// voiding is a flag on the original entry, not an entry type.
	EntryVoid EntryType = "VOID"
)

// PaymentMethod indicates how a payment was tendered.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "CASH"
	PayCard   PaymentMethod = "CARD"
	PayCheck  PaymentMethod = "CHECK"
	PayCredit PaymentMethod = "CREDIT"
	PaySplit  PaymentMethod = "SPLIT"
)

// LedgerEntry is one financial event on a customer's ledger.
//
// BalanceAfter is a cached snapshot of the running balance immediately after
// this entry. It is rewritten whenever an earlier entry's amount changes and
// is a display convenience, never the source of truth.
//
// IsVoided and IsDeleted are visibility flags only: voided and deleted entries
// still contribute to the customer's balance.
type LedgerEntry struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerID"`
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	RxNumber      string          `json:"rxNumber,omitempty"`
	Description   string          `json:"description,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	ReferenceID   *int64          `json:"referenceID,omitempty"`
	CreatedBy     *int64          `json:"createdBy,omitempty"`
	CreatedByName string          `json:"createdByName,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`

	IsVoided   bool       `json:"isVoided"`
	VoidedBy   *int64     `json:"voidedBy,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason string     `json:"voidReason,omitempty"`

	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Items is populated for NEW_DEBT entries on listing.
	Items []LedgerItem `json:"items,omitempty"`
}

// LedgerItem is one product line of a NEW_DEBT entry. Items are replaced
// wholesale when the parent entry is edited.
type LedgerItem struct {
	ID          int64           `json:"id"`
	LedgerID    int64           `json:"ledgerID"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	RxNumber    string          `json:"rxNumber,omitempty"`
}

// Total returns price times quantity for this line.
func (i LedgerItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
