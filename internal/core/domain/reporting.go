package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDebtRow is a customer with derived ledger aggregates. OldestDebtDate
// is the earliest NEW_DEBT not referenced by any other entry's reference id;
// it drives aging buckets.
type CustomerDebtRow struct {
	Customer
	Debt           decimal.Decimal `json:"debt"`
	TotalDebtAdded decimal.Decimal `json:"totalDebtAdded"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	OldestDebtDate *time.Time      `json:"oldestDebtDate,omitempty"`
}

// AgingRow assigns a customer's whole outstanding balance to one bucket based
// on the age of their oldest open debt.
type AgingRow struct {
	CustomerID int64           `json:"customerID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	TotalDebt  decimal.Decimal `json:"totalDebt"`
	Days0To30  decimal.Decimal `json:"days0to30"`
	Days31To60 decimal.Decimal `json:"days31to60"`
	Days61To90 decimal.Decimal `json:"days61to90"`
	Days90Plus decimal.Decimal `json:"days90plus"`
}

// DailyReconciliation summarizes one calendar day of visible (non-voided,
// non-deleted) ledger activity.
type DailyReconciliation struct {
	Date             string          `json:"date"`
	DebtAdded        decimal.Decimal `json:"debtAdded"`
	Payments         decimal.Decimal `json:"payments"`
	WriteOffs        decimal.Decimal `json:"writeOffs"`
	Adjustments      decimal.Decimal `json:"adjustments"`
	NetChange        decimal.Decimal `json:"netChange"`
	TransactionCount int             `json:"transactionCount"`
	DebtCount        int             `json:"debtCount"`
	PaymentCount     int             `json:"paymentCount"`
}

// CreditCheck is the advisory result of testing a prospective debt against a
// customer's credit limit. It never blocks a write.
type CreditCheck struct {
	Allowed         bool            `json:"allowed"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Available       decimal.Decimal `json:"available"`
	OverBy          decimal.Decimal `json:"overBy"`
	Percentage      decimal.Decimal `json:"percentage"`
	Message         string          `json:"message"`
}

// DonationTotals aggregates the donation sub-ledger.
type DonationTotals struct {
	TotalDonated   decimal.Decimal `json:"totalDonated"`
	TotalUsed      decimal.Decimal `json:"totalUsed"`
	TotalAvailable decimal.Decimal `json:"totalAvailable"`
}
