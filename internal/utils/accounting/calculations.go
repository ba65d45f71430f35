package accounting

import (
	"fmt"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedSumSQL is the signed CASE expression used by every balance and report
// query. Debts and adjustments add to the balance, payments, write-offs and
// refunds subtract from it. Balance queries sum this expression over ALL rows
// of a customer with no void or delete filter; visibility filtering belongs to
// listing and reporting queries only, so the two can never diverge.
const SignedSumSQL = `CASE
	WHEN entry_type IN ('NEW_DEBT', 'ADJUSTMENT') THEN amount
	WHEN entry_type IN ('PAYMENT', 'WRITE_OFF', 'REFUND') THEN -amount
	ELSE 0
END`

// SignedAmount applies the sign implied by the entry type to a stored
// (positive) amount.
func SignedAmount(entryType domain.EntryType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch entryType {
	case domain.EntryNewDebt, domain.EntryAdjustment:
		return amount, nil
	case domain.EntryPayment, domain.EntryWriteOff, domain.EntryRefund:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown entry type %q", entryType)
	}
}

// Balance sums the signed amounts of entries. Voided and deleted entries are
// included on purpose: voiding and soft deletion are visibility toggles, not
// reversals.
func Balance(entries []domain.LedgerEntry) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range entries {
		signed, err := SignedAmount(e.EntryType, e.Amount)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(signed)
	}
	return total, nil
}

// Recalculate returns the balance_after snapshot for each entry, given the
// balance immediately before the first entry. Entries must be in ascending id
// order: insertion id is the only trustworthy sequence, since created_at may
// be backdated.
func Recalculate(balanceBefore decimal.Decimal, entries []domain.LedgerEntry) ([]decimal.Decimal, error) {
	snapshots := make([]decimal.Decimal, len(entries))
	running := balanceBefore
	for i, e := range entries {
		signed, err := SignedAmount(e.EntryType, e.Amount)
		if err != nil {
			return nil, err
		}
		running = running.Add(signed)
		snapshots[i] = running
	}
	return snapshots, nil
}

// ItemsTotal sums price times quantity over debt line items, validating that
// each line is positively priced and counted.
func ItemsTotal(items []domain.LedgerItem) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, fmt.Errorf("at least one item is required: %w", apperrors.ErrValidation)
	}
	total := decimal.Zero
	for _, item := range items {
		if item.Price.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("invalid price for item %q: %w", item.ProductName, apperrors.ErrInvalidAmount)
		}
		if item.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("invalid quantity for item %q: %w", item.ProductName, apperrors.ErrInvalidAmount)
		}
		total = total.Add(item.Total())
	}
	return total, nil
}
