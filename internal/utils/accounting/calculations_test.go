package accounting_test

import (
	"testing"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id int64, t domain.EntryType, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{ID: id, EntryType: t, Amount: decimal.RequireFromString(amount)}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		entryType domain.EntryType
		amount    string
		want      string
		wantErr   bool
	}{
		{domain.EntryNewDebt, "25", "25", false},
		{domain.EntryAdjustment, "5.50", "5.50", false},
		{domain.EntryPayment, "10", "-10", false},
		{domain.EntryWriteOff, "3", "-3", false},
		{domain.EntryRefund, "7.25", "-7.25", false},
		{domain.EntryVoid, "1", "", true},
		{domain.EntryType("BOGUS"), "1", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.entryType), func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.entryType, decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestBalance_IncludesVoidedAndDeleted(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(1, domain.EntryNewDebt, "25"),
		entry(2, domain.EntryPayment, "10"),
		entry(3, domain.EntryAdjustment, "5"),
	}

	balance, err := accounting.Balance(entries)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("20")))

	// Voiding or deleting any entry must leave the balance unchanged.
	entries[0].IsVoided = true
	entries[1].IsDeleted = true
	balance, err = accounting.Balance(entries)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("20")))
}

func TestBalance_Empty(t *testing.T) {
	balance, err := accounting.Balance(nil)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestRecalculate(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(2, domain.EntryNewDebt, "40"),
		entry(3, domain.EntryPayment, "10"),
		entry(4, domain.EntryWriteOff, "5"),
	}

	snapshots, err := accounting.Recalculate(decimal.Zero, entries)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	assert.True(t, snapshots[0].Equal(decimal.RequireFromString("40")))
	assert.True(t, snapshots[1].Equal(decimal.RequireFromString("30")))
	assert.True(t, snapshots[2].Equal(decimal.RequireFromString("25")))
}

// After an edit changes an entry's amount by delta, every later snapshot moves
// by exactly that signed delta and the balance before the entry is untouched.
func TestRecalculate_EditShiftsLaterSnapshotsByDelta(t *testing.T) {
	before := []domain.LedgerEntry{
		entry(1, domain.EntryNewDebt, "25"),
		entry(2, domain.EntryPayment, "10"),
	}
	after := []domain.LedgerEntry{
		entry(1, domain.EntryNewDebt, "40"), // edited: delta +15
		entry(2, domain.EntryPayment, "10"),
	}

	snapBefore, err := accounting.Recalculate(decimal.Zero, before)
	require.NoError(t, err)
	snapAfter, err := accounting.Recalculate(decimal.Zero, after)
	require.NoError(t, err)

	delta := decimal.RequireFromString("15")
	for i := range snapBefore {
		assert.True(t, snapAfter[i].Sub(snapBefore[i]).Equal(delta),
			"snapshot %d: %s -> %s", i, snapBefore[i], snapAfter[i])
	}
	assert.True(t, snapAfter[0].Equal(decimal.RequireFromString("40")))
	assert.True(t, snapAfter[1].Equal(decimal.RequireFromString("30")))
}

// The balance sum and the last running snapshot are two expressions of the
// same quantity and must always agree, voided and deleted entries included.
func TestBalance_EqualsLastSnapshot(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(1, domain.EntryNewDebt, "60"),
		entry(2, domain.EntryPayment, "20"),
		entry(3, domain.EntryAdjustment, "7.50"),
		entry(4, domain.EntryRefund, "4.25"),
		entry(5, domain.EntryWriteOff, "10"),
	}
	entries[1].IsVoided = true
	entries[3].IsDeleted = true

	balance, err := accounting.Balance(entries)
	require.NoError(t, err)
	snapshots, err := accounting.Recalculate(decimal.Zero, entries)
	require.NoError(t, err)

	require.Len(t, snapshots, len(entries))
	assert.True(t, balance.Equal(snapshots[len(snapshots)-1]),
		"balance %s != last snapshot %s", balance, snapshots[len(snapshots)-1])
}

func TestItemsTotal(t *testing.T) {
	items := []domain.LedgerItem{
		{ProductName: "Amoxicillin", Price: decimal.RequireFromString("10"), Quantity: 2},
		{ProductName: "Bandages", Price: decimal.RequireFromString("5"), Quantity: 1},
	}
	total, err := accounting.ItemsTotal(items)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("25")))
}

func TestItemsTotal_Invalid(t *testing.T) {
	_, err := accounting.ItemsTotal(nil)
	assert.Error(t, err)

	_, err = accounting.ItemsTotal([]domain.LedgerItem{
		{ProductName: "Free sample", Price: decimal.Zero, Quantity: 1},
	})
	assert.Error(t, err)

	_, err = accounting.ItemsTotal([]domain.LedgerItem{
		{ProductName: "Aspirin", Price: decimal.RequireFromString("4"), Quantity: 0},
	})
	assert.Error(t, err)
}
