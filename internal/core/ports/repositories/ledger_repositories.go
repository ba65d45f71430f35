package repositories

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository is the persistence port for ledger entries and their line
// items. Implementations must keep every multi-row write (entry plus items,
// edit plus downstream recalculation) atomic, and must compute balance and
// balance_after with the unconditional signed sum over all rows, voided and
// deleted included.
type LedgerRepository interface {
	// AppendEntry persists entry and, for NEW_DEBT, its items in one
	// transaction. It computes balance_after from the customer's running
	// balance inside that transaction and returns the stored entry with its
	// assigned id.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry, items []domain.LedgerItem) (*domain.LedgerEntry, error)

	// FindEntryByID returns an entry regardless of void or delete flags.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.LedgerEntry, error)

	FindItemsByEntryID(ctx context.Context, entryID int64) ([]domain.LedgerItem, error)

	// ListEntriesForCustomer returns entries newest-first. Soft-deleted rows
	// are always excluded; voided rows are excluded unless includeVoided.
	// NEW_DEBT rows carry their items.
	ListEntriesForCustomer(ctx context.Context, customerID int64, includeVoided bool) ([]domain.LedgerEntry, error)

	// Balance returns the customer's current balance: the signed sum over all
	// entries with no visibility filtering.
	Balance(ctx context.Context, customerID int64) (decimal.Decimal, error)

	// UpdateEntry rewrites an entry's amount and notes and, when items is
	// non-nil, replaces its line items wholesale, then recalculates
	// balance_after for the entry and everything after it (by id) in the same
	// transaction.
	UpdateEntry(ctx context.Context, entryID int64, amount decimal.Decimal, notes string, items []domain.LedgerItem) error

	// SetVoided marks an entry voided. Returns false when the entry is
	// missing or already voided. Never touches balance_after.
	SetVoided(ctx context.Context, entryID int64, reason string, actorID *int64) (bool, error)

	// SetUnvoided clears the void flag and metadata. Returns false when the
	// entry is missing or not voided.
	SetUnvoided(ctx context.Context, entryID int64, actorID *int64) (bool, error)

	// SetDeleted soft-deletes an entry. Returns false when missing or already
	// deleted. Terminal; there is no undelete.
	SetDeleted(ctx context.Context, entryID int64) (bool, error)
}
