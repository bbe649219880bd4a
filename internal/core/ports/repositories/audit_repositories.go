package repositories

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditRepositoryFacade defines the read-only sweep queries behind the
// Reconciliation Auditor. None of these may take locks that block writers.
type AuditRepositoryFacade interface {
	// FindUnbalancedEntries returns posted entries whose posting sums differ,
	// with the debit-minus-credit delta.
	FindUnbalancedEntries(ctx context.Context) ([]domain.EntryDelta, error)

	// FindOrphanReferences returns posted entries of the given document kind
	// whose referenced row no longer exists.
	FindOrphanReferences(ctx context.Context, kind string) ([]domain.JournalEntry, error)

	// FindDuplicateLinks returns document references claimed by more than one
	// posted entry, excluding reversal lineage pairs.
	FindDuplicateLinks(ctx context.Context) ([]domain.DuplicateLink, error)

	// FindBrokenDocumentLinks returns posted documents of the given kind whose
	// journal_entry_id is missing or points at a non-posted entry.
	FindBrokenDocumentLinks(ctx context.Context, kind string) ([]domain.Document, error)

	// GlobalTotals returns the system-wide posted debit and credit sums.
	GlobalTotals(ctx context.Context) (debit, credit decimal.Decimal, err error)

	// FindDanglingParents returns accounts whose parent_account_id points at a
	// non-existent account row.
	FindDanglingParents(ctx context.Context) ([]domain.Account, error)

	// FindInformalPeriods returns period keys that contain posted entries but
	// have no accounting_periods row.
	FindInformalPeriods(ctx context.Context) ([]string, error)
}
