package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
)

// ListEntriesParams bounds an entry listing query.
type ListEntriesParams struct {
	From      *time.Time
	To        *time.Time
	Branch    string
	Status    domain.EntryStatus // zero value means all statuses
	Limit     int
	NextToken *string
}

// LedgerRepositoryFacade defines persistence operations for journal entries
// and their postings. All writes are atomic: a failed call leaves no rows.
type LedgerRepositoryFacade interface {
	// CreateEntry inserts an entry with its postings in one transaction.
	// When the entry's status is POSTED the entry number is allocated from the
	// store-native sequence inside the same transaction. When linkDocument is
	// true and the entry carries a reference, the referenced document row is
	// claimed with a guarded update; apperrors.ErrAlreadyLinked is returned
	// (and everything rolled back) if the document already carries a link.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, postings []domain.JournalPosting, linkDocument bool) (*domain.JournalEntry, error)

	// PostDraft promotes a DRAFT entry to POSTED: allocates its entry number,
	// flips status and claims the referenced document, all in one transaction.
	// Returns apperrors.ErrNotFound for unknown ids and apperrors.ErrConflict
	// when the entry is not a draft.
	PostDraft(ctx context.Context, entryID int64, actor string, now time.Time) (*domain.JournalEntry, error)

	// MarkReversed flips a POSTED entry to REVERSED, records the mirror's id
	// and releases the referenced document's link (when clearRef is non-nil).
	// The call is idempotent: if the entry is already REVERSED with the same
	// reversing id it succeeds without touching anything.
	MarkReversed(ctx context.Context, entryID int64, reversingEntryID int64, clearRef *domain.DocumentRef, actor string, now time.Time) error

	// FindEntryByID retrieves an entry without its postings.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// FindPostingsByEntryID retrieves the posting lines of an entry, joined
	// with their account codes, in insertion order.
	FindPostingsByEntryID(ctx context.Context, entryID int64) ([]domain.JournalPosting, error)

	// DeleteDraft removes a DRAFT entry with its postings. Posted and reversed
	// entries are immutable; apperrors.ErrConflict is returned for them.
	DeleteDraft(ctx context.Context, entryID int64) error

	// ListEntries returns a keyset-paginated page of entries, newest first.
	ListEntries(ctx context.Context, params ListEntriesParams) ([]domain.JournalEntry, *string, error)
}
