package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// Transitions are one-way: DRAFT -> POSTED -> REVERSED. Drafts may instead be
// deleted; posted and reversed entries are immutable.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// DocumentRef points back at the business document an entry was posted for.
type DocumentRef struct {
	Type string `json:"type"` // invoice, supplier_invoice, expense, payroll_run
	ID   int64  `json:"id"`
}

// JournalEntry represents a single, balanced financial event composed of postings.
type JournalEntry struct {
	EntryID     int64       `json:"entryID"`     // Primary Key
	EntryNumber *int64      `json:"entryNumber"` // Unique, sequence-allocated at posting time; nil for drafts
	Description string      `json:"description"`
	EntryDate   time.Time   `json:"entryDate"` // Date the event occurred
	Branch      string      `json:"branch"`    // Optional branch tag
	Status      EntryStatus `json:"status"`

	// Link back to the owning business document, when one exists.
	ReferenceType string `json:"referenceType"`
	ReferenceID   *int64 `json:"referenceID"`

	// Reversal lineage. OriginalEntryID is set on a mirror entry,
	// ReversingEntryID on the entry it cancels.
	OriginalEntryID  *int64 `json:"originalEntryID"`
	ReversingEntryID *int64 `json:"reversingEntryID"`

	AuditFields

	Postings []JournalPosting `json:"postings,omitempty"` // Often loaded separately
}

// Reference returns the entry's document reference, or nil when it has none.
func (e JournalEntry) Reference() *DocumentRef {
	if e.ReferenceType == "" || e.ReferenceID == nil {
		return nil
	}
	return &DocumentRef{Type: e.ReferenceType, ID: *e.ReferenceID}
}

// JournalPosting represents a single debit-or-credit line within a JournalEntry.
// Exactly one of Debit/Credit is greater than zero; lines are never updated.
type JournalPosting struct {
	PostingID   int64           `json:"postingID"` // Primary Key
	EntryID     int64           `json:"entryID"`   // FK -> journal_entries
	AccountID   int64           `json:"accountID"` // FK -> accounts
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
