package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the storage layer.
type EntryStatus string

// JournalEntry represents a journal_entries row.
type JournalEntry struct {
	EntryID          int64       `db:"entry_id"`
	EntryNumber      *int64      `db:"entry_number"` // Nullable until posted
	Description      string      `db:"description"`
	EntryDate        time.Time   `db:"entry_date"`
	Branch           string      `db:"branch"` // Empty string when unset
	Status           EntryStatus `db:"status"`
	ReferenceType    string      `db:"reference_type"` // Empty string when unlinked
	ReferenceID      *int64      `db:"reference_id"`   // Nullable
	OriginalEntryID  *int64      `db:"original_entry_id"`
	ReversingEntryID *int64      `db:"reversing_entry_id"`
	AuditFields
}

// JournalPosting represents a journal_postings row. Rows are insert-only:
// they are written with their entry and deleted only alongside a draft.
type JournalPosting struct {
	PostingID   int64           `db:"posting_id"`
	EntryID     int64           `db:"entry_id"`
	AccountID   int64           `db:"account_id"`
	AccountCode string          `db:"-"` // Joined from accounts on reads
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	CreatedAt   time.Time       `db:"created_at"`
	CreatedBy   string          `db:"created_by"`
}
