package models

import (
	"github.com/shopspring/decimal"
)

// Document is the ledger-facing projection of a row from one of the document
// tables (invoices, supplier_invoices, expenses, payroll_runs). The tables
// share this column subset; the rest of their shape belongs to the document
// modules.
type Document struct {
	ID             int64           `db:"id"`
	Status         string          `db:"status"`
	Total          decimal.Decimal `db:"total"`
	JournalEntryID *int64          `db:"journal_entry_id"` // Nullable
	AuditFields
}
