package domain

import (
	"github.com/shopspring/decimal"
)

// Document kinds that may post into the ledger. Each kind has its own table
// carrying a nullable journal_entry_id column.
const (
	DocInvoice         = "invoice"
	DocSupplierInvoice = "supplier_invoice"
	DocExpense         = "expense"
	DocPayrollRun      = "payroll_run"
)

// DocumentKinds lists every kind that can carry a ledger link.
var DocumentKinds = []string{DocInvoice, DocSupplierInvoice, DocExpense, DocPayrollRun}

// KnownDocumentKind reports whether kind names a linkable document table.
func KnownDocumentKind(kind string) bool {
	for _, k := range DocumentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Document is the ledger-facing projection of a business document row.
// Amount computation (pricing, tax, payroll math) belongs to the document
// modules; the core only sees the already-computed total and the link state.
type Document struct {
	ID             int64           `json:"id"`
	Kind           string          `json:"kind"`
	Status         string          `json:"status"` // document module's own lifecycle, e.g. draft/posted
	Total          decimal.Decimal `json:"total"`
	JournalEntryID *int64          `json:"journalEntryID"`
	AuditFields
}
