package dto

import (
	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest registers a minimal document row so the posting flow
// has something to link against. Pricing/tax/payroll math stays with the
// document modules; the core only records the computed total.
type CreateDocumentRequest struct {
	Status string          `json:"status" binding:"required"`
	Total  decimal.Decimal `json:"total" binding:"dgte0"`
}

// DocumentResponse is the ledger-facing view of a document row.
type DocumentResponse struct {
	ID             int64           `json:"id"`
	Kind           string          `json:"kind"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	JournalEntryID *int64          `json:"journalEntryID,omitempty"`
}

// ToDocumentResponse converts a domain.Document.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		Kind:           d.Kind,
		Status:         d.Status,
		Total:          d.Total,
		JournalEntryID: d.JournalEntryID,
	}
}
