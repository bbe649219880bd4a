package dto

import (
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for business dates.
const DateFormat = "2006-01-02"

// PostingLineRequest is one debit-or-credit line of a posting request.
// Exactly one of debit/credit must be positive; the service enforces this
// (binding can only check non-negativity).
type PostingLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"dgte0"`
	Credit      decimal.Decimal `json:"credit" binding:"dgte0"`
}

// DocumentRefRequest links a posting request back to its business document.
type DocumentRefRequest struct {
	Type string `json:"type" binding:"required"`
	ID   int64  `json:"id" binding:"required,gt=0"`
}

// PostingRequest is the boundary contract document modules use to post.
type PostingRequest struct {
	Description string              `json:"description" binding:"required"`
	Date        string              `json:"date" binding:"required,datetime=2006-01-02"`
	Branch      string              `json:"branch"`
	Reference   *DocumentRefRequest `json:"reference"`
	Lines       []PostingLineRequest `json:"lines" binding:"required,min=2,dive"`
	Manual      bool                `json:"manual"` // true for hand-keyed entries, checked against allow_manual_entry
}

// ParsedDate returns the request date as a time.Time. Binding has already
// validated the format.
func (r PostingRequest) ParsedDate() time.Time {
	t, _ := time.Parse(DateFormat, r.Date)
	return t
}

// PostingLineResponse is one line of an entry as returned to callers.
type PostingLineResponse struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse is the journal entry representation returned to callers.
type EntryResponse struct {
	EntryID         int64                 `json:"entryID"`
	EntryNumber     *int64                `json:"entryNumber,omitempty"`
	Description     string                `json:"description"`
	Date            string                `json:"date"`
	Branch          string                `json:"branch,omitempty"`
	Status          string                `json:"status"`
	Reference       *DocumentRefRequest   `json:"reference,omitempty"`
	OriginalEntryID *int64                `json:"originalEntryID,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Lines           []PostingLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a paginated page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry (with or without postings).
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		Description:     e.Description,
		Date:            e.EntryDate.Format(DateFormat),
		Branch:          e.Branch,
		Status:          string(e.Status),
		OriginalEntryID: e.OriginalEntryID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if ref := e.Reference(); ref != nil {
		resp.Reference = &DocumentRefRequest{Type: ref.Type, ID: ref.ID}
	}
	if len(e.Postings) > 0 {
		resp.Lines = make([]PostingLineResponse, len(e.Postings))
		for i, p := range e.Postings {
			resp.Lines[i] = PostingLineResponse{
				AccountCode: p.AccountCode,
				Debit:       p.Debit,
				Credit:      p.Credit,
			}
		}
	}
	return resp
}
