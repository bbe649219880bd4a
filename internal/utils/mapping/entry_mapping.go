package mapping

import (
	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/finbooks/ledger/internal/models"
)

// ToModelEntry converts a domain.JournalEntry to its storage representation.
// Postings are mapped separately; the entry row does not embed them.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntryNumber:      d.EntryNumber,
		Description:      d.Description,
		EntryDate:        d.EntryDate,
		Branch:           d.Branch,
		Status:           models.EntryStatus(d.Status),
		ReferenceType:    d.ReferenceType,
		ReferenceID:      d.ReferenceID,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      toModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a storage entry back into the domain type.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		Description:      m.Description,
		EntryDate:        m.EntryDate,
		Branch:           m.Branch,
		Status:           domain.EntryStatus(m.Status),
		ReferenceType:    m.ReferenceType,
		ReferenceID:      m.ReferenceID,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      toDomainAuditFields(m.AuditFields),
	}
}

// ToModelPosting converts a domain posting line for insertion.
func ToModelPosting(d domain.JournalPosting) models.JournalPosting {
	return models.JournalPosting{
		PostingID:   d.PostingID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainPosting converts a storage posting line back into the domain type.
func ToDomainPosting(m models.JournalPosting) domain.JournalPosting {
	return domain.JournalPosting{
		PostingID:   m.PostingID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToDomainPostingSlice converts a slice of storage postings.
func ToDomainPostingSlice(ms []models.JournalPosting) []domain.JournalPosting {
	out := make([]domain.JournalPosting, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPosting(m)
	}
	return out
}

// ToDomainPeriod converts a storage period row into the domain type.
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodKey: m.PeriodKey,
		Status:    domain.PeriodStatus(m.Status),
		OpenedAt:  m.OpenedAt,
		ClosedAt:  m.ClosedAt,
	}
}

// ToDomainDocument converts a storage document row into the domain type.
func ToDomainDocument(kind string, m models.Document) domain.Document {
	return domain.Document{
		ID:             m.ID,
		Kind:           kind,
		Status:         m.Status,
		Total:          m.Total,
		JournalEntryID: m.JournalEntryID,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}
