package services

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/finbooks/ledger/internal/dto"
)

// LedgerSvcFacade is the write path of the ledger: validated, atomic posting
// plus the draft lifecycle and append-only reversal.
type LedgerSvcFacade interface {
	// Post validates and persists a balanced journal entry with status POSTED.
	// Error taxonomy: ErrEmptyEntry, ErrUnbalanced, ErrPeriodClosed,
	// ErrNotFound (account), ErrAlreadyLinked, ErrValidation.
	Post(ctx context.Context, req dto.PostingRequest, actor string) (*domain.JournalEntry, error)

	// SaveDraft persists an entry in DRAFT state. Drafts skip the period gate
	// and the document link but still require valid accounts and balance.
	SaveDraft(ctx context.Context, req dto.PostingRequest, actor string) (*domain.JournalEntry, error)

	// PostDraft promotes a draft through the full posting validation.
	PostDraft(ctx context.Context, entryID int64, actor string) (*domain.JournalEntry, error)

	// DeleteDraft removes a draft and its lines. Posted entries are immutable.
	DeleteDraft(ctx context.Context, entryID int64) error

	// GetEntry retrieves an entry with its posting lines.
	GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries returns a keyset-paginated page of entries.
	ListEntries(ctx context.Context, params repositories.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// Reverse posts the mirror image of a POSTED entry, then marks the
	// original REVERSED and releases its document link. ErrNotPosted when the
	// target isn't posted; reversal entries cannot themselves be reversed.
	Reverse(ctx context.Context, entryID int64, actor string) (*domain.JournalEntry, error)
}
