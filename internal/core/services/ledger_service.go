package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/finbooks/ledger/internal/utils/accounting"
)

// ledgerService is the single write path into the journal. Every mutation is
// validated before any transaction starts, so a rejected request never
// consumes an entry number.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	registry    portssvc.RegistrySvcFacade
	periods     portssvc.PeriodSvcFacade
}

// NewLedgerService creates a new ledger writer service.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	registry portssvc.RegistrySvcFacade,
	periods portssvc.PeriodSvcFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		documentRepo: documentRepo,
		registry:     registry,
		periods:      periods,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Post(ctx context.Context, req dto.PostingRequest, actor string) (*domain.JournalEntry, error) {
	entry, postings, err := s.prepare(ctx, req, actor)
	if err != nil {
		return nil, err
	}
	// Gate on the period before touching the registry: a closed period
	// rejects the request regardless of what the lines reference.
	if err := s.periods.EnsureOpen(ctx, entry.EntryDate); err != nil {
		return nil, err
	}
	if err := s.resolveAccounts(ctx, postings, req.Manual); err != nil {
		return nil, err
	}
	linkDocument := entry.Reference() != nil
	if linkDocument {
		if err := s.checkDocument(ctx, *entry.Reference()); err != nil {
			return nil, err
		}
	}
	entry.Status = domain.Posted
	created, err := s.ledgerRepo.CreateEntry(ctx, *entry, postings, linkDocument)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyLinked) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to post journal entry", "description", req.Description)
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}
	s.LogInfo(ctx, "journal entry posted",
		"entryID", created.EntryID, "entryNumber", derefInt64(created.EntryNumber), "lines", len(postings))
	return created, nil
}

func (s *ledgerService) SaveDraft(ctx context.Context, req dto.PostingRequest, actor string) (*domain.JournalEntry, error) {
	entry, postings, err := s.prepare(ctx, req, actor)
	if err != nil {
		return nil, err
	}
	if err := s.resolveAccounts(ctx, postings, req.Manual); err != nil {
		return nil, err
	}
	// Drafts skip the period gate and never claim a document; both are
	// enforced again when the draft is promoted.
	entry.Status = domain.Draft
	created, err := s.ledgerRepo.CreateEntry(ctx, *entry, postings, false)
	if err != nil {
		s.LogError(ctx, err, "failed to save draft entry", "description", req.Description)
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	s.LogInfo(ctx, "draft entry saved", "entryID", created.EntryID, "lines", len(postings))
	return created, nil
}

func (s *ledgerService) PostDraft(ctx context.Context, entryID int64, actor string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %d is %s, only drafts can be posted", apperrors.ErrConflict, entryID, entry.Status)
	}
	if err := accounting.ValidateLines(entry.Postings); err != nil {
		return nil, err
	}
	if err := accounting.ValidateBalance(entry.Postings); err != nil {
		return nil, err
	}
	if err := s.periods.EnsureOpen(ctx, entry.EntryDate); err != nil {
		return nil, err
	}
	if ref := entry.Reference(); ref != nil {
		if err := s.checkDocument(ctx, *ref); err != nil {
			return nil, err
		}
	}
	posted, err := s.ledgerRepo.PostDraft(ctx, entryID, actor, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyLinked) || errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to promote draft entry", "entryID", entryID)
		return nil, fmt.Errorf("failed to post draft %d: %w", entryID, err)
	}
	s.LogInfo(ctx, "draft entry posted", "entryID", entryID, "entryNumber", derefInt64(posted.EntryNumber))
	posted.Postings = entry.Postings
	return posted, nil
}

func (s *ledgerService) DeleteDraft(ctx context.Context, entryID int64) error {
	if err := s.ledgerRepo.DeleteDraft(ctx, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		s.LogError(ctx, err, "failed to delete draft entry", "entryID", entryID)
		return fmt.Errorf("failed to delete draft %d: %w", entryID, err)
	}
	s.LogInfo(ctx, "draft entry deleted", "entryID", entryID)
	return nil
}

func (s *ledgerService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, entryID)
		}
		s.LogError(ctx, err, "failed to fetch journal entry", "entryID", entryID)
		return nil, fmt.Errorf("failed to fetch entry %d: %w", entryID, err)
	}
	postings, err := s.ledgerRepo.FindPostingsByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch postings", "entryID", entryID)
		return nil, fmt.Errorf("failed to fetch postings of entry %d: %w", entryID, err)
	}
	entry.Postings = postings
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if params.Limit <= 0 || params.Limit > 200 {
		params.Limit = 50
	}
	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "failed to list journal entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

func (s *ledgerService) Reverse(ctx context.Context, entryID int64, actor string) (*domain.JournalEntry, error) {
	original, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %d is %s", apperrors.ErrNotPosted, entryID, original.Status)
	}
	if original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: entry %d is itself a reversal", apperrors.ErrValidation, entryID)
	}

	now := time.Now()
	if err := s.periods.EnsureOpen(ctx, now); err != nil {
		return nil, err
	}

	mirror := domain.JournalEntry{
		Description:     fmt.Sprintf("Reversal of: %s", original.Description),
		EntryDate:       now,
		Branch:          original.Branch,
		Status:          domain.Posted,
		ReferenceType:   original.ReferenceType,
		ReferenceID:     original.ReferenceID,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	mirrorPostings := accounting.MirrorPostings(original.Postings)
	for i := range mirrorPostings {
		mirrorPostings[i].CreatedAt = now
		mirrorPostings[i].CreatedBy = actor
	}
	// The mirror goes through the same line checks as any other posting.
	// Stored data that no longer balances must not spawn a second bad entry.
	if err := accounting.ValidateLines(mirrorPostings); err != nil {
		return nil, fmt.Errorf("entry %d cannot be reversed: %w", entryID, err)
	}
	if err := accounting.ValidateBalance(mirrorPostings); err != nil {
		return nil, fmt.Errorf("entry %d cannot be reversed: %w", entryID, err)
	}

	// Two sequential transactions. If the process dies between them the
	// original stays POSTED with a live mirror; the reconciliation auditor
	// surfaces that state and Reverse can be retried via MarkReversed's
	// idempotency.
	created, err := s.ledgerRepo.CreateEntry(ctx, mirror, mirrorPostings, false)
	if err != nil {
		s.LogError(ctx, err, "failed to post reversal entry", "originalEntryID", entryID)
		return nil, fmt.Errorf("failed to post reversal of entry %d: %w", entryID, err)
	}
	if err := s.ledgerRepo.MarkReversed(ctx, entryID, created.EntryID, original.Reference(), actor, now); err != nil {
		s.LogError(ctx, err, "failed to mark entry reversed",
			"entryID", entryID, "reversingEntryID", created.EntryID)
		return nil, fmt.Errorf("reversal %d posted but entry %d not marked reversed: %w", created.EntryID, entryID, err)
	}
	s.LogInfo(ctx, "journal entry reversed", "entryID", entryID, "reversingEntryID", created.EntryID)
	created.Postings = mirrorPostings
	return created, nil
}

// prepare turns a posting request into a shape-validated entry and its lines.
// Account resolution happens separately, after the period gate.
func (s *ledgerService) prepare(ctx context.Context, req dto.PostingRequest, actor string) (*domain.JournalEntry, []domain.JournalPosting, error) {
	now := time.Now()
	postings := make([]domain.JournalPosting, len(req.Lines))
	for i, line := range req.Lines {
		postings[i] = domain.JournalPosting{
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
			CreatedAt:   now,
			CreatedBy:   actor,
		}
	}
	if err := accounting.ValidateLines(postings); err != nil {
		return nil, nil, err
	}
	if err := accounting.ValidateBalance(postings); err != nil {
		return nil, nil, err
	}

	entry := &domain.JournalEntry{
		Description: req.Description,
		EntryDate:   req.ParsedDate(),
		Branch:      req.Branch,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if req.Reference != nil {
		if !domain.KnownDocumentKind(req.Reference.Type) {
			return nil, nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, req.Reference.Type)
		}
		entry.ReferenceType = req.Reference.Type
		entry.ReferenceID = &req.Reference.ID
	}
	return entry, postings, nil
}

// resolveAccounts maps every line's account code onto its account ID and
// applies the manual-entry policy. Mutates postings in place.
func (s *ledgerService) resolveAccounts(ctx context.Context, postings []domain.JournalPosting, manual bool) error {
	codes := make([]string, len(postings))
	for i := range postings {
		codes[i] = postings[i].AccountCode
	}
	accounts, err := s.registry.ResolveMany(ctx, codes)
	if err != nil {
		return err
	}
	for i := range postings {
		account, ok := accounts[postings[i].AccountCode]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, postings[i].AccountCode)
		}
		if manual && !account.AllowManualEntry {
			return fmt.Errorf("%w: account %s does not allow manual entries", apperrors.ErrValidation, account.Code)
		}
		postings[i].AccountID = account.AccountID
	}
	return nil
}

// checkDocument verifies the referenced document exists and is still
// unclaimed. The guarded update inside the posting transaction is the real
// gate; this pre-check just gives clean errors without consuming a number.
func (s *ledgerService) checkDocument(ctx context.Context, ref domain.DocumentRef) error {
	doc, err := s.documentRepo.FindDocument(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return err
		}
		s.LogError(ctx, err, "failed to resolve document reference", "kind", ref.Type, "documentID", ref.ID)
		return fmt.Errorf("failed to resolve %s %d: %w", ref.Type, ref.ID, err)
	}
	if doc.JournalEntryID != nil {
		return fmt.Errorf("%w: %s %d is already linked to entry %d",
			apperrors.ErrAlreadyLinked, ref.Type, ref.ID, *doc.JournalEntryID)
	}
	return nil
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
