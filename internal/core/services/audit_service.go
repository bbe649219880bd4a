package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// auditService runs the reconciliation sweep. It never mutates anything and
// never trusts the write path: each check re-derives its invariant straight
// from the stored rows.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new reconciliation auditor.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Run(ctx context.Context) (*domain.AuditReport, error) {
	report := &domain.AuditReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Findings:  []domain.Finding{},
	}
	s.LogInfo(ctx, "reconciliation sweep started", "runID", report.RunID)

	// Checks run independently. A check whose query fails becomes a warning
	// finding about the check itself, never an abort of the sweep.
	s.checkUnbalancedEntries(ctx, report)
	s.checkOrphanReferences(ctx, report)
	s.checkDuplicateLinks(ctx, report)
	s.checkBrokenDocumentLinks(ctx, report)
	s.checkGlobalTotals(ctx, report)
	s.checkDanglingParents(ctx, report)
	s.checkInformalPeriods(ctx, report)

	report.FinishedAt = time.Now()
	s.LogInfo(ctx, "reconciliation sweep finished",
		"runID", report.RunID, "findings", len(report.Findings), "clean", report.Clean())
	return report, nil
}

func (s *auditService) checkFailed(ctx context.Context, report *domain.AuditReport, check string, err error) {
	s.LogError(ctx, err, "reconciliation check failed", "check", check)
	report.Findings = append(report.Findings, domain.Finding{
		Kind:     domain.FindingKind(check),
		Severity: domain.SeverityWarning,
		Detail:   fmt.Sprintf("check did not run: %v", err),
	})
}

func (s *auditService) checkUnbalancedEntries(ctx context.Context, report *domain.AuditReport) {
	deltas, err := s.auditRepo.FindUnbalancedEntries(ctx)
	if err != nil {
		s.checkFailed(ctx, report, string(domain.FindingUnbalancedEntry), err)
		return
	}
	for _, d := range deltas {
		entryID := d.EntryID
		report.Findings = append(report.Findings, domain.Finding{
			Kind:     domain.FindingUnbalancedEntry,
			Severity: domain.SeverityError,
			EntryID:  &entryID,
			Delta:    d.Delta,
			Detail:   fmt.Sprintf("entry %d debits exceed credits by %s", d.EntryID, d.Delta.String()),
		})
	}
}

func (s *auditService) checkOrphanReferences(ctx context.Context, report *domain.AuditReport) {
	for _, kind := range domain.DocumentKinds {
		entries, err := s.auditRepo.FindOrphanReferences(ctx, kind)
		if err != nil {
			s.checkFailed(ctx, report, string(domain.FindingOrphanReference), err)
			continue
		}
		for _, e := range entries {
			entryID := e.EntryID
			report.Findings = append(report.Findings, domain.Finding{
				Kind:      domain.FindingOrphanReference,
				Severity:  domain.SeverityError,
				EntryID:   &entryID,
				Reference: e.Reference(),
				Detail:    fmt.Sprintf("entry %d references %s %d which no longer exists", e.EntryID, e.ReferenceType, derefInt64(e.ReferenceID)),
			})
		}
	}
}

func (s *auditService) checkDuplicateLinks(ctx context.Context, report *domain.AuditReport) {
	dups, err := s.auditRepo.FindDuplicateLinks(ctx)
	if err != nil {
		s.checkFailed(ctx, report, string(domain.FindingDuplicateLink), err)
		return
	}
	for _, d := range dups {
		ref := d.Ref
		report.Findings = append(report.Findings, domain.Finding{
			Kind:      domain.FindingDuplicateLink,
			Severity:  domain.SeverityError,
			Reference: &ref,
			Detail:    fmt.Sprintf("%s %d is claimed by entries %v", d.Ref.Type, d.Ref.ID, d.EntryIDs),
		})
	}
}

func (s *auditService) checkBrokenDocumentLinks(ctx context.Context, report *domain.AuditReport) {
	for _, kind := range domain.DocumentKinds {
		docs, err := s.auditRepo.FindBrokenDocumentLinks(ctx, kind)
		if err != nil {
			s.checkFailed(ctx, report, string(domain.FindingUnlinkedDocument), err)
			continue
		}
		for _, doc := range docs {
			report.Findings = append(report.Findings, domain.Finding{
				Kind:      domain.FindingUnlinkedDocument,
				Severity:  domain.SeverityWarning,
				Reference: &domain.DocumentRef{Type: kind, ID: doc.ID},
				Detail:    fmt.Sprintf("%s %d is posted but its ledger link is missing or stale", kind, doc.ID),
			})
		}
	}
}

func (s *auditService) checkGlobalTotals(ctx context.Context, report *domain.AuditReport) {
	debit, credit, err := s.auditRepo.GlobalTotals(ctx)
	if err != nil {
		s.checkFailed(ctx, report, string(domain.FindingTrialImbalance), err)
		return
	}
	if !debit.Equal(credit) {
		report.Findings = append(report.Findings, domain.Finding{
			Kind:     domain.FindingTrialImbalance,
			Severity: domain.SeverityError,
			Delta:    debit.Sub(credit),
			Detail:   fmt.Sprintf("posted debits total %s, credits %s", debit.String(), credit.String()),
		})
	}
}

func (s *auditService) checkDanglingParents(ctx context.Context, report *domain.AuditReport) {
	accounts, err := s.auditRepo.FindDanglingParents(ctx)
	if err != nil {
		s.checkFailed(ctx, report, string(domain.FindingDanglingParent), err)
		return
	}
	for _, a := range accounts {
		report.Findings = append(report.Findings, domain.Finding{
			Kind:     domain.FindingDanglingParent,
			Severity: domain.SeverityWarning,
			Detail:   fmt.Sprintf("account %s points at parent %d which does not exist", a.Code, derefInt64(a.ParentAccountID)),
		})
	}
}

func (s *auditService) checkInformalPeriods(ctx context.Context, report *domain.AuditReport) {
	keys, err := s.auditRepo.FindInformalPeriods(ctx)
	if err != nil {
		s.checkFailed(ctx, report, string(domain.FindingInformalPeriod), err)
		return
	}
	for _, key := range keys {
		report.Findings = append(report.Findings, domain.Finding{
			Kind:     domain.FindingInformalPeriod,
			Severity: domain.SeverityWarning,
			Detail:   fmt.Sprintf("period %s has posted entries but was never formally opened", key),
		})
	}
}
