package services

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
)

// AuditSvcFacade runs the read-only reconciliation sweep. Checks are
// independent: one failing query is reported as a finding, not an abort.
type AuditSvcFacade interface {
	Run(ctx context.Context) (*domain.AuditReport, error)
}
