package services

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
)

// PeriodSvcFacade gates writes by accounting period.
type PeriodSvcFacade interface {
	// IsOpen reports whether the period containing date accepts postings.
	// Periods that were never formalized are open by default.
	IsOpen(ctx context.Context, date time.Time) (bool, error)

	// EnsureOpen fails with apperrors.ErrPeriodClosed when the period
	// containing date is closed.
	EnsureOpen(ctx context.Context, date time.Time) error

	// Open marks a period open. Idempotent.
	Open(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error)

	// Close marks a period closed. Idempotent; already-posted entries inside
	// the period are unaffected.
	Close(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error)

	// List returns every formalized period.
	List(ctx context.Context) ([]domain.AccountingPeriod, error)
}
