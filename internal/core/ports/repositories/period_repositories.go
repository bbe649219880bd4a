package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
)

// PeriodRepositoryFacade defines persistence operations for accounting periods.
type PeriodRepositoryFacade interface {
	// FindPeriodByKey retrieves a period row; apperrors.ErrNotFound when the
	// period was never formalized.
	FindPeriodByKey(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error)

	// ListPeriods returns every formalized period, newest first.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)

	// UpsertPeriodStatus creates the period row if absent and sets its status.
	// Re-applying the current status is a no-op, making open/close idempotent.
	UpsertPeriodStatus(ctx context.Context, periodKey string, status domain.PeriodStatus, now time.Time) (*domain.AccountingPeriod, error)
}
