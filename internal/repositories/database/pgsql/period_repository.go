package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/finbooks/ledger/internal/models"
	"github.com/finbooks/ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// FindPeriodByKey retrieves a formalized period row.
func (r *PgxPeriodRepository) FindPeriodByKey(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error) {
	query := `SELECT period_key, status, opened_at, closed_at FROM accounting_periods WHERE period_key = $1;`
	var m models.AccountingPeriod
	err := r.Pool.QueryRow(ctx, query, periodKey).Scan(&m.PeriodKey, &m.Status, &m.OpenedAt, &m.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+periodKey, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListPeriods returns every formalized period, newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	query := `SELECT period_key, status, opened_at, closed_at FROM accounting_periods ORDER BY period_key DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		var m models.AccountingPeriod
		if err := rows.Scan(&m.PeriodKey, &m.Status, &m.OpenedAt, &m.ClosedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return periods, nil
}

// UpsertPeriodStatus creates the period row if absent and sets its status.
// closed_at records the most recent close; reopening clears it.
func (r *PgxPeriodRepository) UpsertPeriodStatus(ctx context.Context, periodKey string, status domain.PeriodStatus, now time.Time) (*domain.AccountingPeriod, error) {
	query := `
		INSERT INTO accounting_periods (period_key, status, opened_at, closed_at)
		VALUES ($1, $2, $3, CASE WHEN $2 = 'CLOSED' THEN $3 ELSE NULL END)
		ON CONFLICT (period_key) DO UPDATE
		SET status = EXCLUDED.status,
		    closed_at = CASE WHEN EXCLUDED.status = 'CLOSED' THEN $3 ELSE NULL END
		RETURNING period_key, status, opened_at, closed_at;
	`
	var m models.AccountingPeriod
	err := r.Pool.QueryRow(ctx, query, periodKey, string(status), now).Scan(&m.PeriodKey, &m.Status, &m.OpenedAt, &m.ClosedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert period "+periodKey, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}
