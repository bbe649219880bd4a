package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
)

var periodKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// periodService gates ledger writes by accounting period. A period that was
// never formalized with an explicit open or close is open by default.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new period gate service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) IsOpen(ctx context.Context, date time.Time) (bool, error) {
	key := domain.PeriodKeyFor(date)
	period, err := s.periodRepo.FindPeriodByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return true, nil
		}
		s.LogError(ctx, err, "failed to look up accounting period", "periodKey", key)
		return false, fmt.Errorf("failed to look up period %s: %w", key, err)
	}
	return period.Status == domain.PeriodOpen, nil
}

func (s *periodService) EnsureOpen(ctx context.Context, date time.Time) error {
	open, err := s.IsOpen(ctx, date)
	if err != nil {
		return err
	}
	if !open {
		return fmt.Errorf("%w: period %s is closed", apperrors.ErrPeriodClosed, domain.PeriodKeyFor(date))
	}
	return nil
}

func (s *periodService) Open(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error) {
	return s.setStatus(ctx, periodKey, domain.PeriodOpen)
}

func (s *periodService) Close(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error) {
	return s.setStatus(ctx, periodKey, domain.PeriodClosed)
}

func (s *periodService) setStatus(ctx context.Context, periodKey string, status domain.PeriodStatus) (*domain.AccountingPeriod, error) {
	if !periodKeyPattern.MatchString(periodKey) {
		return nil, fmt.Errorf("%w: period key must be YYYY-MM, got %q", apperrors.ErrValidation, periodKey)
	}
	period, err := s.periodRepo.UpsertPeriodStatus(ctx, periodKey, status, time.Now())
	if err != nil {
		s.LogError(ctx, err, "failed to update period status", "periodKey", periodKey, "status", status)
		return nil, fmt.Errorf("failed to update period %s: %w", periodKey, err)
	}
	s.LogInfo(ctx, "accounting period status updated", "periodKey", periodKey, "status", status)
	return period, nil
}

func (s *periodService) List(ctx context.Context) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounting periods")
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}
