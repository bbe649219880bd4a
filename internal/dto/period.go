package dto

import (
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
)

// PeriodResponse is the accounting period representation returned to callers.
type PeriodResponse struct {
	PeriodKey string     `json:"periodKey"`
	Status    string     `json:"status"`
	OpenedAt  time.Time  `json:"openedAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// ToPeriodResponse converts a domain.AccountingPeriod.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodKey: p.PeriodKey,
		Status:    string(p.Status),
		OpenedAt:  p.OpenedAt,
		ClosedAt:  p.ClosedAt,
	}
}

// ToPeriodResponses converts a slice of periods.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
