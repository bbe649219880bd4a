package models

import "time"

// PeriodStatus mirrors domain.PeriodStatus at the storage layer.
type PeriodStatus string

// AccountingPeriod represents an accounting_periods row.
type AccountingPeriod struct {
	PeriodKey string       `db:"period_key"`
	Status    PeriodStatus `db:"status"`
	OpenedAt  time.Time    `db:"opened_at"`
	ClosedAt  *time.Time   `db:"closed_at"` // Nullable
}
