package domain

import "time"

// PeriodStatus indicates whether an accounting period accepts new postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is a calendar-month bucket gating writes into the ledger.
// Closing a period never invalidates entries already posted into it.
type AccountingPeriod struct {
	PeriodKey string       `json:"periodKey"` // "YYYY-MM"
	Status    PeriodStatus `json:"status"`
	OpenedAt  time.Time    `json:"openedAt"`
	ClosedAt  *time.Time   `json:"closedAt"`
}

// PeriodKeyFor returns the period key containing the given date.
func PeriodKeyFor(date time.Time) string {
	return date.Format("2006-01")
}
