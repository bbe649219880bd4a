package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FindingKind identifies one class of reconciliation violation.
type FindingKind string

const (
	FindingUnbalancedEntry  FindingKind = "UNBALANCED_ENTRY"
	FindingOrphanReference  FindingKind = "ORPHAN_REFERENCE"
	FindingDuplicateLink    FindingKind = "DUPLICATE_LINK"
	FindingUnlinkedDocument FindingKind = "UNLINKED_DOCUMENT"
	FindingTrialImbalance   FindingKind = "TRIAL_BALANCE_MISMATCH"
	FindingDanglingParent   FindingKind = "DANGLING_PARENT"
	FindingInformalPeriod   FindingKind = "INFORMAL_PERIOD"
)

// FindingSeverity separates hard violations from operational warnings.
type FindingSeverity string

const (
	SeverityError   FindingSeverity = "ERROR"
	SeverityWarning FindingSeverity = "WARNING"
)

// Finding is a single reconciliation violation. Fields beyond Kind/Severity/
// Detail are populated when they apply to the finding class.
type Finding struct {
	Kind      FindingKind     `json:"kind"`
	Severity  FindingSeverity `json:"severity"`
	EntryID   *int64          `json:"entryID,omitempty"`
	Reference *DocumentRef    `json:"reference,omitempty"`
	Delta     decimal.Decimal `json:"delta,omitempty"`
	Detail    string          `json:"detail"`
}

// EntryDelta is a posted entry whose posting sums failed the zero-sum check,
// with the debit-minus-credit difference.
type EntryDelta struct {
	EntryID     int64           `json:"entryID"`
	EntryNumber *int64          `json:"entryNumber"`
	Delta       decimal.Decimal `json:"delta"`
}

// DuplicateLink is a document referenced by more than one entry outside of
// reversal lineage.
type DuplicateLink struct {
	Ref      DocumentRef `json:"reference"`
	EntryIDs []int64     `json:"entryIDs"`
}

// AuditReport is the outcome of one reconciliation sweep. Checks never abort
// each other; every finding that exists at sweep time is listed.
type AuditReport struct {
	RunID      string    `json:"runID"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Findings   []Finding `json:"findings"`
}

// Clean reports whether the sweep found no error-severity violations.
func (r AuditReport) Clean() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}
