package repositories

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade defines the read-only aggregate queries backing
// the Ledger Reader. Every query consumes POSTED and REVERSED entries, never
// drafts, so a reversal and its mirror cancel instead of inverting.
type ReportingRepositoryFacade interface {
	// GetTrialBalanceData returns one row per account with activity in range.
	GetTrialBalanceData(ctx context.Context, filter domain.ReportFilter) ([]domain.TrialBalanceRow, error)

	// GetAccountActivity returns the settled debit and credit sums for one
	// account, up to and including asOf when it is non-nil.
	GetAccountActivity(ctx context.Context, accountID int64, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// GetBalanceSheetData returns nature-signed net balances for asset,
	// liability and equity accounts as of a date.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)

	// GetIncomeStatementData returns nature-signed net balances for revenue
	// and expense accounts over a date range.
	GetIncomeStatementData(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)

	// GetAccountLedger returns a keyset-paginated per-account statement with
	// running balances, oldest first.
	GetAccountLedger(ctx context.Context, accountID int64, filter domain.ReportFilter, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)
}
