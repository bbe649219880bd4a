package services

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade is the read side of the ledger. Every view is derived
// from POSTED entries only; drafts and reversed entries never contribute.
type ReportingSvcFacade interface {
	// AccountBalance computes opening balance plus nature-signed posted
	// activity, up to asOf when non-nil.
	AccountBalance(ctx context.Context, code string, asOf *time.Time) (decimal.Decimal, error)

	// TrialBalance returns per-account debit/credit totals with grand totals.
	TrialBalance(ctx context.Context, filter domain.ReportFilter) (*domain.TrialBalance, error)

	// BalanceSheet rolls account balances up by balance-sheet type as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// IncomeStatement rolls revenue/expense balances up over a date range.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)

	// AccountLedger returns the paginated statement of one account with
	// running balances.
	AccountLedger(ctx context.Context, code string, filter domain.ReportFilter, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)
}
