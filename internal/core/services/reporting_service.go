package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService is the read side of the ledger. Balances are never stored;
// every figure is recomputed from settled lines, so reads can't drift from
// the journal.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	registry      portssvc.RegistrySvcFacade
}

// NewReportingService creates a new ledger reader service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepositoryFacade,
	registry portssvc.RegistrySvcFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, registry: registry}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) AccountBalance(ctx context.Context, code string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.registry.Resolve(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	debit, credit, err := s.reportingRepo.GetAccountActivity(ctx, account.AccountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to compute account activity", "accountCode", code)
		return decimal.Zero, fmt.Errorf("failed to compute balance of account %s: %w", code, err)
	}
	net := debit.Sub(credit)
	if account.Nature == domain.CreditNature {
		net = net.Neg()
	}
	return account.OpeningBalance.Add(net), nil
}

func (s *reportingService) TrialBalance(ctx context.Context, filter domain.ReportFilter) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to build trial balance")
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	tb := &domain.TrialBalance{
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}
	if !tb.Balanced() {
		// A consistent store can't produce this; surface it loudly but
		// still return the report so the imbalance can be inspected.
		s.LogWarn(ctx, "trial balance does not balance",
			"totalDebit", tb.TotalDebit.String(), "totalCredit", tb.TotalCredit.String())
	}
	return tb, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to build balance sheet", "asOf", asOf)
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}
	report := &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumAmounts(assets),
		TotalLiabilities: sumAmounts(liabilities),
		TotalEquity:      sumAmounts(equity),
	}
	return report, nil
}

func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	if to.Before(from) {
		from, to = to, from
	}
	revenue, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to build income statement", "from", from, "to", to)
		return nil, fmt.Errorf("failed to build income statement: %w", err)
	}
	report := &domain.IncomeStatementReport{
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  sumAmounts(revenue),
		TotalExpenses: sumAmounts(expenses),
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

func (s *reportingService) AccountLedger(ctx context.Context, code string, filter domain.ReportFilter, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	account, err := s.registry.Resolve(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	lines, next, err := s.reportingRepo.GetAccountLedger(ctx, account.AccountID, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to build account ledger", "accountCode", code)
		return nil, nil, fmt.Errorf("failed to build ledger of account %s: %w", code, err)
	}
	return lines, next, nil
}

func sumAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}
