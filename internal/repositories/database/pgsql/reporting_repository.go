package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/finbooks/ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// natureSignedCase is the SQL projection of a posting's effect on its
// account's balance: debits grow debit-nature accounts, credits grow
// credit-nature ones.
const natureSignedCase = `CASE WHEN a.nature = 'DEBIT' THEN p.debit - p.credit ELSE p.credit - p.debit END`

// settledEntries is the visibility filter shared by every read-side query.
// Reversed entries stay in the aggregates alongside their posted mirrors so
// a reversed pair nets to zero instead of showing up inverted; drafts never
// appear.
const settledEntries = `e.status IN ('POSTED', 'REVERSED')`

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the read-side
// aggregate queries. Every query here consumes settled entries only.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetTrialBalanceData returns one row per account with settled activity in range.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, filter domain.ReportFilter) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.code, a.name, a.account_type,
		       COALESCE(SUM(p.debit), 0) AS total_debit,
		       COALESCE(SUM(p.credit), 0) AS total_credit
		FROM journal_postings p
		JOIN journal_entries e ON e.entry_id = p.entry_id
		JOIN accounts a ON a.account_id = p.account_id
		WHERE ` + settledEntries
	args := []interface{}{}
	if filter.From != "" {
		args = append(args, filter.From)
		query += " AND e.entry_date >= $" + strconv.Itoa(len(args)) + "::date"
	}
	if filter.To != "" {
		args = append(args, filter.To)
		query += " AND e.entry_date <= $" + strconv.Itoa(len(args)) + "::date"
	}
	if filter.Branch != "" {
		args = append(args, filter.Branch)
		query += " AND e.branch = $" + strconv.Itoa(len(args))
	}
	query += `
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// GetAccountActivity returns the settled debit and credit sums for one account.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, accountID int64, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.debit), 0), COALESCE(SUM(p.credit), 0)
		FROM journal_postings p
		JOIN journal_entries e ON e.entry_id = p.entry_id
		WHERE p.account_id = $1 AND ` + settledEntries
	args := []interface{}{accountID}
	if asOf != nil {
		args = append(args, *asOf)
		query += " AND e.entry_date <= $2"
	}
	query += ";"

	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, fmt.Sprintf("failed to sum activity for account %d", accountID), err)
	}
	return debit, credit, nil
}

// accountAmounts runs a nature-signed aggregation over one set of account
// types and buckets the nonzero results by type.
func (r *PgxReportingRepository) accountAmounts(ctx context.Context, query string, args ...interface{}) (map[domain.AccountType][]domain.AccountAmount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account amounts", err)
	}
	defer rows.Close()

	buckets := map[domain.AccountType][]domain.AccountAmount{}
	for rows.Next() {
		var (
			amount      domain.AccountAmount
			accountType domain.AccountType
		)
		if err := rows.Scan(&amount.AccountCode, &amount.Name, &accountType, &amount.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account amount row", err)
		}
		if amount.NetAmount.IsZero() {
			continue
		}
		buckets[accountType] = append(buckets[accountType], amount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account amount rows", err)
	}
	return buckets, nil
}

// GetBalanceSheetData returns nature-signed net balances, including opening
// balances, for the balance-sheet account types as of a date.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.code, a.name, a.account_type,
		       a.opening_balance + COALESCE(SUM(
		           CASE WHEN ` + settledEntries + ` AND e.entry_date <= $1
		                THEN ` + natureSignedCase + `
		                ELSE 0 END), 0) AS net
		FROM accounts a
		LEFT JOIN journal_postings p ON p.account_id = a.account_id
		LEFT JOIN journal_entries e ON e.entry_id = p.entry_id
		WHERE a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.code, a.name, a.account_type, a.opening_balance
		ORDER BY a.code;`
	buckets, err := r.accountAmounts(ctx, query, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	return buckets[domain.Asset], buckets[domain.Liability], buckets[domain.Equity], nil
}

// GetIncomeStatementData returns nature-signed net balances for revenue and
// expense accounts over a date range.
func (r *PgxReportingRepository) GetIncomeStatementData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.code, a.name, a.account_type,
		       COALESCE(SUM(
		           CASE WHEN ` + settledEntries + ` AND e.entry_date >= $1 AND e.entry_date <= $2
		                THEN ` + natureSignedCase + `
		                ELSE 0 END), 0) AS net
		FROM accounts a
		LEFT JOIN journal_postings p ON p.account_id = a.account_id
		LEFT JOIN journal_entries e ON e.entry_id = p.entry_id
		WHERE a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code;`
	buckets, err := r.accountAmounts(ctx, query, from, to)
	if err != nil {
		return nil, nil, err
	}
	return buckets[domain.Revenue], buckets[domain.Expense], nil
}

// GetAccountLedger returns a keyset-paginated statement for one account.
// The running balance window spans the account's full settled history, so a
// date-filtered page still shows balances measured from inception.
func (r *PgxReportingRepository) GetAccountLedger(ctx context.Context, accountID int64, filter domain.ReportFilter, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `
		SELECT entry_id, entry_number, entry_date, description, debit, credit, running_balance, posting_id
		FROM (
			SELECT e.entry_id, e.entry_number, e.entry_date, e.description,
			       p.debit, p.credit, p.posting_id,
			       a.opening_balance + SUM(` + natureSignedCase + `)
			           OVER (ORDER BY e.entry_date, p.posting_id) AS running_balance
			FROM journal_postings p
			JOIN journal_entries e ON e.entry_id = p.entry_id
			JOIN accounts a ON a.account_id = p.account_id
			WHERE p.account_id = $1 AND ` + settledEntries + `
		) s
		WHERE 1=1`
	args := []interface{}{accountID}
	if filter.From != "" {
		args = append(args, filter.From)
		query += " AND entry_date >= $" + strconv.Itoa(len(args)) + "::date"
	}
	if filter.To != "" {
		args = append(args, filter.To)
		query += " AND entry_date <= $" + strconv.Itoa(len(args)) + "::date"
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastPostingID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastDate, lastPostingID)
		query += fmt.Sprintf(" AND (entry_date, posting_id) > ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, fetchLimit)
	query += fmt.Sprintf(" ORDER BY entry_date, posting_id LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query ledger for account %d", accountID), err)
	}
	defer rows.Close()

	type ledgerRow struct {
		line      domain.LedgerLine
		entryDate time.Time
		postingID int64
	}
	fetched := []ledgerRow{}
	for rows.Next() {
		var (
			lr          ledgerRow
			entryNumber *int64
		)
		err := rows.Scan(
			&lr.line.EntryID,
			&entryNumber,
			&lr.entryDate,
			&lr.line.Description,
			&lr.line.Debit,
			&lr.line.Credit,
			&lr.line.RunningBalance,
			&lr.postingID,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		if entryNumber != nil {
			lr.line.EntryNumber = *entryNumber
		}
		lr.line.EntryDate = lr.entryDate.Format("2006-01-02")
		fetched = append(fetched, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}

	var token *string
	if len(fetched) > limit {
		fetched = fetched[:limit]
		last := fetched[limit-1]
		t := pagination.EncodeToken(last.entryDate, last.postingID)
		token = &t
	}
	lines := make([]domain.LedgerLine, len(fetched))
	for i, lr := range fetched {
		lines[i] = lr.line
	}
	return lines, token, nil
}
