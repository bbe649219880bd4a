package pgsql

import (
	"context"
	"fmt"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/finbooks/ledger/internal/models"
	"github.com/finbooks/ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the reconciliation
// sweep queries. Everything here is plain reads; no locks, no writes.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// FindUnbalancedEntries returns posted entries whose posting sums differ.
// A consistent write path can never produce one; a hit means corruption.
func (r *PgxAuditRepository) FindUnbalancedEntries(ctx context.Context) ([]domain.EntryDelta, error) {
	query := `
		SELECT e.entry_id, e.entry_number, COALESCE(SUM(p.debit - p.credit), 0) AS delta
		FROM journal_entries e
		LEFT JOIN journal_postings p ON p.entry_id = e.entry_id
		WHERE e.status IN ('POSTED', 'REVERSED')
		GROUP BY e.entry_id, e.entry_number
		HAVING COALESCE(SUM(p.debit - p.credit), 0) <> 0
		ORDER BY e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbalanced entries", err)
	}
	defer rows.Close()

	deltas := []domain.EntryDelta{}
	for rows.Next() {
		var d domain.EntryDelta
		if err := rows.Scan(&d.EntryID, &d.EntryNumber, &d.Delta); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unbalanced entry row", err)
		}
		deltas = append(deltas, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unbalanced entry rows", err)
	}
	return deltas, nil
}

// FindOrphanReferences returns posted entries of one kind whose referenced
// document row no longer exists.
func (r *PgxAuditRepository) FindOrphanReferences(ctx context.Context, kind string) ([]domain.JournalEntry, error) {
	table, err := documentTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT e.entry_id, e.entry_number, e.description, e.entry_date, e.branch, e.status,
		       e.reference_type, e.reference_id, e.original_entry_id, e.reversing_entry_id,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM journal_entries e
		WHERE e.status IN ('POSTED', 'REVERSED')
		  AND e.reference_type = $1 AND e.reference_id IS NOT NULL
		  AND NOT EXISTS (SELECT 1 FROM %s d WHERE d.id = e.reference_id)
		ORDER BY e.entry_id;
	`, table)
	rows, err := r.Pool.Query(ctx, query, kind)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orphan references for "+kind, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan orphan reference row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating orphan reference rows", err)
	}
	return entries, nil
}

// FindDuplicateLinks returns document references claimed by more than one
// entry. Reversal mirrors carry original_entry_id and are excluded: a mirror
// legitimately repeats its original's reference.
func (r *PgxAuditRepository) FindDuplicateLinks(ctx context.Context) ([]domain.DuplicateLink, error) {
	query := `
		SELECT reference_type, reference_id, ARRAY_AGG(entry_id ORDER BY entry_id)
		FROM journal_entries
		WHERE status IN ('POSTED', 'REVERSED')
		  AND reference_id IS NOT NULL
		  AND original_entry_id IS NULL
		GROUP BY reference_type, reference_id
		HAVING COUNT(*) > 1
		ORDER BY reference_type, reference_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query duplicate links", err)
	}
	defer rows.Close()

	dups := []domain.DuplicateLink{}
	for rows.Next() {
		var d domain.DuplicateLink
		if err := rows.Scan(&d.Ref.Type, &d.Ref.ID, &d.EntryIDs); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan duplicate link row", err)
		}
		dups = append(dups, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating duplicate link rows", err)
	}
	return dups, nil
}

// FindBrokenDocumentLinks returns posted documents of one kind whose ledger
// link is missing or points at an entry that is not POSTED.
func (r *PgxAuditRepository) FindBrokenDocumentLinks(ctx context.Context, kind string) ([]domain.Document, error) {
	table, err := documentTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT d.id, d.status, d.total, d.journal_entry_id,
		       d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
		FROM %s d
		LEFT JOIN journal_entries e ON e.entry_id = d.journal_entry_id
		WHERE d.status = 'posted'
		  AND (d.journal_entry_id IS NULL OR e.status IS DISTINCT FROM 'POSTED')
		ORDER BY d.id;
	`, table)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query broken document links for "+kind, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var m models.Document
		err := rows.Scan(
			&m.ID,
			&m.Status,
			&m.Total,
			&m.JournalEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan broken link row", err)
		}
		docs = append(docs, mapping.ToDomainDocument(kind, m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating broken link rows", err)
	}
	return docs, nil
}

// GlobalTotals returns the system-wide posted debit and credit sums.
func (r *PgxAuditRepository) GlobalTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.debit), 0), COALESCE(SUM(p.credit), 0)
		FROM journal_postings p
		JOIN journal_entries e ON e.entry_id = p.entry_id
		WHERE e.status IN ('POSTED', 'REVERSED');
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum global totals", err)
	}
	return debit, credit, nil
}

// FindDanglingParents returns accounts whose parent pointer resolves to nothing.
func (r *PgxAuditRepository) FindDanglingParents(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.local_name, a.account_type, a.nature,
		       a.parent_account_id, a.opening_balance, a.allow_manual_entry,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM accounts a
		WHERE a.parent_account_id IS NOT NULL
		  AND NOT EXISTS (SELECT 1 FROM accounts pa WHERE pa.account_id = a.parent_account_id)
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query dangling parents", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan dangling parent row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating dangling parent rows", err)
	}
	return accounts, nil
}

// FindInformalPeriods returns period keys holding posted entries with no
// accounting_periods row. Legal (unknown periods are open by default) but
// worth surfacing.
func (r *PgxAuditRepository) FindInformalPeriods(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT TO_CHAR(e.entry_date, 'YYYY-MM') AS period_key
		FROM journal_entries e
		WHERE e.status IN ('POSTED', 'REVERSED')
		  AND NOT EXISTS (
		      SELECT 1 FROM accounting_periods ap
		      WHERE ap.period_key = TO_CHAR(e.entry_date, 'YYYY-MM')
		  )
		ORDER BY period_key;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query informal periods", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan informal period row", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating informal period rows", err)
	}
	return keys, nil
}
