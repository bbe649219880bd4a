package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/finbooks/ledger/internal/models"
	"github.com/finbooks/ledger/internal/utils/mapping"
	"github.com/finbooks/ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `
	entry_id, entry_number, description, entry_date, branch, status,
	reference_type, reference_id, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal entries and postings.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.Description,
		&m.EntryDate,
		&m.Branch,
		&m.Status,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateEntry inserts an entry with its postings in one transaction.
// Posted entries take their entry number from journal_entry_number_seq inside
// the same transaction; the sequence is never touched for drafts, so rejected
// or draft work leaves no gap.
func (r *PgxLedgerRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, postings []domain.JournalPosting, linkDocument bool) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelEntry(entry)
	if entry.Status == domain.Posted {
		var number int64
		if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&number); err != nil {
			return nil, apperrors.NewAppError(500, "failed to allocate entry number", err)
		}
		modelEntry.EntryNumber = &number
	}

	entryQuery := `
		INSERT INTO journal_entries (
			entry_number, description, entry_date, branch, status,
			reference_type, reference_id, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING entry_id;
	`
	err = tx.QueryRow(ctx, entryQuery,
		modelEntry.EntryNumber,
		modelEntry.Description,
		modelEntry.EntryDate,
		modelEntry.Branch,
		modelEntry.Status,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	).Scan(&modelEntry.EntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry", err)
	}

	batch := &pgx.Batch{}
	postingQuery := `
		INSERT INTO journal_postings (entry_id, account_id, debit, credit, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, p := range postings {
		modelPosting := mapping.ToModelPosting(p)
		batch.Queue(postingQuery,
			modelEntry.EntryID,
			modelPosting.AccountID,
			modelPosting.Debit,
			modelPosting.Credit,
			modelPosting.CreatedAt,
			modelPosting.CreatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to insert postings for entry %d", modelEntry.EntryID), err)
	}

	if linkDocument {
		ref := entry.Reference()
		if ref == nil {
			return nil, apperrors.NewAppError(500, "linkDocument requested but entry carries no reference", nil)
		}
		if err := claimDocument(ctx, tx, *ref, modelEntry.EntryID, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	created := mapping.ToDomainEntry(modelEntry)
	created.Postings = entry.Postings
	return &created, nil
}

// claimDocument links a document row to an entry with a guarded update. The
// IS NULL predicate is the concurrency gate: two entries racing for the same
// document serialize on the row, and the loser sees zero rows affected.
func claimDocument(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef, entryID int64, actor string, now time.Time) error {
	table, err := documentTable(ref.Type)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET journal_entry_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE id = $4 AND journal_entry_id IS NULL;
	`, table)
	tag, err := tx.Exec(ctx, query, entryID, now, actor, ref.ID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to claim %s %d", ref.Type, ref.ID), err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	// Zero rows: either the document vanished or someone else holds the link.
	var existingEntryID *int64
	err = tx.QueryRow(ctx, fmt.Sprintf(`SELECT journal_entry_id FROM %s WHERE id = $1;`, table), ref.ID).Scan(&existingEntryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, ref.Type, ref.ID)
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to inspect %s %d after claim miss", ref.Type, ref.ID), err)
	}
	return fmt.Errorf("%w: %s %d is already linked to entry %d", apperrors.ErrAlreadyLinked, ref.Type, ref.ID, derefEntryID(existingEntryID))
}

func derefEntryID(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// PostDraft promotes a DRAFT entry to POSTED in one transaction.
func (r *PgxLedgerRepository) PostDraft(ctx context.Context, entryID int64, actor string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	m, err := scanEntry(tx.QueryRow(ctx, lockQuery, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock entry %d", entryID), err)
	}
	if m.Status != models.EntryStatus(domain.Draft) {
		return nil, fmt.Errorf("%w: entry %d is %s", apperrors.ErrConflict, entryID, m.Status)
	}

	var number int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&number); err != nil {
		return nil, apperrors.NewAppError(500, "failed to allocate entry number", err)
	}
	updateQuery := `
		UPDATE journal_entries
		SET entry_number = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, number, domain.Posted, now, actor); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to promote entry %d", entryID), err)
	}
	m.EntryNumber = &number
	m.Status = models.EntryStatus(domain.Posted)
	m.LastUpdatedAt = now
	m.LastUpdatedBy = actor

	if m.ReferenceType != "" && m.ReferenceID != nil {
		ref := domain.DocumentRef{Type: m.ReferenceType, ID: *m.ReferenceID}
		if err := claimDocument(ctx, tx, ref, entryID, actor, now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	posted := mapping.ToDomainEntry(m)
	return &posted, nil
}

// MarkReversed flips a POSTED entry to REVERSED and releases its document
// link. Idempotent on retry with the same reversing entry id, so a reversal
// interrupted between its two transactions can simply be re-run.
func (r *PgxLedgerRepository) MarkReversed(ctx context.Context, entryID int64, reversingEntryID int64, clearRef *domain.DocumentRef, actor string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var (
		status   models.EntryStatus
		existing *int64
	)
	lockQuery := `SELECT status, reversing_entry_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, entryID).Scan(&status, &existing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, entryID)
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to lock entry %d", entryID), err)
	}
	if status == models.EntryStatus(domain.Reversed) {
		if existing != nil && *existing == reversingEntryID {
			return r.Commit(ctx, tx) // already done
		}
		return fmt.Errorf("%w: entry %d is already reversed by entry %d", apperrors.ErrConflict, entryID, derefEntryID(existing))
	}
	if status != models.EntryStatus(domain.Posted) {
		return fmt.Errorf("%w: entry %d is %s", apperrors.ErrNotPosted, entryID, status)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, domain.Reversed, reversingEntryID, now, actor); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to mark entry %d reversed", entryID), err)
	}

	if clearRef != nil {
		table, err := documentTable(clearRef.Type)
		if err != nil {
			return err
		}
		releaseQuery := fmt.Sprintf(`
			UPDATE %s
			SET journal_entry_id = NULL, last_updated_at = $1, last_updated_by = $2
			WHERE id = $3 AND journal_entry_id = $4;
		`, table)
		// Zero rows here is fine: the link may already be gone.
		if _, err := tx.Exec(ctx, releaseQuery, now, actor, clearRef.ID, entryID); err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to release %s %d", clearRef.Type, clearRef.ID), err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry row without its postings.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `SELECT` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find entry %d", entryID), err)
	}
	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// FindPostingsByEntryID retrieves the posting lines of an entry with their
// account codes, in insertion order.
func (r *PgxLedgerRepository) FindPostingsByEntryID(ctx context.Context, entryID int64) ([]domain.JournalPosting, error) {
	query := `
		SELECT p.posting_id, p.entry_id, p.account_id, a.code, p.debit, p.credit, p.created_at, p.created_by
		FROM journal_postings p
		JOIN accounts a ON a.account_id = p.account_id
		WHERE p.entry_id = $1
		ORDER BY p.posting_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query postings for entry %d", entryID), err)
	}
	defer rows.Close()

	postings := []models.JournalPosting{}
	for rows.Next() {
		var p models.JournalPosting
		err := rows.Scan(
			&p.PostingID,
			&p.EntryID,
			&p.AccountID,
			&p.AccountCode,
			&p.Debit,
			&p.Credit,
			&p.CreatedAt,
			&p.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to scan posting row for entry %d", entryID), err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("error iterating posting rows for entry %d", entryID), err)
	}
	return mapping.ToDomainPostingSlice(postings), nil
}

// DeleteDraft removes a DRAFT entry with its postings.
func (r *PgxLedgerRepository) DeleteDraft(ctx context.Context, entryID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.EntryStatus
	lockQuery := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, entryID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, entryID)
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to lock entry %d", entryID), err)
	}
	if status != models.EntryStatus(domain.Draft) {
		return fmt.Errorf("%w: entry %d is %s, only drafts can be deleted", apperrors.ErrConflict, entryID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_postings WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete postings of entry %d", entryID), err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete entry %d", entryID), err)
	}
	return r.Commit(ctx, tx)
}

// ListEntries returns a keyset-paginated page of entries, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + fmt.Sprintf(clause, "$"+strconv.Itoa(len(args)))
	}
	if params.From != nil {
		addArg("entry_date >= %s", *params.From)
	}
	if params.To != nil {
		addArg("entry_date <= %s", *params.To)
	}
	if params.Branch != "" {
		addArg("branch = %s", params.Branch)
	}
	if params.Status != "" {
		addArg("status = %s", string(params.Status))
	}
	if params.NextToken != nil && *params.NextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastDate, lastID)
		query += fmt.Sprintf(" AND (entry_date, entry_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, fetchLimit)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, entry_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryID)
		nextToken = &token
	}
	return entries, nextToken, nil
}
