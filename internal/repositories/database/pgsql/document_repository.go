package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/finbooks/ledger/internal/models"
	"github.com/finbooks/ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// documentTables maps a document kind to its table. Kinds outside this map
// never reach SQL; documentTable is the single gate in front of every
// fmt.Sprintf'd table name.
var documentTables = map[string]string{
	domain.DocInvoice:         "invoices",
	domain.DocSupplierInvoice: "supplier_invoices",
	domain.DocExpense:         "expenses",
	domain.DocPayrollRun:      "payroll_runs",
}

func documentTable(kind string) (string, error) {
	table, ok := documentTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	return table, nil
}

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for the ledger-facing
// slice of the document tables.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

// FindDocument resolves a reference to its row.
func (r *PgxDocumentRepository) FindDocument(ctx context.Context, ref domain.DocumentRef) (*domain.Document, error) {
	table, err := documentTable(ref.Type)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, status, total, journal_entry_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM %s WHERE id = $1;
	`, table)
	var m models.Document
	err = r.Pool.QueryRow(ctx, query, ref.ID).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %d", apperrors.ErrNotFound, ref.Type, ref.ID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find %s %d", ref.Type, ref.ID), err)
	}
	doc := mapping.ToDomainDocument(ref.Type, m)
	return &doc, nil
}

// CreateDocument inserts a minimal document row and returns its id.
func (r *PgxDocumentRepository) CreateDocument(ctx context.Context, kind string, doc domain.Document) (int64, error) {
	table, err := documentTable(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (status, total, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`, table)
	var id int64
	err = r.Pool.QueryRow(ctx, query,
		doc.Status,
		doc.Total,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert "+kind, err)
	}
	return id, nil
}
