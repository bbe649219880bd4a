package repositories

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
)

// DocumentRepositoryFacade exposes the ledger-facing slice of the document
// tables: existence checks, link state and stub intake. The document modules
// own everything else about these rows.
type DocumentRepositoryFacade interface {
	// FindDocument resolves a reference to its row; apperrors.ErrNotFound when
	// the row does not exist. Unknown kinds fail with apperrors.ErrValidation.
	FindDocument(ctx context.Context, ref domain.DocumentRef) (*domain.Document, error)

	// CreateDocument inserts a minimal document row and returns its id.
	CreateDocument(ctx context.Context, kind string, doc domain.Document) (int64, error)
}
