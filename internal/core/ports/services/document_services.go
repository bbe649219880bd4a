package services

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/finbooks/ledger/internal/dto"
)

// DocumentSvcFacade is the thin intake surface for document rows, so the
// posting flow has rows to link against. Document business logic lives with
// the document modules, not here.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, kind string, req dto.CreateDocumentRequest, actor string) (*domain.Document, error)
	GetDocument(ctx context.Context, kind string, id int64) (*domain.Document, error)
}
