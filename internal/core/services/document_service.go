package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
)

// documentService is intake-only: it records document rows so the posting
// flow has something to claim. All document business logic lives elsewhere.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewDocumentService creates a new document intake service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{documentRepo: documentRepo}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) CreateDocument(ctx context.Context, kind string, req dto.CreateDocumentRequest, actor string) (*domain.Document, error) {
	if !domain.KnownDocumentKind(kind) {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}
	if req.Total.IsNegative() {
		return nil, fmt.Errorf("%w: document total must not be negative", apperrors.ErrValidation)
	}
	now := time.Now()
	doc := domain.Document{
		Kind:   kind,
		Status: req.Status,
		Total:  req.Total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	id, err := s.documentRepo.CreateDocument(ctx, kind, doc)
	if err != nil {
		s.LogError(ctx, err, "failed to create document", "kind", kind)
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	doc.ID = id
	s.LogInfo(ctx, "document created", "kind", kind, "documentID", id)
	return &doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, kind string, id int64) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocument(ctx, domain.DocumentRef{Type: kind, ID: id})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "failed to fetch document", "kind", kind, "documentID", id)
		return nil, fmt.Errorf("failed to fetch %s %d: %w", kind, id, err)
	}
	return doc, nil
}
