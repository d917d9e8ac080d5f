package render

import (
	"context"
	"fmt"

	"verisay/agreement"
	"verisay/evidence"
)

// Repository defines the document persistence required by the service.
type Repository interface {
	Insert(ctx context.Context, params InsertParams) (Document, error)
	Get(ctx context.Context, id string) (Document, error)
	ListByAgreement(ctx context.Context, agreementID string) ([]Document, error)
}

// AgreementSource resolves the aggregate being rendered.
type AgreementSource interface {
	Get(ctx context.Context, id string) (agreement.Agreement, error)
}

// EvidenceSource lists the evidence references included in the snapshot.
type EvidenceSource interface {
	ListAll(ctx context.Context, agreementID string) ([]evidence.Item, error)
}

// BlobStore archives the generated document bytes.
type BlobStore interface {
	Put(ctx context.Context, data []byte, category, contentType string) (string, error)
	Get(ctx context.Context, locator string) ([]byte, error)
}

// Service produces final documents from signed agreements. Renderer and
// storage errors surface to the caller; nothing is silently substituted.
type Service struct {
	repo       Repository
	agreements AgreementSource
	items      EvidenceSource
	blobs      BlobStore
	gen        Generator
}

func NewService(repo Repository, agreements AgreementSource, items EvidenceSource, blobs BlobStore, gen Generator) *Service {
	return &Service{
		repo:       repo,
		agreements: agreements,
		items:      items,
		blobs:      blobs,
		gen:        gen,
	}
}

// RenderDocument builds the PDF for a SIGNED agreement, archives the bytes
// and records a document row. Rendering any other status fails with
// ErrNotSigned.
func (s *Service) RenderDocument(ctx context.Context, agreementID string) (Document, []byte, error) {
	ag, err := s.agreements.Get(ctx, agreementID)
	if err != nil {
		return Document{}, nil, err
	}
	if ag.Status != agreement.StatusSigned {
		return Document{}, nil, ErrNotSigned
	}

	items, err := s.items.ListAll(ctx, agreementID)
	if err != nil {
		return Document{}, nil, err
	}

	data, err := s.gen.Render(Snapshot{Agreement: ag, Evidence: items})
	if err != nil {
		return Document{}, nil, err
	}

	locator, err := s.blobs.Put(ctx, data, "documents", "application/pdf")
	if err != nil {
		return Document{}, nil, fmt.Errorf("render: archive document: %w", err)
	}

	doc, err := s.repo.Insert(ctx, InsertParams{
		AgreementID: agreementID,
		Locator:     locator,
		FileSize:    int64(len(data)),
	})
	if err != nil {
		return Document{}, nil, err
	}

	return doc, data, nil
}

// GetDocument returns a stored document record and its bytes.
func (s *Service) GetDocument(ctx context.Context, documentID string) (Document, []byte, error) {
	doc, err := s.repo.Get(ctx, documentID)
	if err != nil {
		return Document{}, nil, err
	}
	data, err := s.blobs.Get(ctx, doc.Locator)
	if err != nil {
		return Document{}, nil, fmt.Errorf("render: read document: %w", err)
	}
	return doc, data, nil
}

// ListDocuments returns the document records for an agreement.
func (s *Service) ListDocuments(ctx context.Context, agreementID string) ([]Document, error) {
	return s.repo.ListByAgreement(ctx, agreementID)
}
