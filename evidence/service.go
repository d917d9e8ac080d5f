package evidence

import (
	"context"
	"fmt"

	"verisay/agreement"
)

// Repository defines the data access required by the ledger service.
type Repository interface {
	Insert(ctx context.Context, params InsertParams) (Item, error)
	Latest(ctx context.Context, agreementID string, kind Kind) (*Item, error)
	ListByAgreement(ctx context.Context, agreementID string) ([]Item, error)
}

// AgreementSource resolves the aggregate an upload attaches to.
type AgreementSource interface {
	Get(ctx context.Context, id string) (agreement.Agreement, error)
}

// BlobStore persists raw uploaded bytes under a category.
type BlobStore interface {
	Put(ctx context.Context, data []byte, category, contentType string) (string, error)
}

// AppendParams carries one upload request.
type AppendParams struct {
	AgreementID string
	Kind        Kind
	PartyRole   *PartyRole
	IDProofType *IDProofType
	FileName    string
	ContentType string
	Data        []byte
}

// Service is the append-only evidence ledger. Appends are independent of
// aggregate-field mutation so concurrent uploads never serialize on the
// agreement record.
type Service struct {
	repo       Repository
	agreements AgreementSource
	blobs      BlobStore
}

func NewService(repo Repository, agreements AgreementSource, blobs BlobStore) *Service {
	return &Service{
		repo:       repo,
		agreements: agreements,
		blobs:      blobs,
	}
}

// Append validates the upload, persists the bytes in the blob store and
// records the ledger row. Blob persistence happens first; if it fails no
// evidence row is created.
func (s *Service) Append(ctx context.Context, params AppendParams) (Item, error) {
	if params.AgreementID == "" {
		return Item{}, ErrMissingAgreementID
	}
	if len(params.Data) == 0 {
		return Item{}, ErrEmptyPayload
	}
	kind, err := ParseKind(string(params.Kind))
	if err != nil {
		return Item{}, err
	}
	params.Kind = kind
	switch params.Kind {
	case KindFace:
		if params.PartyRole == nil {
			return Item{}, ErrMissingPartyRole
		}
	case KindIDProof:
		if params.PartyRole == nil {
			return Item{}, ErrMissingPartyRole
		}
		if params.IDProofType == nil {
			return Item{}, ErrMissingIDProofType
		}
	case KindAudio:
		// audio belongs to the agreement as a whole, not a party
		params.PartyRole = nil
		params.IDProofType = nil
	}

	ag, err := s.agreements.Get(ctx, params.AgreementID)
	if err != nil {
		return Item{}, err
	}
	if !ag.Status.Mutable() {
		return Item{}, ErrLocked
	}

	locator, err := s.blobs.Put(ctx, params.Data, blobCategory(params.Kind), params.ContentType)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return s.repo.Insert(ctx, InsertParams{
		AgreementID: params.AgreementID,
		Kind:        params.Kind,
		PartyRole:   params.PartyRole,
		IDProofType: params.IDProofType,
		Locator:     locator,
		FileName:    params.FileName,
		FileSize:    int64(len(params.Data)),
		ContentType: params.ContentType,
	})
}

// Latest returns the newest item of a kind, or nil when none exists.
func (s *Service) Latest(ctx context.Context, agreementID string, kind Kind) (*Item, error) {
	return s.repo.Latest(ctx, agreementID, kind)
}

// ListAll returns every evidence item attached to the agreement.
func (s *Service) ListAll(ctx context.Context, agreementID string) ([]Item, error) {
	return s.repo.ListByAgreement(ctx, agreementID)
}

// LatestAudio implements the extraction pipeline's audio lookup.
func (s *Service) LatestAudio(ctx context.Context, agreementID string) (string, string, bool, error) {
	item, err := s.repo.Latest(ctx, agreementID, KindAudio)
	if err != nil {
		return "", "", false, err
	}
	if item == nil {
		return "", "", false, nil
	}
	return item.Locator, item.ContentType, true, nil
}
