package evidence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrLocked signals the agreement no longer accepts uploads.
	ErrLocked = errors.New("evidence: agreement no longer accepts uploads")
	// ErrMissingAgreementID signals an upload without an agreement reference.
	ErrMissingAgreementID = errors.New("evidence: agreement id required")
	// ErrEmptyPayload signals an upload without file bytes.
	ErrEmptyPayload = errors.New("evidence: empty payload")
	// ErrMissingPartyRole signals a face or ID proof upload without a party role.
	ErrMissingPartyRole = errors.New("evidence: party role required")
	// ErrMissingIDProofType signals an ID proof upload without a document type.
	ErrMissingIDProofType = errors.New("evidence: id proof type required")
	// ErrUnknownKind signals a value outside the evidence kind enumeration.
	ErrUnknownKind = errors.New("evidence: unknown evidence kind")
	// ErrUnknownPartyRole signals a value outside the party role enumeration.
	ErrUnknownPartyRole = errors.New("evidence: unknown party role")
	// ErrUnknownIDProofType signals a value outside the ID proof enumeration.
	ErrUnknownIDProofType = errors.New("evidence: unknown id proof type")
	// ErrStorageUnavailable wraps blob store failures during upload.
	ErrStorageUnavailable = errors.New("evidence: blob storage unavailable")
)

const itemColumns = `id, agreement_id, kind::text, party_role::text, id_proof_type::text, locator, file_name, file_size, content_type, uploaded_at`

// InsertParams carries one new ledger row.
type InsertParams struct {
	AgreementID string
	Kind        Kind
	PartyRole   *PartyRole
	IDProofType *IDProofType
	Locator     string
	FileName    string
	FileSize    int64
	ContentType string
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed evidence repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert appends one ledger row. The open-status check is part of the
// statement so the append stays a single atomic operation and never locks
// the aggregate row; a concurrently finalized agreement makes the insert
// report ErrLocked instead of recording evidence.
func (r *PGRepository) Insert(ctx context.Context, params InsertParams) (Item, error) {
	const insertSQL = `
		INSERT INTO evidence_items (agreement_id, kind, party_role, id_proof_type, locator, file_name, file_size, content_type)
		SELECT $1, $2::evidence_kind, $3::party_role, $4::id_proof_type, $5, $6, $7, $8
		WHERE EXISTS (
			SELECT 1 FROM agreements WHERE id = $1 AND status IN ('IN_PROGRESS', 'REVIEW')
		)
		RETURNING ` + itemColumns

	item, err := scanItem(r.pool.QueryRow(ctx, insertSQL,
		params.AgreementID,
		params.Kind,
		params.PartyRole,
		params.IDProofType,
		params.Locator,
		params.FileName,
		params.FileSize,
		params.ContentType,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrLocked
		}
		return Item{}, fmt.Errorf("evidence: insert: %w", err)
	}

	return item, nil
}

// Latest returns the newest item of the given kind, or nil when none exists.
func (r *PGRepository) Latest(ctx context.Context, agreementID string, kind Kind) (*Item, error) {
	const selectSQL = `
		SELECT ` + itemColumns + `
		FROM evidence_items
		WHERE agreement_id = $1 AND kind = $2::evidence_kind
		ORDER BY uploaded_at DESC
		LIMIT 1
	`

	item, err := scanItem(r.pool.QueryRow(ctx, selectSQL, agreementID, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("evidence: latest: %w", err)
	}

	return &item, nil
}

// ListByAgreement returns every ledger row for the agreement, oldest first.
func (r *PGRepository) ListByAgreement(ctx context.Context, agreementID string) ([]Item, error) {
	const listSQL = `
		SELECT ` + itemColumns + `
		FROM evidence_items
		WHERE agreement_id = $1
		ORDER BY uploaded_at ASC
	`

	rows, err := r.pool.Query(ctx, listSQL, agreementID)
	if err != nil {
		return nil, fmt.Errorf("evidence: list: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("evidence: scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("evidence: iterate rows: %w", err)
	}

	return items, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item        Item
		partyRole   *string
		idProofType *string
	)
	err := row.Scan(
		&item.ID,
		&item.AgreementID,
		&item.Kind,
		&partyRole,
		&idProofType,
		&item.Locator,
		&item.FileName,
		&item.FileSize,
		&item.ContentType,
		&item.UploadedAt,
	)
	if err != nil {
		return Item{}, err
	}

	if partyRole != nil {
		role := PartyRole(*partyRole)
		item.PartyRole = &role
	}
	if idProofType != nil {
		proof := IDProofType(*idProofType)
		item.IDProofType = &proof
	}
	return item, nil
}
