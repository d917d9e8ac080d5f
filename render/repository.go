package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotSigned signals a render request for an agreement that is not SIGNED.
	ErrNotSigned = errors.New("render: agreement is not signed")
	// ErrDocumentNotFound signals the requested document row does not exist.
	ErrDocumentNotFound = errors.New("render: document not found")
)

const documentColumns = `id, agreement_id, locator, file_size, generated_at`

// InsertParams carries one generated document record.
type InsertParams struct {
	AgreementID string
	Locator     string
	FileSize    int64
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed document repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert records a freshly generated document.
func (r *PGRepository) Insert(ctx context.Context, params InsertParams) (Document, error) {
	const insertSQL = `
		INSERT INTO documents (agreement_id, locator, file_size)
		VALUES ($1, $2, $3)
		RETURNING ` + documentColumns

	doc, err := scanDocument(r.pool.QueryRow(ctx, insertSQL, params.AgreementID, params.Locator, params.FileSize))
	if err != nil {
		return Document{}, fmt.Errorf("render: insert document: %w", err)
	}
	return doc, nil
}

// Get fetches one document row by primary key.
func (r *PGRepository) Get(ctx context.Context, id string) (Document, error) {
	const selectSQL = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(r.pool.QueryRow(ctx, selectSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrDocumentNotFound
		}
		return Document{}, fmt.Errorf("render: get document: %w", err)
	}
	return doc, nil
}

// ListByAgreement returns the agreement's documents, newest first.
func (r *PGRepository) ListByAgreement(ctx context.Context, agreementID string) ([]Document, error) {
	const listSQL = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE agreement_id = $1
		ORDER BY generated_at DESC
	`

	rows, err := r.pool.Query(ctx, listSQL, agreementID)
	if err != nil {
		return nil, fmt.Errorf("render: list documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("render: scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("render: iterate documents: %w", err)
	}

	return docs, nil
}

func scanDocument(row pgx.Row) (Document, error) {
	var doc Document
	err := row.Scan(&doc.ID, &doc.AgreementID, &doc.Locator, &doc.FileSize, &doc.GeneratedAt)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}
