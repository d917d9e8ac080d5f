package agreement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no agreement row exists for the identifier.
	ErrNotFound = errors.New("agreement: not found")
	// ErrOwnerNotFound signals the referenced owner user does not exist.
	ErrOwnerNotFound = errors.New("agreement: owner not found")
	// ErrInvalidState signals an operation attempted in a status that forbids it.
	ErrInvalidState = errors.New("agreement: invalid state for operation")
	// ErrUnknownType signals a value outside the agreement type enumeration.
	ErrUnknownType = errors.New("agreement: unknown agreement type")
	// ErrMissingOwner signals a create request without an owner reference.
	ErrMissingOwner = errors.New("agreement: owner id required")
)

const agreementColumns = `id, owner_id, type::text, status::text, title, description, fields, created_at, updated_at, signed_at`

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed agreement repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new agreement in IN_PROGRESS with an empty field map.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Agreement, error) {
	const insertSQL = `
		INSERT INTO agreements (owner_id, type, title, description)
		VALUES ($1, $2::agreement_type, $3, $4)
		RETURNING ` + agreementColumns

	ag, err := scanAgreement(r.pool.QueryRow(ctx, insertSQL, params.OwnerID, params.Type, params.Title, params.Description))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Agreement{}, ErrOwnerNotFound
		}
		return Agreement{}, fmt.Errorf("agreement: insert: %w", err)
	}

	return ag, nil
}

// Get fetches one agreement by primary key.
func (r *PGRepository) Get(ctx context.Context, id string) (Agreement, error) {
	const selectSQL = `SELECT ` + agreementColumns + ` FROM agreements WHERE id = $1`

	ag, err := scanAgreement(r.pool.QueryRow(ctx, selectSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agreement{}, ErrNotFound
		}
		return Agreement{}, fmt.Errorf("agreement: get: %w", err)
	}

	return ag, nil
}

// ListByOwner returns the owner's agreements, newest first.
func (r *PGRepository) ListByOwner(ctx context.Context, ownerID string) ([]Agreement, error) {
	const listSQL = `
		SELECT ` + agreementColumns + `
		FROM agreements
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, listSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("agreement: list by owner: %w", err)
	}
	defer rows.Close()

	records := []Agreement{}
	for rows.Next() {
		ag, err := scanAgreement(rows)
		if err != nil {
			return nil, fmt.Errorf("agreement: scan row: %w", err)
		}
		records = append(records, ag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("agreement: iterate rows: %w", err)
	}

	return records, nil
}

// ReplaceFields overwrites the field map wholesale without touching status.
// The open-status guard is part of the statement so a racing finalize makes
// the write fail rather than mutate a frozen record.
func (r *PGRepository) ReplaceFields(ctx context.Context, id string, fields FieldMap) (Agreement, error) {
	const updateSQL = `
		UPDATE agreements
		SET fields = $2::jsonb, updated_at = now()
		WHERE id = $1 AND status IN ('IN_PROGRESS', 'REVIEW')
		RETURNING ` + agreementColumns

	return r.guardedUpdate(ctx, updateSQL, id, mustJSON(fields))
}

// CompleteFields overwrites the field map and moves the record to REVIEW.
func (r *PGRepository) CompleteFields(ctx context.Context, id string, fields FieldMap) (Agreement, error) {
	const updateSQL = `
		UPDATE agreements
		SET fields = $2::jsonb, status = 'REVIEW', updated_at = now()
		WHERE id = $1 AND status IN ('IN_PROGRESS', 'REVIEW')
		RETURNING ` + agreementColumns

	return r.guardedUpdate(ctx, updateSQL, id, mustJSON(fields))
}

// Transition moves an open agreement to the target status. The SIGNED
// transition also stamps signed_at, exactly once.
func (r *PGRepository) Transition(ctx context.Context, id string, to Status) (Agreement, error) {
	const updateSQL = `
		UPDATE agreements
		SET status = $2::agreement_status,
		    signed_at = CASE WHEN $2::agreement_status = 'SIGNED' THEN now() ELSE signed_at END,
		    updated_at = now()
		WHERE id = $1 AND status IN ('IN_PROGRESS', 'REVIEW')
		RETURNING ` + agreementColumns

	return r.guardedUpdate(ctx, updateSQL, id, to)
}

// guardedUpdate runs an update whose WHERE clause enforces the open-status
// guard, then distinguishes a missing row from a closed one.
func (r *PGRepository) guardedUpdate(ctx context.Context, sql, id string, arg any) (Agreement, error) {
	ag, err := scanAgreement(r.pool.QueryRow(ctx, sql, id, arg))
	if err == nil {
		return ag, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Agreement{}, fmt.Errorf("agreement: update: %w", err)
	}

	var exists bool
	if probeErr := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM agreements WHERE id = $1)`, id).Scan(&exists); probeErr != nil {
		return Agreement{}, fmt.Errorf("agreement: probe existence: %w", probeErr)
	}
	if !exists {
		return Agreement{}, ErrNotFound
	}
	return Agreement{}, ErrInvalidState
}

func scanAgreement(row pgx.Row) (Agreement, error) {
	var (
		ag        Agreement
		rawFields []byte
		signedAt  *time.Time
	)
	err := row.Scan(
		&ag.ID,
		&ag.OwnerID,
		&ag.Type,
		&ag.Status,
		&ag.Title,
		&ag.Description,
		&rawFields,
		&ag.CreatedAt,
		&ag.UpdatedAt,
		&signedAt,
	)
	if err != nil {
		return Agreement{}, err
	}

	ag.SignedAt = signedAt
	ag.Fields = FieldMap{}
	if len(rawFields) > 0 {
		if err := json.Unmarshal(rawFields, &ag.Fields); err != nil {
			return Agreement{}, fmt.Errorf("agreement: decode fields: %w", err)
		}
	}
	return ag, nil
}

func mustJSON(fields FieldMap) string {
	if fields == nil {
		fields = FieldMap{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	return string(b)
}
