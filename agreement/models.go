package agreement

import (
	"fmt"
	"strings"
	"time"
)

// Type enumerates the supported agreement categories.
type Type string

const (
	TypeRental      Type = "RENTAL"
	TypeBusiness    Type = "BUSINESS"
	TypeLoan        Type = "LOAN"
	TypeFreelancing Type = "FREELANCING"
)

// ParseType normalizes and validates a client-supplied agreement type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeRental, TypeBusiness, TypeLoan, TypeFreelancing:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// FieldMap holds the dynamic per-type agreement data. Keys are advisory:
// required keys drive missing-field reporting, extra keys are tolerated.
type FieldMap map[string]any

// Agreement is the aggregate root for one legal-document-in-progress.
// It mirrors the agreements table and carries no JSON annotations so it
// can be reused by different presentation layers.
type Agreement struct {
	ID          string
	OwnerID     string
	Type        Type
	Status      Status
	Title       string
	Description string
	Fields      FieldMap
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SignedAt    *time.Time
}

// CreateParams contains the inputs for creating a new agreement record.
type CreateParams struct {
	OwnerID     string
	Type        Type
	Title       string
	Description string
}

// ExtractionResult bundles what the extraction pipeline produced and which
// required fields it could not fill.
type ExtractionResult struct {
	ExtractedFields FieldMap `json:"extractedFields"`
	MissingFields   []string `json:"missingFieldNames"`
}
