package render

import (
	"time"

	"verisay/agreement"
	"verisay/evidence"
)

// Document records one generated agreement PDF.
type Document struct {
	ID          string
	AgreementID string
	Locator     string
	FileSize    int64
	GeneratedAt time.Time
}

// Snapshot is the frozen view of a signed agreement handed to the
// generator: the aggregate plus its evidence references.
type Snapshot struct {
	Agreement agreement.Agreement
	Evidence  []evidence.Item
}
