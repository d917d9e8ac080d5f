package evidence

import (
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the uploaded artifact categories.
type Kind string

const (
	KindFace    Kind = "FACE"
	KindIDProof Kind = "ID_PROOF"
	KindAudio   Kind = "AUDIO"
)

// ParseKind normalizes and validates a client-supplied evidence kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindFace, KindIDProof, KindAudio:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// PartyRole identifies which party a face or ID proof belongs to.
type PartyRole string

const (
	Party1 PartyRole = "PARTY1"
	Party2 PartyRole = "PARTY2"
)

func ParsePartyRole(s string) (PartyRole, error) {
	p := PartyRole(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case Party1, Party2:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPartyRole, s)
	}
}

// IDProofType enumerates the accepted identity documents.
type IDProofType string

const (
	IDProofAadhaar  IDProofType = "AADHAAR"
	IDProofDL       IDProofType = "DL"
	IDProofVoter    IDProofType = "VOTER"
	IDProofPassport IDProofType = "PASSPORT"
	IDProofPAN      IDProofType = "PAN"
)

func ParseIDProofType(s string) (IDProofType, error) {
	p := IDProofType(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case IDProofAadhaar, IDProofDL, IDProofVoter, IDProofPassport, IDProofPAN:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIDProofType, s)
	}
}

// Item is one append-only ledger row. Items are never overwritten, only
// superseded by newer uploads of the same kind.
type Item struct {
	ID          string
	AgreementID string
	Kind        Kind
	PartyRole   *PartyRole
	IDProofType *IDProofType
	Locator     string
	FileName    string
	FileSize    int64
	ContentType string
	UploadedAt  time.Time
}

// blobCategory maps a kind to the blob store category its payloads live in.
func blobCategory(kind Kind) string {
	switch kind {
	case KindFace:
		return "faces"
	case KindIDProof:
		return "id-proofs"
	default:
		return "audio"
	}
}
