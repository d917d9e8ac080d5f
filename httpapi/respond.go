package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"verisay/agreement"
	"verisay/auth"
	"verisay/evidence"
	"verisay/render"
)

// respondError maps domain sentinel errors onto HTTP status codes and the
// shared {"error": ...} envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, agreement.ErrNotFound),
		errors.Is(err, agreement.ErrOwnerNotFound),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, render.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, agreement.ErrInvalidState),
		errors.Is(err, evidence.ErrLocked),
		errors.Is(err, render.ErrNotSigned):
		return http.StatusConflict
	case errors.Is(err, agreement.ErrUnknownType),
		errors.Is(err, agreement.ErrMissingOwner),
		errors.Is(err, evidence.ErrMissingAgreementID),
		errors.Is(err, evidence.ErrEmptyPayload),
		errors.Is(err, evidence.ErrMissingPartyRole),
		errors.Is(err, evidence.ErrMissingIDProofType),
		errors.Is(err, evidence.ErrUnknownKind),
		errors.Is(err, evidence.ErrUnknownPartyRole),
		errors.Is(err, evidence.ErrUnknownIDProofType),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, evidence.ErrStorageUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// agreementView is the wire representation of an agreement.
type agreementView struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"ownerId"`
	Type        agreement.Type     `json:"type"`
	Status      agreement.Status   `json:"status"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Fields      agreement.FieldMap `json:"fields"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
	SignedAt    *string            `json:"signedAt"`
}

func toAgreementView(ag agreement.Agreement) agreementView {
	view := agreementView{
		ID:          ag.ID,
		OwnerID:     ag.OwnerID,
		Type:        ag.Type,
		Status:      ag.Status,
		Title:       ag.Title,
		Description: ag.Description,
		Fields:      ag.Fields,
		CreatedAt:   ag.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   ag.UpdatedAt.UTC().Format(timeLayout),
	}
	if ag.SignedAt != nil {
		s := ag.SignedAt.UTC().Format(timeLayout)
		view.SignedAt = &s
	}
	return view
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
