package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"verisay/agreement"
)

// AgreementService is the lifecycle surface the handlers depend on.
type AgreementService interface {
	Create(ctx context.Context, params agreement.CreateParams) (agreement.Agreement, error)
	Get(ctx context.Context, id string) (agreement.Agreement, error)
	ListByOwner(ctx context.Context, ownerID string) ([]agreement.Agreement, error)
	RunExtraction(ctx context.Context, id string) (agreement.ExtractionResult, error)
	CompleteFields(ctx context.Context, id string, fields agreement.FieldMap) (agreement.Agreement, error)
	Finalize(ctx context.Context, id string) (agreement.Agreement, error)
	Cancel(ctx context.Context, id string) (agreement.Agreement, error)
}

type agreementHandler struct {
	svc AgreementService
}

type createAgreementRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *agreementHandler) create(c *gin.Context) {
	var req createAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ag, err := h.svc.Create(c.Request.Context(), agreement.CreateParams{
		OwnerID:     currentUserID(c),
		Type:        agreement.Type(req.Type),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAgreementView(ag))
}

func (h *agreementHandler) get(c *gin.Context) {
	ag, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAgreementView(ag))
}

func (h *agreementHandler) list(c *gin.Context) {
	ags, err := h.svc.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]agreementView, 0, len(ags))
	for _, ag := range ags {
		views = append(views, toAgreementView(ag))
	}
	c.JSON(http.StatusOK, gin.H{"agreements": views})
}

func (h *agreementHandler) extract(c *gin.Context) {
	result, err := h.svc.RunExtraction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type completeFieldsRequest struct {
	Fields agreement.FieldMap `json:"fields"`
}

func (h *agreementHandler) completeFields(c *gin.Context) {
	var req completeFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ag, err := h.svc.CompleteFields(c.Request.Context(), c.Param("id"), req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAgreementView(ag))
}

func (h *agreementHandler) finalize(c *gin.Context) {
	ag, err := h.svc.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAgreementView(ag))
}

func (h *agreementHandler) cancel(c *gin.Context) {
	ag, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAgreementView(ag))
}
