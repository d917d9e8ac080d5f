package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"verisay/render"
)

// DocumentService is the rendering surface the handlers depend on.
type DocumentService interface {
	RenderDocument(ctx context.Context, agreementID string) (render.Document, []byte, error)
	GetDocument(ctx context.Context, documentID string) (render.Document, []byte, error)
	ListDocuments(ctx context.Context, agreementID string) ([]render.Document, error)
}

type documentHandler struct {
	svc DocumentService
}

type documentView struct {
	ID          string `json:"id"`
	AgreementID string `json:"agreementId"`
	FileSize    int64  `json:"fileSize"`
	GeneratedAt string `json:"generatedAt"`
}

func toDocumentView(doc render.Document) documentView {
	return documentView{
		ID:          doc.ID,
		AgreementID: doc.AgreementID,
		FileSize:    doc.FileSize,
		GeneratedAt: doc.GeneratedAt.UTC().Format(timeLayout),
	}
}

// generate renders the final PDF for a signed agreement and streams it back.
func (h *documentHandler) generate(c *gin.Context) {
	doc, data, err := h.svc.RenderDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Document-Id", doc.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "agreement-"+doc.AgreementID+".pdf"))
	c.Data(http.StatusCreated, "application/pdf", data)
}

func (h *documentHandler) download(c *gin.Context) {
	doc, data, err := h.svc.GetDocument(c.Request.Context(), c.Param("documentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "agreement-"+doc.AgreementID+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *documentHandler) list(c *gin.Context) {
	docs, err := h.svc.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]documentView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, toDocumentView(doc))
	}
	c.JSON(http.StatusOK, gin.H{"documents": views})
}
