package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"verisay/evidence"
)

// EvidenceService is the ledger surface the handlers depend on.
type EvidenceService interface {
	Append(ctx context.Context, params evidence.AppendParams) (evidence.Item, error)
	ListAll(ctx context.Context, agreementID string) ([]evidence.Item, error)
}

type evidenceHandler struct {
	svc EvidenceService
}

type evidenceView struct {
	ID          string                `json:"id"`
	AgreementID string                `json:"agreementId"`
	Kind        evidence.Kind         `json:"kind"`
	PartyRole   *evidence.PartyRole   `json:"partyRole"`
	IDProofType *evidence.IDProofType `json:"idProofType"`
	FileName    string                `json:"fileName"`
	FileSize    int64                 `json:"fileSize"`
	ContentType string                `json:"contentType"`
	UploadedAt  string                `json:"uploadedAt"`
}

func toEvidenceView(item evidence.Item) evidenceView {
	return evidenceView{
		ID:          item.ID,
		AgreementID: item.AgreementID,
		Kind:        item.Kind,
		PartyRole:   item.PartyRole,
		IDProofType: item.IDProofType,
		FileName:    item.FileName,
		FileSize:    item.FileSize,
		ContentType: item.ContentType,
		UploadedAt:  item.UploadedAt.UTC().Format(timeLayout),
	}
}

// upload accepts one multipart evidence file. kind is required; partyRole
// and idProofType are required or forbidden depending on kind.
func (h *evidenceHandler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}

	params := evidence.AppendParams{
		AgreementID: c.Param("id"),
		Kind:        evidence.Kind(c.PostForm("kind")),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	if v := c.PostForm("partyRole"); v != "" {
		role, err := evidence.ParsePartyRole(v)
		if err != nil {
			respondError(c, err)
			return
		}
		params.PartyRole = &role
	}
	if v := c.PostForm("idProofType"); v != "" {
		proof, err := evidence.ParseIDProofType(v)
		if err != nil {
			respondError(c, err)
			return
		}
		params.IDProofType = &proof
	}

	item, err := h.svc.Append(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEvidenceView(item))
}

func (h *evidenceHandler) list(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]evidenceView, 0, len(items))
	for _, item := range items {
		views = append(views, toEvidenceView(item))
	}
	c.JSON(http.StatusOK, gin.H{"evidence": views})
}
