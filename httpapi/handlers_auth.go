package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"verisay/auth"
)

// AuthService is the authentication surface the handlers depend on.
type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error)
	FindOrCreateExternalUser(ctx context.Context, externalUID, email, fullName string) (auth.LoginResult, error)
	GetUserByID(ctx context.Context, userID string) (*auth.User, error)
}

type authHandler struct {
	svc AuthService
}

type userView struct {
	ID       string  `json:"id"`
	Email    *string `json:"email"`
	FullName string  `json:"fullName"`
}

func toUserView(u auth.User) userView {
	return userView{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

func (h *authHandler) register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserView(*user)})
}

func (h *authHandler) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": toUserView(result.User)})
}

// me returns the authenticated account.
func (h *authHandler) me(c *gin.Context) {
	user, err := h.svc.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserView(*user)})
}

type externalLoginRequest struct {
	ExternalUID string `json:"externalUid"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
}

// externalLogin exchanges an identity-provider UID for a session token,
// creating the account on first sight.
func (h *authHandler) externalLogin(c *gin.Context) {
	var req externalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ExternalUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "externalUid is required"})
		return
	}

	result, err := h.svc.FindOrCreateExternalUser(c.Request.Context(), req.ExternalUID, req.Email, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": toUserView(result.User)})
}
