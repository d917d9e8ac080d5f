package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles the application services the HTTP layer exposes.
type Services struct {
	Auth       AuthService
	Agreements AgreementService
	Evidence   EvidenceService
	Documents  DocumentService
}

// NewRouter assembles the gin engine: CORS, health check, public auth
// endpoints and the token-protected agreement API.
func NewRouter(svcs Services) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Document-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authH := &authHandler{svc: svcs.Auth}
	agreementH := &agreementHandler{svc: svcs.Agreements}
	evidenceH := &evidenceHandler{svc: svcs.Evidence}
	documentH := &documentHandler{svc: svcs.Documents}

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authH.register)
			authGroup.POST("/login", authH.login)
			authGroup.POST("/firebase", authH.externalLogin)
		}

		protected := api.Group("")
		protected.Use(requireAuth(svcs.Auth))
		{
			protected.GET("/me", authH.me)
			protected.POST("/agreements", agreementH.create)
			protected.GET("/agreements", agreementH.list)
			protected.GET("/agreements/:id", agreementH.get)
			protected.POST("/agreements/:id/evidence", evidenceH.upload)
			protected.GET("/agreements/:id/evidence", evidenceH.list)
			protected.POST("/agreements/:id/extract", agreementH.extract)
			protected.POST("/agreements/:id/fields", agreementH.completeFields)
			protected.POST("/agreements/:id/finalize", agreementH.finalize)
			protected.POST("/agreements/:id/cancel", agreementH.cancel)
			protected.POST("/agreements/:id/document", documentH.generate)
			protected.GET("/agreements/:id/documents", documentH.list)
			protected.GET("/documents/:documentId", documentH.download)
		}
	}

	return router
}
