package routes

import (
	"net/http"

	"github.com/brandforge/brandforge-golang/internal/handlers"
	"github.com/brandforge/brandforge-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware tells the browser the admin frontend may talk to us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.RegisterEditor)
		v1.POST("/login", h.Login)

		// --- Guideline Routes (Public, read-only) ---
		v1.GET("/guideline", h.GetGuideline)
		v1.GET("/archetypes", h.GetArchetypes)
		v1.GET("/archetypes/:code", h.GetArchetype)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.DB))
		{
			// --- Variant Preview ---
			auth.POST("/variants/preview", h.PreviewVariants)

			// --- Wizard Lifecycle ---
			wizard := auth.Group("/wizard")
			{
				wizard.POST("/drafts", h.StartWizard)
				wizard.GET("/drafts", h.GetMyDrafts)
				wizard.GET("/drafts/:id", h.GetDraft)
				wizard.DELETE("/drafts/:id", h.DeleteDraft)

				wizard.POST("/drafts/:id/actions", h.ApplyAction)
				wizard.POST("/drafts/:id/next", h.GoNext)
				wizard.POST("/drafts/:id/back", h.GoBack)
				wizard.POST("/drafts/:id/goto", h.GoToStep)

				wizard.POST("/drafts/:id/enhance", h.EnhanceDraft)
				wizard.POST("/drafts/:id/validate", h.ValidateDraft)
				wizard.POST("/drafts/:id/publish", h.PublishDraft)
				wizard.POST("/drafts/:id/reset", h.ResetDraft)

				// --- Owner Routes ---
				wizard.GET("/stats", middleware.OwnerMiddleware(), h.GetWizardStats)
			}
		}
	}

	return router
}
