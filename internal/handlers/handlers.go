package handlers

import (
	"database/sql"

	"github.com/brandforge/brandforge-golang/internal/ai"
	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/compliance"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/brandforge/brandforge-golang/internal/publish"
	"github.com/brandforge/brandforge-golang/internal/store"
	"github.com/brandforge/brandforge-golang/internal/wizard"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB
	AIService *ai.AIService
	Catalog   *catalog.Catalog

	Drafts    *store.DraftStore
	Reducer   *wizard.Reducer
	Validator *compliance.Validator
	Gate      *publish.Gate
}

// actorFromContext builds the capability token from what the auth
// middleware placed on the gin context.
func actorFromContext(c *gin.Context) models.Actor {
	userID, _ := c.Get("userID")
	role := c.GetString("userRole")
	id, _ := userID.(int64)
	return models.Actor{UserID: id, IsOwner: role == models.RoleOwner}
}
