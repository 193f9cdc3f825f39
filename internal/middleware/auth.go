package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/brandforge/brandforge-golang/internal/auth"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// RoleLookup resolves a user's current role. It returns sql.ErrNoRows when
// the account no longer exists.
type RoleLookup func(userID int64) (string, error)

// AuthMiddleware validates the bearer token and loads the caller's current
// role from the database. A deleted account is rejected outright; the
// token's role claim is used only when the lookup fails transiently (the
// claim can go stale when an account is promoted or demoted, but a stale
// role beats locking everyone out during a database blip).
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return authWithLookup(func(userID int64) (string, error) {
		var role string
		err := db.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role)
		return role, err
	})
}

func authWithLookup(lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		userID, tokenRole, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		role := tokenRole
		dbRole, err := lookup(userID)
		switch {
		case err == nil:
			role = dbRole
		case errors.Is(err, sql.ErrNoRows):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

// OwnerMiddleware gates routes that need the owner capability. Must run
// after AuthMiddleware.
func OwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != models.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: owner role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
