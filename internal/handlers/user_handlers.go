package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/brandforge/brandforge-golang/internal/auth"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- User Registration ---

// RegisterUserInput is separate from models.User because we never accept an
// 'id' or 'role' from the client.
type RegisterUserInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterEditor creates a new editor account. Owner accounts are
// provisioned out of band.
func (h *Handlers) RegisterEditor(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	query := `
		INSERT INTO users (role, email, password_hash, full_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := h.DB.Exec(query, models.RoleEditor, input.Email, password.Hash, input.FullName, now, now)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	userID, _ := result.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Editor registered successfully.",
		"userId":  userID,
	})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a JWT carrying the user's role.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := "SELECT id, role, email, password_hash, full_name FROM users WHERE email = ?"
	err := h.DB.QueryRow(query, input.Email).Scan(
		&user.ID, &user.Role, &user.Email, &user.PasswordHash, &user.FullName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"role":     user.Role,
			"email":    user.Email,
			"fullName": user.FullName,
		},
	})
}
