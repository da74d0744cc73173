package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/database"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/middleware"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/models"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/utils"
)

var loginMessages = map[string]string{
	"Email":    "Enter a valid email",
	"Password": "Password is required",
}

// CurrentUser handles GET /api/auth: return the authenticated user without
// the password hash.
func CurrentUser(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var user models.User
	err := database.DB.QueryRow(
		`SELECT id, name, email, avatar, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		log.Printf("Error loading user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error loading user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// Login handles POST /api/auth: verify credentials and return a bearer
// token. Unknown email and wrong password produce the same message so that
// accounts cannot be enumerated.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, loginMessages)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := database.DB.QueryRow(
		`SELECT id, name, email, password, avatar FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusBadRequest, errorBody("Invalid credentials"))
			return
		}
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error logging in"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, errorBody("Invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
