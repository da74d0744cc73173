package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/database"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/utils"
)

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Enter a valid email",
	"Password": "Password must be 6 or more characters",
}

// Register handles POST /api/users: create an account and return a bearer
// token. Side effects are confined to the single INSERT; the duplicate
// pre-check, avatar derivation, and hashing are read-only.
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, registerMessages)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := database.DB

	var existingID int
	err := db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, errorBody("User already exists"))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("Error checking existing user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error creating user"})
		return
	}

	avatar := utils.GravatarURL(email)

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error creating user"})
		return
	}

	var userID int
	err = db.QueryRow(
		`INSERT INTO users (name, email, password, avatar) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Name, email, hashed, avatar,
	).Scan(&userID)
	if err != nil {
		// The pre-check races with concurrent registrations; the unique
		// index is authoritative.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, errorBody("User already exists"))
			return
		}
		log.Printf("Error inserting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error creating user"})
		return
	}

	token, err := utils.GenerateToken(userID)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
