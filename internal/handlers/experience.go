package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/database"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/middleware"
)

var experienceMessages = map[string]string{
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required",
}

// AddExperience handles PUT /api/profile/experience: prepend a work history
// entry to the caller's profile and return the updated profile.
func AddExperience(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req struct {
		Title       string  `json:"title" binding:"required"`
		Company     string  `json:"company" binding:"required"`
		Location    *string `json:"location"`
		From        string  `json:"from" binding:"required"`
		To          *string `json:"to"`
		Current     bool    `json:"current"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, experienceMessages)
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("From date is required"))
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("To date is invalid"))
		return
	}

	db := database.DB
	profileID, err := fetchProfileID(db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
			return
		}
		log.Printf("Error resolving profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error adding experience"})
		return
	}

	_, err = db.Exec(
		`INSERT INTO profile_experience (id, profile_id, title, company, location, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), profileID, req.Title, req.Company, req.Location, from, to, req.Current, req.Description,
	)
	if err != nil {
		log.Printf("Error inserting experience for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error adding experience"})
		return
	}

	respondWithProfile(c, userID)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id. A missing
// entry is reported, not silently ignored.
func DeleteExperience(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Experience entry not found"})
		return
	}

	db := database.DB
	profileID, err := fetchProfileID(db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
			return
		}
		log.Printf("Error resolving profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error removing experience"})
		return
	}

	res, err := db.Exec(
		`DELETE FROM profile_experience WHERE id = $1 AND profile_id = $2`,
		entryID.String(), profileID,
	)
	if err != nil {
		log.Printf("Error deleting experience %s: %v", entryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error removing experience"})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Experience entry not found"})
		return
	}

	respondWithProfile(c, userID)
}

// respondWithProfile reloads and returns the caller's full profile after a
// mutation.
func respondWithProfile(c *gin.Context, userID int) {
	profile, err := fetchProfileByUserID(database.DB, userID)
	if err != nil {
		log.Printf("Error reloading profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error loading profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
