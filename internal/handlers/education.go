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

var educationMessages = map[string]string{
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
	"From":         "From date is required",
}

// AddEducation handles PUT /api/profile/education, mirroring AddExperience
// over the independent education list.
func AddEducation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req struct {
		School       string  `json:"school" binding:"required"`
		Degree       string  `json:"degree" binding:"required"`
		FieldOfStudy string  `json:"fieldofstudy" binding:"required"`
		From         string  `json:"from" binding:"required"`
		To           *string `json:"to"`
		Current      bool    `json:"current"`
		Description  *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, educationMessages)
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
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error adding education"})
		return
	}

	_, err = db.Exec(
		`INSERT INTO profile_education (id, profile_id, school, degree, fieldofstudy, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), profileID, req.School, req.Degree, req.FieldOfStudy, from, to, req.Current, req.Description,
	)
	if err != nil {
		log.Printf("Error inserting education for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error adding education"})
		return
	}

	respondWithProfile(c, userID)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id.
func DeleteEducation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Education entry not found"})
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
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error removing education"})
		return
	}

	res, err := db.Exec(
		`DELETE FROM profile_education WHERE id = $1 AND profile_id = $2`,
		entryID.String(), profileID,
	)
	if err != nil {
		log.Printf("Error deleting education %s: %v", entryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error removing education"})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Education entry not found"})
		return
	}

	respondWithProfile(c, userID)
}
