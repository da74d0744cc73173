package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/database"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/middleware"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/models"
)

const profileSelect = `
	SELECT p.id, p.user_id, p.company, p.website, p.location, p.status, p.skills,
	       p.bio, p.githubusername, p.youtube, p.twitter, p.facebook, p.linkedin,
	       p.instagram, p.created_at, p.updated_at, u.name, u.avatar
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	owner := models.PublicUser{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Status,
		pq.Array(&p.Skills),
		&p.Bio,
		&p.GithubUser,
		&p.Social.Youtube,
		&p.Social.Twitter,
		&p.Social.Facebook,
		&p.Social.Linkedin,
		&p.Social.Instagram,
		&p.CreatedAt,
		&p.UpdatedAt,
		&owner.Name,
		&owner.Avatar,
	)
	if err != nil {
		return nil, err
	}
	owner.ID = p.UserID
	p.Owner = &owner
	return &p, nil
}

// loadProfileEntries fills the experience and education lists, newest first.
func loadProfileEntries(db *sql.DB, p *models.Profile) error {
	p.Experience = []models.Experience{}
	p.Education = []models.Education{}

	rows, err := db.Query(
		`SELECT id, title, company, location, from_date, to_date, current, description
		 FROM profile_experience WHERE profile_id = $1 ORDER BY seq DESC`,
		p.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e models.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return err
		}
		p.Experience = append(p.Experience, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eduRows, err := db.Query(
		`SELECT id, school, degree, fieldofstudy, from_date, to_date, current, description
		 FROM profile_education WHERE profile_id = $1 ORDER BY seq DESC`,
		p.ID,
	)
	if err != nil {
		return err
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e models.Education
		if err := eduRows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return err
		}
		p.Education = append(p.Education, e)
	}
	return eduRows.Err()
}

func fetchProfileByUserID(db *sql.DB, userID int) (*models.Profile, error) {
	p, err := scanProfile(db.QueryRow(profileSelect+` WHERE p.user_id = $1`, userID))
	if err != nil {
		return nil, err
	}
	if err := loadProfileEntries(db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// fetchProfileID resolves the profile row id for a user.
func fetchProfileID(db *sql.DB, userID int) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&id)
	return id, err
}

// GetMyProfile handles GET /api/profile/me.
func GetMyProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	profile, err := fetchProfileByUserID(database.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "There is no profile for this user"})
			return
		}
		log.Printf("Error loading profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error loading profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

var upsertMessages = map[string]string{
	"Status": "Status is required",
	"Skills": "Skills are required",
}

// UpsertProfile handles POST /api/profile. The write is a single atomic
// insert-or-update keyed on user_id: optional fields that arrive empty leave
// existing values untouched via COALESCE, so concurrent identical requests
// cannot create a second profile row.
func UpsertProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req struct {
		Company    *string `json:"company"`
		Website    *string `json:"website"`
		Location   *string `json:"location"`
		Status     string  `json:"status" binding:"required"`
		Skills     string  `json:"skills" binding:"required"`
		Bio        *string `json:"bio"`
		GithubUser *string `json:"githubusername"`
		Youtube    *string `json:"youtube"`
		Twitter    *string `json:"twitter"`
		Facebook   *string `json:"facebook"`
		Linkedin   *string `json:"linkedin"`
		Instagram  *string `json:"instagram"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err, upsertMessages)
		return
	}

	skills := splitSkills(req.Skills)
	if len(skills) == 0 {
		c.JSON(http.StatusBadRequest, errorBody("Skills are required"))
		return
	}

	db := database.DB
	_, err := db.Exec(
		`INSERT INTO profiles (user_id, company, website, location, status, skills,
		                       bio, githubusername, youtube, twitter, facebook, linkedin, instagram)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO UPDATE SET
		     company        = COALESCE(EXCLUDED.company, profiles.company),
		     website        = COALESCE(EXCLUDED.website, profiles.website),
		     location       = COALESCE(EXCLUDED.location, profiles.location),
		     status         = EXCLUDED.status,
		     skills         = EXCLUDED.skills,
		     bio            = COALESCE(EXCLUDED.bio, profiles.bio),
		     githubusername = COALESCE(EXCLUDED.githubusername, profiles.githubusername),
		     youtube        = COALESCE(EXCLUDED.youtube, profiles.youtube),
		     twitter        = COALESCE(EXCLUDED.twitter, profiles.twitter),
		     facebook       = COALESCE(EXCLUDED.facebook, profiles.facebook),
		     linkedin       = COALESCE(EXCLUDED.linkedin, profiles.linkedin),
		     instagram      = COALESCE(EXCLUDED.instagram, profiles.instagram),
		     updated_at     = CURRENT_TIMESTAMP`,
		userID, req.Company, req.Website, req.Location, req.Status, pq.Array(skills),
		req.Bio, req.GithubUser, req.Youtube, req.Twitter, req.Facebook, req.Linkedin, req.Instagram,
	)
	if err != nil {
		log.Printf("Error upserting profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error saving profile"})
		return
	}

	profile, err := fetchProfileByUserID(db, userID)
	if err != nil {
		log.Printf("Error reloading profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error saving profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ListProfiles handles GET /api/profile. Public.
func ListProfiles(c *gin.Context) {
	db := database.DB
	rows, err := db.Query(profileSelect + ` ORDER BY p.id ASC`)
	if err != nil {
		log.Printf("Error listing profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error listing profiles"})
		return
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Printf("Error scanning profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error listing profiles"})
			return
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error listing profiles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error listing profiles"})
		return
	}

	for _, p := range profiles {
		if err := loadProfileEntries(db, p); err != nil {
			log.Printf("Error loading entries for profile %d: %v", p.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error listing profiles"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// GetProfileByUserID handles GET /api/profile/user/:user_id. A malformed id
// is indistinguishable from a missing profile on purpose.
func GetProfileByUserID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Profile not found"})
		return
	}

	profile, err := fetchProfileByUserID(database.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Profile not found"})
			return
		}
		log.Printf("Error loading profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error loading profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// DeleteProfileAndUser handles DELETE /api/profile: both removals run in one
// transaction so a crash cannot leave an orphaned user row.
func DeleteProfileAndUser(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	db := database.DB
	tx, err := db.Begin()
	if err != nil {
		log.Printf("Error starting delete transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error deleting user"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		log.Printf("Error deleting profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error deleting user"})
		return
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		log.Printf("Error deleting user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error deleting user"})
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing delete for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Error deleting user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}
