package models

import (
	"time"
)

// Profile holds the public developer profile for one user. At most one
// profile exists per user; Owner carries the joined name/avatar when the
// profile is read.
type Profile struct {
	ID            int          `json:"id" db:"id"`
	UserID        int          `json:"user_id" db:"user_id"`
	Company       *string      `json:"company,omitempty" db:"company"`
	Website       *string      `json:"website,omitempty" db:"website"`
	Location      *string      `json:"location,omitempty" db:"location"`
	Status        string       `json:"status" db:"status"`
	Skills        []string     `json:"skills" db:"skills"`
	Bio           *string      `json:"bio,omitempty" db:"bio"`
	GithubUser    *string      `json:"githubusername,omitempty" db:"githubusername"`
	Social        SocialLinks  `json:"social"`
	Experience    []Experience `json:"experience"`
	Education     []Education  `json:"education"`
	Owner         *PublicUser  `json:"user,omitempty"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// SocialLinks are all optional.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty" db:"youtube"`
	Twitter   *string `json:"twitter,omitempty" db:"twitter"`
	Facebook  *string `json:"facebook,omitempty" db:"facebook"`
	Linkedin  *string `json:"linkedin,omitempty" db:"linkedin"`
	Instagram *string `json:"instagram,omitempty" db:"instagram"`
}

// Experience is one work history entry. Entries are kept newest-first.
type Experience struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Company     string     `json:"company" db:"company"`
	Location    *string    `json:"location,omitempty" db:"location"`
	From        time.Time  `json:"from" db:"from_date"`
	To          *time.Time `json:"to,omitempty" db:"to_date"`
	Current     bool       `json:"current" db:"current"`
	Description *string    `json:"description,omitempty" db:"description"`
}

// Education is one schooling entry, same ordering discipline as Experience.
type Education struct {
	ID           string     `json:"id" db:"id"`
	School       string     `json:"school" db:"school"`
	Degree       string     `json:"degree" db:"degree"`
	FieldOfStudy string     `json:"fieldofstudy" db:"fieldofstudy"`
	From         time.Time  `json:"from" db:"from_date"`
	To           *time.Time `json:"to,omitempty" db:"to_date"`
	Current      bool       `json:"current" db:"current"`
	Description  *string    `json:"description,omitempty" db:"description"`
}
