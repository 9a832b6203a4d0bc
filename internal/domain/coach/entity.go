package coach

import (
	"time"

	"github.com/google/uuid"
)

// Coach is the profile attached to a user promoted to COACH
type Coach struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	ExperienceYears int       `db:"experience_years" json:"experience_years"`
	Description     string    `db:"description" json:"description"`
	ProfileImageURL string    `db:"profile_image_url" json:"profile_image_url"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Summary is one row of the public coach list
type Summary struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type UserInfo struct {
	Name string `db:"name" json:"name"`
	Role string `db:"role" json:"role"`
}

// Detail pairs a coach profile with its user
type Detail struct {
	User  UserInfo `json:"user"`
	Coach *Coach   `json:"coach"`
}

// OwnProfile is what a coach sees and edits about themselves
type OwnProfile struct {
	ID              uuid.UUID   `json:"id"`
	ExperienceYears int         `json:"experience_years"`
	Description     string      `json:"description"`
	ProfileImageURL string      `json:"profile_image_url"`
	SkillIDs        []uuid.UUID `json:"skill_ids"`
}

func newOwnProfile(c *Coach, skillIDs []uuid.UUID) *OwnProfile {
	if skillIDs == nil {
		skillIDs = []uuid.UUID{}
	}
	return &OwnProfile{
		ID:              c.ID,
		ExperienceYears: c.ExperienceYears,
		Description:     c.Description,
		ProfileImageURL: c.ProfileImageURL,
		SkillIDs:        skillIDs,
	}
}
