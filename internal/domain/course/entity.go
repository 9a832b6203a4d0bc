package course

import (
	"time"

	"github.com/google/uuid"
)

// Course is a scheduled session run by a coach. UserID is the coach's user id.
type Course struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	SkillID         uuid.UUID `db:"skill_id" json:"skill_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	StartAt         time.Time `db:"start_at" json:"start_at"`
	EndAt           time.Time `db:"end_at" json:"end_at"`
	MaxParticipants int       `db:"max_participants" json:"max_participants"`
	MeetingURL      string    `db:"meeting_url" json:"meeting_url"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Listing is the public view of a course
type Listing struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CoachName       string    `db:"coach_name" json:"coach_name"`
	SkillName       string    `db:"skill_name" json:"skill_name"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	StartAt         time.Time `db:"start_at" json:"start_at"`
	EndAt           time.Time `db:"end_at" json:"end_at"`
	MaxParticipants int       `db:"max_participants" json:"max_participants"`
}
