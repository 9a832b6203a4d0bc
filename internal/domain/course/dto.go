package course

import "time"

// CourseRequest is the body of course create and full-replace update
type CourseRequest struct {
	SkillID         string     `json:"skill_id" validate:"required,uuid"`
	Name            string     `json:"name" validate:"required,max=100"`
	Description     string     `json:"description" validate:"required"`
	StartAt         *time.Time `json:"start_at" validate:"required"`
	EndAt           *time.Time `json:"end_at" validate:"required"`
	MaxParticipants int        `json:"max_participants" validate:"required,gt=0"`
	MeetingURL      string     `json:"meeting_url" validate:"omitempty,url,max=2048"`
}

// CourseResponse wraps a single course
type CourseResponse struct {
	Course *Course `json:"course"`
}
