package course

import "errors"

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrCoachNotFound  = errors.New("coach not found")
	ErrSkillNotFound  = errors.New("skill not found")
	ErrNotCoach       = errors.New("coach role required")
	// ErrForbidden is returned when a coach edits a course they do not own
	ErrForbidden       = errors.New("not allowed to modify this course")
	ErrInvalidSchedule = errors.New("end_at must be after start_at")
)
