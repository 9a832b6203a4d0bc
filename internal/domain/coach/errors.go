package coach

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyCoach  = errors.New("user is already a coach")
	ErrCoachNotFound = errors.New("coach not found")
	ErrSkillNotFound = errors.New("skill not found")
	ErrForbidden     = errors.New("admin role required")
	ErrNotCoach      = errors.New("coach role required")
)
