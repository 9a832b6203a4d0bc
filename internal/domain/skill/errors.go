package skill

import "errors"

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrSkillNameTaken = errors.New("skill name already exists")
	// ErrSkillInUse is returned when courses still reference the skill
	ErrSkillInUse = errors.New("skill is referenced by courses")
	ErrForbidden  = errors.New("admin role required")
)
