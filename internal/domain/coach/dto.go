package coach

// PromoteRequest for POST /api/admin/coaches/{userId}
type PromoteRequest struct {
	ExperienceYears *int   `json:"experience_years" validate:"required,gte=0"`
	Description     string `json:"description" validate:"required"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url,max=2048"`
}

// UpdateRequest for PUT /api/admin/coaches
type UpdateRequest struct {
	ExperienceYears *int     `json:"experience_years" validate:"required,gte=0"`
	Description     string   `json:"description" validate:"required"`
	ProfileImageURL string   `json:"profile_image_url" validate:"omitempty,url,max=2048"`
	SkillIDs        []string `json:"skill_ids" validate:"required,dive,uuid"`
}

// ListQuery is the paging of GET /api/coaches
type ListQuery struct {
	Page int
	Per  int
}

const (
	defaultPer = 10
	maxPer     = 50
)

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Per < 1 {
		q.Per = defaultPer
	}
	if q.Per > maxPer {
		q.Per = maxPer
	}
}
