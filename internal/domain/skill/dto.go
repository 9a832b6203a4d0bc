package skill

// CreateRequest for POST /api/coaches/skill
type CreateRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}
