package user

// ProfileResponse for GET /api/users/profile
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfileRequest for PUT /api/users/profile
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,username"`
}

// ChangePasswordRequest for PUT /api/users/password
type ChangePasswordRequest struct {
	Password           string `json:"password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,password_rule"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}
