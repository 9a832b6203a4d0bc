package auth

import "github.com/google/uuid"

// SignupRequest for POST /api/users/signup
type SignupRequest struct {
	Name     string `json:"name" validate:"required,username"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,password_rule"`
}

// LoginRequest for POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest for POST /api/users/refresh and /api/users/logout
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SignupResponse returned after signup
type SignupResponse struct {
	User SignupUser `json:"user"`
}

type SignupUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TokenResponse returned after login and refresh
type TokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"` // seconds until access token expires
	User         LoginUser `json:"user"`
}

type LoginUser struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
