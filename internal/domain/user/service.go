package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/pkg/logger"
	"github.com/livefit/livefit-api/internal/pkg/password"
)

// Service handles profile and password operations of the signed-in user
type Service struct {
	repo Repository
}

// NewService creates user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) load(ctx context.Context, userID uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetProfile returns name and email
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{Name: u.Name, Email: u.Email}, nil
}

// UpdateProfile renames the user
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	if u.Name == name {
		return ErrNameUnchanged
	}
	return s.repo.UpdateName(ctx, userID, name)
}

// ChangePassword replaces the password after checking the current one
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return ErrPasswordMismatch
	}
	if req.NewPassword == req.Password {
		return ErrPasswordUnchanged
	}

	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("user_id", userID.String()).Msg("password changed")
	return nil
}
