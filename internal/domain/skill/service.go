package skill

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/logger"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Skill, error) {
	return s.repo.List(ctx)
}

// Create adds a skill. Admin only.
func (s *Service) Create(ctx context.Context, caller user.Actor, req *CreateRequest) (*Skill, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	sk := &Skill{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sk); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("skill_id", sk.ID.String()).Str("name", sk.Name).Msg("skill created")
	return sk, nil
}

// Delete removes a skill. Admin only.
func (s *Service) Delete(ctx context.Context, caller user.Actor, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
