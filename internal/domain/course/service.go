package course

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
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ListAll returns every course with its coach and skill names
func (s *Service) ListAll(ctx context.Context) ([]Listing, error) {
	return s.repo.List(ctx)
}

// ListByCoach returns the courses of the coach with the given coach profile id
func (s *Service) ListByCoach(ctx context.Context, coachID uuid.UUID) ([]Listing, error) {
	return s.repo.ListByCoach(ctx, coachID)
}

// Create schedules a new course owned by the calling coach
func (s *Service) Create(ctx context.Context, caller user.Actor, req *CourseRequest) (*Course, error) {
	if !caller.IsCoach() {
		return nil, ErrNotCoach
	}

	now := s.now().UTC()
	c := &Course{
		ID:        uuid.New(),
		UserID:    caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := apply(c, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("course_id", c.ID.String()).
		Str("coach_user_id", caller.ID.String()).
		Msg("course created")
	return c, nil
}

// Update replaces every editable field. Allowed for the owning coach or an admin.
func (s *Service) Update(ctx context.Context, caller user.Actor, id uuid.UUID, req *CourseRequest) (*Course, error) {
	if !caller.IsCoach() && !caller.IsAdmin() {
		return nil, ErrNotCoach
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && c.UserID != caller.ID {
		return nil, ErrForbidden
	}

	if err := apply(c, req); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListOwn returns the calling coach's courses
func (s *Service) ListOwn(ctx context.Context, caller user.Actor) ([]Course, error) {
	if !caller.IsCoach() {
		return nil, ErrNotCoach
	}
	return s.repo.ListByUser(ctx, caller.ID)
}

// GetOwn returns one of the calling coach's courses. Courses of other
// coaches are reported as not found.
func (s *Service) GetOwn(ctx context.Context, caller user.Actor, id uuid.UUID) (*Course, error) {
	if !caller.IsCoach() {
		return nil, ErrNotCoach
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != caller.ID {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func apply(c *Course, req *CourseRequest) error {
	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		return ErrSkillNotFound
	}
	if !req.EndAt.After(*req.StartAt) {
		return ErrInvalidSchedule
	}

	c.SkillID = skillID
	c.Name = strings.TrimSpace(req.Name)
	c.Description = strings.TrimSpace(req.Description)
	c.StartAt = req.StartAt.UTC()
	c.EndAt = req.EndAt.UTC()
	c.MaxParticipants = req.MaxParticipants
	c.MeetingURL = strings.TrimSpace(req.MeetingURL)
	return nil
}
