package coach

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/imaging"
	"github.com/livefit/livefit-api/internal/pkg/logger"
	"github.com/livefit/livefit-api/internal/pkg/storage"
)

type Service struct {
	repo    Repository
	storage storage.Storage
	images  *imaging.Processor
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage, images *imaging.Processor) *Service {
	return &Service{repo: repo, storage: store, images: images, now: time.Now}
}

// Promote turns a user into a coach. Admin only.
func (s *Service) Promote(ctx context.Context, caller user.Actor, userID uuid.UUID, req *PromoteRequest) (*Detail, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	now := s.now().UTC()
	c := &Coach{
		ID:              uuid.New(),
		UserID:          userID,
		ExperienceYears: *req.ExperienceYears,
		Description:     strings.TrimSpace(req.Description),
		ProfileImageURL: strings.TrimSpace(req.ProfileImageURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	info, err := s.repo.Promote(ctx, c)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("coach_id", c.ID.String()).
		Str("admin_id", caller.ID.String()).
		Msg("user promoted to coach")
	return &Detail{User: *info, Coach: c}, nil
}

// List returns one page of coaches and the total count. The query is
// normalized in place.
func (s *Service) List(ctx context.Context, q *ListQuery) ([]Summary, int, error) {
	q.normalize()
	return s.repo.List(ctx, q.Per, (q.Page-1)*q.Per)
}

func (s *Service) Get(ctx context.Context, coachID uuid.UUID) (*Detail, error) {
	return s.repo.GetByID(ctx, coachID)
}

// GetOwn returns the calling coach's profile with linked skills
func (s *Service) GetOwn(ctx context.Context, caller user.Actor) (*OwnProfile, error) {
	c, err := s.own(ctx, caller)
	if err != nil {
		return nil, err
	}
	skillIDs, err := s.repo.SkillIDs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return newOwnProfile(c, skillIDs), nil
}

// UpdateOwn replaces the calling coach's profile fields and skill links
func (s *Service) UpdateOwn(ctx context.Context, caller user.Actor, req *UpdateRequest) (*OwnProfile, error) {
	c, err := s.own(ctx, caller)
	if err != nil {
		return nil, err
	}

	skillIDs := make([]uuid.UUID, 0, len(req.SkillIDs))
	seen := make(map[uuid.UUID]bool, len(req.SkillIDs))
	for _, raw := range req.SkillIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrSkillNotFound
		}
		if !seen[id] {
			seen[id] = true
			skillIDs = append(skillIDs, id)
		}
	}

	c.ExperienceYears = *req.ExperienceYears
	c.Description = strings.TrimSpace(req.Description)
	c.ProfileImageURL = strings.TrimSpace(req.ProfileImageURL)
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateProfile(ctx, c, skillIDs); err != nil {
		return nil, err
	}
	return newOwnProfile(c, skillIDs), nil
}

// UploadProfileImage crops and re-encodes the image, stores it and saves its
// URL on the calling coach's profile.
func (s *Service) UploadProfileImage(ctx context.Context, caller user.Actor, reader io.Reader) (*OwnProfile, error) {
	c, err := s.own(ctx, caller)
	if err != nil {
		return nil, err
	}

	data, _, err := storage.ReadImage(reader, imaging.MaxFileSize)
	if err != nil {
		return nil, err
	}
	img, err := s.images.ProcessProfile(data)
	if errors.Is(err, imaging.ErrUndecodable) {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidMimeType, err)
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("coaches/%s/profile-%s.jpg", c.ID, uuid.NewString())
	if err := s.storage.Put(ctx, key, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return nil, fmt.Errorf("store profile image: %w", err)
	}

	c.ProfileImageURL = s.storage.GetURL(key)
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.SetProfileImage(ctx, c.ID, c.ProfileImageURL, c.UpdatedAt); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.FromContext(ctx).Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned profile image")
		}
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("coach_id", c.ID.String()).
		Int("width", img.Width).
		Int("height", img.Height).
		Msg("coach profile image updated")

	skillIDs, err := s.repo.SkillIDs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return newOwnProfile(c, skillIDs), nil
}

func (s *Service) own(ctx context.Context, caller user.Actor) (*Coach, error) {
	if !caller.IsCoach() {
		return nil, ErrNotCoach
	}
	return s.repo.GetByUserID(ctx, caller.ID)
}
