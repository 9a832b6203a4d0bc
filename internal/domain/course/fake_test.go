package course

import (
	"context"

	"github.com/google/uuid"
)

type fakeRepo struct {
	courses map[uuid.UUID]Course
	skills  map[uuid.UUID]bool
	coaches map[uuid.UUID]uuid.UUID // coach id -> user id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		courses: map[uuid.UUID]Course{},
		skills:  map[uuid.UUID]bool{},
		coaches: map[uuid.UUID]uuid.UUID{},
	}
}

func (f *fakeRepo) listing(c Course) Listing {
	return Listing{ID: c.ID, Name: c.Name, Description: c.Description, StartAt: c.StartAt, EndAt: c.EndAt, MaxParticipants: c.MaxParticipants}
}

func (f *fakeRepo) List(ctx context.Context) ([]Listing, error) {
	out := []Listing{}
	for _, c := range f.courses {
		out = append(out, f.listing(c))
	}
	return out, nil
}

func (f *fakeRepo) ListByCoach(ctx context.Context, coachID uuid.UUID) ([]Listing, error) {
	userID, ok := f.coaches[coachID]
	if !ok {
		return nil, ErrCoachNotFound
	}
	out := []Listing{}
	for _, c := range f.courses {
		if c.UserID == userID {
			out = append(out, f.listing(c))
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Course, error) {
	out := []Course{}
	for _, c := range f.courses {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (f *fakeRepo) Create(ctx context.Context, c *Course) error {
	if !f.skills[c.SkillID] {
		return ErrSkillNotFound
	}
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, c *Course) error {
	if _, ok := f.courses[c.ID]; !ok {
		return ErrCourseNotFound
	}
	if !f.skills[c.SkillID] {
		return ErrSkillNotFound
	}
	f.courses[c.ID] = *c
	return nil
}
