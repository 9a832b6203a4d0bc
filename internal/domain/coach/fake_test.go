package coach

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
)

type fakeUser struct {
	name string
	role string
}

type fakeRepo struct {
	users   map[uuid.UUID]*fakeUser
	coaches map[uuid.UUID]*Coach
	skills  map[uuid.UUID]bool
	links   map[uuid.UUID][]uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:   map[uuid.UUID]*fakeUser{},
		coaches: map[uuid.UUID]*Coach{},
		skills:  map[uuid.UUID]bool{},
		links:   map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeRepo) Promote(ctx context.Context, c *Coach) (*UserInfo, error) {
	u, ok := f.users[c.UserID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if u.role == "COACH" {
		return nil, ErrAlreadyCoach
	}
	u.role = "COACH"
	cp := *c
	f.coaches[c.ID] = &cp
	return &UserInfo{Name: u.name, Role: u.role}, nil
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]Summary, int, error) {
	all := []Summary{}
	for _, c := range f.coaches {
		all = append(all, Summary{ID: c.ID, Name: f.users[c.UserID].name})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if offset >= total {
		return []Summary{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	c, ok := f.coaches[id]
	if !ok {
		return nil, ErrCoachNotFound
	}
	u := f.users[c.UserID]
	cp := *c
	return &Detail{User: UserInfo{Name: u.name, Role: u.role}, Coach: &cp}, nil
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Coach, error) {
	for _, c := range f.coaches {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCoachNotFound
}

func (f *fakeRepo) SkillIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID{}, f.links[coachID]...), nil
}

func (f *fakeRepo) UpdateProfile(ctx context.Context, c *Coach, skillIDs []uuid.UUID) error {
	if _, ok := f.coaches[c.ID]; !ok {
		return ErrCoachNotFound
	}
	for _, id := range skillIDs {
		if !f.skills[id] {
			return ErrSkillNotFound
		}
	}
	cp := *c
	f.coaches[c.ID] = &cp
	f.links[c.ID] = append([]uuid.UUID{}, skillIDs...)
	return nil
}

func (f *fakeRepo) SetProfileImage(ctx context.Context, coachID uuid.UUID, url string, updatedAt time.Time) error {
	c, ok := f.coaches[coachID]
	if !ok {
		return ErrCoachNotFound
	}
	c.ProfileImageURL = url
	c.UpdatedAt = updatedAt
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return err
	}
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(key string) string {
	return "https://cdn.test/" + key
}
