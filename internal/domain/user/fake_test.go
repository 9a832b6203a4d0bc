package user

import (
	"context"

	"github.com/google/uuid"
)

type fakeRepo struct {
	users map[uuid.UUID]*User
}

func newFakeRepo(users ...*User) *fakeRepo {
	f := &fakeRepo{users: map[uuid.UUID]*User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.users[id], nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	u, ok := f.users[id]
	if !ok {
		return "", ErrUserNotFound
	}
	return u.Role, nil
}

func (f *fakeRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Name = name
	return nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}
