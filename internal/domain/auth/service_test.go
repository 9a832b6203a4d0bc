package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/jwt"
)

type fakeUserRepo struct {
	byID map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	f.byID[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetRole(ctx context.Context, id uuid.UUID) (user.Role, error) {
	if u, ok := f.byID[id]; ok {
		return u.Role, nil
	}
	return "", user.ErrUserNotFound
}
func (f *fakeUserRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error { return nil }
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}

type fakeTokenStore struct {
	tokens map[string]uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]uuid.UUID{}}
}

func (f *fakeTokenStore) Save(ctx context.Context, hash string, userID uuid.UUID, ttl time.Duration) error {
	f.tokens[hash] = userID
	return nil
}
func (f *fakeTokenStore) Lookup(ctx context.Context, hash string) (uuid.UUID, error) {
	id, ok := f.tokens[hash]
	if !ok {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}
func (f *fakeTokenStore) Delete(ctx context.Context, hash string) error {
	delete(f.tokens, hash)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeTokenStore) {
	users := newFakeUserRepo()
	tokens := newFakeTokenStore()
	return NewService(users, jwt.NewService("secret", time.Minute, time.Hour), tokens), users, tokens
}

func TestSignupCreatesUser(t *testing.T) {
	svc, users, _ := newTestService()

	resp, err := svc.Signup(context.Background(), &SignupRequest{Name: "alice", Email: " Alice@Example.com ", Password: "Secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	created := users.byID[resp.User.ID]
	if created == nil {
		t.Fatal("expected user to be stored")
	}
	if created.Email != "alice@example.com" || created.Role != user.RoleUser {
		t.Fatalf("unexpected user %+v", created)
	}
	if created.PasswordHash == "Secret123" {
		t.Fatal("password stored in clear text")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	req := &SignupRequest{Name: "alice", Email: "alice@example.com", Password: "Secret123"}

	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(ctx, req); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newTestService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, &SignupRequest{Name: "alice", Email: "alice@example.com", Password: "Secret123"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{Email: "ALICE@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" || resp.User.Name != "alice" {
		t.Fatalf("unexpected login response %+v", resp)
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("expected one stored refresh token, got %d", len(tokens.tokens))
	}
	if _, ok := tokens.tokens[resp.RefreshToken]; ok {
		t.Fatal("refresh token must be stored hashed")
	}

	for _, req := range []*LoginRequest{
		{Email: "alice@example.com", Password: "Wrong1234"},
		{Email: "nobody@example.com", Password: "Secret123"},
	} {
		if _, err := svc.Login(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %s, got %v", req.Email, err)
		}
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	svc.Signup(ctx, &SignupRequest{Name: "alice", Email: "alice@example.com", Password: "Secret123"})
	login, err := svc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected a new refresh token")
	}
	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("old refresh token must be revoked, got %v", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	svc.Signup(ctx, &SignupRequest{Name: "alice", Email: "alice@example.com", Password: "Secret123"})
	login, _ := svc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "Secret123"})

	if err := svc.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRedisTokenStoreWithoutRedis(t *testing.T) {
	store := NewRedisTokenStore(nil)
	ctx := context.Background()

	if err := store.Save(ctx, "h", uuid.New(), time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Lookup(ctx, "h"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
