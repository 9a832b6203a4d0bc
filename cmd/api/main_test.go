package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/auth"
	"github.com/livefit/livefit-api/internal/domain/booking"
	"github.com/livefit/livefit-api/internal/domain/coach"
	"github.com/livefit/livefit-api/internal/domain/course"
	"github.com/livefit/livefit-api/internal/domain/credit"
	"github.com/livefit/livefit-api/internal/domain/revenue"
	"github.com/livefit/livefit-api/internal/domain/skill"
	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/middleware"
)

func passthrough(next http.Handler) http.Handler { return next }

func denyAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func testRouter(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	mountRoutes(r, &handlers{
		auth:    &auth.Handler{},
		user:    &user.Handler{},
		credit:  &credit.Handler{},
		booking: &booking.Handler{},
		revenue: &revenue.Handler{},
		skill:   &skill.Handler{},
		course:  &course.Handler{},
		coach:   &coach.Handler{},
	}, authMiddleware, passthrough)
	return r
}

func TestMountRoutes_RegistersAPI(t *testing.T) {
	var registered []string
	err := chi.Walk(testRouter(passthrough), func(method, route string, handler http.Handler, mws ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		registered = append(registered, method+" "+route)
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(registered)
	have := strings.Join(registered, "\n")

	want := []string{
		"POST /api/users/signup",
		"POST /api/users/login",
		"POST /api/users/refresh",
		"POST /api/users/logout",
		"GET /api/users/profile",
		"PUT /api/users/profile",
		"PUT /api/users/password",
		"GET /api/users/courses",
		"GET /api/users/credit-package",
		"GET /api/credit-package",
		"POST /api/credit-package",
		"DELETE /api/credit-package/{id}",
		"POST /api/credit-package/{id}",
		"GET /api/coaches/skill",
		"POST /api/coaches/skill",
		"DELETE /api/coaches/skill/{id}",
		"GET /api/coaches",
		"GET /api/coaches/{coachId}",
		"GET /api/coaches/{coachId}/courses",
		"GET /api/courses",
		"POST /api/courses/{courseId}",
		"DELETE /api/courses/{courseId}",
		"GET /api/admin/coaches",
		"PUT /api/admin/coaches",
		"POST /api/admin/coaches/image",
		"GET /api/admin/coaches/revenue",
		"POST /api/admin/coaches/{userId}",
		"GET /api/admin/coaches/courses",
		"POST /api/admin/coaches/courses",
		"GET /api/admin/coaches/courses/{courseId}",
		"PUT /api/admin/coaches/courses/{courseId}",
	}
	for _, route := range want {
		found := false
		for _, got := range registered {
			if got == route {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("route %q not registered; have:\n%s", route, have)
		}
	}
}

func TestMountRoutes_ProtectedRoutesRequireAuth(t *testing.T) {
	r := testRouter(denyAll)
	id := uuid.NewString()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/profile"},
		{http.MethodGet, "/api/users/courses"},
		{http.MethodPost, "/api/courses/" + id},
		{http.MethodDelete, "/api/courses/" + id},
		{http.MethodPost, "/api/credit-package/" + id},
		{http.MethodPost, "/api/coaches/skill"},
		{http.MethodGet, "/api/admin/coaches/revenue?month=january"},
		{http.MethodPost, "/api/admin/coaches/" + id},
		{http.MethodPut, "/api/admin/coaches/courses/" + id},
	}

	for _, tt := range protected {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

type stubUsers struct {
	user.Repository
	role user.Role
	err  error
}

func (s *stubUsers) GetRole(ctx context.Context, id uuid.UUID) (user.Role, error) {
	return s.role, s.err
}

func TestRoleLookup(t *testing.T) {
	ctx := context.Background()

	role, err := (&roleLookup{repo: &stubUsers{role: user.RoleCoach}}).CurrentRole(ctx, uuid.New())
	if err != nil || role != "COACH" {
		t.Fatalf("expected COACH, got %q (%v)", role, err)
	}

	_, err = (&roleLookup{repo: &stubUsers{err: user.ErrUserNotFound}}).CurrentRole(ctx, uuid.New())
	if !errors.Is(err, middleware.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}

	boom := errors.New("db down")
	_, err = (&roleLookup{repo: &stubUsers{err: boom}}).CurrentRole(ctx, uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}
}
