package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/pkg/jwt"
	"github.com/livefit/livefit-api/internal/pkg/logger"
	"github.com/livefit/livefit-api/internal/pkg/response"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// ErrUnknownUser is returned by a RoleLookup when the token subject no
// longer exists.
var ErrUnknownUser = errors.New("unknown user")

// RoleLookup resolves the current role of a user. Roles change on coach
// promotion, so the token claim can be stale.
type RoleLookup interface {
	CurrentRole(ctx context.Context, userID uuid.UUID) (string, error)
}

// Auth returns middleware that validates JWT. When roles is non-nil the
// role is reloaded on every request.
func Auth(jwtService *jwt.Service, roles RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				response.Unauthorized(w, "Missing or malformed bearer token")
				return
			}

			claims, err := jwtService.ValidateAccessToken(raw)
			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				response.Unauthorized(w, "Token expired")
				return
			case err != nil:
				response.Unauthorized(w, "Invalid token")
				return
			}

			role := claims.Role
			if roles != nil {
				role, err = roles.CurrentRole(r.Context(), claims.UserID)
				if errors.Is(err, ErrUnknownUser) {
					response.Unauthorized(w, "Invalid token")
					return
				}
				if err != nil {
					logger.FromContext(r.Context()).Error().Err(err).Msg("role lookup failed")
					response.InternalError(w)
					return
				}
			}

			ctx := WithIdentity(r.Context(), claims.UserID, role)
			ctx = logger.WithUserID(ctx, claims.UserID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// WithIdentity stores an authenticated user id and role in ctx.
func WithIdentity(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, RoleKey, role)
}
