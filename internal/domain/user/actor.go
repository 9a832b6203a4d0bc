package user

import (
	"context"

	"github.com/livefit/livefit-api/internal/middleware"
)

// ActorFromContext returns the caller stored by the auth middleware
func ActorFromContext(ctx context.Context) Actor {
	return Actor{
		ID:   middleware.GetUserID(ctx),
		Role: Role(middleware.GetRole(ctx)),
	}
}
