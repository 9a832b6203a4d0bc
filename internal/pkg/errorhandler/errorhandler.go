package errorhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/livefit/livefit-api/internal/pkg/logger"
	"github.com/livefit/livefit-api/internal/pkg/response"
)

// Internal answers an unexpected error with a bare 500. The error and the
// failing operation only go to the log; requests abandoned by the client
// are logged at debug level.
func Internal(ctx context.Context, w http.ResponseWriter, op string, err error) {
	l := logger.FromContext(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		l.Debug().Err(err).Str("operation", op).Msg("Request cancelled by client")
	} else {
		l.Error().Err(err).Str("operation", op).Msg("Request failed")
	}
	response.InternalError(w)
}

// Validation answers 422 with the per-field messages.
func Validation(ctx context.Context, w http.ResponseWriter, fields map[string]string) {
	logger.FromContext(ctx).Debug().
		Interface("validation_errors", fields).
		Msg("Validation error")

	response.ValidationError(w, fields)
}
