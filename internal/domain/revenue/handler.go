package revenue

import (
	"errors"
	"net/http"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/errorhandler"
	"github.com/livefit/livefit-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Monthly handles GET /api/admin/coaches/revenue?month=
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.MonthlyRevenue(r.Context(), user.ActorFromContext(r.Context()), r.URL.Query().Get("month"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotCoach):
			response.Forbidden(w, "Coach role required")
		case errors.Is(err, ErrInvalidMonth):
			response.BadRequest(w, "Month must be an English month name")
		case errors.Is(err, ErrNoCreditPackages):
			response.PreconditionFailed(w, "No credit packages available to price credits")
		default:
			errorhandler.Internal(r.Context(), w, "revenue.MonthlyRevenue", err)
		}
		return
	}
	response.OK(w, report)
}
