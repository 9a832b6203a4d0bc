package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/middleware"
	"github.com/livefit/livefit-api/internal/pkg/errorhandler"
	"github.com/livefit/livefit-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Book handles POST /api/courses/{courseId}
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "courseId"))
	if err != nil {
		response.BadRequest(w, "Invalid course id")
		return
	}

	if err := h.service.Book(r.Context(), middleware.GetUserID(r.Context()), courseID); err != nil {
		h.writeError(w, r, "booking.Book", err)
		return
	}
	response.Created(w, nil)
}

// Cancel handles DELETE /api/courses/{courseId}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(chi.URLParam(r, "courseId"))
	if err != nil {
		response.BadRequest(w, "Invalid course id")
		return
	}

	if err := h.service.Cancel(r.Context(), middleware.GetUserID(r.Context()), courseID); err != nil {
		h.writeError(w, r, "booking.Cancel", err)
		return
	}
	response.OK(w, nil)
}

// Summary handles GET /api/users/courses
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.CreditSummary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		errorhandler.Internal(r.Context(), w, "booking.CreditSummary", err)
		return
	}
	response.OK(w, summary)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrCourseNotFound):
		response.NotFound(w, "Course not found")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "No active booking for this course")
	case errors.Is(err, ErrAlreadyBooked):
		response.Conflict(w, "Course already booked")
	case errors.Is(err, ErrCancelFailed):
		response.Conflict(w, "Update failed")
	case errors.Is(err, ErrNoCredits):
		response.CapacityExceeded(w, "No credits remaining")
	case errors.Is(err, ErrCourseFull):
		response.CapacityExceeded(w, "Course is full")
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
