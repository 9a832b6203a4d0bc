package course

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/errorhandler"
	"github.com/livefit/livefit-api/internal/pkg/response"
	"github.com/livefit/livefit-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/courses
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListAll(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "course.ListAll", err)
		return
	}
	response.OK(w, courses)
}

// ListByCoach handles GET /api/coaches/{coachId}/courses
func (h *Handler) ListByCoach(w http.ResponseWriter, r *http.Request) {
	coachID, err := uuid.Parse(chi.URLParam(r, "coachId"))
	if err != nil {
		response.BadRequest(w, "Invalid coach id")
		return
	}

	courses, err := h.service.ListByCoach(r.Context(), coachID)
	if err != nil {
		h.writeError(w, r, "course.ListByCoach", err)
		return
	}
	response.OK(w, courses)
}

// Create handles POST /api/admin/coaches/courses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	c, err := h.service.Create(r.Context(), user.ActorFromContext(r.Context()), req)
	if err != nil {
		h.writeError(w, r, "course.Create", err)
		return
	}
	response.Created(w, CourseResponse{Course: c})
}

// Update handles PUT /api/admin/coaches/courses/{courseId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "courseId"))
	if err != nil {
		response.BadRequest(w, "Invalid course id")
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	c, err := h.service.Update(r.Context(), user.ActorFromContext(r.Context()), id, req)
	if err != nil {
		h.writeError(w, r, "course.Update", err)
		return
	}
	response.OK(w, CourseResponse{Course: c})
}

// ListOwn handles GET /api/admin/coaches/courses
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListOwn(r.Context(), user.ActorFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, "course.ListOwn", err)
		return
	}
	response.OK(w, courses)
}

// GetOwn handles GET /api/admin/coaches/courses/{courseId}
func (h *Handler) GetOwn(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "courseId"))
	if err != nil {
		response.BadRequest(w, "Invalid course id")
		return
	}

	c, err := h.service.GetOwn(r.Context(), user.ActorFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, "course.GetOwn", err)
		return
	}
	response.OK(w, CourseResponse{Course: c})
}

// CoachRoutes returns the coach's own course router. Callers must already be authenticated.
func (h *Handler) CoachRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListOwn)
	r.Post("/", h.Create)
	r.Get("/{courseId}", h.GetOwn)
	r.Put("/{courseId}", h.Update)
	return r
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*CourseRequest, bool) {
	var req CourseRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return nil, false
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return nil, false
	}
	return &req, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotCoach):
		response.Forbidden(w, "Coach role required")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "Not allowed to modify this course")
	case errors.Is(err, ErrCourseNotFound):
		response.NotFound(w, "Course not found")
	case errors.Is(err, ErrCoachNotFound):
		response.NotFound(w, "Coach not found")
	case errors.Is(err, ErrSkillNotFound):
		response.BadRequest(w, "Unknown skill_id")
	case errors.Is(err, ErrInvalidSchedule):
		response.BadRequest(w, "end_at must be after start_at")
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
