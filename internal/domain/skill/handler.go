package skill

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

// List handles GET /api/coaches/skill
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "skill.List", err)
		return
	}
	response.OK(w, skills)
}

// Create handles POST /api/coaches/skill
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	sk, err := h.service.Create(r.Context(), user.ActorFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, r, "skill.Create", err)
		return
	}
	response.Created(w, sk)
}

// Delete handles DELETE /api/coaches/skill/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid skill id")
		return
	}

	if err := h.service.Delete(r.Context(), user.ActorFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, "skill.Delete", err)
		return
	}
	response.OK(w, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "Admin role required")
	case errors.Is(err, ErrSkillNotFound):
		response.NotFound(w, "Skill not found")
	case errors.Is(err, ErrSkillNameTaken):
		response.Conflict(w, "Skill name already exists")
	case errors.Is(err, ErrSkillInUse):
		response.Conflict(w, "Skill is used by courses")
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
