package coach

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/errorhandler"
	"github.com/livefit/livefit-api/internal/pkg/imaging"
	"github.com/livefit/livefit-api/internal/pkg/response"
	"github.com/livefit/livefit-api/internal/pkg/storage"
	"github.com/livefit/livefit-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/coaches?page=&per=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Per, _ = strconv.Atoi(r.URL.Query().Get("per"))

	coaches, total, err := h.service.List(r.Context(), &q)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "coach.List", err)
		return
	}
	response.WithMeta(w, coaches, response.NewMeta(total, q.Page, q.Per))
}

// Get handles GET /api/coaches/{coachId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "coachId"))
	if err != nil {
		response.BadRequest(w, "Invalid coach id")
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "coach.Get", err)
		return
	}
	response.OK(w, detail)
}

// Promote handles POST /api/admin/coaches/{userId}
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	var req PromoteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	detail, err := h.service.Promote(r.Context(), user.ActorFromContext(r.Context()), userID, &req)
	if err != nil {
		h.writeError(w, r, "coach.Promote", err)
		return
	}
	response.Created(w, detail)
}

// GetOwn handles GET /api/admin/coaches
func (h *Handler) GetOwn(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetOwn(r.Context(), user.ActorFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, "coach.GetOwn", err)
		return
	}
	response.OK(w, profile)
}

// UpdateOwn handles PUT /api/admin/coaches
func (h *Handler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	profile, err := h.service.UpdateOwn(r.Context(), user.ActorFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, r, "coach.UpdateOwn", err)
		return
	}
	response.OK(w, profile)
}

// UploadImage handles POST /api/admin/coaches/image
// Multipart form: file
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxFileSize+1<<20)

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	profile, err := h.service.UploadProfileImage(r.Context(), user.ActorFromContext(r.Context()), file)
	if err != nil {
		h.writeError(w, r, "coach.UploadProfileImage", err)
		return
	}
	response.OK(w, profile)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "Admin role required")
	case errors.Is(err, ErrNotCoach):
		response.Forbidden(w, "Coach role required")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrCoachNotFound):
		response.NotFound(w, "Coach not found")
	case errors.Is(err, ErrAlreadyCoach):
		response.Conflict(w, "User is already a coach")
	case errors.Is(err, ErrSkillNotFound):
		response.BadRequest(w, "Unknown skill id")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds maximum size")
	case errors.Is(err, storage.ErrInvalidMimeType):
		response.BadRequest(w, "File type not allowed")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "File is empty")
	case errors.Is(err, imaging.ErrTooSmall), errors.Is(err, imaging.ErrTooLarge):
		response.BadRequest(w, "Image dimensions not allowed")
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
