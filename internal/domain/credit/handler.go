package credit

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/middleware"
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

// List handles GET /api/credit-package
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "credit.ListPackages", err)
		return
	}
	response.OK(w, packages)
}

// Create handles POST /api/credit-package
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), user.ActorFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, r, "credit.CreatePackage", err)
		return
	}
	response.Created(w, pkg)
}

// Delete handles DELETE /api/credit-package/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid credit package id")
		return
	}

	if err := h.service.DeletePackage(r.Context(), user.ActorFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, "credit.DeletePackage", err)
		return
	}
	response.OK(w, nil)
}

// Buy handles POST /api/credit-package/{id}
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid credit package id")
		return
	}

	record, err := h.service.Purchase(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, "credit.Purchase", err)
		return
	}
	response.Created(w, record)
}

// ListPurchases handles GET /api/users/credit-package
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListPurchases(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		errorhandler.Internal(r.Context(), w, "credit.ListPurchases", err)
		return
	}
	response.OK(w, records)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, "Admin role required")
	case errors.Is(err, ErrPackageNotFound):
		response.NotFound(w, "Credit package not found")
	case errors.Is(err, ErrPackageNameTaken):
		response.Conflict(w, "Credit package name already exists")
	case errors.Is(err, ErrPackageInUse):
		response.Conflict(w, "Credit package has purchases and cannot be deleted")
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
