package credit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns credit package router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}", h.Buy)
	})

	return r
}
