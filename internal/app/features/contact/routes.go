// internal/app/features/contact/routes.go
package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the contact page, mounted at /contact.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleForm)
	return r
}

// APIRoutes serves the JSON endpoint, mounted at /api/contact.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleAPI)
	r.Options("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
