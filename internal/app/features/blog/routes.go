// internal/app/features/blog/routes.go
package blog

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{slug}", h.ServeShow)
	return r
}
