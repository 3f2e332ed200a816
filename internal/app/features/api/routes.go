// internal/app/features/api/routes.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// CORS allows any origin to read the public API.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}

// Routes serves the posts endpoints, mounted at /api/posts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPosts)
	r.Options("/", Preflight)
	r.Get("/{slug}", h.GetPost)
	r.Options("/{slug}", Preflight)
	return r
}
