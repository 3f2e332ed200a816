// Package api serves the public JSON endpoints used by client-side
// widgets and partner sites.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/meditrip/internal/app/content"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Content *content.Service
	Log     *zap.Logger
}

func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{Content: svc, Log: logger}
}

type postResponse struct {
	Post  *content.Post `json:"post"`
	Error string        `json:"error,omitempty"`
}

// ListPosts handles GET /api/posts?limit=&offset=&sort=.
//
//	{ "posts":[…], "total":12, "hasMore":true, "source":"cms" }
//
// A total outage still answers 200 with an empty list and source "none".
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit := content.ClampLimit(intParam(r, "limit"))
	offset := max(intParam(r, "offset"), 0)
	order := content.NormalizeSort(query.Get(r, "sort"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "api posts")
	defer cancel()

	writeJSON(w, http.StatusOK, h.Content.ListPosts(ctx, limit, offset, order))
}

// GetPost handles GET /api/posts/{slug}.
//
//	200 { "post":{…} }
//	404 { "post":null, "error":"Post not found" }
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "api post")
	defer cancel()

	post, source, err := h.Content.PostBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, content.ErrPostNotFound) {
			h.Log.Error("api: post lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		writeJSON(w, http.StatusNotFound, postResponse{Error: "Post not found"})
		return
	}
	h.Log.Debug("api: post served", zap.String("slug", slug), zap.String("source", source))
	writeJSON(w, http.StatusOK, postResponse{Post: &post})
}

// Preflight answers bare OPTIONS requests that the CORS middleware lets
// through.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// intParam returns the integer query parameter key, or 0 when absent or
// malformed.
func intParam(r *http.Request, key string) int {
	n, err := strconv.Atoi(query.Get(r, key))
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
