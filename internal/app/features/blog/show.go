// internal/app/features/blog/show.go
package blog

import (
	"errors"
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/content"
	errorsfeature "github.com/dalemusser/meditrip/internal/app/features/errors"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type showData struct {
	viewdata.BaseVM
	Post    content.Post
	Related []content.Post
}

// ServeShow renders /blog/{slug}.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "blog post")
	defer cancel()

	post, source, err := h.Content.PostBySlug(ctx, slug)
	if errors.Is(err, content.ErrPostNotFound) {
		errorsfeature.RenderNotFound(w, r, "That article doesn't exist or has been moved.", "/blog")
		return
	}
	if err != nil {
		h.Log.Error("blog post lookup failed", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Log.Debug("blog post", zap.String("slug", slug), zap.String("source", source))

	data := showData{
		BaseVM:  viewdata.NewBaseVM(r, post.Title),
		Post:    post,
		Related: h.Content.RelatedPosts(ctx, post, relatedCount),
	}
	data.Description = post.Excerpt

	templates.Render(w, r, "blog_show", data)
}
