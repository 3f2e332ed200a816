package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/content"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	latestPosts    = 3
	featuredLimit  = 3
	reviewsOnFront = 3
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Content *content.Service
	Log     *zap.Logger
}

func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Content: svc,
		Log:     logger,
	}
}

type pageData struct {
	viewdata.BaseVM
	Posts        []content.Post
	Treatments   []content.Treatment
	Testimonials []content.Testimonial
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "home page")
	defer cancel()

	data := pageData{BaseVM: viewdata.NewBaseVM(r, "Medical travel, simplified")}
	data.Description = "Affordable, accredited treatment abroad with a coordinator at every step."
	h.load(ctx, &data)

	templates.Render(w, r, "home", data)
}

// load fills the page's three sections concurrently. Each section degrades
// to an empty or static list on its own.
func (h *Handler) load(ctx context.Context, data *pageData) {
	var g errgroup.Group
	g.Go(func() error {
		data.Posts = h.Content.ListPosts(ctx, latestPosts, 0, "newest").Posts
		return nil
	})
	g.Go(func() error {
		data.Treatments = firstN(h.Content.Treatments(ctx), featuredLimit)
		return nil
	})
	g.Go(func() error {
		data.Testimonials = firstN(h.Content.Testimonials(ctx), reviewsOnFront)
		return nil
	})
	_ = g.Wait()
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
