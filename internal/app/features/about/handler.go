// internal/app/features/about/handler.go
package about

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

type pageData struct {
	viewdata.BaseVM
	Team         []content.TeamMember
	Advisors     []content.TeamMember
	Testimonials []content.Testimonial
}

type Handler struct {
	Content *content.Service
	Log     *zap.Logger
}

func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{Content: svc, Log: logger}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "about page")
	defer cancel()

	data := pageData{BaseVM: viewdata.NewBaseVM(r, "About us")}
	data.Description = "Meet the coordinators and medical advisors behind MediTrip."
	h.load(ctx, &data)

	templates.Render(w, r, "about", data)
}

func (h *Handler) load(ctx context.Context, data *pageData) {
	var g errgroup.Group
	g.Go(func() error { data.Team = h.Content.Team(ctx); return nil })
	g.Go(func() error { data.Advisors = h.Content.Advisors(ctx); return nil })
	g.Go(func() error { data.Testimonials = h.Content.Testimonials(ctx); return nil })
	_ = g.Wait()
}
