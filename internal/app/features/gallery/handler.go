package gallery

import (
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/content"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Content *content.Service
	Log     *zap.Logger
}

func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{Content: svc, Log: logger}
}

type pageData struct {
	viewdata.BaseVM
	Photos []content.Moment
	Videos []content.Moment
}

// ServeGallery renders patient moments, photos and videos in separate rows.
func (h *Handler) ServeGallery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "gallery page")
	defer cancel()

	data := pageData{BaseVM: viewdata.NewBaseVM(r, "Gallery")}
	data.Description = "Moments from our patients' journeys."
	data.Photos, data.Videos = split(h.Content.Moments(ctx))

	templates.Render(w, r, "gallery", data)
}

func split(moments []content.Moment) (photos, videos []content.Moment) {
	photos = []content.Moment{}
	videos = []content.Moment{}
	for _, m := range moments {
		if m.Kind == "video" && m.VideoURL != "" {
			videos = append(videos, m)
			continue
		}
		photos = append(photos, m)
	}
	return photos, videos
}
