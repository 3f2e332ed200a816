package services

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
	Treatments []content.Treatment
}

// ServeList renders the treatment catalogue.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "services page")
	defer cancel()

	data := pageData{
		BaseVM:     viewdata.NewBaseVM(r, "Treatments"),
		Treatments: h.Content.Treatments(ctx),
	}
	data.Description = "Treatments we arrange abroad, with typical prices and recovery times."

	templates.Render(w, r, "services_list", data)
}
