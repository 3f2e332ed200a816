// internal/app/features/contact/form.go
package contact

import (
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/system/flash"
	"github.com/dalemusser/meditrip/internal/app/system/inputval"
	"github.com/dalemusser/meditrip/internal/app/system/limits"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type formData struct {
	viewdata.BaseVM
	Form  inputval.Contact
	Error string
}

// ServeForm renders GET /contact.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, inputval.Contact{}, "")
}

// HandleForm processes POST /contact and redirects back on success.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxContactFormSize)
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, http.StatusBadRequest, inputval.Contact{}, msgBadRequest)
		return
	}
	in := inputval.Contact{
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		CountryName: r.PostFormValue("countryName"),
		CountryCode: r.PostFormValue("countryCode"),
		WhatsApp:    r.PostFormValue("whatsapp"),
		Message:     r.PostFormValue("message"),
	}

	ip := h.Proxies.ClientIP(r)
	if !h.allow(ip) {
		h.Log.Info("contact: rate limited", zap.String("ip", ip))
		w.Header().Set("Retry-After", "60")
		h.renderForm(w, r, http.StatusTooManyRequests, in, msgRateLimited)
		return
	}

	res := h.submit(r.Context(), in, ip)
	if !res.ok() {
		h.renderForm(w, r, res.Status, in, res.Error)
		return
	}

	if h.Flash != nil {
		if err := h.Flash.Add(w, r, flash.Success, msgThanks); err != nil {
			h.Log.Warn("contact: flash save failed", zap.Error(err))
		}
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, in inputval.Contact, errMsg string) {
	data := formData{
		BaseVM: viewdata.NewBaseVM(r, "Contact us"),
		Form:   in,
		Error:  errMsg,
	}
	data.Description = "Ask us anything about treatment abroad. We usually reply within one business day."
	if h.Flash != nil {
		data.Flashes = h.Flash.Pop(w, r)
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "contact_form", data)
}
