// internal/app/features/contact/api.go
package contact

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/system/inputval"
	"github.com/dalemusser/meditrip/internal/app/system/limits"
	"go.uber.org/zap"
)

type apiResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// HandleAPI processes POST /api/contact.
//
//	200 {"ok":true,"reference":"…"}
//	400 {"ok":false,"error":"Please enter your name."}
//	429 {"ok":false,"error":"Too many messages …"}
//	502 {"ok":false,"error":"Failed to submit your message. Please try again."}
func (h *Handler) HandleAPI(w http.ResponseWriter, r *http.Request) {
	ip := h.Proxies.ClientIP(r)
	if !h.allow(ip) {
		h.Log.Info("contact api: rate limited", zap.String("ip", ip))
		w.Header().Set("Retry-After", "60")
		writeJSON(w, http.StatusTooManyRequests, apiResponse{Error: msgRateLimited})
		return
	}

	var in inputval.Contact
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxContactBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: msgBadRequest})
		return
	}

	res := h.submit(r.Context(), in, ip)
	if !res.ok() {
		writeJSON(w, res.Status, apiResponse{Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{OK: true, Reference: res.Reference})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
