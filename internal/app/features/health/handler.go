package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Configurer reports whether an optional backend has credentials.
type Configurer interface {
	Configured() bool
}

// DeliveryCounter counts journaled contact submissions by delivery state.
type DeliveryCounter interface {
	CountByDelivery(ctx context.Context, state string) (int64, error)
}

// Handler holds dependencies needed for health checks.
// Client may be nil when the site runs without a submissions journal.
// Journal is optional; when set, the failed CMS delivery backlog is reported.
type Handler struct {
	Client  *mongo.Client
	CMS     Configurer
	Journal DeliveryCounter
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, cms Configurer, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		CMS:    cms,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	CMS      string `json:"cms"`
	Failed   *int64 `json:"failedDeliveries,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "cms":"configured" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
//
// A missing CMS is reported but never fails the check; the site serves
// its static dataset in that case.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "disabled",
		CMS:      "unconfigured",
	}
	if h.CMS != nil && h.CMS.Configured() {
		resp.CMS = "configured"
	}

	if h.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"

		if h.Journal != nil {
			n, err := h.Journal.CountByDelivery(ctx, models.DeliveryFailed)
			if err != nil {
				h.Log.Warn("health-check: count failed deliveries", zap.Error(err))
			} else {
				resp.Failed = &n
			}
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
