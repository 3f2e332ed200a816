// internal/app/features/contact/handler.go
package contact

import (
	"context"

	"github.com/dalemusser/meditrip/internal/app/system/flash"
	"github.com/dalemusser/meditrip/internal/app/system/mailer"
	"github.com/dalemusser/meditrip/internal/app/system/ratelimit"
	"github.com/dalemusser/meditrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultCollection is the CMS data collection enquiries are written to.
const DefaultCollection = "ContactSubmissions"

// Visitor-facing messages that are not validation errors.
const (
	msgSubmitFailed = "Failed to submit your message. Please try again."
	msgRateLimited  = "Too many messages from your connection. Please try again in a few minutes."
	msgBadRequest   = "Invalid request body."
	msgThanks       = "Thank you! Your message has been sent. We'll be in touch shortly."
)

// CMSWriter stores an enquiry in the CMS.
type CMSWriter interface {
	InsertItem(ctx context.Context, collectionID string, data map[string]any) (string, error)
}

// Journal records enquiries locally alongside their delivery outcome.
type Journal interface {
	Insert(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error)
	MarkDelivered(ctx context.Context, id primitive.ObjectID, cmsItemID string, deliveryErr error) error
	MarkEmailed(ctx context.Context, id primitive.ObjectID, status string) error
}

// Config wires a Handler. Journal, Mailer, Flash and Limiter are optional.
type Config struct {
	CMS        CMSWriter
	Collection string
	Journal    Journal
	Mailer     mailer.Sender
	NotifyTo   string
	Flash      *flash.Manager
	Limiter    *ratelimit.Limiter
	Proxies    ratelimit.TrustedProxies
}

type Handler struct {
	CMS        CMSWriter
	Collection string
	Journal    Journal
	Mailer     mailer.Sender
	NotifyTo   string
	Flash      *flash.Manager
	Limiter    *ratelimit.Limiter
	Proxies    ratelimit.TrustedProxies
	Log        *zap.Logger
}

func NewHandler(cfg Config, logger *zap.Logger) *Handler {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	return &Handler{
		CMS:        cfg.CMS,
		Collection: cfg.Collection,
		Journal:    cfg.Journal,
		Mailer:     cfg.Mailer,
		NotifyTo:   cfg.NotifyTo,
		Flash:      cfg.Flash,
		Limiter:    cfg.Limiter,
		Proxies:    cfg.Proxies,
		Log:        logger,
	}
}

func (h *Handler) allow(ip string) bool {
	return h.Limiter == nil || h.Limiter.Allow(ip)
}
