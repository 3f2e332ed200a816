// internal/app/features/contact/submit.go
package contact

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/meditrip/internal/app/system/inputval"
	"github.com/dalemusser/meditrip/internal/app/system/mailer"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/meditrip/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// outcome is the result of one submission attempt.
type outcome struct {
	Status    int
	Error     string
	Reference string
}

func (o outcome) ok() bool { return o.Error == "" }

// submit validates c, writes it to the CMS and notifies the operator.
// The local journal and the email are best effort; only the CMS write
// decides success.
func (h *Handler) submit(ctx context.Context, c inputval.Contact, clientIP string) outcome {
	c = c.Trimmed()
	phone, msg := inputval.ValidateContact(c)
	if msg != "" {
		return outcome{Status: http.StatusBadRequest, Error: msg}
	}

	now := time.Now().UTC()
	sub := models.ContactSubmission{
		Reference:   uuid.NewString(),
		Name:        c.Name,
		Email:       c.Email,
		CountryName: c.CountryName,
		CountryCode: c.CountryCode,
		Phone:       phone,
		Message:     c.Message,
		ClientIP:    clientIP,
	}
	logger := h.Log.With(zap.String("reference", sub.Reference))
	journaled := h.journal(ctx, logger, &sub)

	itemID, err := h.deliver(ctx, sub, now)
	if journaled {
		h.markDelivered(ctx, logger, sub, itemID, err)
	}
	if err != nil {
		logger.Error("contact: cms insert failed", zap.String("collection", h.Collection), zap.Error(err))
		return outcome{Status: http.StatusBadGateway, Error: msgSubmitFailed, Reference: sub.Reference}
	}
	logger.Info("contact: submission stored", zap.String("cms_item_id", itemID))

	status := h.notify(ctx, logger, sub, now)
	if journaled {
		h.markEmailed(ctx, logger, sub, status)
	}
	return outcome{Status: http.StatusOK, Reference: sub.Reference}
}

func (h *Handler) journal(ctx context.Context, logger *zap.Logger, sub *models.ContactSubmission) bool {
	if h.Journal == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Store())
	defer cancel()

	stored, err := h.Journal.Insert(ctx, *sub)
	if err != nil {
		logger.Warn("contact: journal insert failed", zap.Error(err))
		return false
	}
	*sub = stored
	return true
}

func (h *Handler) deliver(ctx context.Context, sub models.ContactSubmission, at time.Time) (string, error) {
	if h.CMS == nil {
		return "", errors.New("contact: no cms writer")
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Remote(), h.Log, "contact cms insert")
	defer cancel()

	return h.CMS.InsertItem(ctx, h.Collection, map[string]any{
		"reference":   sub.Reference,
		"name":        sub.Name,
		"email":       sub.Email,
		"countryName": sub.CountryName,
		"countryCode": sub.CountryCode,
		"whatsapp":    sub.Phone,
		"message":     sub.Message,
		"submittedAt": at.Format(time.RFC3339),
	})
}

// notify sends the operator email and returns the resulting email status.
func (h *Handler) notify(ctx context.Context, logger *zap.Logger, sub models.ContactSubmission, at time.Time) string {
	if h.Mailer == nil || h.NotifyTo == "" {
		return models.EmailSkipped
	}
	email := mailer.BuildContactNotification(mailer.ContactNotificationData{
		SiteName:    viewdata.SiteName(),
		Reference:   sub.Reference,
		Name:        sub.Name,
		Email:       sub.Email,
		Country:     sub.CountryName,
		Phone:       sub.Phone,
		Message:     sub.Message,
		SubmittedAt: at.Format("2 Jan 2006 15:04 MST"),
	})
	email.To = h.NotifyTo

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Remote(), h.Log, "contact email")
	defer cancel()

	err := h.Mailer.Send(ctx, email)
	switch {
	case err == nil:
		return models.EmailSent
	case errors.Is(err, mailer.ErrNotConfigured):
		logger.Info("contact: mailer not configured; notification skipped")
		return models.EmailSkipped
	default:
		logger.Warn("contact: notification email failed", zap.Error(err))
		return models.EmailFailed
	}
}

func (h *Handler) markDelivered(ctx context.Context, logger *zap.Logger, sub models.ContactSubmission, itemID string, deliveryErr error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Store())
	defer cancel()
	if err := h.Journal.MarkDelivered(ctx, sub.ID, itemID, deliveryErr); err != nil {
		logger.Warn("contact: journal delivery update failed", zap.Error(err))
	}
}

func (h *Handler) markEmailed(ctx context.Context, logger *zap.Logger, sub models.ContactSubmission, status string) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Store())
	defer cancel()
	if err := h.Journal.MarkEmailed(ctx, sub.ID, status); err != nil {
		logger.Warn("contact: journal email update failed", zap.Error(err))
	}
}
