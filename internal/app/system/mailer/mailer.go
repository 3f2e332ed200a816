// Package mailer sends transactional email through an HTTP email API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/meditrip/internal/app/system/httpclient"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no API key is set. Callers treat it as
// "skip sending".
var ErrNotConfigured = errors.New("mailer: not configured")

// DefaultAPIURL is the email API endpoint used when none is configured.
const DefaultAPIURL = "https://api.resend.com/emails"

// Email is a single message with text and HTML bodies.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config configures an APIMailer.
type Config struct {
	APIURL   string
	APIKey   string
	From     string // "MediTrip <noreply@meditrip.example>"
	FromName string
}

// APIMailer posts messages as JSON with a bearer key.
type APIMailer struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// New returns an APIMailer. A missing key is allowed; Send then returns
// ErrNotConfigured.
func New(cfg Config, logger *zap.Logger) *APIMailer {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIMailer{
		cfg:  cfg,
		http: httpclient.New(httpclient.Config{}),
		log:  logger,
	}
}

// Configured reports whether Send can deliver.
func (m *APIMailer) Configured() bool {
	return m.cfg.APIKey != "" && m.cfg.From != ""
}

type apiMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

// Send delivers e. Any non-2xx response is an error.
func (m *APIMailer) Send(ctx context.Context, e Email) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(e.To) == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	from := m.cfg.From
	if m.cfg.FromName != "" && !strings.Contains(from, "<") {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, from)
	}
	body, err := json.Marshal(apiMessage{
		From:    from,
		To:      []string{e.To},
		ReplyTo: e.ReplyTo,
		Subject: e.Subject,
		Text:    e.TextBody,
		HTML:    e.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}
