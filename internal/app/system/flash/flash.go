// Package flash carries one-shot messages across a post-redirect-get in a
// signed cookie session.
package flash

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Message kinds.
const (
	Success = "success"
	Error   = "error"
)

// DefaultSessionName is the cookie name when none is configured.
const DefaultSessionName = "meditrip-flash"

// Message is one flash message.
type Message struct {
	Kind string
	Text string
}

// Manager reads and writes flash messages.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a cookie-backed Manager. An empty key is replaced by a
// random one, which only suits a single development instance.
//
// With secure=true cookies are Secure; otherwise they work over plain http
// on localhost.
func NewManager(key, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = DefaultSessionName
	}

	var hashKey []byte
	switch {
	case key == "":
		hashKey = securecookie.GenerateRandomKey(64)
		if hashKey == nil {
			return nil, fmt.Errorf("flash: could not generate session key")
		}
		logger.Warn("session key is empty; using a random key for this process")
	case len(key) < 32:
		return nil, fmt.Errorf("flash: session key too short (%d chars, need 32+)", len(key))
	default:
		hashKey = []byte(key)
	}

	store := sessions.NewCookieStore(hashKey)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   600,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("flash session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// Add queues a message for the next request.
func (m *Manager) Add(w http.ResponseWriter, r *http.Request, kind, text string) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session.
		m.log.Debug("flash: discarding unreadable session", zap.Error(err))
	}
	sess.AddFlash(text, kind)
	return sess.Save(r, w)
}

// Pop returns and clears pending messages, successes first.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request) []Message {
	sess, err := m.store.Get(r, m.name)
	if err != nil || sess.IsNew {
		return nil
	}

	var out []Message
	for _, kind := range []string{Success, Error} {
		for _, v := range sess.Flashes(kind) {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, Message{Kind: kind, Text: s})
			}
		}
	}
	if len(out) > 0 {
		if err := sess.Save(r, w); err != nil {
			m.log.Warn("flash: save after pop failed", zap.Error(err))
		}
	}
	return out
}
