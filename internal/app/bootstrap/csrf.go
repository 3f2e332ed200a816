package bootstrap

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/system/limits"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

const (
	csrfCookieName = "meditrip_csrf"
	csrfFieldName  = "csrf_token"
)

// csrfKey derives the 32-byte token key from session_key. A blank
// session_key gets a random key, so tokens do not survive restarts.
func csrfKey(sessionKey string) ([]byte, error) {
	if sessionKey == "" {
		key := securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("csrf: could not generate key")
		}
		return key, nil
	}
	sum := sha256.Sum256([]byte(sessionKey))
	return sum[:], nil
}

// csrfMiddleware protects the HTML contact form. The JSON API is left
// out; it is called cross-origin and carries no cookies.
//
// Without TLS in front of the app, requests are marked plaintext so the
// Referer check meant for HTTPS does not reject every submission.
func csrfMiddleware(appCfg AppConfig, secure bool, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	key, err := csrfKey(appCfg.SessionKey)
	if err != nil {
		return nil, err
	}

	opts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(csrfFieldName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			http.Error(w, "Your form expired. Please reload the page and try again.", http.StatusForbidden)
		})),
	}
	if appCfg.SessionDomain != "" {
		opts = append(opts, csrf.Domain(appCfg.SessionDomain))
	}
	protect := csrf.Protect(key, opts...)

	return func(next http.Handler) http.Handler {
		guarded := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The token is read from the form before the handler runs, so
			// the body cap has to apply here.
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limits.MaxContactFormSize)
			}
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			guarded.ServeHTTP(w, r)
		})
	}, nil
}
