// Package timeouts holds the deadlines used around I/O in handlers.
//
//   - Ping: health checks
//   - Store: single journal writes and reads in Mongo
//   - Remote: one CMS or email API call
//   - Page: everything a page handler does to assemble its view
//
// Values can be changed once at startup with Configure or ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultStore  = 5 * time.Second
	DefaultRemote = 10 * time.Second
	DefaultPage   = 20 * time.Second
)

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Store: DefaultStore, Remote: DefaultRemote, Page: DefaultPage}
}

// Config holds timeout values. Zero values are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Store  time.Duration
	Remote time.Duration
	Page   time.Duration
}

func Ping() time.Duration   { return Current().Ping }
func Store() time.Duration  { return Current().Store }
func Remote() time.Duration { return Current().Remote }
func Page() time.Duration   { return Current().Page }

// Current returns a copy of the active values.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Configure overrides the non-zero values of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set(&current.Ping, cfg.Ping)
	set(&current.Store, cfg.Store)
	set(&current.Remote, cfg.Remote)
	set(&current.Page, cfg.Page)
}

func set(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// ConfigureFromEnv reads MEDITRIP_TIMEOUT_PING, _STORE, _REMOTE and _PAGE
// (Go duration strings). Invalid or non-positive values are ignored.
// Returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for name, dst := range map[string]*time.Duration{
		"MEDITRIP_TIMEOUT_PING":   &cfg.Ping,
		"MEDITRIP_TIMEOUT_STORE":  &cfg.Store,
		"MEDITRIP_TIMEOUT_REMOTE": &cfg.Remote,
		"MEDITRIP_TIMEOUT_PAGE":   &cfg.Page,
	} {
		if d, err := time.ParseDuration(os.Getenv(name)); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Remote(), h.Log, "cms insert contact")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
