package cms

import (
	"fmt"
	"strings"
	"time"
)

// LookupStrategy says which single-post retrieval calls the configured site
// supports. It is decided once from configuration instead of being probed
// on every request.
type LookupStrategy int

const (
	// LookupBoth tries get-by-slug first and falls back to a filtered query.
	LookupBoth LookupStrategy = iota
	// LookupBySlug only uses the get-by-slug endpoint.
	LookupBySlug
	// LookupByQuery only uses the filtered query endpoint.
	LookupByQuery
)

// ParseLookupStrategy accepts "both", "slug", or "query" (case-insensitive).
// An empty string means LookupBoth.
func ParseLookupStrategy(s string) (LookupStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return LookupBoth, nil
	case "slug":
		return LookupBySlug, nil
	case "query":
		return LookupByQuery, nil
	}
	return LookupBoth, fmt.Errorf("cms: unknown post lookup strategy %q (want both, slug, or query)", s)
}

func (s LookupStrategy) String() string {
	switch s {
	case LookupBySlug:
		return "slug"
	case LookupByQuery:
		return "query"
	}
	return "both"
}

// UsesSlug reports whether get-by-slug is available.
func (s LookupStrategy) UsesSlug() bool { return s == LookupBoth || s == LookupBySlug }

// UsesQuery reports whether a filtered query is available.
func (s LookupStrategy) UsesQuery() bool { return s == LookupBoth || s == LookupByQuery }

// Config holds everything needed to talk to the CMS.
type Config struct {
	BaseURL string // e.g. https://www.wixapis.com
	SiteID  string // sent as wix-site-id

	// OAuth2 client credentials. When both are set they take precedence
	// over APIKey.
	ClientID     string
	ClientSecret string
	TokenURL     string

	APIKey string

	PostLookup LookupStrategy
	Timeout    time.Duration
}

// Configured reports whether enough is set to make authenticated calls.
func (c Config) Configured() bool {
	if c.BaseURL == "" {
		return false
	}
	return c.usesOAuth() || c.APIKey != ""
}

func (c Config) usesOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
