// Package cms is a small REST client for the headless CMS that owns the
// site's blog, data collections, and media galleries.
//
// The client is constructed explicitly from a Config during bootstrap and
// passed to whoever needs it. A client built without credentials is valid
// and answers every call with ErrNotConfigured, which the content layer
// treats like any other remote failure.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/meditrip/internal/app/system/httpclient"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const maxErrorBody = 512

// Client talks to the CMS REST API.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New builds a client. Credentials are optional; see Config.Configured.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{cfg: cfg, log: logger}
	if !cfg.Configured() {
		logger.Warn("cms client has no credentials; remote content disabled")
		return c, nil
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("cms: invalid base url %q", cfg.BaseURL)
	}
	c.baseURL = base

	hc := httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	if cfg.usesOAuth() {
		c.http = oauthClient(cfg, base, hc)
	} else {
		hc.Transport = &apiKeyTransport{key: cfg.APIKey, base: hc.Transport}
		c.http = hc
	}
	return c, nil
}

// oauthClient wraps hc so every request carries a client-credentials token.
// Tokens are fetched lazily and refreshed by the oauth2 transport.
func oauthClient(cfg Config, base string, hc *http.Client) *http.Client {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = base + "/oauth2/token"
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	if cfg.SiteID != "" {
		cc.EndpointParams = url.Values{"instance_id": {cfg.SiteID}}
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
	oc := cc.Client(ctx)
	oc.Timeout = hc.Timeout
	return oc
}

type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", t.key)
	return t.base.RoundTrip(r)
}

// Configured reports whether remote calls are possible.
func (c *Client) Configured() bool { return c != nil && c.http != nil }

// PostLookup returns the configured single-post strategy.
func (c *Client) PostLookup() LookupStrategy { return c.cfg.PostLookup }

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cms: encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("cms: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.SiteID != "" {
		req.Header.Set("wix-site-id", c.cfg.SiteID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cms: decode %s: %w", path, err)
	}
	return nil
}
