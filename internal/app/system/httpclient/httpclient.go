// Package httpclient builds the outbound HTTP clients used to reach the CMS
// and the email API.
package httpclient

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout               = 15 * time.Second
	DefaultMaxIdleConns          = 50
	DefaultMaxIdleConnsPerHost   = 10
	DefaultIdleConnTimeout       = 90 * time.Second
	DefaultResponseHeaderTimeout = 10 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
)

// Config tunes a client. Zero values take the defaults above.
type Config struct {
	Timeout               time.Duration
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	ResponseHeaderTimeout time.Duration
	TLSHandshakeTimeout   time.Duration
}

// New returns an *http.Client with a dedicated transport.
func New(cfg Config) *http.Client {
	return &http.Client{
		Timeout:   orDuration(cfg.Timeout, DefaultTimeout),
		Transport: NewTransport(cfg),
	}
}

// NewTransport returns the transport New uses, for callers that wrap it
// (OAuth2, header injection).
func NewTransport(cfg Config) *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          orInt(cfg.MaxIdleConns, DefaultMaxIdleConns),
		MaxIdleConnsPerHost:   orInt(cfg.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost),
		IdleConnTimeout:       orDuration(cfg.IdleConnTimeout, DefaultIdleConnTimeout),
		ResponseHeaderTimeout: orDuration(cfg.ResponseHeaderTimeout, DefaultResponseHeaderTimeout),
		TLSHandshakeTimeout:   orDuration(cfg.TLSHandshakeTimeout, DefaultTLSHandshakeTimeout),
		ExpectContinueTimeout: time.Second,
	}
}

func orDuration(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
