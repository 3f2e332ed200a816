package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllow_BurstThenBlock(t *testing.T) {
	l := New(3, time.Hour)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("4th request should be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("other key should have its own bucket")
	}
}

func TestAllow_Refills(t *testing.T) {
	l := New(2, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.Allow("k")
	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("bucket should be empty")
	}
	now = now.Add(30 * time.Second)
	if !l.Allow("k") {
		t.Error("one token should have refilled after half the period")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Hour)
	l.Allow("k")
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("Reset should restore the bucket")
	}
}

func TestSweepDropsIdleKeys(t *testing.T) {
	l := New(1, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(5 * time.Minute)
	l.Allow("b")
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestSweepWaitsForInterval(t *testing.T) {
	l := New(1, time.Minute) // idle and sweep interval are both 2m
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(2 * time.Minute)
	l.Allow("c") // sweep runs; a is exactly 2m idle and stays

	now = now.Add(time.Minute)
	l.Allow("d") // a is 3m idle but the next sweep is not due
	if _, ok := l.buckets["a"]; !ok {
		t.Fatal("a should survive until the next sweep")
	}

	now = now.Add(time.Minute)
	l.Allow("e")
	if _, ok := l.buckets["a"]; ok {
		t.Error("a should be swept")
	}
	if l.Len() != 3 {
		t.Errorf("Len = %d, want 3", l.Len())
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies(" 10.0.0.0/8, 192.0.2.1 ,,::1")
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %v", got)
	}
	if !got.trusts("10.20.30.40") || !got.trusts("192.0.2.1") || !got.trusts("::1") {
		t.Errorf("expected all configured proxies trusted: %v", got)
	}
	if got.trusts("192.0.2.2") {
		t.Error("192.0.2.2 should not be trusted")
	}

	if _, err := ParseTrustedProxies("10.0.0.0/99"); err == nil {
		t.Error("bad CIDR should fail")
	}
	if _, err := ParseTrustedProxies("proxy.local"); err == nil {
		t.Error("hostname should fail")
	}
	if none, err := ParseTrustedProxies(""); err != nil || len(none) != 0 {
		t.Errorf("empty list = %v, %v", none, err)
	}
}

func TestClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies("10.0.0.0/8")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		trusted TrustedProxies
		header  map[string]string
		remote  string
		want    string
	}{
		{"untrusted peer ignores forwarded for", nil, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "198.51.100.1:1", "198.51.100.1"},
		{"untrusted peer ignores real ip", nil, map[string]string{"X-Real-IP": "203.0.113.5"}, "198.51.100.1:1", "198.51.100.1"},
		{"trusted proxy forwarded for", proxies, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "10.0.0.1:1", "203.0.113.5"},
		{"spoofed left hop skipped", proxies, map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.5, 10.0.0.2"}, "10.0.0.1:1", "203.0.113.5"},
		{"all hops trusted", proxies, map[string]string{"X-Forwarded-For": "10.0.0.3, 10.0.0.2"}, "10.0.0.1:1", "10.0.0.3"},
		{"trusted proxy real ip", proxies, map[string]string{"X-Real-IP": " 198.51.100.7 "}, "10.0.0.1:1", "198.51.100.7"},
		{"trusted proxy no headers", proxies, nil, "10.0.0.1:1", "10.0.0.1"},
		{"remote addr", nil, nil, "192.0.2.9:4321", "192.0.2.9"},
		{"remote without port", nil, nil, "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if got := tt.trusted.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
