package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/tripmap/pkg/logging"
)

// TestRateLimiter_Burst tests that the burst is honoured per IP.
func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(60, 3, logging.NewNopLogger())

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other IP should have its own bucket")
	}
	if rl.Visitors() != 2 {
		t.Errorf("expected 2 visitors, got %d", rl.Visitors())
	}
}

// TestRateLimiter_Prune tests that idle visitors are dropped.
func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(60, 1, logging.NewNopLogger())
	rl.Allow("10.0.0.1")

	rl.Prune(time.Now())
	if rl.Visitors() != 1 {
		t.Errorf("expected fresh visitor to stay, got %d", rl.Visitors())
	}
	rl.Prune(time.Now().Add(time.Hour))
	if rl.Visitors() != 0 {
		t.Errorf("expected idle visitor to be pruned, got %d", rl.Visitors())
	}
}

// TestRateLimiter_Middleware tests the 429 envelope and client IP keying.
func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(60, 1, logging.NewNopLogger())
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote, forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/v1/days", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	if w := send("192.0.2.1:1234", ""); w.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", w.Code)
	}
	// Same host, different port shares the bucket.
	w := send("192.0.2.1:5678", "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "RATE_LIMITED") {
		t.Errorf("expected RATE_LIMITED body, got %s", w.Body.String())
	}

	if w := send("192.0.2.1:1234", "203.0.113.9, 10.0.0.1"); w.Code != http.StatusOK {
		t.Errorf("expected forwarded client to have its own bucket, got %d", w.Code)
	}
}
