package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentstation/tripmap/pkg/logging"
)

// TestDefaultAuthConfig tests that auth follows the presence of a key.
func TestDefaultAuthConfig(t *testing.T) {
	if DefaultAuthConfig("", "/api/v1").Enabled {
		t.Error("expected auth disabled without a key")
	}
	config := DefaultAuthConfig("secret", "/api/v1")
	if !config.Enabled {
		t.Error("expected auth enabled with a key")
	}
	if config.HeaderName != "X-API-Key" {
		t.Errorf("expected HeaderName=X-API-Key, got %s", config.HeaderName)
	}
}

// TestAuth tests the Auth middleware with various scenarios.
func TestAuth(t *testing.T) {
	tests := []struct {
		name     string
		config   AuthConfig
		path     string
		headers  map[string]string
		wantPass bool
	}{
		{"disabled", AuthConfig{HeaderName: "X-API-Key"}, "/api/v1/days", nil, true},
		{"public path", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/health", nil, true},
		{"relay is public", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/relay", nil, true},
		{"custom header", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/days", map[string]string{"X-API-Key": "secret"}, true},
		{"bearer", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/days", map[string]string{"Authorization": "Bearer secret"}, true},
		{"raw authorization", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/days", map[string]string{"Authorization": "secret"}, true},
		{"missing", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/days", nil, false},
		{"wrong", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/days", map[string]string{"X-API-Key": "nope"}, false},
		{"wrong bearer", DefaultAuthConfig("secret", "/api/v1"), "/api/v1/days", map[string]string{"Authorization": "Bearer nope"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(tt.config, logging.NewNopLogger())(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					called = true
				}),
			)

			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if called != tt.wantPass {
				t.Errorf("expected handler called=%v, got %v", tt.wantPass, called)
			}
			if !tt.wantPass {
				if w.Code != http.StatusUnauthorized {
					t.Errorf("expected status 401, got %d", w.Code)
				}
				if !strings.Contains(w.Body.String(), "UNAUTHORIZED") {
					t.Errorf("expected UNAUTHORIZED body, got %s", w.Body.String())
				}
			}
		})
	}
}
