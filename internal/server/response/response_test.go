package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentstation/tripmap/pkg/errors"
)

// TestJSON tests the envelope and headers.
func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]string{"title": "伏見稻荷 & 清水寺"})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}
	want := `{"data":{"title":"伏見稻荷 & 清水寺"},"error":null}` + "\n"
	if got := w.Body.String(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

// TestFail tests the error envelope.
func TestFail(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequest(w, "bad", "details")

	var decoded Response
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Data != nil {
		t.Error("expected Data to be nil")
	}
	if decoded.Error == nil || decoded.Error.Code != "BAD_REQUEST" || decoded.Error.Details != "details" {
		t.Errorf("unexpected error %+v", decoded.Error)
	}
}

// TestErrorFromType tests the error to status mapping.
func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errors.NewNotFoundError("expense", "exp-1"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("lookup: %w", errors.NewNotFoundError("day", "9")), http.StatusNotFound, "NOT_FOUND"},
		{"validation", errors.NewValidationError("title", "", "title is required"), http.StatusBadRequest, "BAD_REQUEST"},
		{"parse", errors.NewParseError("base64", "token", "not base64", nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"protected", &errors.ProtectedError{Resource: "shopping type", Value: "其他"}, http.StatusConflict, "CONFLICT"},
		{"busy", errors.ErrSyncInProgress, http.StatusConflict, "CONFLICT"},
		{"timeout", errors.WrapAPI("sync", 0, errors.ErrTimeout), http.StatusGatewayTimeout, "TIMEOUT"},
		{"config", errors.NewConfigError("sync", "no remote endpoint configured", nil), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"api", errors.NewAPIError("sync", 500, "boom"), http.StatusBadGateway, "BAD_GATEWAY"},
		{"sync", errors.WrapSync("push", "https://example.com", errors.New("refused")), http.StatusBadGateway, "BAD_GATEWAY"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			var decoded Response
			if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if decoded.Error == nil || decoded.Error.Code != tt.code {
				t.Errorf("expected code %s, got %+v", tt.code, decoded.Error)
			}
		})
	}
}

// TestInternalErrorHidesDetails tests that internal errors are not leaked.
func TestInternalErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	InternalError(w, errors.New("password=hunter2"))
	if body := w.Body.String(); strings.Contains(body, "hunter2") {
		t.Errorf("error details leaked: %s", body)
	}
}
