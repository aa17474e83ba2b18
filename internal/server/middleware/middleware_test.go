package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agentstation/tripmap/pkg/logging"
)

// TestChain_ExecutionOrder tests that middleware run outermost first.
func TestChain_ExecutionOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(mark("first"), mark("second"), mark("third"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}),
	)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := "first,second,third,handler"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected order %s, got %s", want, got)
	}
}

// TestLogger tests request logging and the context logger.
func TestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	var ctxRequestID string
	handler := chimw.RequestID(Logger(tl.Logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxRequestID = logging.RequestID(r.Context())
			logging.FromContext(r.Context()).Info().Msg("inside handler")
			w.WriteHeader(http.StatusTeapot)
		}),
	))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/days", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", w.Code)
	}
	if ctxRequestID == "" {
		t.Error("expected request id in context")
	}
	if !tl.Contains("HTTP request") {
		t.Error("expected request log line")
	}
	if !tl.Contains(`"status":418`) {
		t.Errorf("expected captured status in log, got %s", tl.Output())
	}
	if !tl.Contains("inside handler") || !tl.Contains(ctxRequestID) {
		t.Errorf("expected handler log with request id, got %s", tl.Output())
	}
}

// TestRecovery tests that panics become 500 envelopes.
func TestRecovery(t *testing.T) {
	handler := Recovery(logging.NewNopLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("expected INTERNAL_ERROR body, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("panic value leaked into response")
	}
}

// TestResponseWriter_Flush tests that the wrapper keeps streaming support.
func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	var w http.ResponseWriter = &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	f, ok := w.(http.Flusher)
	if !ok {
		t.Fatal("expected wrapper to implement http.Flusher")
	}
	f.Flush()
	if !rec.Flushed {
		t.Error("expected underlying recorder to be flushed")
	}
}
