package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLoggerUsesRequestLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	access := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/tea", nil)
	req.Header.Set("User-Agent", "kettle/1.0")
	req = req.WithContext(WithLogger(req.Context(), zap.New(core)))
	access.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "request completed" {
		t.Fatalf("unexpected log message: %s", entries[0].Message)
	}

	fields := fieldMap(entries[0])
	if f, ok := fields["status"]; !ok || f.Integer != http.StatusTeapot {
		t.Fatalf("expected status 418, got %+v", f)
	}
	if f, ok := fields["path"]; !ok || f.String != "/tea" {
		t.Fatalf("expected path /tea, got %+v", f)
	}
	if f, ok := fields["bytes"]; !ok || f.Integer != 3 {
		t.Fatalf("expected 3 bytes, got %+v", f)
	}
	if f, ok := fields["userAgent"]; !ok || f.String != "kettle/1.0" {
		t.Fatalf("expected userAgent, got %+v", f)
	}
	if _, ok := fields["duration"]; !ok {
		t.Fatalf("expected duration field, got %+v", fields)
	}
}

func TestRequestLoggerStoresLoggerInContext(t *testing.T) {
	var got *zap.Logger
	handler := RequestLogger("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-abc"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected logger in context")
	}
	if got == Logger() {
		t.Fatal("expected request-scoped logger carrying requestId, got global logger")
	}
}

func TestRequestLoggerWithoutRequestIDOrTrace(t *testing.T) {
	var got *zap.Logger
	handler := RequestLogger("test-project")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != Logger() {
		t.Fatal("expected the global logger when no correlation fields apply")
	}
}
