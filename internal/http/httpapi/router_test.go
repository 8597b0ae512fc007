package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"relay/internal/http/handlers"
	"relay/internal/imagegen"
	"relay/internal/infra"
	"relay/internal/stability"
)

func newTestRouter() http.Handler {
	logger := infra.Logger(zerolog.New(io.Discard))
	client := stability.NewClient(stability.Options{APIKey: "test-key", BaseURL: "http://127.0.0.1:0"})
	service := imagegen.NewService(imagegen.ServiceOptions{
		Upstream: client,
		Fetcher:  imagegen.NewFetcher(imagegen.FetcherOptions{}),
		Logger:   &logger,
	})
	app := handlers.NewApp(&infra.Config{}, service, logger)
	return NewRouter(app, nil)
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter()
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/v1/images/generate", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s status = %d, want 405", method, rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("405 body is not JSON: %v", err)
		}
		if body["error"] != "method_not_allowed" {
			t.Fatalf("unexpected 405 body: %v", body)
		}
	}
}

func TestRouterPreflight(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodOptions, "/v1/images/generate", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q, want *", got)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("preflight missing allow-methods header")
	}
}

func TestRouterRequestID(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("response missing X-Request-ID header")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("request id not propagated: %q", got)
	}
}
