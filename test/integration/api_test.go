package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/settings-registry/internal/api"
	"github.com/eugenenazirov/settings-registry/internal/settings"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	handler := api.NewHandler(settings.Instance())
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger)
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestIntegrationFlow exercises the full consumer scenario over HTTP: the
// first read of a key triggers the lazy load, an update through one request
// is visible to the next, and an explicit load afterwards is a no-op.
func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/settings/ApiKey", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from setting read, got %d", rec.Code)
	}
	var setting struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&setting); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if setting.Value != "abc123xyz789" {
		t.Fatalf("expected default ApiKey, got %q", setting.Value)
	}

	payload, _ := json.Marshal(map[string]string{"value": "Debug"})
	rec = performRequest(t, handler, http.MethodPut, "/api/settings/LogLevel", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from setting update, got %d", rec.Code)
	}

	// A second handler over a freshly obtained handle observes the update.
	second := api.NewHandler(settings.Instance())
	secondRouter := api.NewRouter(second, zaptest.NewLogger(t))
	rec = performRequest(t, secondRouter, http.MethodGet, "/api/settings/LogLevel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from second handle, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&setting); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if setting.Value != "Debug" {
		t.Fatalf("expected shared update to be visible, got %q", setting.Value)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/settings/load", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from load, got %d", rec.Code)
	}
	var load struct {
		Outcome string `json:"outcome"`
		Loaded  bool   `json:"loaded"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&load); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if load.Outcome != "already_loaded" || !load.Loaded {
		t.Fatalf("expected redundant load to be a no-op, got %+v", load)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/settings/DoesNotExist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown key, got %d", rec.Code)
	}
}
