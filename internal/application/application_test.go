package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/settings-registry/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if !app.store.Loaded() {
		t.Fatalf("expected settings to be loaded at startup")
	}
	if len(app.services) == 0 {
		t.Fatalf("expected consumer services to be initialised")
	}
	if app.server == nil || app.router == nil || app.handler == nil {
		t.Fatalf("expected server, router, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestBuildSourceLayersEnvOverDefaults(t *testing.T) {
	t.Setenv("APPTEST_LOG_LEVEL", "Error")

	cfg := baseTestConfig(":0")
	cfg.SettingsEnvPrefix = "APPTEST"

	values, err := buildSource(cfg).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if values["LogLevel"] != "Error" {
		t.Fatalf("expected env layer to win, got %q", values["LogLevel"])
	}
	if values["ApiKey"] != "abc123xyz789" {
		t.Fatalf("expected defaults to survive, got %q", values["ApiKey"])
	}
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port:                 port,
		SettingsEnvPrefix:    "",
		LoadTimeout:          time.Second,
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
