package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SETTINGS_FILE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.SettingsEnvPrefix != defaultEnvPrefix {
		t.Fatalf("expected default env prefix, got %s", cfg.SettingsEnvPrefix)
	}
	if cfg.LoadTimeout != 30*time.Second {
		t.Fatalf("unexpected load timeout: %s", cfg.LoadTimeout)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SETTINGS_FILE", "/etc/registry/settings.yaml")
	t.Setenv("LOAD_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_RPS", "10")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.SettingsFile != "/etc/registry/settings.yaml" {
		t.Fatalf("unexpected settings file: %s", cfg.SettingsFile)
	}
	if cfg.LoadTimeout != 5*time.Second {
		t.Fatalf("unexpected load timeout: %s", cfg.LoadTimeout)
	}
	if cfg.RateLimitRPS != 10 {
		t.Fatalf("unexpected rate limit: %f", cfg.RateLimitRPS)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SETTINGS_FILE", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "" +
		"port: \"7070\"\n" +
		"settings_file: settings.yaml\n" +
		"load_timeout: 2s\n" +
		"enable_request_logging: true\n" +
		"rate_limit:\n" +
		"  rps: 5\n" +
		"  burst: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.SettingsFile != "settings.yaml" {
		t.Fatalf("unexpected settings file: %s", cfg.SettingsFile)
	}
	if cfg.LoadTimeout != 2*time.Second {
		t.Fatalf("unexpected load timeout: %s", cfg.LoadTimeout)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit: %f/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestCLIOverridesWin(t *testing.T) {
	t.Setenv("PORT", "9000")

	port := "6060"
	settingsFile := "cli-settings.yaml"
	cfg, err := Load(&CLIOverrides{Port: &port, SettingsFile: &settingsFile})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "6060" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.SettingsFile != "cli-settings.yaml" {
		t.Fatalf("expected CLI settings file to win, got %s", cfg.SettingsFile)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(&CLIOverrides{ConfigFile: "does-not-exist.yaml"}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
