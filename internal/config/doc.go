// Package config loads the bootstrap configuration for the registry binary
// from multiple sources (YAML files, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// It covers the process plumbing only (ports, timeouts, rate limits); the
// application settings themselves live in the settings store.
package config
