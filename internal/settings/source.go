package settings

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source supplies the key/value pairs applied by Store.Load. Implementations
// should honour context cancellation when they perform real I/O.
type Source interface {
	Load(ctx context.Context) (map[string]string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (map[string]string, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// defaultSettings is the built-in dataset applied when no external source
// overrides a key.
var defaultSettings = map[string]string{
	"DatabaseConnection": "Server=localhost;Database=AppDB",
	"ApiKey":             "abc123xyz789",
	"CacheServer":        "redis://localhost:6379",
	"MaxRetries":         "3",
	"TimeoutSeconds":     "30",
	"EnableLogging":      "true",
	"LogLevel":           "Info",
}

// Defaults returns the built-in settings dataset. It never fails.
func Defaults() Source {
	return SourceFunc(func(context.Context) (map[string]string, error) {
		out := make(map[string]string, len(defaultSettings))
		for key, value := range defaultSettings {
			out[key] = value
		}
		return out, nil
	})
}

// FileSource reads a flat key/value YAML document. Scalar values of any YAML
// type are rendered to strings, so `MaxRetries: 5` yields "5".
func FileSource(path string) Source {
	return SourceFunc(func(ctx context.Context) (map[string]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings file: %w", err)
		}

		raw := map[string]any{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse settings file: %w", err)
		}

		out := make(map[string]string, len(raw))
		for key, value := range raw {
			out[key] = fmt.Sprint(value)
		}
		return out, nil
	})
}

// EnvSource reads PREFIX_* environment variables. Variable suffixes are
// matched against the built-in key names ignoring case and underscores, so
// CONF_LOG_LEVEL overrides LogLevel; unknown suffixes are kept verbatim.
func EnvSource(prefix string) Source {
	return SourceFunc(func(context.Context) (map[string]string, error) {
		out := map[string]string{}
		for _, kv := range os.Environ() {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || !strings.HasPrefix(name, prefix+"_") {
				continue
			}
			suffix := strings.TrimPrefix(name, prefix+"_")
			if suffix == "" {
				continue
			}
			out[canonicalKey(suffix)] = value
		}
		return out, nil
	})
}

// Chain merges sources in order; later sources win on conflicting keys. An
// empty chain yields an empty dataset.
func Chain(sources ...Source) Source {
	return SourceFunc(func(ctx context.Context) (map[string]string, error) {
		merged := map[string]string{}
		for _, src := range sources {
			values, err := src.Load(ctx)
			if err != nil {
				return nil, err
			}
			for key, value := range values {
				merged[key] = value
			}
		}
		return merged, nil
	})
}

func canonicalKey(raw string) string {
	fold := strings.ToLower(strings.ReplaceAll(raw, "_", ""))
	for known := range defaultSettings {
		if strings.ToLower(known) == fold {
			return known
		}
	}
	return raw
}
