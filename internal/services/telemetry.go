package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/settings"
)

// Telemetry is a stand-in for a logging/telemetry collaborator driven by the
// EnableLogging and LogLevel settings.
type Telemetry struct {
	logger *zap.Logger

	enabled bool
	level   string
}

// NewTelemetry constructs an unconfigured telemetry collaborator.
func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{logger: logger}
}

// Name implements Service.
func (t *Telemetry) Name() string { return "telemetry" }

// Init resolves the logging settings through the shared store. Both keys are
// optional; absent keys leave telemetry disabled rather than failing startup.
func (t *Telemetry) Init(ctx context.Context) error {
	store := settings.Instance()

	if raw, err := store.Get(ctx, "EnableLogging"); err == nil {
		t.enabled = strings.EqualFold(raw, "true")
	}
	if level, err := store.Get(ctx, "LogLevel"); err == nil {
		t.level = level
	}

	t.logger.Info("telemetry configured",
		zap.String("service", t.Name()),
		zap.Bool("enabled", t.enabled),
		zap.String("level", t.level),
	)
	return nil
}

// Enabled reports whether telemetry is switched on.
func (t *Telemetry) Enabled() bool { return t.enabled }

// Level returns the resolved log level.
func (t *Telemetry) Level() string { return t.level }
