package services

import (
	"context"

	"go.uber.org/zap"
)

// Service is a component initialised from the shared settings at startup.
type Service interface {
	Name() string
	Init(ctx context.Context) error
}

// All returns the built-in collaborators in initialisation order.
func All(logger *zap.Logger) []Service {
	return []Service{
		NewDatabase(logger),
		NewAPIClient(logger),
		NewCache(logger),
		NewTelemetry(logger),
	}
}
