package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/settings"
)

// APIClient is a stand-in for an outbound API client configured from the
// shared settings store.
type APIClient struct {
	logger *zap.Logger

	apiKey  string
	timeout time.Duration
}

// NewAPIClient constructs an unconfigured API client collaborator.
func NewAPIClient(logger *zap.Logger) *APIClient {
	return &APIClient{logger: logger}
}

// Name implements Service.
func (c *APIClient) Name() string { return "api-client" }

// Init resolves the API key and request timeout through the shared store.
func (c *APIClient) Init(ctx context.Context) error {
	store := settings.Instance()

	key, err := store.Get(ctx, "ApiKey")
	if err != nil {
		return fmt.Errorf("api key setting: %w", err)
	}
	c.apiKey = key

	c.timeout = 30 * time.Second
	if raw, err := store.Get(ctx, "TimeoutSeconds"); err == nil {
		if seconds, convErr := strconv.Atoi(raw); convErr == nil && seconds > 0 {
			c.timeout = time.Duration(seconds) * time.Second
		}
	}

	c.logger.Info("api client configured",
		zap.String("service", c.Name()),
		zap.Duration("timeout", c.timeout),
	)
	return nil
}

// Timeout returns the resolved request timeout.
func (c *APIClient) Timeout() time.Duration { return c.timeout }

// Authorized reports whether an API key has been resolved.
func (c *APIClient) Authorized() bool { return c.apiKey != "" }
