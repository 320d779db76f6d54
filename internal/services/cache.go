package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/settings"
)

// Cache is a stand-in for a cache client configured from the shared
// settings store.
type Cache struct {
	logger *zap.Logger

	server string
}

// NewCache constructs an unconfigured cache collaborator.
func NewCache(logger *zap.Logger) *Cache {
	return &Cache{logger: logger}
}

// Name implements Service.
func (c *Cache) Name() string { return "cache" }

// Init resolves the cache server address through the shared store.
func (c *Cache) Init(ctx context.Context) error {
	server, err := settings.Instance().Get(ctx, "CacheServer")
	if err != nil {
		return fmt.Errorf("cache server setting: %w", err)
	}
	c.server = server

	c.logger.Info("cache configured", zap.String("service", c.Name()))
	return nil
}

// Server returns the resolved cache server address.
func (c *Cache) Server() string { return c.server }
