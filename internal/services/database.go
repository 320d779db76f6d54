package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/settings"
)

// Database is a stand-in for a database client configured from the shared
// settings store.
type Database struct {
	logger *zap.Logger

	dsn        string
	maxRetries int
}

// NewDatabase constructs an unconnected database collaborator.
func NewDatabase(logger *zap.Logger) *Database {
	return &Database{logger: logger}
}

// Name implements Service.
func (d *Database) Name() string { return "database" }

// Init resolves the connection settings through the shared store.
func (d *Database) Init(ctx context.Context) error {
	store := settings.Instance()

	dsn, err := store.Get(ctx, "DatabaseConnection")
	if err != nil {
		return fmt.Errorf("database connection setting: %w", err)
	}
	d.dsn = dsn

	d.maxRetries = 3
	if raw, err := store.Get(ctx, "MaxRetries"); err == nil {
		if value, convErr := strconv.Atoi(raw); convErr == nil && value >= 0 {
			d.maxRetries = value
		}
	}

	d.logger.Info("database configured",
		zap.String("service", d.Name()),
		zap.Int("max_retries", d.maxRetries),
	)
	return nil
}

// DSN returns the resolved connection string.
func (d *Database) DSN() string { return d.dsn }

// MaxRetries returns the resolved retry budget.
func (d *Database) MaxRetries() int { return d.maxRetries }
