package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/api"
	"github.com/eugenenazirov/settings-registry/internal/config"
	"github.com/eugenenazirov/settings-registry/internal/services"
	"github.com/eugenenazirov/settings-registry/internal/settings"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store    *settings.Store
	services []services.Service
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration. The settings store is configured and eagerly loaded here so
// there is a well-defined moment at which configuration is ready.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := settings.Init(
		settings.WithSource(buildSource(cfg)),
		settings.WithObserver(logObserver(logger)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	defer cancel()

	if _, err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	collaborators := services.All(logger)
	for _, svc := range collaborators {
		if err := svc.Init(ctx); err != nil {
			return nil, fmt.Errorf("init %s service: %w", svc.Name(), err)
		}
	}

	handler := api.NewHandler(store)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		store:    store,
		services: collaborators,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// buildSource assembles the load source chain: built-in defaults, then the
// optional settings file, then environment overrides. Later layers win.
func buildSource(cfg config.Config) settings.Source {
	sources := []settings.Source{settings.Defaults()}
	if cfg.SettingsFile != "" {
		sources = append(sources, settings.FileSource(cfg.SettingsFile))
	}
	if cfg.SettingsEnvPrefix != "" {
		sources = append(sources, settings.EnvSource(cfg.SettingsEnvPrefix))
	}
	return settings.Chain(sources...)
}

// logObserver adapts store mutation events to structured log entries.
func logObserver(logger *zap.Logger) settings.Observer {
	return func(ev settings.Event) {
		switch ev.Kind {
		case settings.EventLoaded:
			logger.Info("settings loaded")
		case settings.EventUpdated:
			logger.Info("setting updated", zap.String("key", ev.Key))
		}
	}
}
