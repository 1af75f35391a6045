// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/api"
	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/config"
	"github.com/ishubhamdubey/KAPAS/internal/database"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
	"github.com/ishubhamdubey/KAPAS/internal/recommend"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
	"github.com/ishubhamdubey/KAPAS/internal/supervisor"
	"github.com/ishubhamdubey/KAPAS/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// rowBackend is the server row store and its optional health probe.
type rowBackend struct {
	store  rowstore.Store
	pinger api.Pinger
	close  func() error
}

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.LoggingConfig())
	logging.Info().Str("version", version).Msg("Starting KAPAS server with supervisor tree")

	logging.Info().
		Str("backend", cfg.Store.Backend).
		Str("db_path", cfg.Database.Path).
		Str("corpus", cfg.Recommend.Corpus).
		Bool("auth_enabled", cfg.Security.AuthEnabled()).
		Msg("Configuration loaded")

	backend, err := openRowStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize row store")
	}
	defer func() {
		if err := backend.close(); err != nil {
			logging.Error().Err(err).Msg("Error closing row store")
		}
	}()

	handler, recommender, carts, err := buildHandler(cfg, backend)
	if err != nil {
		// Close before fatal exit so the defer's work still happens
		if closeErr := backend.close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing row store")
		}
		logging.Fatal().Err(err).Msg("Failed to initialize API handlers")
	}

	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(&cfg.Security))
	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridges zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewIndexService(recommender, services.IndexServiceConfig{
		BuildOnStartup:  cfg.Recommend.BuildOnStartup,
		RebuildInterval: cfg.Recommend.RebuildInterval,
		BuildTimeout:    cfg.Recommend.BuildTimeout,
	}, logging.WithComponent("recommend")))
	tree.AddMaintenanceService(services.NewSweepService(carts, cfg.Cart.SweepInterval, logging.WithComponent("cart")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logging.WithComponent("api")))

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
}

// openRowStore opens the configured backend and seeds the catalog if asked to.
func openRowStore(cfg *config.Config) (*rowBackend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		mem := rowstore.NewMemory()
		if err := seed(cfg, mem); err != nil {
			return nil, err
		}
		return &rowBackend{store: mem, close: func() error { return nil }}, nil

	case config.BackendDuckDB:
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := seed(cfg, db); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			return nil, err
		}
		logging.Info().Msg("Database initialized successfully")
		return &rowBackend{store: db, pinger: db, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func seed(cfg *config.Config, store rowstore.Store) error {
	if !cfg.Database.SeedCatalog {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := database.SeedCatalog(ctx, store)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if n > 0 {
		logging.Info().Int("products", n).Msg("Seeded catalog with sample products")
	}
	return nil
}

// buildHandler wires the domain services behind the API handler.
func buildHandler(cfg *config.Config, backend *rowBackend) (*api.Handler, *recommend.Recommender, *cart.Registry, error) {
	cat, err := catalog.New(backend.store, cfg.Recommend.Corpus, logging.WithComponent("catalog"))
	if err != nil {
		return nil, nil, nil, err
	}

	recommender, err := recommend.New(cat, cfg.Recommend.RecommenderConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return nil, nil, nil, err
	}

	carts, err := cart.NewRegistry(backend.store, cfg.Cart.RegistryCapacity, cfg.Cart.RegistryTTL, logging.WithComponent("cart"))
	if err != nil {
		return nil, nil, nil, err
	}

	var jwt *auth.JWTManager
	if cfg.Security.AuthEnabled() {
		jwt, err = auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
		if err != nil {
			return nil, nil, nil, err
		}
		logging.Info().Dur("token_ttl", cfg.Security.TokenTTL).Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("JWT_SECRET not set, all requests are anonymous")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Catalog:     cat,
		Recommender: recommender,
		Carts:       carts,
		Rows:        backend.store,
		JWT:         jwt,
		Config:      cfg,
		Pinger:      backend.pinger,
		Version:     version,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return handler, recommender, carts, nil
}
