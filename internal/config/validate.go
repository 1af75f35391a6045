// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCart(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateClient()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory:
		return nil
	case BackendDuckDB:
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when STORE_BACKEND=duckdb")
		}
		if c.Database.Threads < 0 {
			return fmt.Errorf("DUCKDB_THREADS must not be negative")
		}
		return nil
	default:
		return fmt.Errorf("STORE_BACKEND must be %s or %s, got %q", BackendDuckDB, BackendMemory, c.Store.Backend)
	}
}

func (c *Config) validateRecommend() error {
	switch c.Recommend.Corpus {
	case catalog.CorpusBoth, catalog.CorpusSamples, catalog.CorpusCatalog:
	default:
		return fmt.Errorf("RECOMMEND_CORPUS must be both, samples or catalog, got %q", c.Recommend.Corpus)
	}
	if c.Recommend.RebuildInterval < 0 {
		return fmt.Errorf("RECOMMEND_REBUILD_INTERVAL must not be negative")
	}
	if err := c.Recommend.RecommenderConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateCart() error {
	if c.Cart.RegistryCapacity < 1 {
		return fmt.Errorf("CART_REGISTRY_CAPACITY must be positive, got %d", c.Cart.RegistryCapacity)
	}
	if c.Cart.RegistryTTL <= 0 {
		return fmt.Errorf("CART_REGISTRY_TTL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if s.JWTSecret != "" && len(s.JWTSecret) < auth.MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", auth.MinSecretLength)
	}
	if c.Server.Environment == "production" {
		if s.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if slices.Contains(s.CORSOrigins, "*") {
			return fmt.Errorf("CORS_ORIGINS must not contain * in production")
		}
	}
	if s.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "off":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateClient() error {
	if c.Client.RemoteURL != "" {
		if err := validateHTTPURL(c.Client.RemoteURL, "KAPAS_REMOTE_URL"); err != nil {
			return err
		}
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("KAPAS_CLIENT_TIMEOUT must be positive")
	}
	if c.Client.RateLimit < 0 {
		return fmt.Errorf("KAPAS_RATE_LIMIT must not be negative")
	}
	return nil
}

// validateHTTPURL checks that rawURL is an http(s) base URL without query parameters.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
