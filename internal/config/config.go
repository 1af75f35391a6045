// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package config

import (
	"fmt"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/logging"
	"github.com/ishubhamdubey/KAPAS/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Store     StoreConfig     `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cart      CartConfig      `koanf:"cart"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Client    ClientConfig    `koanf:"client"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path                   string `koanf:"path"` // ":memory:" for an in-process database
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = use NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SeedCatalog            bool   `koanf:"seed_catalog"` // seed purchasable samples into an empty catalog
}

// Row store backends.
const (
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
)

// StoreConfig selects the server row store.
type StoreConfig struct {
	Backend string `koanf:"backend"`
}

// RecommendConfig holds recommender settings.
type RecommendConfig struct {
	Corpus          string        `koanf:"corpus"` // both, samples or catalog
	TopK            int           `koanf:"top_k"`
	MaxTopK         int           `koanf:"max_top_k"`
	BuildTimeout    time.Duration `koanf:"build_timeout"`
	RebuildInterval time.Duration `koanf:"rebuild_interval"` // 0 disables periodic rebuilds
	BuildOnStartup  bool          `koanf:"build_on_startup"`
}

// RecommenderConfig converts to the recommender's configuration.
func (r RecommendConfig) RecommenderConfig() *recommend.Config {
	return &recommend.Config{
		TopK:         r.TopK,
		MaxTopK:      r.MaxTopK,
		BuildTimeout: r.BuildTimeout,
	}
}

// CartConfig holds cart settings.
type CartConfig struct {
	RegistryCapacity int           `koanf:"registry_capacity"`
	RegistryTTL      time.Duration `koanf:"registry_ttl"`
	SweepInterval    time.Duration `koanf:"sweep_interval"`
	AdoptOnLogin     bool          `koanf:"adopt_on_login"`
}

// SecurityConfig holds authentication, rate limiting and CORS settings.
type SecurityConfig struct {
	JWTSecret           string        `koanf:"jwt_secret"`
	TokenTTL            time.Duration `koanf:"token_ttl"`
	RateLimitReqs       int           `koanf:"rate_limit_reqs"`
	RateLimitWindow     time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled   bool          `koanf:"rate_limit_disabled"`
	CORSOrigins         []string      `koanf:"cors_origins"`
	SessionCookieSecure bool          `koanf:"session_cookie_secure"`

	// OpenRowAPI lets /rest/v1 read and write cart rows of any shopper.
	// Only for trusted deployments and tests.
	OpenRowAPI bool `koanf:"open_row_api"`
}

// AuthEnabled reports whether bearer tokens are verified.
func (s SecurityConfig) AuthEnabled() bool {
	return s.JWTSecret != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// LoggingConfig converts to the logging package configuration.
func (l LoggingConfig) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// ClientConfig holds settings for the kapas CLI.
type ClientConfig struct {
	RemoteURL       string        `koanf:"remote_url"`
	Timeout         time.Duration `koanf:"timeout"`
	DataDir         string        `koanf:"data_dir"`
	RateLimit       float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst       int           `koanf:"rate_burst"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}
