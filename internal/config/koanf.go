// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/kapas/config.yaml",
	"/etc/kapas/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before the file and env layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:                   "/data/kapas.duckdb",
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
			SeedCatalog:            false,
		},
		Store: StoreConfig{
			Backend: BackendDuckDB,
		},
		Recommend: RecommendConfig{
			Corpus:          catalog.CorpusBoth,
			TopK:            8,
			MaxTopK:         100,
			BuildTimeout:    30 * time.Second,
			RebuildInterval: 15 * time.Minute,
			BuildOnStartup:  true,
		},
		Cart: CartConfig{
			RegistryCapacity: 10000,
			RegistryTTL:      30 * time.Minute,
			SweepInterval:    5 * time.Minute,
			AdoptOnLogin:     false,
		},
		Security: SecurityConfig{
			JWTSecret:           "",
			TokenTTL:            24 * time.Hour,
			RateLimitReqs:       100,
			RateLimitWindow:     time.Minute,
			RateLimitDisabled:   false,
			CORSOrigins:         []string{"*"},
			SessionCookieSecure: false,
			OpenRowAPI:          false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Client: ClientConfig{
			RemoteURL:       "http://localhost:8080",
			Timeout:         10 * time.Second,
			DataDir:         defaultDataDir(),
			RateLimit:       20,
			RateBurst:       5,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/kapas"
	}
	return ".kapas"
}

// Load loads configuration from defaults, the optional YAML file and mapped
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_catalog":      "database.seed_catalog",
	"store_backend":     "store.backend",

	// Recommender
	"recommend_corpus":           "recommend.corpus",
	"recommend_top_k":            "recommend.top_k",
	"recommend_max_top_k":        "recommend.max_top_k",
	"recommend_build_timeout":    "recommend.build_timeout",
	"recommend_rebuild_interval": "recommend.rebuild_interval",
	"recommend_build_on_startup": "recommend.build_on_startup",

	// Cart
	"cart_registry_capacity": "cart.registry_capacity",
	"cart_registry_ttl":      "cart.registry_ttl",
	"cart_sweep_interval":    "cart.sweep_interval",
	"cart_adopt_on_login":    "cart.adopt_on_login",

	// Security
	"jwt_secret":            "security.jwt_secret",
	"token_ttl":             "security.token_ttl",
	"rate_limit_requests":   "security.rate_limit_reqs",
	"rate_limit_window":     "security.rate_limit_window",
	"disable_rate_limit":    "security.rate_limit_disabled",
	"cors_origins":          "security.cors_origins",
	"session_cookie_secure": "security.session_cookie_secure",
	"open_row_api":          "security.open_row_api",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// CLI client
	"kapas_remote_url":       "client.remote_url",
	"kapas_client_timeout":   "client.timeout",
	"kapas_data_dir":         "client.data_dir",
	"kapas_rate_limit":       "client.rate_limit",
	"kapas_rate_burst":       "client.rate_burst",
	"kapas_breaker_failures": "client.breaker_failures",
	"kapas_breaker_timeout":  "client.breaker_timeout",
}

// envTransformFunc maps an environment variable name to its koanf path. Unmapped
// variables return "" and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - KAPAS_REMOTE_URL -> client.remote_url
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
