// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package config provides centralized configuration management for the KAPAS
server and CLI.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/kapas/config.yaml
 3. Mapped environment variables

Only environment variables listed in the mapping table are read, so unrelated
variables never leak into the configuration.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT

Database and row store:
  - STORE_BACKEND: duckdb (default) or memory
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_CATALOG: insert the purchasable sample catalog when products is empty

Recommender:
  - RECOMMEND_CORPUS: both (default), samples or catalog
  - RECOMMEND_TOP_K, RECOMMEND_MAX_TOP_K, RECOMMEND_BUILD_TIMEOUT
  - RECOMMEND_REBUILD_INTERVAL: 0 disables periodic rebuilds
  - RECOMMEND_BUILD_ON_STARTUP

Cart:
  - CART_REGISTRY_CAPACITY, CART_REGISTRY_TTL, CART_SWEEP_INTERVAL
  - CART_ADOPT_ON_LOGIN

Security:
  - JWT_SECRET (min 32 chars; empty disables bearer authentication), TOKEN_TTL
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS (comma-separated), SESSION_COOKIE_SECURE
  - OPEN_ROW_API (serve cart rows of every shopper on /rest/v1)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

CLI client:
  - KAPAS_REMOTE_URL, KAPAS_CLIENT_TIMEOUT, KAPAS_DATA_DIR
  - KAPAS_RATE_LIMIT, KAPAS_RATE_BURST
  - KAPAS_BREAKER_FAILURES, KAPAS_BREAKER_TIMEOUT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	logging.Init(cfg.Logging.LoggingConfig())

Config is immutable after Load and safe for concurrent reads.
*/
package config
