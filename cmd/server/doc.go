// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package main is the entry point for the KAPAS storefront server.

The server exposes the product catalog, TF-IDF recommendations, per-session
carts and a generic row API over HTTP. Rows live in DuckDB by default or in
process memory for development.

# Application Architecture

The server runs its long-lived components under a Suture v4 supervisor tree:

	RootSupervisor ("kapas")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── recommend-index (startup build and periodic rebuilds)
	│   └── cart-sweep (drops idle carts from the registry)
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, an optional config.yaml and environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Row store: DuckDB or memory, optionally seeded with purchasable sample products
 4. Catalog, recommender and cart registry over the row store
 5. JWT verification when JWT_SECRET is set
 6. Chi router and the supervisor tree

# Configuration

Commonly used environment variables:

	HTTP_HOST, HTTP_PORT          listen address (default 0.0.0.0:8080)
	STORE_BACKEND                 duckdb or memory
	DUCKDB_PATH                   database file (":memory:" for in-process)
	SEED_CATALOG                  seed sample products into an empty catalog
	RECOMMEND_CORPUS              both, samples or catalog
	RECOMMEND_REBUILD_INTERVAL    periodic index rebuilds (0 disables)
	CART_ADOPT_ON_LOGIN           move anonymous cart lines to the user on adopt
	JWT_SECRET                    32+ character signing secret; empty disables auth
	LOG_LEVEL, LOG_FORMAT         zerolog level and json or console output

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight requests
for up to SHUTDOWN_TIMEOUT before the row store is closed.

# Example Usage

Development with an in-memory store:

	export STORE_BACKEND=memory
	export SEED_CATALOG=true
	export LOG_FORMAT=console
	./kapas-server

Production with DuckDB and authentication:

	export DUCKDB_PATH=/data/kapas.duckdb
	export JWT_SECRET=$(openssl rand -base64 32)
	export SESSION_COOKIE_SECURE=true
	./kapas-server
*/
package main
