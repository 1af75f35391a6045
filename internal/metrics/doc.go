// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package metrics provides Prometheus metrics collection and export.

Collectors are registered with the default registry through promauto and exposed
by the API at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Row store:
  - rowstore_operation_duration_seconds{backend, operation, table}
  - rowstore_errors_total{backend, operation, table}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Recommendations:
  - recommend_index_builds_total{result}
  - recommend_index_build_duration_seconds
  - recommend_index_documents, recommend_index_vocabulary_terms
  - recommend_requests_total{mode}

Cart:
  - cart_operations_total{operation, result}
  - cart_stores_cached

Remote client:
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}
*/
package metrics
