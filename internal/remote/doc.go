// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package remote is the HTTP client used by the kapas CLI to reach the storefront
server.

Client implements rowstore.Store over the server's row API
(/rest/v1/{table}, PostgREST-style filters) and auth.UserSource over
/auth/v1/user, so the cart, catalog and recommender run unchanged against a
remote backend. With a SessionProvider every request carries X-Cart-Session,
which the server needs for cart rows.

Resilience:

  - Every request waits on a token bucket limiter (golang.org/x/time/rate)
  - Requests run through a gobreaker circuit breaker; after BreakerFailures
    consecutive transport or 5xx failures, calls fail fast with ErrCircuitOpen
    until BreakerTimeout elapses
  - 4xx responses do not count as breaker failures
  - The HTTP client timeout bounds every call in addition to the caller's
    context

Server error codes for row failures are mapped back to the rowstore sentinels,
so errors.Is(err, rowstore.ErrDuplicateKey) works across the wire.
*/
package remote
