// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package middleware provides HTTP middleware shared by the API router.

Components:

  - RequestID: X-Request-ID propagation with request and correlation IDs in
    the logging context
  - PrometheusMetrics: request counts, durations and in-flight gauge, labeled
    by chi route pattern so path parameters do not create new series
  - AccessLog: one zerolog line per request, at warn level for 5xx and for
    requests slower than the configured threshold

Order in the router:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
