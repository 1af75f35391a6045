// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Row Store Metrics
	RowstoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rowstore_operation_duration_seconds",
			Help:    "Duration of row store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation", "table"}, // backend: memory, duckdb, remote
	)

	RowstoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rowstore_errors_total",
			Help: "Total number of failed row store operations",
		},
		[]string{"backend", "operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Index Metrics
	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_index_builds_total",
			Help: "Total number of TF-IDF index builds",
		},
		[]string{"result"}, // success, error
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_index_build_duration_seconds",
			Help:    "Duration of TF-IDF index builds in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	IndexDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_index_documents",
			Help: "Number of documents in the current TF-IDF index",
		},
	)

	IndexVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_index_vocabulary_terms",
			Help: "Number of vocabulary terms in the current TF-IDF index",
		},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"mode"}, // product, query
	)

	// Cart Metrics
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation", "result"},
	)

	CartStoresCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_stores_cached",
			Help: "Current number of per-owner cart stores held by the registry",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// ObserveRowstore records the duration of a row store operation started at start.
// Intended for use with defer:
//
//	defer metrics.ObserveRowstore("duckdb", "select", table, time.Now())
func ObserveRowstore(backend, operation, table string, start time.Time) {
	RowstoreOperationDuration.WithLabelValues(backend, operation, table).Observe(time.Since(start).Seconds())
}

// RecordRowstoreError counts a failed row store operation.
func RecordRowstoreError(backend, operation, table string) {
	RowstoreErrors.WithLabelValues(backend, operation, table).Inc()
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordIndexBuild records a TF-IDF index build. On success the document and
// vocabulary gauges are updated.
func RecordIndexBuild(duration time.Duration, documents, vocabulary int, err error) {
	if err != nil {
		IndexBuildsTotal.WithLabelValues("error").Inc()
		return
	}
	IndexBuildsTotal.WithLabelValues("success").Inc()
	IndexBuildDuration.Observe(duration.Seconds())
	IndexDocuments.Set(float64(documents))
	IndexVocabulary.Set(float64(vocabulary))
}

// RecordRecommendation counts a recommendation request by mode.
func RecordRecommendation(mode string) {
	RecommendationsTotal.WithLabelValues(mode).Inc()
}

// RecordCartOperation counts a cart operation and its outcome.
func RecordCartOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CartOperationsTotal.WithLabelValues(operation, result).Inc()
}
