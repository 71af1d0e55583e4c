// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

// Package metrics registers MediaFTP's Prometheus collectors with the
// default registry and offers Record helpers for the packages that feed
// them. The collectors are exposed at /metrics through promhttp.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediaftp_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediaftp_api_active_requests",
			Help: "Current number of in-flight API requests (includes open streams)",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Folder Index Metrics
	IndexSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mediaftp_index_search_duration_seconds",
			Help:    "Time spent scanning .db index files for one search",
			Buckets: prometheus.DefBuckets,
		},
	)

	IndexSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mediaftp_index_search_results",
			Help:    "Number of index entries matched by one search",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	IndexFilesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediaftp_index_files_skipped_total",
			Help: "Total number of unreadable .db files skipped during searches",
		},
	)

	// Bookmark Store Metrics
	BookmarkOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_bookmark_operations_total",
			Help: "Total number of bookmark store operations",
		},
		[]string{"operation", "result"}, // operation: search, add, remove; result: success, error
	)

	// Media Listing Metrics
	MediaListDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mediaftp_media_list_duration_seconds",
			Help:    "Time spent walking a folder for media files",
			Buckets: prometheus.DefBuckets,
		},
	)

	MediaFilesListed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mediaftp_media_files_listed",
			Help:    "Number of media files returned by one listing",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	StreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_stream_requests_total",
			Help: "Total number of stream requests by outcome",
		},
		[]string{"result"}, // served, forbidden, not_found, bad_request, error
	)

	// Visitor and GeoIP Metrics
	VisitorsSeen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediaftp_visitors_seen",
			Help: "Current number of client addresses in the seen set",
		},
	)

	VisitorsNew = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediaftp_visitors_new_total",
			Help: "Total number of first-seen client addresses",
		},
	)

	VisitorsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediaftp_visitors_expired_total",
			Help: "Total number of seen addresses removed by the janitor",
		},
	)

	GeoIPLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_geoip_lookups_total",
			Help: "Total number of geolocation lookups by outcome",
		},
		[]string{"status"}, // located, local, failed
	)

	GeoIPLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mediaftp_geoip_lookup_duration_seconds",
			Help:    "Duration of geolocation provider calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mediaftp_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediaftp_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one completed request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordIndexSearch records a completed folder search.
func RecordIndexSearch(duration time.Duration, results int) {
	IndexSearchDuration.Observe(duration.Seconds())
	IndexSearchResults.Observe(float64(results))
}

// RecordBookmarkOperation counts a bookmark store call.
func RecordBookmarkOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	BookmarkOperations.WithLabelValues(operation, result).Inc()
}

// RecordMediaList records a completed media listing.
func RecordMediaList(duration time.Duration, files int) {
	MediaListDuration.Observe(duration.Seconds())
	MediaFilesListed.Observe(float64(files))
}

// RecordStream counts a stream request outcome.
func RecordStream(result string) {
	StreamRequests.WithLabelValues(result).Inc()
}

// RecordGeoIPLookup counts a lookup outcome. Duration is only observed
// for lookups that reached a provider.
func RecordGeoIPLookup(status string, duration time.Duration) {
	GeoIPLookups.WithLabelValues(status).Inc()
	if duration > 0 {
		GeoIPLookupDuration.Observe(duration.Seconds())
	}
}
