package metrics

import "github.com/prometheus/client_golang/prometheus"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNamePlanComputations       = "plan_requirements_computed_total"
	MetricNamePlanComputationSeconds = "plan_requirements_computation_seconds"
	MetricNameServantComputations    = "servant_requirements_computed_total"
	MetricNameCatalogCacheHits       = "catalog_cache_hits_total"
	MetricNameCatalogCacheMisses     = "catalog_cache_misses_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextPlanComputations       = "Total number of plan requirement computations"
	HelpTextPlanComputationSeconds = "Plan requirement computation latency in seconds"
	HelpTextServantComputations    = "Total number of single-servant requirement computations"
	HelpTextCatalogCacheHits       = "Total number of servant catalog cache hits"
	HelpTextCatalogCacheMisses     = "Total number of servant catalog cache misses"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request latency.
var HTTPLatencyBuckets = prometheus.DefBuckets

// ComputationLatencyBuckets cover the expected range of pure in-memory
// computations, well below typical HTTP latencies.
var ComputationLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
