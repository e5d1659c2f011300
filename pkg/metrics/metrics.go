// Package metrics provides the centralized Prometheus registry for the
// Carbon Intensity client. Metrics are defined next to the code that
// records them (pkg/client, pkg/intensity) to avoid circular
// dependencies; this package documents what is available.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - carbon_api_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - carbon_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - carbon_api_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Retry Metrics (pkg/client):
//   - carbon_api_retries_total{endpoint} (Counter): Retry attempts by endpoint
//   - carbon_api_retry_exhausted_total{endpoint} (Counter): Requests that exhausted max retries
//
// Aggregation Metrics (pkg/intensity):
//   - carbon_windows_total{outcome} (Counter): Window fetches by outcome (ok, error)
//   - carbon_range_queries_total (Counter): Ranged aggregation calls
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(carbon_api_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(carbon_api_request_duration_seconds_bucket[5m]))
//
//   # Window Failure Ratio
//   rate(carbon_windows_total{outcome="error"}[5m]) / rate(carbon_windows_total[5m])
