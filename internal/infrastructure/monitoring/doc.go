// Package monitoring exposes Prometheus metrics for the audit service:
// HTTP request counters and latency, audit counts and score distribution,
// issue counts by severity, and WebSocket connection gauges.
package monitoring
