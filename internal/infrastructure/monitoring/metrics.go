package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pagelens/backend/internal/audit/report"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Audit metrics
	AuditsTotal *prometheus.CounterVec
	AuditScores prometheus.Histogram
	IssuesTotal *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagelens_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pagelens_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		AuditsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagelens_audits_total",
				Help: "Total number of completed audits by input kind",
			},
			[]string{"kind"},
		),
		AuditScores: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pagelens_audit_overall_score",
				Help:    "Distribution of overall audit scores",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
		),
		IssuesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagelens_issues_total",
				Help: "Total issues found by severity",
			},
			[]string{"severity"},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pagelens_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pagelens_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric.
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAudit records a completed audit and its findings.
func (m *Metrics) RecordAudit(kind string, rep *report.Report) {
	m.AuditsTotal.WithLabelValues(kind).Inc()
	m.AuditScores.Observe(float64(rep.OverallScore))
	for severity, count := range rep.CountBySeverity() {
		m.IssuesTotal.WithLabelValues(string(severity)).Add(float64(count))
	}
}

// IncWSConnections increments WebSocket connections.
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections.
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
