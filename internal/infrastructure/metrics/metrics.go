package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/koperasi/ledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Posting metrics
	JournalsPosted    *prometheus.CounterVec
	JournalEntries    *prometheus.HistogramVec
	ValidationErrors  *prometheus.CounterVec
	EquationChecks    *prometheus.CounterVec
	EquationImbalance prometheus.Gauge

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge
}

// New creates all metrics on a private registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		JournalsPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "koperasi_journals_posted_total",
				Help: "Total opening balance journals posted by kind",
			},
			[]string{"kind"},
		),
		JournalEntries: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "koperasi_journal_entries",
				Help:    "Number of entries per posted journal",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"kind"},
		),
		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "koperasi_validation_failures_total",
				Help: "Total rejected submissions by validation stage",
			},
			[]string{"stage"},
		),
		EquationChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "koperasi_equation_checks_total",
				Help: "Total accounting equation checks by outcome",
			},
			[]string{"valid"},
		),
		EquationImbalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "koperasi_equation_difference",
			Help: "Difference between assets and liabilities plus equity at the last check",
		}),

		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "koperasi_store_operations_total",
				Help: "Total key-value store operations",
			},
			[]string{"operation", "status"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "koperasi_store_duration_seconds",
				Help:    "Key-value store operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "koperasi_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "koperasi_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "koperasi_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
	}
}

// Registry exposes the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// JournalPosted implements usecase.MetricsRecorder.
func (m *Metrics) JournalPosted(kind domain.JournalKind, entries int) {
	m.JournalsPosted.WithLabelValues(string(kind)).Inc()
	m.JournalEntries.WithLabelValues(string(kind)).Observe(float64(entries))
}

// ValidationFailed implements usecase.MetricsRecorder.
func (m *Metrics) ValidationFailed(stage string) {
	m.ValidationErrors.WithLabelValues(stage).Inc()
}

// EquationChecked implements usecase.MetricsRecorder.
func (m *Metrics) EquationChecked(valid bool, difference float64) {
	m.EquationChecks.WithLabelValues(strconv.FormatBool(valid)).Inc()
	m.EquationImbalance.Set(difference)
}

// StoreOperation implements store.OperationObserver.
func (m *Metrics) StoreOperation(op, status string, duration time.Duration) {
	m.StoreOperations.WithLabelValues(op, status).Inc()
	m.StoreDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RequestStarted marks one more request in flight.
func (m *Metrics) RequestStarted() {
	m.HTTPInFlight.Inc()
}

// RequestFinished records a completed HTTP request.
func (m *Metrics) RequestFinished(method, path string, status int, duration time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
