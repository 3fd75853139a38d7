package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fiscal_analytics"

// Metrics holds the Prometheus instruments of the API
type Metrics struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec
	riskAnalyses *prometheus.CounterVec
	authAttempts *prometheus.CounterVec
	chainsListed prometheus.Histogram
}

// New registers the API metrics on a fresh registry that also carries the
// Go runtime and process collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(registry, registry)
}

// NewWithRegistry registers the API metrics on the given registerer
func NewWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		registerer: registerer,
		gatherer:   gatherer,

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Counts HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Counts failed store operations by operation.",
		}, []string{"operation"}),
		riskAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_analyses_total",
			Help:      "Counts invoice risk analyses by outcome.",
		}, []string{"outcome"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Counts authentication attempts by action and result.",
		}, []string{"action", "result"}),
		chainsListed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "traceability_chains_per_listing",
			Help:      "Number of invoice chains returned per listing request.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	registerer.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.storeErrors,
		m.riskAnalyses,
		m.authAttempts,
		m.chainsListed,
	)
	return m
}

// TrackWorkerPool exposes the running workers and waiting tasks of a worker pool
func (m *Metrics) TrackWorkerPool(running, waiting func() float64) {
	if m == nil {
		return
	}
	m.registerer.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_pool_running_workers",
			Help:      "Workers currently running store reads.",
		}, running),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_pool_waiting_tasks",
			Help:      "Store reads queued for a worker.",
		}, waiting),
	)
}

// Handler serves the registered metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncStoreError records a failed store operation
func (m *Metrics) IncStoreError(operation string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(operation).Inc()
}

// IncRiskAnalysis records a risk analysis outcome (scored, not_found, error)
func (m *Metrics) IncRiskAnalysis(outcome string) {
	if m == nil {
		return
	}
	m.riskAnalyses.WithLabelValues(outcome).Inc()
}

// IncAuthAttempt records an authentication attempt
func (m *Metrics) IncAuthAttempt(action string, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.authAttempts.WithLabelValues(action, result).Inc()
}

// ObserveChainsListed records the number of chains in a traceability listing
func (m *Metrics) ObserveChainsListed(n int) {
	if m == nil {
		return
	}
	m.chainsListed.Observe(float64(n))
}
