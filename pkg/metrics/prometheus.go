// Package metrics provides Prometheus metrics for the podium leaderboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Dataset metrics - the load path
	fetchesTotal     prometheus.Counter
	fetchErrors      *prometheus.CounterVec
	fetchDuration    prometheus.Histogram
	rowsLoaded       prometheus.Gauge
	rowsDropped      prometheus.Counter
	rowParseErrors   prometheus.Counter
	lastLoadUnix     prometheus.Gauge
	refreshRunsTotal prometheus.Counter

	// Render metrics - the view path
	rendersTotal   prometheus.Counter
	renderDuration prometheus.Histogram

	// Control metrics - user interaction
	searchesTotal      prometheus.Counter
	debounceSuperseded prometheus.Counter
	modeToggles        prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetches_total",
		Help:      "Total number of dataset fetch attempts",
	})
	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed dataset fetches by reason",
	}, []string{"reason"})
	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_milliseconds",
		Help:      "Dataset fetch and parse duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.rowsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_loaded",
		Help:      "Number of rows in the current dataset",
	})
	m.rowsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped_total",
		Help:      "Total number of rows dropped for missing required fields",
	})
	m.rowParseErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "row_parse_errors_total",
		Help:      "Total number of row-level CSV parse errors (logged, never fatal)",
	})
	m.lastLoadUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_load_timestamp_seconds",
		Help:      "Unix time of the last successful dataset load",
	})
	m.refreshRunsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_runs_total",
		Help:      "Total number of periodic refresh runs",
	})

	m.rendersTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "renders_total",
		Help:      "Total number of table renders",
	})
	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_duration_milliseconds",
		Help:      "Table render duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.searchesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "searches_total",
		Help:      "Total number of applied search terms",
	})
	m.debounceSuperseded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "debounce_superseded_total",
		Help:      "Total number of pending debounced searches replaced by a newer keystroke",
	})
	m.modeToggles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mode_toggles_total",
		Help:      "Total number of oracle mode toggles",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of HTTP error responses by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current memory usage in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordFetch increments the fetch attempt counter.
func RecordFetch() { globalManager.fetchesTotal.Inc() }

// RecordFetchError increments the fetch error counter for a reason
// ("network", "status", "read", "parse").
func RecordFetchError(reason string) { globalManager.fetchErrors.WithLabelValues(reason).Inc() }

// ObserveFetchDuration records one fetch+parse duration in milliseconds.
func ObserveFetchDuration(ms float64) { globalManager.fetchDuration.Observe(ms) }

// UpdateRowsLoaded sets the current dataset size.
func UpdateRowsLoaded(n int) { globalManager.rowsLoaded.Set(float64(n)) }

// RecordRowsDropped counts rows discarded for missing required fields.
func RecordRowsDropped(n int) { globalManager.rowsDropped.Add(float64(n)) }

// RecordRowParseError counts one row-level CSV parse problem.
func RecordRowParseError() { globalManager.rowParseErrors.Inc() }

// UpdateLastLoad sets the timestamp of the last successful load.
func UpdateLastLoad(unix int64) { globalManager.lastLoadUnix.Set(float64(unix)) }

// RecordRefreshRun counts one periodic refresh.
func RecordRefreshRun() { globalManager.refreshRunsTotal.Inc() }

// RecordRender counts one render pass.
func RecordRender() { globalManager.rendersTotal.Inc() }

// ObserveRenderDuration records one render duration in milliseconds.
func ObserveRenderDuration(ms float64) { globalManager.renderDuration.Observe(ms) }

// RecordSearch counts one applied search term.
func RecordSearch() { globalManager.searchesTotal.Inc() }

// RecordDebounceSuperseded counts one replaced pending search.
func RecordDebounceSuperseded() { globalManager.debounceSuperseded.Inc() }

// RecordModeToggle counts one oracle mode flip.
func RecordModeToggle() { globalManager.modeToggles.Inc() }

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByEndpoint records one HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets current memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }
