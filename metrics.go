package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle,
// retries, and the health cache. It is safe for concurrent use and may be
// shared between clients.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec

	healthProbesTotal *prometheus.CounterVec
	healthCacheHits   prometheus.Counter
	healthCacheMisses prometheus.Counter
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "storesight_client_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storesight_client_request_duration_seconds",
				Help:    "Duration of API requests in seconds, retries and backoff included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "storesight_client_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"endpoint"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "storesight_client_errors_total",
				Help: "Total number of failed API requests by failure class",
			},
			[]string{"kind"},
		),
		healthProbesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "storesight_client_health_probes_total",
				Help: "Total number of backend health probes issued",
			},
			[]string{"healthy"},
		),
		healthCacheHits: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "storesight_client_health_cache_hits_total",
				Help: "Health checks answered from the cached status",
			},
		),
		healthCacheMisses: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "storesight_client_health_cache_misses_total",
				Help: "Health checks that required a fresh probe",
			},
		),
	}
}

func (m *MetricsCollector) recordRequest(method, endpoint string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

func (m *MetricsCollector) recordRetries(endpoint string, n int) {
	m.retriesTotal.WithLabelValues(endpoint).Add(float64(n))
}

func (m *MetricsCollector) recordError(kind string) {
	m.errorsTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsCollector) recordHealthProbe(healthy bool) {
	m.healthProbesTotal.WithLabelValues(strconv.FormatBool(healthy)).Inc()
}

func (m *MetricsCollector) recordHealthCacheHit()  { m.healthCacheHits.Inc() }
func (m *MetricsCollector) recordHealthCacheMiss() { m.healthCacheMisses.Inc() }
