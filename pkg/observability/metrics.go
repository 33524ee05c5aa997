package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kvk"

// Metrics records hook events as Prometheus metrics. It implements
// [RegistryHooks], [CacheHooks] and [HTTPHooks].
type Metrics struct {
	queries         *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	cacheEvents     *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	throttleWait    prometheus.Histogram
	inflight        prometheus.Gauge
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

var (
	_ RegistryHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "queries_total",
			Help:      "Registry operations by outcome.",
		}, []string{"operation", "result"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "query_duration_seconds",
			Help:      "Duration of registry operations, including every linked request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Response cache hits, misses and stores.",
		}, []string{"event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "stored_bytes_total",
			Help:      "Bytes of response bodies stored in the cache.",
		}),
		throttleWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for the request pacing.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.2, 0.5, 1},
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests sent and not yet answered.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP responses by host and status code.",
		}, []string{"host", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time until response headers arrived.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_errors_total",
			Help:      "Transport failures by host.",
		}, []string{"host"}),
	}

	for _, c := range []prometheus.Collector{
		m.queries, m.queryDuration, m.cacheEvents, m.cacheBytes, m.throttleWait,
		m.inflight, m.requests, m.requestDuration, m.requestErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Install registers m as the global registry, cache and HTTP hooks.
func (m *Metrics) Install() {
	SetRegistryHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}

// OnQueryStart is a no-op; queries are counted on completion.
func (m *Metrics) OnQueryStart(context.Context, string) {}

// OnQueryComplete counts the query by operation and result and records its
// duration.
func (m *Metrics) OnQueryComplete(_ context.Context, operation string, _ int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.queries.WithLabelValues(operation, result).Inc()
	m.queryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// OnCacheHit counts a cache hit.
func (m *Metrics) OnCacheHit(context.Context, string) {
	m.cacheEvents.WithLabelValues("hit").Inc()
}

// OnCacheMiss counts a cache miss.
func (m *Metrics) OnCacheMiss(context.Context, string) {
	m.cacheEvents.WithLabelValues("miss").Inc()
}

// OnCacheSet counts a stored response and adds its size to the stored
// bytes total.
func (m *Metrics) OnCacheSet(_ context.Context, _ string, size int) {
	m.cacheEvents.WithLabelValues("set").Inc()
	m.cacheBytes.Add(float64(size))
}

// OnThrottle records how long a request waited for its throttle slot.
func (m *Metrics) OnThrottle(_ context.Context, _ string, wait time.Duration) {
	m.throttleWait.Observe(wait.Seconds())
}

// OnRequest marks a request as in flight.
func (m *Metrics) OnRequest(context.Context, string, string, string) {
	m.inflight.Inc()
}

// OnResponse ends an in-flight request and records its status code and
// duration per host.
func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.inflight.Dec()
	m.requests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(host).Observe(d.Seconds())
}

// OnError ends an in-flight request and counts a transport error for the
// host.
func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.inflight.Dec()
	m.requestErrors.WithLabelValues(host).Inc()
}
