package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 应用指标，每个实例使用独立的 Registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SearchesTotal         *prometheus.CounterVec
	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamDuration      prometheus.Histogram

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	SortsTotal         *prometheus.CounterVec
	StaleResultsTotal  prometheus.Counter
	ActiveResultStores prometheus.Gauge
}

// New 创建指标集合
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviesearch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moviesearch_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviesearch_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviesearch_upstream_requests_total",
				Help: "Total number of OMDb requests by status",
			},
			[]string{"status"},
		),
		UpstreamDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "moviesearch_upstream_request_duration_seconds",
				Help:    "OMDb request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		CacheHitsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "moviesearch_search_cache_hits_total",
				Help: "Total number of search cache hits",
			},
		),
		CacheMissesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "moviesearch_search_cache_misses_total",
				Help: "Total number of search cache misses",
			},
		),
		SortsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviesearch_sorts_total",
				Help: "Total number of sort requests by order",
			},
			[]string{"order"},
		),
		StaleResultsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "moviesearch_stale_results_total",
				Help: "Search responses dropped because a newer one was already applied",
			},
		),
		ActiveResultStores: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "moviesearch_active_result_sets",
				Help: "Number of sessions holding a result set",
			},
		),
	}
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry 底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveUpstream 记录一次 OMDb 请求
func (m *Metrics) ObserveUpstream(status string, started time.Time) {
	m.UpstreamRequestsTotal.WithLabelValues(status).Inc()
	m.UpstreamDuration.Observe(time.Since(started).Seconds())
}
