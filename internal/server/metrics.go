package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/astroviz/starplot/pkg/observability"
)

// Metrics bundles Prometheus metrics for the HTTP surface and the plotting
// pipeline, and provides observability hook implementations to feed them.
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	PipelineRuns      *prometheus.CounterVec
	PipelineDurations *prometheus.HistogramVec

	CacheOps *prometheus.CounterVec
}

// NewMetrics registers Starplot metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		gatherer: gatherer,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starplot_http_requests_total",
			Help: "Total number of handled HTTP requests, labeled by method, route, and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "starplot_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route"}),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starplot_pipeline_stage_total",
			Help: "Total number of pipeline stage executions, labeled by stage and outcome.",
		}, []string{"stage", "outcome"}),
		PipelineDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "starplot_pipeline_stage_duration_seconds",
			Help:    "Pipeline stage latency in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		CacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starplot_cache_ops_total",
			Help: "Total number of cache operations, labeled by key type and operation.",
		}, []string{"key_type", "op"}),
	}

	for _, c := range []prometheus.Collector{
		m.HTTPRequests, m.HTTPDurations,
		m.PipelineRuns, m.PipelineDurations,
		m.CacheOps,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Gatherer returns the gatherer serving the /metrics endpoint.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// RegisterHooks installs the metrics as global observability hooks so the
// pipeline and cache feed them without importing this package.
func (m *Metrics) RegisterHooks() {
	observability.SetPipelineHooks(&pipelineMetricsHooks{m})
	observability.SetCacheHooks(&cacheMetricsHooks{m})
	observability.SetHTTPHooks(&httpMetricsHooks{m})
}

type pipelineMetricsHooks struct{ m *Metrics }

func (h *pipelineMetricsHooks) OnNormalizeStart(context.Context, string, int) {}

func (h *pipelineMetricsHooks) OnNormalizeComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	h.m.PipelineRuns.WithLabelValues("normalize", outcome(err)).Inc()
	h.m.PipelineDurations.WithLabelValues("normalize").Observe(d.Seconds())
}

func (h *pipelineMetricsHooks) OnRenderStart(context.Context, []string) {}

func (h *pipelineMetricsHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.m.PipelineRuns.WithLabelValues("render", outcome(err)).Inc()
	h.m.PipelineDurations.WithLabelValues("render").Observe(d.Seconds())
}

type cacheMetricsHooks struct{ m *Metrics }

func (h *cacheMetricsHooks) OnCacheHit(_ context.Context, keyType string) {
	h.m.CacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *cacheMetricsHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.m.CacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *cacheMetricsHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.m.CacheOps.WithLabelValues(keyType, "set").Inc()
}

type httpMetricsHooks struct{ m *Metrics }

func (h *httpMetricsHooks) OnRequest(context.Context, string, string) {}

func (h *httpMetricsHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.m.HTTPDurations.WithLabelValues(method, route).Observe(d.Seconds())
}

func (h *httpMetricsHooks) OnError(context.Context, string, string, error) {}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
