package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records render and cache events as prometheus metrics.
type PrometheusHooks struct {
	renders   prometheus.Histogram
	errors    prometheus.Counter
	active    prometheus.Gauge
	cache     *prometheus.CounterVec
	cacheSize prometheus.Counter
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	p := &PrometheusHooks{
		renders: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sparklines_render_duration_seconds",
			Help:    "Time spent rendering one sparkline into all requested formats.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparklines_render_errors_total",
			Help: "Renders that ended in the error state.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sparklines_renders_in_flight",
			Help: "Renders currently running.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sparklines_cache_events_total",
			Help: "Artifact cache lookups and writes.",
		}, []string{"event", "key_type"}),
		cacheSize: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparklines_cache_written_bytes_total",
			Help: "Bytes written to the artifact cache.",
		}),
	}
	reg.MustRegister(p.renders, p.errors, p.active, p.cache, p.cacheSize)
	return p
}

func (p *PrometheusHooks) OnRenderStart(context.Context, string) {
	p.active.Inc()
}

func (p *PrometheusHooks) OnRenderComplete(_ context.Context, _ string, _ []string, d time.Duration, err error) {
	p.active.Dec()
	p.renders.Observe(d.Seconds())
	if err != nil {
		p.errors.Inc()
	}
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cache.WithLabelValues("hit", keyType).Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cache.WithLabelValues("miss", keyType).Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cache.WithLabelValues("set", keyType).Inc()
	p.cacheSize.Add(float64(size))
}

var (
	_ RenderHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
)
