package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	runs         *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	runSteps     *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	cacheEvents  *prometheus.CounterVec
	cacheBytes   prometheus.Counter
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algotrace_runs_total",
			Help: "Algorithm runs by algorithm and result",
		}, []string{"algorithm", "result"}),
		runDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algotrace_run_duration_seconds",
			Help:    "Algorithm run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		}, []string{"algorithm"}),
		runSteps: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algotrace_run_steps",
			Help:    "Steps recorded per run",
			Buckets: prometheus.ExponentialBuckets(4, 4, 8),
		}, []string{"algorithm"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "algotrace_runs_in_flight",
			Help: "Algorithm runs currently executing",
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algotrace_cache_events_total",
			Help: "Cache lookups and writes by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "algotrace_cache_written_bytes_total",
			Help: "Bytes written to the execution cache",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algotrace_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algotrace_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (p *Prometheus) OnRunStart(ctx context.Context, algorithm string, nodes, edges int) {
	p.inFlight.Inc()
}

func (p *Prometheus) OnRunComplete(ctx context.Context, algorithm string, steps int, d time.Duration, err error) {
	p.inFlight.Dec()
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.runs.WithLabelValues(algorithm, result).Inc()
	if err == nil {
		p.runDuration.WithLabelValues(algorithm).Observe(d.Seconds())
		p.runSteps.WithLabelValues(algorithm).Observe(float64(steps))
	}
}

func (p *Prometheus) OnCacheHit(ctx context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(ctx context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(ctx context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ RunHooks   = (*Prometheus)(nil)
	_ CacheHooks = (*Prometheus)(nil)
	_ HTTPHooks  = (*Prometheus)(nil)
)
