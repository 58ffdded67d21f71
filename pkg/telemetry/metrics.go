package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/razen-core/rynex-sub002/pkg/reconcile"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rynex").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration in seconds.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rynex",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for the reactive core.
// It implements rynex.Instrument and reconcile.Observer.
type Metrics struct {
	flushesTotal  prometheus.Counter
	flushDuration prometheus.Histogram
	effectRuns    prometheus.Counter
	effectErrors  prometheus.Counter
	patchOps      *prometheus.CounterVec

	flushStart time.Time
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of flush cycles.",
			ConstLabels: cfg.ConstLabels,
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Duration of flush cycles in seconds.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect body executions during flushes.",
			ConstLabels: cfg.ConstLabels,
		}),
		effectErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_errors_total",
			Help:        "Total number of recovered effect panics and flush overruns.",
			ConstLabels: cfg.ConstLabels,
		}),
		patchOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "patch_ops_total",
			Help:        "Total reconciler mutations applied, by operation.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op"}),
	}
}

// FlushStarted implements rynex.Instrument.
func (m *Metrics) FlushStarted() {
	m.flushStart = time.Now()
}

// FlushCompleted implements rynex.Instrument.
func (m *Metrics) FlushCompleted(effectsRun int) {
	m.flushesTotal.Inc()
	if !m.flushStart.IsZero() {
		m.flushDuration.Observe(time.Since(m.flushStart).Seconds())
	}
}

// EffectRan implements rynex.Instrument.
func (m *Metrics) EffectRan() {
	m.effectRuns.Inc()
}

// EffectFailed implements rynex.Instrument.
func (m *Metrics) EffectFailed() {
	m.effectErrors.Inc()
}

// OpApplied implements reconcile.Observer.
func (m *Metrics) OpApplied(op reconcile.Op) {
	m.patchOps.WithLabelValues(op.String()).Inc()
}
