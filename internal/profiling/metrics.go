package profiling

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slicecraft"

// Edit kinds used as the "kind" label of the edits counter
const (
	EditPlace = "place"
	EditBreak = "break"
)

// Metrics holds the simulation's Prometheus collectors on a private registry,
// so several sessions (and tests) never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	StepDuration    prometheus.Histogram
	Frames          prometheus.Counter
	Respawns        prometheus.Counter
	Edits           *prometheus.CounterVec
	GeneratedBlocks prometheus.Gauge
	GenerateSeconds prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one simulation tick.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Simulation ticks run.",
		}),
		Respawns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "respawns_total",
			Help:      "Times the player fell out of the world and was reset to spawn.",
		}),
		Edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Block edits applied, by kind.",
		}, []string{"kind"}),
		GeneratedBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_blocks",
			Help:      "Non-air blocks in the last generated or loaded world.",
		}),
		GenerateSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Wall time of world generation.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.StepDuration,
		m.Frames,
		m.Respawns,
		m.Edits,
		m.GeneratedBlocks,
		m.GenerateSeconds,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveStep records one tick that took d
func (m *Metrics) ObserveStep(d time.Duration) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	m.StepDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveGenerate(d time.Duration, blocks int) {
	if m == nil {
		return
	}
	m.GenerateSeconds.Observe(d.Seconds())
	m.GeneratedBlocks.Set(float64(blocks))
}

func (m *Metrics) IncRespawn() {
	if m == nil {
		return
	}
	m.Respawns.Inc()
}

func (m *Metrics) IncEdit(kind string) {
	if m == nil {
		return
	}
	m.Edits.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry for gathering in tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
