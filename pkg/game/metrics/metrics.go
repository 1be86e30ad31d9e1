// Package metrics collects Prometheus metrics about dungeon generation.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Generation results used as the "result" label
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics holds the generation collectors in a private registry, so that
// several generators in one process (tests, tools) never collide on the
// global one.
type Metrics struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	retries     prometheus.Counter
	bridges     prometheus.Counter
	stairs      prometheus.Counter
	cells       prometheus.Histogram
	duration    prometheus.Histogram
}

// New creates and registers the generation collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blobdungeon",
			Name:      "generations_total",
			Help:      "Dungeon generation runs by result.",
		}, []string{"result"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blobdungeon",
			Name:      "generation_retries_total",
			Help:      "Attempts discarded because stairs or a bridge could not be placed.",
		}),
		bridges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blobdungeon",
			Name:      "bridge_points_total",
			Help:      "Times carving resumed from a bridge point after the frontier died out.",
		}),
		stairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blobdungeon",
			Name:      "stairs_placed_total",
			Help:      "Stairs pairs placed between levels.",
		}),
		cells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blobdungeon",
			Name:      "cells_carved",
			Help:      "Populated cells per generated dungeon.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blobdungeon",
			Name:      "generation_seconds",
			Help:      "Wall time of a generation run, retries included.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	m.registry.MustRegister(m.generations, m.retries, m.bridges, m.stairs, m.cells, m.duration)
	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveGeneration records the outcome of a generation run
func (m *Metrics) ObserveGeneration(result string, cells int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())
	if result == ResultOK {
		m.cells.Observe(float64(cells))
	}
}

// Retry records a discarded attempt
func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

// Bridge records a bridge point
func (m *Metrics) Bridge() {
	if m == nil {
		return
	}
	m.bridges.Inc()
}

// Stairs records a placed stairs pair
func (m *Metrics) Stairs() {
	if m == nil {
		return
	}
	m.stairs.Inc()
}

// Dump writes every collector in the Prometheus text exposition format
func (m *Metrics) Dump(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, f := range families {
		if _, err := expfmt.MetricFamilyToText(w, f); err != nil {
			return err
		}
	}
	return nil
}
