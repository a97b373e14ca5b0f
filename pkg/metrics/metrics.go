// Package metrics provides a Prometheus-backed implementation of the
// observability hooks.
//
// The compiler core never serves metrics itself; callers create a Registry
// against their own prometheus.Registerer, install it via the
// observability package, and expose the registry however they like.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewRegistry(reg)
//	observability.SetPipelineHooks(m)
//	observability.SetPassHooks(m)
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/observability"
)

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.PassHooks     = (*Registry)(nil)
)

// Registry holds the compiler's metric collectors. It implements both
// observability.PipelineHooks and observability.PassHooks.
type Registry struct {
	registry prometheus.Registerer

	RunsTotal     *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec

	GatesRemoved *prometheus.CounterVec
	GatesAdded   *prometheus.CounterVec

	SwapsInserted prometheus.Counter
	RoutedDepth   prometheus.Histogram
}

// NewRegistry creates collectors registered against reg. Passing
// prometheus.DefaultRegisterer wires the process-global registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{registry: reg}

	r.RunsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qopt_stage_runs_total",
			Help: "Total pipeline stage executions",
		},
		[]string{"stage"},
	)

	r.StageDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qopt_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)

	r.StageErrors = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qopt_stage_errors_total",
			Help: "Total pipeline stage failures",
		},
		[]string{"stage"},
	)

	r.GatesRemoved = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qopt_gates_removed_total",
			Help: "Gates removed per optimization pass",
		},
		[]string{"pass"},
	)

	r.GatesAdded = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qopt_gates_added_total",
			Help: "Gates added per optimization pass",
		},
		[]string{"pass"},
	)

	r.SwapsInserted = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "qopt_swaps_inserted_total",
			Help: "SWAP gates inserted by routing",
		},
	)

	r.RoutedDepth = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qopt_routed_depth",
			Help:    "Depth of routed circuits",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	return r
}

func (r *Registry) recordStage(stage string, duration time.Duration, err error) {
	r.RunsTotal.WithLabelValues(stage).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		r.StageErrors.WithLabelValues(stage).Inc()
	}
}

// OnParseStart implements observability.PipelineHooks.
func (r *Registry) OnParseStart(context.Context, string) {}

// OnParseComplete implements observability.PipelineHooks.
func (r *Registry) OnParseComplete(_ context.Context, _, _ int, duration time.Duration, err error) {
	r.recordStage("parse", duration, err)
}

// OnOptimizeStart implements observability.PipelineHooks.
func (r *Registry) OnOptimizeStart(context.Context, int) {}

// OnOptimizeComplete implements observability.PipelineHooks.
func (r *Registry) OnOptimizeComplete(_ context.Context, _, _ int, duration time.Duration, err error) {
	r.recordStage("optimize", duration, err)
}

// OnRouteStart implements observability.PipelineHooks.
func (r *Registry) OnRouteStart(context.Context, int, int) {}

// OnRouteComplete implements observability.PipelineHooks.
func (r *Registry) OnRouteComplete(_ context.Context, swaps, finalDepth int, duration time.Duration, err error) {
	r.recordStage("route", duration, err)
	if err == nil {
		r.SwapsInserted.Add(float64(swaps))
		r.RoutedDepth.Observe(float64(finalDepth))
	}
}

// OnPassComplete implements observability.PassHooks.
func (r *Registry) OnPassComplete(_ context.Context, name string, removed, added int) {
	r.GatesRemoved.WithLabelValues(name).Add(float64(removed))
	r.GatesAdded.WithLabelValues(name).Add(float64(added))
}
