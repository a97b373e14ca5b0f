package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/observability"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/passes"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qasm"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/route"
)

// Runner executes pipeline stages with logging and observability hooks.
//
// The Runner is stateless except for its logger; it does not retain
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs parse → optimize → route (route only when a topology is
// configured) and returns the combined result.
func (r *Runner) Execute(ctx context.Context, source string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}

	parseStart := time.Now()
	circuit, err := r.Parse(ctx, source)
	result.Stats.ParseTime = time.Since(parseStart)
	if err != nil {
		return nil, err
	}
	result.Input = circuit

	opts.Logger.Info("parsed circuit",
		"run", result.RunID,
		"qubits", circuit.NumQubits(),
		"gates", circuit.NumGates(),
		"duration", result.Stats.ParseTime)

	optimizeStart := time.Now()
	optimized, stats, err := r.Optimize(ctx, circuit, opts)
	result.Stats.OptimizeTime = time.Since(optimizeStart)
	if err != nil {
		return nil, err
	}
	result.Optimized = optimized
	result.PassStats = stats

	opts.Logger.Info("optimized circuit",
		"run", result.RunID,
		"gates_before", stats.InitialGateCount,
		"gates_after", stats.FinalGateCount,
		"duration", result.Stats.OptimizeTime)

	if opts.WantsRouting() {
		routeStart := time.Now()
		routing, err := r.Route(ctx, optimized, opts)
		result.Stats.RouteTime = time.Since(routeStart)
		if err != nil {
			return nil, err
		}
		result.Routing = routing

		opts.Logger.Info("routed circuit",
			"run", result.RunID,
			"swaps", routing.SwapsInserted,
			"depth", routing.FinalDepth,
			"duration", result.Stats.RouteTime)
	}

	return result, nil
}

// Parse lexes and parses OpenQASM source into a circuit.
func (r *Runner) Parse(ctx context.Context, source string) (*ir.Circuit, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)

	start := time.Now()
	circuit, err := qasm.Parse(source)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(start), err)
		return nil, qopterr.Wrap(qopterr.CodeParse, err, "parse circuit")
	}
	hooks.OnParseComplete(ctx, circuit.NumQubits(), circuit.NumGates(), time.Since(start), nil)
	return circuit, nil
}

// Optimize runs the configured pass pipeline and returns the optimized
// circuit plus the aggregate statistics.
func (r *Runner) Optimize(ctx context.Context, circuit *ir.Circuit, opts Options) (*ir.Circuit, passes.PassStatistics, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, passes.PassStatistics{}, err
	}

	manager, err := opts.buildManager()
	if err != nil {
		return nil, passes.PassStatistics{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnOptimizeStart(ctx, circuit.NumGates())

	start := time.Now()
	optimized, err := manager.RunCircuit(circuit)
	stats := manager.Statistics()
	hooks.OnOptimizeComplete(ctx, stats.InitialGateCount, stats.FinalGateCount, time.Since(start), err)
	if err != nil {
		return nil, passes.PassStatistics{}, err
	}

	passHooks := observability.Pass()
	for _, p := range stats.PerPass {
		passHooks.OnPassComplete(ctx, p.Name, p.GatesRemoved, p.GatesAdded)
	}

	return optimized, stats, nil
}

// Route maps the circuit onto the configured topology with SABRE.
func (r *Runner) Route(ctx context.Context, circuit *ir.Circuit, opts Options) (*route.RoutingResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	topo, err := opts.Topology.Build()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRouteStart(ctx, circuit.NumGates(), topo.NumQubits())

	start := time.Now()
	result, err := opts.buildRouter().Route(circuit, topo)
	if err != nil {
		hooks.OnRouteComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnRouteComplete(ctx, result.SwapsInserted, result.FinalDepth, time.Since(start), nil)
	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
