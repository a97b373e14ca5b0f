// Package pipeline provides the core compilation pipeline of the
// optimizer.
//
// This package implements the complete parse → optimize → route flow used
// by the CLI and any embedding program. Centralizing it keeps behavior
// consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: lex and parse OpenQASM text into a Circuit
//  2. Optimize: run the pass pipeline over the circuit DAG
//  3. Route: map the circuit onto a device topology with SABRE
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Topology: pipeline.TopologySpec{Kind: "linear", Size: 4},
//	}
//	result, err := runner.Execute(ctx, source, opts)
package pipeline

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/passes"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/route"
)

// Pass name constants accepted in Options.Passes.
const (
	PassCommutation         = "commutation"
	PassCancellation        = "cancellation"
	PassRotationMerge       = "rotation-merge"
	PassIdentityElimination = "identity-elimination"
)

// DefaultPasses is the standard pipeline order.
var DefaultPasses = []string{
	PassCommutation,
	PassCancellation,
	PassRotationMerge,
	PassIdentityElimination,
}

// ValidPasses is the set of recognized pass names.
var ValidPasses = map[string]bool{
	PassCommutation:         true,
	PassCancellation:        true,
	PassRotationMerge:       true,
	PassIdentityElimination: true,
}

// TopologySpec selects a device topology. An empty Kind disables routing.
type TopologySpec struct {
	Kind     string `toml:"kind"`     // linear, ring, grid, heavy_hex
	Size     int    `toml:"size"`     // linear, ring
	Rows     int    `toml:"rows"`     // grid
	Cols     int    `toml:"cols"`     // grid
	Distance int    `toml:"distance"` // heavy_hex
}

// Build constructs the described topology.
func (s TopologySpec) Build() (*route.Topology, error) {
	switch s.Kind {
	case "linear":
		return route.Linear(s.Size)
	case "ring":
		return route.Ring(s.Size)
	case "grid":
		return route.Grid(s.Rows, s.Cols)
	case "heavy_hex", "heavyhex":
		return route.HeavyHex(s.Distance)
	case "":
		return nil, qopterr.New(qopterr.CodeInvalidConfig, "topology kind is empty")
	default:
		return nil, qopterr.New(qopterr.CodeInvalidConfig,
			"unknown topology kind %q (must be linear, ring, grid, or heavy_hex)", s.Kind)
	}
}

// ParseTopologySpec parses the CLI shorthand for topologies:
// "linear:4", "ring:6", "grid:3x3", "heavy_hex:2".
func ParseTopologySpec(s string) (TopologySpec, error) {
	kind, arg, ok := strings.Cut(s, ":")
	if !ok || arg == "" {
		return TopologySpec{}, invalidTopologySpec(s)
	}
	switch kind {
	case "linear", "ring":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return TopologySpec{}, invalidTopologySpec(s)
		}
		return TopologySpec{Kind: kind, Size: n}, nil
	case "grid":
		rs, cs, ok := strings.Cut(arg, "x")
		if !ok {
			return TopologySpec{}, invalidTopologySpec(s)
		}
		rows, err1 := strconv.Atoi(rs)
		cols, err2 := strconv.Atoi(cs)
		if err1 != nil || err2 != nil {
			return TopologySpec{}, invalidTopologySpec(s)
		}
		return TopologySpec{Kind: "grid", Rows: rows, Cols: cols}, nil
	case "heavy_hex", "heavyhex":
		d, err := strconv.Atoi(arg)
		if err != nil {
			return TopologySpec{}, invalidTopologySpec(s)
		}
		return TopologySpec{Kind: "heavy_hex", Distance: d}, nil
	default:
		return TopologySpec{}, invalidTopologySpec(s)
	}
}

func invalidTopologySpec(s string) error {
	return qopterr.New(qopterr.CodeInvalidConfig,
		"invalid topology %q (expected linear:N, ring:N, grid:RxC, or heavy_hex:D)", s)
}

// RouterOptions configures the SABRE router. Zero values select the
// defaults; changing them never affects termination.
type RouterOptions struct {
	LookaheadDepth    int     `toml:"lookahead_depth"`
	DecayFactor       float64 `toml:"decay_factor"`
	ExtendedSetWeight float64 `toml:"extended_set_weight"`
}

// Options contains all configuration for the compilation pipeline.
type Options struct {
	// Passes lists the optimization passes to run, in order. Empty
	// selects DefaultPasses.
	Passes []string `toml:"passes"`

	// Tolerance is the identity-elimination angle tolerance. Zero
	// selects the pass default.
	Tolerance float64 `toml:"tolerance"`

	// Topology selects the routing target. An empty Kind skips routing.
	Topology TopologySpec `toml:"topology"`

	// Router configures SABRE.
	Router RouterOptions `toml:"router"`

	// Logger receives stage progress. Runner.Execute fills a nil Logger
	// with the runner's logger; ValidateAndSetDefaults replaces a still
	// nil Logger with one that discards.
	Logger *log.Logger `toml:"-"`

	validated bool
}

// LoadOptions reads pipeline options from a TOML file.
func LoadOptions(path string) (Options, error) {
	var opts Options
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, qopterr.Wrap(qopterr.CodeInvalidConfig, err, "load config %s", path)
	}
	return opts, nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Passes) == 0 {
		o.Passes = DefaultPasses
	}
	for _, name := range o.Passes {
		if !ValidPasses[name] {
			return qopterr.New(qopterr.CodeInvalidConfig, "unknown pass %q", name)
		}
	}
	if o.Tolerance < 0 {
		return qopterr.New(qopterr.CodeInvalidConfig, "tolerance must be non-negative, got %g", o.Tolerance)
	}
	if o.Tolerance == 0 {
		o.Tolerance = passes.DefaultTolerance
	}
	if o.Router.LookaheadDepth == 0 {
		o.Router.LookaheadDepth = route.DefaultLookaheadDepth
	}
	if o.Router.DecayFactor == 0 {
		o.Router.DecayFactor = route.DefaultDecayFactor
	}
	if o.Router.ExtendedSetWeight == 0 {
		o.Router.ExtendedSetWeight = route.DefaultExtendedSetWeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// WantsRouting reports whether a topology was configured.
func (o *Options) WantsRouting() bool { return o.Topology.Kind != "" }

// buildManager assembles the pass manager described by the options.
func (o *Options) buildManager() (*passes.Manager, error) {
	m := passes.NewManager()
	for _, name := range o.Passes {
		switch name {
		case PassCommutation:
			m.AddPass(passes.NewCommutationPass())
		case PassCancellation:
			m.AddPass(passes.NewCancellationPass())
		case PassRotationMerge:
			m.AddPass(passes.NewRotationMergePass())
		case PassIdentityElimination:
			m.AddPass(passes.NewIdentityEliminationPassWithTolerance(o.Tolerance))
		default:
			return nil, qopterr.New(qopterr.CodeInvalidConfig, "unknown pass %q", name)
		}
	}
	return m, nil
}

// buildRouter assembles the configured SABRE router.
func (o *Options) buildRouter() *route.SabreRouter {
	return &route.SabreRouter{
		LookaheadDepth:    o.Router.LookaheadDepth,
		DecayFactor:       o.Router.DecayFactor,
		ExtendedSetWeight: o.Router.ExtendedSetWeight,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this compilation run.
	RunID string

	// Input is the parsed circuit.
	Input *ir.Circuit

	// Optimized is the circuit after the pass pipeline.
	Optimized *ir.Circuit

	// Routing is the routing outcome, or nil when routing was skipped.
	Routing *route.RoutingResult

	// PassStats is the aggregate pass-pipeline statistics.
	PassStats passes.PassStatistics

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution timing.
type Stats struct {
	ParseTime    time.Duration
	OptimizeTime time.Duration
	RouteTime    time.Duration
}
