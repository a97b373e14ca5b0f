package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/pipeline"
)

// newRouteCmd creates the route command.
func newRouteCmd() *cobra.Command {
	var (
		output         string
		configPath     string
		topologyStr    string
		skipOptimize   bool
		lookahead      int
		decay          float64
		extendedWeight float64
	)

	cmd := &cobra.Command{
		Use:   "route [circuit.qasm]",
		Short: "Map a circuit onto a device topology with SABRE",
		Long: `Map a circuit onto a device topology with SABRE.

The route command parses an OpenQASM file, optionally optimizes it, and
inserts SWAP gates so that every two-qubit gate lands on physically
coupled qubits of the chosen topology. The routed circuit is emitted over
the physical register.

Topologies are given as kind:parameters, for example linear:4, ring:6,
grid:3x3, or heavy_hex:2.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}
			if topologyStr != "" {
				spec, err := pipeline.ParseTopologySpec(topologyStr)
				if err != nil {
					return err
				}
				opts.Topology = spec
			}
			if lookahead > 0 {
				opts.Router.LookaheadDepth = lookahead
			}
			if decay > 0 {
				opts.Router.DecayFactor = decay
			}
			if extendedWeight > 0 {
				opts.Router.ExtendedSetWeight = extendedWeight
			}
			if opts.Topology.Kind == "" {
				return fmt.Errorf("a topology is required (--topology or config file)")
			}
			return runRoute(cmd, args[0], opts, output, skipOptimize)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with pipeline options")
	cmd.Flags().StringVarP(&topologyStr, "topology", "t", "", "target topology (linear:N, ring:N, grid:RxC, heavy_hex:D)")
	cmd.Flags().BoolVar(&skipOptimize, "no-optimize", false, "route the circuit as-is without optimization")
	cmd.Flags().IntVar(&lookahead, "lookahead", 0, "SABRE extended-set size cap")
	cmd.Flags().Float64Var(&decay, "decay", 0, "SABRE decay factor")
	cmd.Flags().Float64Var(&extendedWeight, "extended-weight", 0, "SABRE extended-set weight")

	return cmd
}

func runRoute(cmd *cobra.Command, input string, opts pipeline.Options, output string, skipOptimize bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner := pipeline.NewRunner(logger)

	circuit, err := runner.Parse(ctx, string(source))
	if err != nil {
		return err
	}

	toRoute := circuit
	if !skipOptimize {
		optimized, _, err := runner.Optimize(ctx, circuit, opts)
		if err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
		toRoute = optimized
	}

	result, err := runner.Route(ctx, toRoute, opts)
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}

	if err := writeCircuit(result.RoutedCircuit, output); err != nil {
		return err
	}

	printSuccess("Routed %s onto %s", input, opts.Topology.Kind)
	printKeyValue("swaps", fmt.Sprintf("%d", result.SwapsInserted))
	printKeyValue("depth", fmt.Sprintf("%d → %d", result.OriginalDepth, result.FinalDepth))
	printKeyValue("final mapping", fmt.Sprintf("%v", result.FinalMapping))
	if output != "" {
		printFile(output)
	}
	return nil
}
