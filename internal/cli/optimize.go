package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/pipeline"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qasm"
)

// newOptimizeCmd creates the optimize command.
func newOptimizeCmd() *cobra.Command {
	var (
		output     string
		configPath string
		passNames  []string
		tolerance  float64
		showStats  bool
	)

	cmd := &cobra.Command{
		Use:   "optimize [circuit.qasm]",
		Short: "Run the optimization pass pipeline over a circuit",
		Long: `Run the optimization pass pipeline over a circuit.

The optimize command parses an OpenQASM file, runs the configured passes
(default: commutation, cancellation, rotation-merge, identity-elimination)
over its dependency graph, and writes the optimized circuit back as
OpenQASM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}
			if len(passNames) > 0 {
				opts.Passes = passNames
			}
			if tolerance > 0 {
				opts.Tolerance = tolerance
			}
			return runOptimize(cmd, args[0], opts, output, showStats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with pipeline options")
	cmd.Flags().StringSliceVar(&passNames, "passes", nil, "passes to run, in order (commutation, cancellation, rotation-merge, identity-elimination)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "identity-elimination angle tolerance")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print per-pass statistics")

	return cmd
}

func runOptimize(cmd *cobra.Command, input string, opts pipeline.Options, output string, showStats bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner := pipeline.NewRunner(logger)
	prog := newProgress(logger)

	circuit, err := runner.Parse(ctx, string(source))
	if err != nil {
		return err
	}

	optimized, stats, err := runner.Optimize(ctx, circuit, opts)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	prog.done(fmt.Sprintf("Optimized %d gates to %d", stats.InitialGateCount, stats.FinalGateCount))

	if err := writeCircuit(optimized, output); err != nil {
		return err
	}

	printSuccess("Optimized %s", input)
	if showStats {
		printPassStats(stats)
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// loadOptions loads pipeline options from a config path, or defaults.
func loadOptions(path string) (pipeline.Options, error) {
	if path == "" {
		return pipeline.Options{}, nil
	}
	return pipeline.LoadOptions(path)
}

// writeCircuit emits a circuit as OpenQASM to a file or stdout.
func writeCircuit(c *ir.Circuit, output string) error {
	if output == "" {
		fmt.Print(qasm.Format(c))
		return nil
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()
	return qasm.Write(f, c)
}
