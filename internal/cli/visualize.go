package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/pipeline"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/render"
)

// newVisualizeCmd creates the visualize command.
func newVisualizeCmd() *cobra.Command {
	var (
		format    string
		output    string
		optimized bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [circuit.qasm]",
		Short: "Render the circuit dependency graph",
		Long: `Render the circuit dependency graph.

The visualize command parses an OpenQASM file, builds its gate dependency
DAG, and renders it as Graphviz DOT text, SVG, or PNG. With --optimized
the pass pipeline runs first so the rendered graph shows the circuit the
router would see.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "dot", "svg", "png":
			default:
				return fmt.Errorf("invalid format %q (must be dot, svg, or png)", format)
			}
			return runVisualize(cmd, args[0], format, output, optimized)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().BoolVar(&optimized, "optimized", false, "run the pass pipeline before rendering")

	return cmd
}

func runVisualize(cmd *cobra.Command, input, format, output string, optimized bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner := pipeline.NewRunner(logger)
	circuit, err := runner.Parse(ctx, string(source))
	if err != nil {
		return err
	}

	if optimized {
		opts := pipeline.Options{Logger: logger}
		circuit, _, err = runner.Optimize(ctx, circuit, opts)
		if err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
	}

	dot, err := render.ToDOT(ir.FromCircuit(circuit))
	if err != nil {
		return fmt.Errorf("build DOT: %w", err)
	}

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = render.RenderSVG(dot)
		spinner.Stop()
	case "png":
		spinner := newSpinnerWithContext(ctx, "Rendering PNG...")
		spinner.Start()
		data, err = render.RenderPNG(dot)
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".qasm") + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", input)
	printFile(output)
	return nil
}
