// Package render converts circuit DAGs to Graphviz DOT and renders them
// with the embedded Graphviz engine.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// ToDOT converts a circuit DAG to Graphviz DOT format. Nodes are labeled
// with the gate and its operands; edges follow the dependency direction.
// Two-qubit gates are drawn with a doubled border so routing-relevant
// gates stand out.
func ToDOT(d *ir.DAG) (string, error) {
	order, err := d.TopologicalOrder()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for _, id := range order {
		g, err := d.Gate(id)
		if err != nil {
			return "", err
		}
		attrs := fmt.Sprintf("label=%q", g.String())
		if g.NumQubits() == 2 {
			attrs += ", peripheries=2"
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, id := range order {
		succs, err := d.Successors(id)
		if err != nil {
			return "", err
		}
		for _, succ := range succs {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", id, succ)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
