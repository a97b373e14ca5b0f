// Package pkg provides the core libraries of the quantum circuit
// optimizer.
//
// # Overview
//
// The optimizer ingests a textual quantum program, lowers it into a gate
// IR, shrinks it with algebraic peephole passes, and remaps it onto a
// device whose qubit pairs have limited physical connectivity. The pkg
// directory is organized into:
//
//  1. [ir] - Gate model, linear Circuit, and dependency-graph DAG
//  2. [passes] - Optimization passes and the pass manager
//  3. [route] - Device topologies and the SABRE router
//  4. [qasm] - OpenQASM front-end (lexer, parser, printer)
//  5. [pipeline] - Orchestration (parse → optimize → route)
//
// # Architecture
//
// The typical data flow:
//
//	OpenQASM text
//	     ↓
//	[qasm] package (lex + parse)
//	     ↓
//	[ir] package (Circuit → DAG)
//	     ↓
//	[passes] package (cancellation, merge, elimination, commutation)
//	     ↓
//	[route] package (SABRE onto a Topology)
//	     ↓
//	routed physical circuit
//
// # Quick Start
//
// Optimize and route a circuit:
//
//	circuit, _ := qasm.Parse(source)
//	optimized, _ := passes.Default().RunCircuit(circuit)
//	topo, _ := route.Linear(4)
//	result, _ := route.NewSabreRouter().Route(optimized, topo)
//
// Supporting packages: [qopterr] for the structured error taxonomy,
// [render] for Graphviz DOT/SVG/PNG output of circuit DAGs,
// [observability] for instrumentation hooks, and [metrics] for the
// Prometheus-backed hook implementation.
//
// [ir]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir
// [passes]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/passes
// [route]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/route
// [qasm]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qasm
// [pipeline]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/pipeline
// [qopterr]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr
// [render]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/render
// [observability]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/metrics
package pkg
