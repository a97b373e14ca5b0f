package passes

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// CommutationPass reorders commuting gates so that a subsequent
// cancellation or rotation-merge pass finds more pairs. It neither adds
// nor removes gates.
//
// Reordering two overlapping gates cannot be expressed as edge-flipping in
// the qubit-wire DAG, so the pass rewrites the linearized circuit instead:
// it walks the topological order once and moves a gate earlier past
// commuting neighbors when that lands it directly after a gate it can
// cancel or merge with, then rebuilds the DAG. A gate with no such partner
// stays where it is.
//
// Commutation rules: disjoint supports always commute; equal (kind,
// operands) commute; diagonal gates (Z, S, Sdg, T, Tdg, Rz, CZ) commute
// with each other; a Z-like single-qubit gate commutes with a CX on its
// control; X commutes with a CX on its target.
type CommutationPass struct {
	stats Statistics
}

// NewCommutationPass creates a commutation pass.
func NewCommutationPass() *CommutationPass { return &CommutationPass{} }

// Name returns "CommutationPass".
func (p *CommutationPass) Name() string { return "CommutationPass" }

// Statistics returns the counters from the most recent Run. The pass only
// reorders, so both counters are always zero.
func (p *CommutationPass) Statistics() Statistics { return p.stats }

// Run linearizes the DAG, performs the single reordering sweep, and
// rebuilds the DAG when anything moved.
func (p *CommutationPass) Run(d *ir.DAG) error {
	p.stats = Statistics{}

	order, err := d.TopologicalOrder()
	if err != nil {
		return err
	}
	gates := make([]ir.Gate, len(order))
	for i, id := range order {
		g, err := d.Gate(id)
		if err != nil {
			return err
		}
		gates[i] = g
	}

	moved := false
	for j := 1; j < len(gates); j++ {
		if target := commutedPosition(gates, j); target >= 0 {
			g := gates[j]
			copy(gates[target+1:j+1], gates[target:j])
			gates[target] = g
			moved = true
		}
	}
	if !moved {
		return nil
	}

	d.Reset()
	for _, g := range gates {
		if _, err := d.AddGate(g.WithID(ir.InvalidGateID)); err != nil {
			return err
		}
	}
	return nil
}

// commutedPosition scans backward from position j through gates that
// commute with gates[j]. If the scan reaches a gate that gates[j] can
// cancel or merge with, it returns the slot directly after that partner;
// otherwise -1. Every adjacent transposition on the way commutes, so the
// move preserves the circuit's semantics.
func commutedPosition(gates []ir.Gate, j int) int {
	g := gates[j]
	for i := j; i > 0; i-- {
		prev := gates[i-1]
		if couldCancel(prev, g) || couldMerge(prev, g) {
			if i == j {
				// Already adjacent to its partner; nothing to do.
				return -1
			}
			return i
		}
		if !commutes(prev, g) {
			return -1
		}
	}
	return -1
}
