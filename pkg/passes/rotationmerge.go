package passes

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// RotationMergePass folds adjacent same-axis rotations on the same qubit:
// Rx(α)·Rx(β) becomes Rx(α+β), likewise for Ry and Rz. Merged angles are
// normalized into (-π, π]. The pass iterates to a fixed point so chains of
// rotations collapse into one gate.
//
// It does not merge across non-rotation barriers and does not conjugate
// axes through other gates.
type RotationMergePass struct {
	stats Statistics
}

// NewRotationMergePass creates a rotation-merge pass.
func NewRotationMergePass() *RotationMergePass { return &RotationMergePass{} }

// Name returns "RotationMergePass".
func (p *RotationMergePass) Name() string { return "RotationMergePass" }

// Statistics returns the counters from the most recent Run.
func (p *RotationMergePass) Statistics() Statistics { return p.stats }

// Run repeatedly walks the topological order, folding each rotation into a
// directly succeeding rotation of the same kind and qubit, until an
// iteration performs no merge.
func (p *RotationMergePass) Run(d *ir.DAG) error {
	p.stats = Statistics{}

	for {
		order, err := d.TopologicalOrder()
		if err != nil {
			return err
		}

		remove := make(map[ir.GateID]bool)
		for _, id := range order {
			if remove[id] {
				continue
			}
			gate, err := d.Gate(id)
			if err != nil {
				return err
			}
			if !gate.Kind().Parameterized() {
				continue
			}
			succs, err := d.Successors(id)
			if err != nil {
				return err
			}
			for _, succ := range succs {
				if remove[succ] {
					continue
				}
				succGate, err := d.Gate(succ)
				if err != nil {
					return err
				}
				if !couldMerge(gate, succGate) {
					continue
				}
				merged := normalizeAngle(gate.Angle() + succGate.Angle())
				if err := d.SetAngle(id, merged); err != nil {
					return err
				}
				remove[succ] = true
				p.stats.GatesRemoved++
				break
			}
		}

		if len(remove) == 0 {
			return nil
		}
		for i := len(order) - 1; i >= 0; i-- {
			if remove[order[i]] {
				if err := d.RemoveNode(order[i]); err != nil {
					return err
				}
			}
		}
	}
}
