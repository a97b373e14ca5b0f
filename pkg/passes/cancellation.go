package passes

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// CancellationPass removes adjacent inverse gate pairs.
//
// A pair (u, v) is removed when v is a direct successor of u, both act on
// the same ordered operand tuple, and u·v equals the identity (hermitian
// kinds against an equal kind, S against Sdg, T against Tdg). Each node
// cancels at most once per run.
type CancellationPass struct {
	stats Statistics
}

// NewCancellationPass creates a cancellation pass.
func NewCancellationPass() *CancellationPass { return &CancellationPass{} }

// Name returns "CancellationPass".
func (p *CancellationPass) Name() string { return "CancellationPass" }

// Statistics returns the counters from the most recent Run.
func (p *CancellationPass) Statistics() Statistics { return p.stats }

// Run sweeps the DAG once in topological order, marking cancelling pairs,
// then removes the marked nodes in reverse topological order so edge
// contraction always sees a consistent graph.
func (p *CancellationPass) Run(d *ir.DAG) error {
	p.stats = Statistics{}

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
			if gate.SameOperands(succGate) && cancellingPair(gate, succGate) {
				remove[id] = true
				remove[succ] = true
				break
			}
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		if remove[order[i]] {
			if err := d.RemoveNode(order[i]); err != nil {
				return err
			}
		}
	}

	p.stats.GatesRemoved = len(remove)
	return nil
}
