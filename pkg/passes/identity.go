package passes

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// DefaultTolerance is the angle tolerance below which a rotation counts as
// the identity.
const DefaultTolerance = 1e-10

// IdentityEliminationPass deletes parameterized rotations whose angle is
// 0 mod 2π within a configurable tolerance.
type IdentityEliminationPass struct {
	tolerance float64
	stats     Statistics
}

// NewIdentityEliminationPass creates the pass with DefaultTolerance.
func NewIdentityEliminationPass() *IdentityEliminationPass {
	return &IdentityEliminationPass{tolerance: DefaultTolerance}
}

// NewIdentityEliminationPassWithTolerance creates the pass with a custom
// tolerance.
func NewIdentityEliminationPassWithTolerance(tolerance float64) *IdentityEliminationPass {
	return &IdentityEliminationPass{tolerance: tolerance}
}

// Name returns "IdentityEliminationPass".
func (p *IdentityEliminationPass) Name() string { return "IdentityEliminationPass" }

// Statistics returns the counters from the most recent Run.
func (p *IdentityEliminationPass) Statistics() Statistics { return p.stats }

// Run collects identity rotations in topological order, then removes them.
func (p *IdentityEliminationPass) Run(d *ir.DAG) error {
	p.stats = Statistics{}

	order, err := d.TopologicalOrder()
	if err != nil {
		return err
	}

	var remove []ir.GateID
	for _, id := range order {
		gate, err := d.Gate(id)
		if err != nil {
			return err
		}
		if gate.Kind().Parameterized() && effectivelyZero(gate.Angle(), p.tolerance) {
			remove = append(remove, id)
		}
	}

	for _, id := range remove {
		if err := d.RemoveNode(id); err != nil {
			return err
		}
		p.stats.GatesRemoved++
	}
	return nil
}
