package passes

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// Pass is one transformation over a circuit DAG.
//
// Run transforms the DAG in place and must leave every DAG invariant
// intact. Implementations reset their statistics at the start of Run and
// record the net gate changes they caused; the manager reads them after
// each run.
type Pass interface {
	// Name returns the stable pass name used in statistics.
	Name() string

	// Run transforms the DAG in place.
	Run(d *ir.DAG) error

	// Statistics returns the counters from the most recent Run.
	Statistics() Statistics
}

// Statistics holds the gate-count deltas of a single pass run.
type Statistics struct {
	GatesRemoved int
	GatesAdded   int
}

// NetChange returns GatesAdded - GatesRemoved; negative means reduction.
func (s Statistics) NetChange() int {
	return s.GatesAdded - s.GatesRemoved
}
