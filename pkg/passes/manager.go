package passes

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// PassRunStats is the per-pass breakdown of a pipeline run.
type PassRunStats struct {
	Name         string
	GatesRemoved int
	GatesAdded   int
}

// PassStatistics aggregates counters across a pipeline run.
type PassStatistics struct {
	InitialGateCount  int
	FinalGateCount    int
	TotalGatesRemoved int
	TotalGatesAdded   int
	PerPass           []PassRunStats
}

// NetChange returns the net gate-count delta; negative means reduction.
func (s PassStatistics) NetChange() int {
	return s.TotalGatesAdded - s.TotalGatesRemoved
}

// ReductionPercent returns the percentage of gates eliminated, or 0 for an
// initially empty circuit.
func (s PassStatistics) ReductionPercent() float64 {
	if s.InitialGateCount == 0 {
		return 0
	}
	return 100 * float64(s.InitialGateCount-s.FinalGateCount) / float64(s.InitialGateCount)
}

// Manager holds an ordered pipeline of passes and runs them in
// registration order, aggregating statistics after each pass. Nothing is
// re-canonicalized between passes.
//
// The same Manager can be reused across circuits; statistics reflect the
// most recent run.
type Manager struct {
	passes []Pass
	stats  PassStatistics
}

// NewManager creates an empty pipeline.
func NewManager() *Manager { return &Manager{} }

// Default returns the standard optimization pipeline: commutation,
// cancellation, rotation merge, identity elimination.
func Default() *Manager {
	m := NewManager()
	m.AddPass(NewCommutationPass())
	m.AddPass(NewCancellationPass())
	m.AddPass(NewRotationMergePass())
	m.AddPass(NewIdentityEliminationPass())
	return m
}

// AddPass appends a pass; passes execute in the order added.
func (m *Manager) AddPass(p Pass) { m.passes = append(m.passes, p) }

// NumPasses returns the number of registered passes.
func (m *Manager) NumPasses() int { return len(m.passes) }

// Passes returns the registered passes in execution order.
func (m *Manager) Passes() []Pass { return m.passes }

// Statistics returns the aggregate from the most recent run.
func (m *Manager) Statistics() PassStatistics { return m.stats }

// Run executes all passes on the DAG in registration order.
func (m *Manager) Run(d *ir.DAG) error {
	m.stats = PassStatistics{InitialGateCount: d.NumNodes()}

	for _, p := range m.passes {
		if err := p.Run(d); err != nil {
			return err
		}
		s := p.Statistics()
		m.stats.TotalGatesRemoved += s.GatesRemoved
		m.stats.TotalGatesAdded += s.GatesAdded
		m.stats.PerPass = append(m.stats.PerPass, PassRunStats{
			Name:         p.Name(),
			GatesRemoved: s.GatesRemoved,
			GatesAdded:   s.GatesAdded,
		})
	}

	m.stats.FinalGateCount = d.NumNodes()
	return nil
}

// RunCircuit builds a DAG from the circuit, runs the pipeline, and returns
// the rebuilt circuit.
func (m *Manager) RunCircuit(c *ir.Circuit) (*ir.Circuit, error) {
	d := ir.FromCircuit(c)
	if err := m.Run(d); err != nil {
		return nil, err
	}
	return d.ToCircuit()
}
