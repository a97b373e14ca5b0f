package ir

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

// MaxQubits bounds the register width of any circuit or DAG.
const MaxQubits = 30

// Circuit is an ordered sequence of gates over a fixed qubit register.
// Gate IDs are assigned on insertion and are unique within the circuit but
// not stable across transformations that rebuild it.
//
// Circuit is not safe for concurrent use without external synchronization.
type Circuit struct {
	numQubits int
	gates     []Gate
	nextID    GateID
}

// NewCircuit creates an empty circuit over n qubits.
// Returns CIRCUIT_TOO_LARGE if n is outside [1, MaxQubits].
func NewCircuit(n int) (*Circuit, error) {
	if n < 1 || n > MaxQubits {
		return nil, qopterr.New(qopterr.CodeCircuitTooLarge,
			"circuit must have between 1 and %d qubits, got %d", MaxQubits, n)
	}
	return &Circuit{numQubits: n}, nil
}

// NumQubits returns the register width.
func (c *Circuit) NumQubits() int { return c.numQubits }

// NumGates returns the number of gates.
func (c *Circuit) NumGates() int { return len(c.gates) }

// Empty reports whether the circuit has no gates.
func (c *Circuit) Empty() bool { return len(c.gates) == 0 }

// AddGate appends a gate, assigning it a fresh ID.
// Returns OUT_OF_RANGE_QUBIT if any operand is >= NumQubits.
func (c *Circuit) AddGate(g Gate) error {
	for i := 0; i < g.NumQubits(); i++ {
		if q := g.Qubit(i); q >= c.numQubits {
			return qopterr.New(qopterr.CodeOutOfRangeQubit,
				"%s references qubit %d but circuit has %d qubits", g.Kind(), q, c.numQubits)
		}
	}
	c.gates = append(c.gates, g.WithID(c.nextID))
	c.nextID++
	return nil
}

// Gates returns the gate sequence. The returned slice is a copy; the gates
// themselves are values.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	copy(out, c.gates)
	return out
}

// Gate returns the i-th gate in circuit order.
func (c *Circuit) Gate(i int) Gate { return c.gates[i] }

// Depth returns the minimum number of time steps to execute the circuit
// assuming independent gates run in parallel.
func (c *Circuit) Depth() int {
	qubitDepth := make([]int, c.numQubits)
	depth := 0
	for _, g := range c.gates {
		d := 0
		for i := 0; i < g.NumQubits(); i++ {
			if qd := qubitDepth[g.Qubit(i)]; qd > d {
				d = qd
			}
		}
		d++
		for i := 0; i < g.NumQubits(); i++ {
			qubitDepth[g.Qubit(i)] = d
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

// CountGates returns the number of gates of the given kind.
func (c *Circuit) CountGates(kind Kind) int {
	n := 0
	for _, g := range c.gates {
		if g.Kind() == kind {
			n++
		}
	}
	return n
}

// CountTwoQubitGates returns the number of gates with arity 2.
func (c *Circuit) CountTwoQubitGates() int {
	n := 0
	for _, g := range c.gates {
		if g.NumQubits() == 2 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the circuit, preserving gate IDs.
func (c *Circuit) Clone() *Circuit {
	gates := make([]Gate, len(c.gates))
	copy(gates, c.gates)
	return &Circuit{numQubits: c.numQubits, gates: gates, nextID: c.nextID}
}
