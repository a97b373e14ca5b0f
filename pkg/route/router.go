package route

import (
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

// RoutingResult is the outcome of mapping a logical circuit onto a device.
//
// RoutedCircuit is over the physical-qubit register (width = topology
// qubit count). FinalMapping[i] gives the physical location of logical
// qubit i at the end of execution.
type RoutingResult struct {
	RoutedCircuit  *ir.Circuit
	InitialMapping []int
	FinalMapping   []int
	SwapsInserted  int
	OriginalDepth  int
	FinalDepth     int
}

// DepthOverhead returns the depth added by routing.
func (r *RoutingResult) DepthOverhead() int {
	if r.FinalDepth > r.OriginalDepth {
		return r.FinalDepth - r.OriginalDepth
	}
	return 0
}

// GateOverhead returns the CX-equivalent cost of the inserted SWAPs
// (three each).
func (r *RoutingResult) GateOverhead() int {
	return 3 * r.SwapsInserted
}

// Router maps a logical circuit onto a physical topology, inserting
// permutation operations so every two-qubit gate lands on coupled qubits.
type Router interface {
	// Name returns the router's name for logging and statistics.
	Name() string

	// Route transforms the logical circuit into a physical one. It
	// returns INCOMPATIBLE_SIZE if the circuit is wider than the
	// topology. The routed circuit never contains a two-qubit gate on a
	// non-adjacent pair.
	Route(c *ir.Circuit, t *Topology) (*RoutingResult, error)
}

// validateRouteInputs enforces the width precondition shared by routers.
func validateRouteInputs(c *ir.Circuit, t *Topology) error {
	if c.NumQubits() > t.NumQubits() {
		return qopterr.New(qopterr.CodeIncompatibleSize,
			"circuit has %d qubits but topology has only %d", c.NumQubits(), t.NumQubits())
	}
	return nil
}

// identityMapping returns the mapping logical i -> physical i.
func identityMapping(n int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return m
}

// TrivialRouter performs no routing: it remaps nothing and assumes the
// circuit already respects the topology. Useful as a baseline and in
// tests.
type TrivialRouter struct{}

// NewTrivialRouter creates a trivial router.
func NewTrivialRouter() *TrivialRouter { return &TrivialRouter{} }

// Name returns "TrivialRouter".
func (r *TrivialRouter) Name() string { return "TrivialRouter" }

// Route copies the circuit onto the physical register with the identity
// mapping.
func (r *TrivialRouter) Route(c *ir.Circuit, t *Topology) (*RoutingResult, error) {
	if err := validateRouteInputs(c, t); err != nil {
		return nil, err
	}
	routed, err := ir.NewCircuit(t.NumQubits())
	if err != nil {
		return nil, err
	}
	for _, g := range c.Gates() {
		if err := routed.AddGate(g.WithID(ir.InvalidGateID)); err != nil {
			return nil, err
		}
	}
	return &RoutingResult{
		RoutedCircuit:  routed,
		InitialMapping: identityMapping(c.NumQubits()),
		FinalMapping:   identityMapping(c.NumQubits()),
		OriginalDepth:  c.Depth(),
		FinalDepth:     routed.Depth(),
	}, nil
}
