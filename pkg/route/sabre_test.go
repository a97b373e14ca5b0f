package route

import (
	"testing"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

func buildCircuit(t *testing.T, n int, gates ...ir.Gate) *ir.Circuit {
	t.Helper()
	c, err := ir.NewCircuit(n)
	if err != nil {
		t.Fatalf("NewCircuit(%d): %v", n, err)
	}
	for _, g := range gates {
		if err := c.AddGate(g); err != nil {
			t.Fatalf("AddGate(%v): %v", g, err)
		}
	}
	return c
}

func cx(t *testing.T, control, target int) ir.Gate {
	t.Helper()
	g, err := ir.NewCX(control, target)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// assertRoutedSound checks the universal routing guarantees: every
// two-qubit gate on a coupling edge and the final mapping a permutation.
func assertRoutedSound(t *testing.T, result *RoutingResult, topo *Topology, logicalQubits int) {
	t.Helper()
	for _, g := range result.RoutedCircuit.Gates() {
		if g.NumQubits() == 2 && !topo.Connected(g.Qubit(0), g.Qubit(1)) {
			t.Errorf("routed gate %v lands on non-adjacent qubits", g)
		}
	}
	if len(result.FinalMapping) != logicalQubits {
		t.Fatalf("final mapping length = %d, want %d", len(result.FinalMapping), logicalQubits)
	}
	seen := map[int]bool{}
	for l, p := range result.FinalMapping {
		if p < 0 || p >= topo.NumQubits() {
			t.Errorf("logical %d mapped to out-of-range physical %d", l, p)
		}
		if seen[p] {
			t.Errorf("physical qubit %d holds two logical qubits", p)
		}
		seen[p] = true
	}
}

func TestRouteBellOnLinear(t *testing.T) {
	bell := buildCircuit(t, 2, ir.NewH(0), cx(t, 0, 1))
	topo, _ := Linear(2)

	result, err := NewSabreRouter().Route(bell, topo)
	if err != nil {
		t.Fatal(err)
	}

	if result.SwapsInserted != 0 {
		t.Errorf("SwapsInserted = %d, want 0", result.SwapsInserted)
	}
	if result.OriginalDepth != 2 || result.FinalDepth != 2 {
		t.Errorf("depths = %d/%d, want 2/2", result.OriginalDepth, result.FinalDepth)
	}
	if result.RoutedCircuit.NumGates() != 2 {
		t.Fatalf("gates = %d, want 2", result.RoutedCircuit.NumGates())
	}
	for i, g := range result.RoutedCircuit.Gates() {
		if !g.Equal(bell.Gate(i)) {
			t.Errorf("gate %d = %v, want %v", i, g, bell.Gate(i))
		}
	}
	assertRoutedSound(t, result, topo, 2)
}

func TestRouteNonAdjacentCX(t *testing.T) {
	c := buildCircuit(t, 4, cx(t, 0, 3))
	topo, _ := Linear(4)

	result, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}

	if result.SwapsInserted < 1 {
		t.Errorf("SwapsInserted = %d, want at least 1", result.SwapsInserted)
	}
	if got := result.RoutedCircuit.CountGates(ir.KindCX); got != 1 {
		t.Errorf("CX count = %d, want 1", got)
	}
	assertRoutedSound(t, result, topo, 4)
}

func TestRouteGHZNoSwaps(t *testing.T) {
	ghz := buildCircuit(t, 4, ir.NewH(0), cx(t, 0, 1), cx(t, 1, 2), cx(t, 2, 3))
	topo, _ := Linear(4)

	result, err := NewSabreRouter().Route(ghz, topo)
	if err != nil {
		t.Fatal(err)
	}

	if result.SwapsInserted != 0 {
		t.Errorf("SwapsInserted = %d, want 0", result.SwapsInserted)
	}
	if result.RoutedCircuit.NumGates() != 4 {
		t.Errorf("gates = %d, want 4", result.RoutedCircuit.NumGates())
	}
	assertRoutedSound(t, result, topo, 4)
}

func TestRouteEmptyCircuit(t *testing.T) {
	c := buildCircuit(t, 3)
	topo, _ := Linear(5)

	result, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}
	if result.RoutedCircuit.NumGates() != 0 || result.SwapsInserted != 0 {
		t.Errorf("empty circuit produced gates/swaps: %+v", result)
	}
	for i, p := range result.FinalMapping {
		if p != i {
			t.Errorf("final mapping not identity: %v", result.FinalMapping)
			break
		}
	}
}

func TestRouteIncompatibleSize(t *testing.T) {
	c := buildCircuit(t, 4, cx(t, 0, 3))
	topo, _ := Linear(3)

	_, err := NewSabreRouter().Route(c, topo)
	if !qopterr.Is(err, qopterr.CodeIncompatibleSize) {
		t.Errorf("error = %v, want INCOMPATIBLE_SIZE", err)
	}
}

func TestRouteOntoWiderTopology(t *testing.T) {
	bell := buildCircuit(t, 2, ir.NewH(0), cx(t, 0, 1))
	topo, _ := Grid(3, 3)

	result, err := NewSabreRouter().Route(bell, topo)
	if err != nil {
		t.Fatal(err)
	}
	if result.RoutedCircuit.NumQubits() != 9 {
		t.Errorf("routed register = %d, want topology width 9", result.RoutedCircuit.NumQubits())
	}
	assertRoutedSound(t, result, topo, 2)
}

func TestRouteSwapFreeCircuitPreservesGates(t *testing.T) {
	c := buildCircuit(t, 3,
		ir.NewH(0), ir.NewRz(1, 0.5), cx(t, 0, 1), cx(t, 1, 2), ir.NewRx(2, -0.75),
	)
	topo, _ := Linear(3)

	result, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}
	if result.SwapsInserted != 0 {
		t.Fatalf("SwapsInserted = %d, want 0", result.SwapsInserted)
	}
	if result.RoutedCircuit.NumGates() != c.NumGates() {
		t.Errorf("gates = %d, want %d", result.RoutedCircuit.NumGates(), c.NumGates())
	}
	for i, g := range result.RoutedCircuit.Gates() {
		if !g.Equal(c.Gate(i)) {
			t.Errorf("gate %d = %v, want %v", i, g, c.Gate(i))
		}
	}
}

func TestRouteDeterministic(t *testing.T) {
	c := buildCircuit(t, 5,
		cx(t, 0, 4), cx(t, 1, 3), ir.NewH(2), cx(t, 2, 0), cx(t, 3, 4),
	)
	topo, _ := Linear(5)

	first, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}

	if first.SwapsInserted != second.SwapsInserted {
		t.Fatalf("swap counts differ: %d vs %d", first.SwapsInserted, second.SwapsInserted)
	}
	if first.RoutedCircuit.NumGates() != second.RoutedCircuit.NumGates() {
		t.Fatalf("gate counts differ")
	}
	for i, g := range first.RoutedCircuit.Gates() {
		if !g.Equal(second.RoutedCircuit.Gate(i)) {
			t.Errorf("gate %d differs: %v vs %v", i, g, second.RoutedCircuit.Gate(i))
		}
	}
}

func TestRouteDistantPairsOnRing(t *testing.T) {
	c := buildCircuit(t, 6, cx(t, 0, 3), cx(t, 1, 4), cx(t, 2, 5))
	topo, _ := Ring(6)

	result, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}
	if got := result.RoutedCircuit.CountGates(ir.KindCX); got != 3 {
		t.Errorf("CX count = %d, want 3", got)
	}
	assertRoutedSound(t, result, topo, 6)
}

func TestRouteOnHeavyHex(t *testing.T) {
	c := buildCircuit(t, 7,
		cx(t, 0, 3), cx(t, 1, 4), cx(t, 2, 5), ir.NewH(6), cx(t, 6, 0),
	)
	topo, _ := HeavyHex(1)

	result, err := NewSabreRouter().Route(c, topo)
	if err != nil {
		t.Fatal(err)
	}
	if got := result.RoutedCircuit.CountGates(ir.KindCX); got != 4 {
		t.Errorf("CX count = %d, want 4", got)
	}
	assertRoutedSound(t, result, topo, 7)
}

func TestTrivialRouter(t *testing.T) {
	bell := buildCircuit(t, 2, ir.NewH(0), cx(t, 0, 1))
	topo, _ := Linear(4)

	result, err := NewTrivialRouter().Route(bell, topo)
	if err != nil {
		t.Fatal(err)
	}
	if result.SwapsInserted != 0 {
		t.Errorf("SwapsInserted = %d, want 0", result.SwapsInserted)
	}
	if result.RoutedCircuit.NumQubits() != 4 {
		t.Errorf("register = %d, want 4", result.RoutedCircuit.NumQubits())
	}
	if result.GateOverhead() != 0 {
		t.Errorf("GateOverhead() = %d, want 0", result.GateOverhead())
	}

	c := buildCircuit(t, 4, cx(t, 0, 3))
	if _, err := NewTrivialRouter().Route(c, topo); err != nil {
		t.Fatalf("trivial router must not validate adjacency: %v", err)
	}
}
