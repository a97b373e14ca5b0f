package ir

import (
	"math"
	"slices"
	"testing"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

// buildCircuit constructs a circuit from gates, failing the test on any
// error.
func buildCircuit(t *testing.T, n int, gates ...Gate) *Circuit {
	t.Helper()
	c, err := NewCircuit(n)
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

func cxGate(t *testing.T, control, target int) Gate {
	t.Helper()
	g, err := NewCX(control, target)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFromCircuitWiring(t *testing.T) {
	// H q0; CX q0,q1; H q1 — chain along the shared wires.
	c := buildCircuit(t, 2, NewH(0), cxGate(t, 0, 1), NewH(1))
	d := FromCircuit(c)

	if d.NumNodes() != 3 {
		t.Fatalf("NumNodes = %d, want 3", d.NumNodes())
	}
	if !d.HasEdge(0, 1) || !d.HasEdge(1, 2) {
		t.Error("expected wire edges 0→1 and 1→2")
	}
	if d.HasEdge(0, 2) {
		t.Error("unexpected edge 0→2")
	}
	if got := d.Sources(); !slices.Equal(got, []GateID{0}) {
		t.Errorf("Sources() = %v, want [0]", got)
	}
	if got := d.Sinks(); !slices.Equal(got, []GateID{2}) {
		t.Errorf("Sinks() = %v, want [2]", got)
	}
}

func TestFromCircuitNoDuplicateEdges(t *testing.T) {
	// Two CX gates on the same pair: both wires connect the same nodes;
	// only one edge may exist.
	c := buildCircuit(t, 2, cxGate(t, 0, 1), cxGate(t, 0, 1))
	d := FromCircuit(c)

	succs, err := d.Successors(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(succs) != 1 || succs[0] != 1 {
		t.Errorf("Successors(0) = %v, want [1]", succs)
	}
	preds, _ := d.Predecessors(1)
	if len(preds) != 1 {
		t.Errorf("Predecessors(1) = %v, want one entry", preds)
	}
}

func TestTopologicalOrderDeterministic(t *testing.T) {
	// Independent gates on separate qubits: ties broken by ascending ID.
	c := buildCircuit(t, 3, NewH(2), NewH(1), NewH(0))
	d := FromCircuit(c)

	order, err := d.TopologicalOrder()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(order, []GateID{0, 1, 2}) {
		t.Errorf("order = %v, want ascending IDs", order)
	}
}

func TestTopologicalOrderRespectsEdges(t *testing.T) {
	c := buildCircuit(t, 3, NewH(0), cxGate(t, 0, 1), cxGate(t, 1, 2), NewH(2))
	d := FromCircuit(c)

	order, err := d.TopologicalOrder()
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != d.NumNodes() {
		t.Fatalf("order length %d != node count %d", len(order), d.NumNodes())
	}
	pos := map[GateID]int{}
	for i, id := range order {
		pos[id] = i
	}
	for _, u := range d.NodeIDs() {
		succs, _ := d.Successors(u)
		for _, v := range succs {
			if pos[u] >= pos[v] {
				t.Errorf("edge %d→%d violated by order %v", u, v, order)
			}
		}
	}
}

func TestLayers(t *testing.T) {
	// H q0; H q1; CX q0,q1; H q0 — layers {0,1}, {2}, {3}.
	c := buildCircuit(t, 2, NewH(0), NewH(1), cxGate(t, 0, 1), NewH(0))
	d := FromCircuit(c)

	layers, err := d.Layers()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]GateID{{0, 1}, {2}, {3}}
	if len(layers) != len(want) {
		t.Fatalf("layer count = %d, want %d", len(layers), len(want))
	}
	for i := range want {
		if !slices.Equal(layers[i], want[i]) {
			t.Errorf("layer %d = %v, want %v", i, layers[i], want[i])
		}
	}

	depth, err := d.Depth()
	if err != nil {
		t.Fatal(err)
	}
	if depth != 3 {
		t.Errorf("Depth() = %d, want 3", depth)
	}
}

func TestRemoveNodeContraction(t *testing.T) {
	// H q0; X q0; H q0 — removing the middle node must contract 0→2.
	c := buildCircuit(t, 1, NewH(0), NewX(0), NewH(0))
	d := FromCircuit(c)

	if err := d.RemoveNode(1); err != nil {
		t.Fatal(err)
	}
	if d.NumNodes() != 2 {
		t.Fatalf("NumNodes = %d, want 2", d.NumNodes())
	}
	if !d.HasEdge(0, 2) {
		t.Error("expected contracted edge 0→2")
	}

	// The cursor must now point at node 2 so appends wire correctly.
	id, err := d.AddGate(NewZ(0))
	if err != nil {
		t.Fatal(err)
	}
	if !d.HasEdge(2, id) {
		t.Errorf("appended gate not wired to node 2")
	}
}

func TestRemoveLastNodeRepairsCursor(t *testing.T) {
	// Removing the final gate on a wire must walk back to its
	// predecessor on that wire.
	c := buildCircuit(t, 2, NewH(0), cxGate(t, 0, 1), NewH(1))
	d := FromCircuit(c)

	if err := d.RemoveNode(2); err != nil {
		t.Fatal(err)
	}
	id, err := d.AddGate(NewZ(1))
	if err != nil {
		t.Fatal(err)
	}
	if !d.HasEdge(1, id) {
		t.Error("cursor for q1 not repaired to the CX node")
	}
}

func TestRemoveNodeFiltersDuplicateContraction(t *testing.T) {
	// CX(0,1); CX(0,1); CX(0,1): removing the middle node contracts both
	// wires onto the same (pred, succ) pair; the edge must not double.
	c := buildCircuit(t, 2, cxGate(t, 0, 1), cxGate(t, 0, 1), cxGate(t, 0, 1))
	d := FromCircuit(c)

	if err := d.RemoveNode(1); err != nil {
		t.Fatal(err)
	}
	succs, _ := d.Successors(0)
	if len(succs) != 1 {
		t.Errorf("Successors(0) = %v, want single contracted edge", succs)
	}
}

func TestRemoveNodeUnknown(t *testing.T) {
	d, _ := NewDAG(1)
	err := d.RemoveNode(42)
	if !qopterr.Is(err, qopterr.CodeNodeNotFound) {
		t.Errorf("RemoveNode(42) error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestToCircuitRoundTrip(t *testing.T) {
	c := buildCircuit(t, 3,
		NewH(0),
		cxGate(t, 0, 1),
		NewRz(1, math.Pi/4),
		cxGate(t, 1, 2),
		NewRx(2, -1.25),
	)
	back, err := FromCircuit(c).ToCircuit()
	if err != nil {
		t.Fatal(err)
	}

	if back.NumQubits() != c.NumQubits() {
		t.Errorf("qubits = %d, want %d", back.NumQubits(), c.NumQubits())
	}
	if back.NumGates() != c.NumGates() {
		t.Fatalf("gates = %d, want %d", back.NumGates(), c.NumGates())
	}
	for i, g := range back.Gates() {
		if !g.Equal(c.Gate(i)) {
			t.Errorf("gate %d = %v, want %v", i, g, c.Gate(i))
		}
	}
}

func TestSetAngle(t *testing.T) {
	c := buildCircuit(t, 1, NewRz(0, 1.0), NewH(0))
	d := FromCircuit(c)

	if err := d.SetAngle(0, 2.5); err != nil {
		t.Fatal(err)
	}
	g, _ := d.Gate(0)
	if g.Angle() != 2.5 {
		t.Errorf("angle = %v, want 2.5", g.Angle())
	}
	if err := d.SetAngle(1, 1.0); !qopterr.Is(err, qopterr.CodeInvalidGate) {
		t.Errorf("SetAngle on H error = %v, want INVALID_GATE", err)
	}
	if err := d.SetAngle(99, 1.0); !qopterr.Is(err, qopterr.CodeNodeNotFound) {
		t.Errorf("SetAngle unknown error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestDAGReset(t *testing.T) {
	c := buildCircuit(t, 2, NewH(0), cxGate(t, 0, 1))
	d := FromCircuit(c)
	d.Reset()
	if d.NumNodes() != 0 {
		t.Fatalf("NumNodes after Reset = %d", d.NumNodes())
	}
	id, err := d.AddGate(NewH(1))
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Errorf("first ID after Reset = %d, want 0", id)
	}
	preds, _ := d.Predecessors(id)
	if len(preds) != 0 {
		t.Errorf("fresh node has predecessors %v", preds)
	}
}

func TestEmptyDAGQueries(t *testing.T) {
	d, _ := NewDAG(2)
	order, err := d.TopologicalOrder()
	if err != nil || len(order) != 0 {
		t.Errorf("empty order = %v, %v", order, err)
	}
	layers, err := d.Layers()
	if err != nil || len(layers) != 0 {
		t.Errorf("empty layers = %v, %v", layers, err)
	}
	depth, err := d.Depth()
	if err != nil || depth != 0 {
		t.Errorf("empty depth = %d, %v", depth, err)
	}
}
