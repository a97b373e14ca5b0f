package ir

import (
	"container/heap"
	"slices"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

// dagNode wraps a gate with its dependency edges. Edges are stored as ID
// lists on each node; there are no back-pointers to other runtime objects.
type dagNode struct {
	gate  Gate
	preds []GateID
	succs []GateID
}

// DAG is the dependency-graph form of a circuit. Nodes exclusively own a
// gate; an edge (u, v) means u must execute before v. For every qubit q the
// nodes touching q form a total order, with successive touches connected by
// an edge.
//
// IDs are never reused after removal within a single DAG lifetime. The DAG
// is not safe for concurrent use without external synchronization.
type DAG struct {
	numQubits int
	nodes     map[GateID]*dagNode
	last      []GateID // per-qubit cursor: latest node touching q, or InvalidGateID
	nextID    GateID
}

// NewDAG creates an empty DAG over n qubits.
// Returns CIRCUIT_TOO_LARGE if n is outside [1, MaxQubits].
func NewDAG(n int) (*DAG, error) {
	if n < 1 || n > MaxQubits {
		return nil, qopterr.New(qopterr.CodeCircuitTooLarge,
			"DAG must have between 1 and %d qubits, got %d", MaxQubits, n)
	}
	d := &DAG{
		numQubits: n,
		nodes:     make(map[GateID]*dagNode),
		last:      make([]GateID, n),
	}
	for q := range d.last {
		d.last[q] = InvalidGateID
	}
	return d, nil
}

// FromCircuit builds the dependency graph of a circuit. Nodes receive IDs
// in circuit order; edges are wired via the per-qubit cursor discipline.
func FromCircuit(c *Circuit) *DAG {
	d, err := NewDAG(c.NumQubits())
	if err != nil {
		// The circuit already enforces the register bounds.
		panic(err)
	}
	for _, g := range c.gates {
		if _, err := d.AddGate(g); err != nil {
			panic(err)
		}
	}
	return d
}

// NumQubits returns the register width.
func (d *DAG) NumQubits() int { return d.numQubits }

// NumNodes returns the number of gate nodes.
func (d *DAG) NumNodes() int { return len(d.nodes) }

// Empty reports whether the DAG has no nodes.
func (d *DAG) Empty() bool { return len(d.nodes) == 0 }

// HasNode reports whether a node with the given ID exists.
func (d *DAG) HasNode(id GateID) bool {
	_, ok := d.nodes[id]
	return ok
}

// AddGate appends a gate, wiring an edge from the last node on each of its
// qubits and advancing the per-qubit cursors. Returns the assigned node ID,
// or OUT_OF_RANGE_QUBIT if an operand is beyond the register.
func (d *DAG) AddGate(g Gate) (GateID, error) {
	for i := 0; i < g.NumQubits(); i++ {
		if q := g.Qubit(i); q >= d.numQubits {
			return InvalidGateID, qopterr.New(qopterr.CodeOutOfRangeQubit,
				"%s references qubit %d but DAG has %d qubits", g.Kind(), q, d.numQubits)
		}
	}

	id := d.nextID
	d.nextID++
	node := &dagNode{gate: g.WithID(id)}

	for i := 0; i < g.NumQubits(); i++ {
		q := g.Qubit(i)
		if pred := d.last[q]; pred != InvalidGateID {
			if !slices.Contains(node.preds, pred) {
				node.preds = append(node.preds, pred)
				d.nodes[pred].succs = append(d.nodes[pred].succs, id)
			}
		}
		d.last[q] = id
	}

	d.nodes[id] = node
	return id, nil
}

// Gate returns the gate owned by the node.
func (d *DAG) Gate(id GateID) (Gate, error) {
	n, ok := d.nodes[id]
	if !ok {
		return Gate{}, qopterr.New(qopterr.CodeNodeNotFound, "node %d not found", id)
	}
	return n.gate, nil
}

// SetAngle replaces the rotation angle of a parameterized node in place.
// Returns NODE_NOT_FOUND for unknown IDs and INVALID_GATE for
// non-parameterized kinds.
func (d *DAG) SetAngle(id GateID, angle float64) error {
	n, ok := d.nodes[id]
	if !ok {
		return qopterr.New(qopterr.CodeNodeNotFound, "node %d not found", id)
	}
	if !n.gate.Kind().Parameterized() {
		return qopterr.New(qopterr.CodeInvalidGate, "%s does not take an angle", n.gate.Kind())
	}
	n.gate.angle = angle
	return nil
}

// Predecessors returns the IDs of nodes that must execute before id.
// The returned slice is a copy.
func (d *DAG) Predecessors(id GateID) ([]GateID, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, qopterr.New(qopterr.CodeNodeNotFound, "node %d not found", id)
	}
	return slices.Clone(n.preds), nil
}

// Successors returns the IDs of nodes that depend on id.
// The returned slice is a copy.
func (d *DAG) Successors(id GateID) ([]GateID, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, qopterr.New(qopterr.CodeNodeNotFound, "node %d not found", id)
	}
	return slices.Clone(n.succs), nil
}

// InDegree returns the number of predecessors, or 0 for unknown IDs.
func (d *DAG) InDegree(id GateID) int {
	if n, ok := d.nodes[id]; ok {
		return len(n.preds)
	}
	return 0
}

// OutDegree returns the number of successors, or 0 for unknown IDs.
func (d *DAG) OutDegree(id GateID) int {
	if n, ok := d.nodes[id]; ok {
		return len(n.succs)
	}
	return 0
}

// HasEdge reports whether a direct edge u -> v exists.
func (d *DAG) HasEdge(u, v GateID) bool {
	n, ok := d.nodes[u]
	if !ok {
		return false
	}
	return slices.Contains(n.succs, v)
}

// RemoveNode deletes a node, contracting its edges: every predecessor gains
// every successor as a direct successor (duplicates filtered), and the
// per-qubit cursors are repaired by walking the removed node's predecessors.
func (d *DAG) RemoveNode(id GateID) error {
	target, ok := d.nodes[id]
	if !ok {
		return qopterr.New(qopterr.CodeNodeNotFound, "cannot remove node %d: not found", id)
	}

	for _, pred := range target.preds {
		pn := d.nodes[pred]
		pn.succs = slices.DeleteFunc(pn.succs, func(s GateID) bool { return s == id })
		for _, succ := range target.succs {
			if !slices.Contains(pn.succs, succ) {
				pn.succs = append(pn.succs, succ)
			}
		}
	}
	for _, succ := range target.succs {
		sn := d.nodes[succ]
		sn.preds = slices.DeleteFunc(sn.preds, func(p GateID) bool { return p == id })
		for _, pred := range target.preds {
			if !slices.Contains(sn.preds, pred) {
				sn.preds = append(sn.preds, pred)
			}
		}
	}

	for i := 0; i < target.gate.NumQubits(); i++ {
		q := target.gate.Qubit(i)
		if d.last[q] != id {
			continue
		}
		repaired := InvalidGateID
		for _, pred := range target.preds {
			if d.nodes[pred].gate.Touches(q) {
				repaired = pred
				break
			}
		}
		d.last[q] = repaired
	}

	delete(d.nodes, id)
	return nil
}

// Reset clears all nodes and cursors, keeping the register width. IDs
// restart from zero; callers must not mix pre- and post-reset IDs.
func (d *DAG) Reset() {
	d.nodes = make(map[GateID]*dagNode)
	for q := range d.last {
		d.last[q] = InvalidGateID
	}
	d.nextID = 0
}

// NodeIDs returns all node IDs in ascending order.
func (d *DAG) NodeIDs() []GateID {
	ids := make([]GateID, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Sources returns the IDs of nodes with no predecessors, ascending.
func (d *DAG) Sources() []GateID {
	var out []GateID
	for id, n := range d.nodes {
		if len(n.preds) == 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Sinks returns the IDs of nodes with no successors, ascending.
func (d *DAG) Sinks() []GateID {
	var out []GateID
	for id, n := range d.nodes {
		if len(n.succs) == 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// idHeap is a min-heap of node IDs, used for the deterministic
// ascending-id tie-break in Kahn's algorithm.
type idHeap []GateID

func (h idHeap) Len() int           { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)        { *h = append(*h, x.(GateID)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopologicalOrder returns a linearization respecting all edges, computed
// with Kahn's algorithm. When multiple nodes are ready the smallest ID is
// taken first, so the order is deterministic for a given DAG.
// Returns CYCLE_DETECTED if the graph is cyclic (an internal invariant
// violation that correct callers never trigger).
func (d *DAG) TopologicalOrder() ([]GateID, error) {
	if len(d.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[GateID]int, len(d.nodes))
	ready := &idHeap{}
	for id, n := range d.nodes {
		inDegree[id] = len(n.preds)
		if len(n.preds) == 0 {
			*ready = append(*ready, id)
		}
	}
	heap.Init(ready)

	order := make([]GateID, 0, len(d.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(GateID)
		order = append(order, id)
		for _, succ := range d.nodes[id].succs {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				heap.Push(ready, succ)
			}
		}
	}

	if len(order) != len(d.nodes) {
		return nil, qopterr.New(qopterr.CodeCycleDetected,
			"DAG contains a cycle: ordered %d of %d nodes", len(order), len(d.nodes))
	}
	return order, nil
}

// Layers groups nodes by longest-path distance from the sources: layer k
// holds every node whose longest path from any source has length k. This is
// the minimum-depth ASAP schedule. IDs within a layer are ascending.
func (d *DAG) Layers() ([][]GateID, error) {
	if len(d.nodes) == 0 {
		return nil, nil
	}

	order, err := d.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	level := make(map[GateID]int, len(d.nodes))
	maxLevel := 0
	for _, id := range order {
		l := 0
		for _, pred := range d.nodes[id].preds {
			if pl := level[pred] + 1; pl > l {
				l = pl
			}
		}
		level[id] = l
		if l > maxLevel {
			maxLevel = l
		}
	}

	layers := make([][]GateID, maxLevel+1)
	for _, id := range order {
		l := level[id]
		layers[l] = append(layers[l], id)
	}
	for _, layer := range layers {
		slices.Sort(layer)
	}
	return layers, nil
}

// Depth returns the number of layers in the ASAP schedule.
func (d *DAG) Depth() (int, error) {
	layers, err := d.Layers()
	if err != nil {
		return 0, err
	}
	return len(layers), nil
}

// ToCircuit emits the gates in topological order. The receiving circuit
// assigns fresh gate IDs; they are not equal to the DAG IDs.
func (d *DAG) ToCircuit() (*Circuit, error) {
	order, err := d.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	c, err := NewCircuit(d.numQubits)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		if err := c.AddGate(d.nodes[id].gate.WithID(InvalidGateID)); err != nil {
			return nil, err
		}
	}
	return c, nil
}
