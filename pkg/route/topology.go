package route

import (
	"slices"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

// Infinite is the sentinel distance between physically unreachable qubits.
// It is large enough to dominate any real path while staying safely
// summable in scoring arithmetic.
const Infinite = 1 << 30

// Topology is the undirected coupling graph of a device: vertices are
// physical qubits, edges are pairs that can carry a two-qubit gate
// directly.
//
// All-pairs distances are computed lazily by BFS from every vertex and
// cached; AddEdge invalidates the cache. Topology is not safe for
// concurrent use without external synchronization.
type Topology struct {
	numQubits int
	adjacency [][]int
	edges     [][2]int
	dist      [][]int // nil until built
}

// NewTopology creates an edgeless topology over n physical qubits (n ≥ 1).
func NewTopology(n int) (*Topology, error) {
	if n < 1 {
		return nil, qopterr.New(qopterr.CodeInvalidTopology,
			"topology must have at least 1 qubit, got %d", n)
	}
	return &Topology{
		numQubits: n,
		adjacency: make([][]int, n),
	}, nil
}

// NumQubits returns the number of physical qubits.
func (t *Topology) NumQubits() int { return t.numQubits }

// NumEdges returns the number of coupling edges.
func (t *Topology) NumEdges() int { return len(t.edges) }

// Edges returns all edges as (min, max) pairs in insertion order.
// The returned slice is a copy.
func (t *Topology) Edges() [][2]int { return slices.Clone(t.edges) }

// AddEdge adds a bidirectional coupling between two qubits. Duplicate
// edges are ignored; self-loops and out-of-range indices are errors.
// Adding an edge invalidates the cached distance matrix.
func (t *Topology) AddEdge(a, b int) error {
	if err := t.validateQubit(a); err != nil {
		return err
	}
	if err := t.validateQubit(b); err != nil {
		return err
	}
	if a == b {
		return qopterr.New(qopterr.CodeInvalidTopology, "cannot add self-loop on qubit %d", a)
	}
	if t.Connected(a, b) {
		return nil
	}
	t.adjacency[a] = append(t.adjacency[a], b)
	t.adjacency[b] = append(t.adjacency[b], a)
	t.edges = append(t.edges, [2]int{min(a, b), max(a, b)})
	t.dist = nil
	return nil
}

// Connected reports whether two qubits can carry a two-qubit gate
// directly. A qubit is connected to itself by convention; out-of-range
// indices report false.
func (t *Topology) Connected(a, b int) bool {
	if a < 0 || a >= t.numQubits || b < 0 || b >= t.numQubits {
		return false
	}
	if a == b {
		return true
	}
	return slices.Contains(t.adjacency[a], b)
}

// Neighbors returns the qubits directly coupled to q, in insertion order.
// The returned slice is a copy.
func (t *Topology) Neighbors(q int) ([]int, error) {
	if err := t.validateQubit(q); err != nil {
		return nil, err
	}
	return slices.Clone(t.adjacency[q]), nil
}

// Distance returns the minimum hop count between two qubits from the
// lazily built all-pairs matrix, or Infinite if they are unreachable.
func (t *Topology) Distance(a, b int) (int, error) {
	if err := t.validateQubit(a); err != nil {
		return 0, err
	}
	if err := t.validateQubit(b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	t.ensureDistances()
	return t.dist[a][b], nil
}

// ShortestPath returns a minimum-hop qubit sequence from a to b, inclusive
// of both endpoints. Returns DISCONNECTED if no path exists.
func (t *Topology) ShortestPath(a, b int) ([]int, error) {
	if err := t.validateQubit(a); err != nil {
		return nil, err
	}
	if err := t.validateQubit(b); err != nil {
		return nil, err
	}
	if a == b {
		return []int{a}, nil
	}

	parent := make([]int, t.numQubits)
	for i := range parent {
		parent[i] = -1
	}
	parent[a] = a
	queue := []int{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			break
		}
		for _, nb := range t.adjacency[cur] {
			if parent[nb] == -1 {
				parent[nb] = cur
				queue = append(queue, nb)
			}
		}
	}
	if parent[b] == -1 {
		return nil, qopterr.New(qopterr.CodeDisconnected,
			"no path between qubits %d and %d", a, b)
	}

	var path []int
	for cur := b; cur != a; cur = parent[cur] {
		path = append(path, cur)
	}
	path = append(path, a)
	slices.Reverse(path)
	return path, nil
}

// IsConnected reports whether every qubit is reachable from qubit 0.
func (t *Topology) IsConnected() bool {
	if t.numQubits <= 1 {
		return true
	}
	visited := make([]bool, t.numQubits)
	visited[0] = true
	queue := []int{0}
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range t.adjacency[cur] {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
				count++
			}
		}
	}
	return count == t.numQubits
}

func (t *Topology) validateQubit(q int) error {
	if q < 0 || q >= t.numQubits {
		return qopterr.New(qopterr.CodeOutOfRangeQubit,
			"physical qubit %d out of range [0, %d)", q, t.numQubits)
	}
	return nil
}

// ensureDistances builds the all-pairs matrix with a BFS from every
// vertex.
func (t *Topology) ensureDistances() {
	if t.dist != nil {
		return
	}
	dist := make([][]int, t.numQubits)
	for start := 0; start < t.numQubits; start++ {
		row := make([]int, t.numQubits)
		for i := range row {
			row[i] = Infinite
		}
		row[start] = 0
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range t.adjacency[cur] {
				if row[nb] == Infinite {
					row[nb] = row[cur] + 1
					queue = append(queue, nb)
				}
			}
		}
		dist[start] = row
	}
	t.dist = dist
}

// Linear creates a chain topology 0-1-…-(n-1).
func Linear(n int) (*Topology, error) {
	t, err := NewTopology(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < n; i++ {
		if err := t.AddEdge(i, i+1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Ring creates a chain closed into a cycle; requires n ≥ 2.
func Ring(n int) (*Topology, error) {
	if n < 2 {
		return nil, qopterr.New(qopterr.CodeInvalidTopology,
			"ring topology requires at least 2 qubits, got %d", n)
	}
	t, err := Linear(n)
	if err != nil {
		return nil, err
	}
	if err := t.AddEdge(0, n-1); err != nil {
		return nil, err
	}
	return t, nil
}

// Grid creates a rows×cols lattice with nearest-neighbor coupling.
// Indexing is row-major: qubit(r, c) = r*cols + c.
func Grid(rows, cols int) (*Topology, error) {
	if rows < 1 || cols < 1 {
		return nil, qopterr.New(qopterr.CodeInvalidTopology,
			"grid dimensions must be positive, got %dx%d", rows, cols)
	}
	t, err := NewTopology(rows * cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			q := r*cols + c
			if c+1 < cols {
				if err := t.AddEdge(q, q+1); err != nil {
					return nil, err
				}
			}
			if r+1 < rows {
				if err := t.AddEdge(q, q+cols); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}

// HeavyHex creates an IBM-style heavy-hex lattice approximation.
//
// For d=1 it is the 7-qubit wheel: a 6-ring with a center coupled to every
// ring qubit. For d ≥ 2 it is a (2d+1)×(2d+1) grid with all horizontal
// edges and vertical edges only where row and column parity agree. The
// result is connected and roughly the size of the canonical lattice.
func HeavyHex(d int) (*Topology, error) {
	if d < 1 {
		return nil, qopterr.New(qopterr.CodeInvalidTopology,
			"heavy-hex distance must be positive, got %d", d)
	}

	if d == 1 {
		t, err := NewTopology(7)
		if err != nil {
			return nil, err
		}
		for i := 0; i < 6; i++ {
			if err := t.AddEdge(i, (i+1)%6); err != nil {
				return nil, err
			}
			if err := t.AddEdge(6, i); err != nil {
				return nil, err
			}
		}
		return t, nil
	}

	side := 2*d + 1
	t, err := NewTopology(side * side)
	if err != nil {
		return nil, err
	}
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			q := r*side + c
			if c+1 < side {
				if err := t.AddEdge(q, q+1); err != nil {
					return nil, err
				}
			}
			if r+1 < side && c%2 == r%2 {
				if err := t.AddEdge(q, q+side); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}
