package route

import (
	"math"
	"slices"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// SABRE defaults.
const (
	DefaultLookaheadDepth    = 20
	DefaultDecayFactor       = 0.5
	DefaultExtendedSetWeight = 0.5
)

// SabreRouter implements the SABRE heuristic (Li, Ding, and Xie, "Tackling
// the Qubit Mapping Problem for NISQ-Era Quantum Devices", ASPLOS 2019).
//
// The router walks the circuit DAG keeping a front layer of gates whose
// predecessors have executed. Executable gates are emitted remapped;
// when every front gate is blocked on non-adjacent operands, the candidate
// SWAP with the lowest front-layer + lookahead distance score is inserted.
// The initial mapping is the identity.
//
// All tie-breaks are deterministic: the front layer is iterated in
// ascending node-ID order, candidates in ascending active-qubit order, and
// a strict comparison keeps the first-discovered best SWAP.
type SabreRouter struct {
	// LookaheadDepth caps the extended set of successor gates considered
	// when scoring a SWAP.
	LookaheadDepth int
	// DecayFactor scales the extended-set contribution.
	DecayFactor float64
	// ExtendedSetWeight additionally weights the extended-set
	// contribution.
	ExtendedSetWeight float64
}

// NewSabreRouter creates a SABRE router with the default parameters.
func NewSabreRouter() *SabreRouter {
	return &SabreRouter{
		LookaheadDepth:    DefaultLookaheadDepth,
		DecayFactor:       DefaultDecayFactor,
		ExtendedSetWeight: DefaultExtendedSetWeight,
	}
}

// Name returns "SabreRouter".
func (r *SabreRouter) Name() string { return "SabreRouter" }

// sabreState carries the mutable routing state of one forward pass.
type sabreState struct {
	physOf    []int // logical -> physical
	logOf     []int // physical -> logical, -1 when unoccupied
	executed  map[ir.GateID]bool
	remaining map[ir.GateID]int // unexecuted predecessor count
	routed    *ir.Circuit
	swaps     int
}

// Route maps the circuit onto the topology with a single SABRE forward
// pass. Returns INCOMPATIBLE_SIZE if the circuit is wider than the
// topology; DISCONNECTED only if the fallback path lookup fails.
func (r *SabreRouter) Route(c *ir.Circuit, t *Topology) (*RoutingResult, error) {
	if err := validateRouteInputs(c, t); err != nil {
		return nil, err
	}

	routed, err := ir.NewCircuit(t.NumQubits())
	if err != nil {
		return nil, err
	}

	if c.Empty() {
		return &RoutingResult{
			RoutedCircuit:  routed,
			InitialMapping: identityMapping(c.NumQubits()),
			FinalMapping:   identityMapping(c.NumQubits()),
		}, nil
	}

	dag := ir.FromCircuit(c)

	st := &sabreState{
		physOf:    identityMapping(c.NumQubits()),
		logOf:     make([]int, t.NumQubits()),
		executed:  make(map[ir.GateID]bool),
		remaining: make(map[ir.GateID]int),
		routed:    routed,
	}
	for p := range st.logOf {
		st.logOf[p] = -1
	}
	for l, p := range st.physOf {
		st.logOf[p] = l
	}
	for _, id := range dag.NodeIDs() {
		st.remaining[id] = dag.InDegree(id)
	}

	front := dag.Sources()
	for len(front) > 0 {
		next, progressed, err := r.executePass(dag, t, st, front)
		if err != nil {
			return nil, err
		}
		if progressed {
			front = next
			continue
		}
		if err := r.swapPass(dag, t, st, front); err != nil {
			return nil, err
		}
	}

	return &RoutingResult{
		RoutedCircuit:  st.routed,
		InitialMapping: identityMapping(c.NumQubits()),
		FinalMapping:   slices.Clone(st.physOf),
		SwapsInserted:  st.swaps,
		OriginalDepth:  c.Depth(),
		FinalDepth:     st.routed.Depth(),
	}, nil
}

// executePass emits every front-layer gate whose operands are adjacent
// under the current mapping. It returns the next front layer (blocked
// gates plus newly ready successors, ascending) and whether anything
// executed.
func (r *SabreRouter) executePass(dag *ir.DAG, t *Topology, st *sabreState, front []ir.GateID) ([]ir.GateID, bool, error) {
	var executedRound, next []ir.GateID

	for _, id := range front {
		g, err := dag.Gate(id)
		if err != nil {
			return nil, false, err
		}
		if g.NumQubits() == 1 {
			mapped, err := ir.NewGate(g.Kind(), []int{st.physOf[g.Qubit(0)]}, g.Angle())
			if err != nil {
				return nil, false, err
			}
			if err := st.routed.AddGate(mapped); err != nil {
				return nil, false, err
			}
			executedRound = append(executedRound, id)
			continue
		}

		p0, p1 := st.physOf[g.Qubit(0)], st.physOf[g.Qubit(1)]
		if t.Connected(p0, p1) {
			mapped, err := ir.NewGate(g.Kind(), []int{p0, p1}, 0)
			if err != nil {
				return nil, false, err
			}
			if err := st.routed.AddGate(mapped); err != nil {
				return nil, false, err
			}
			executedRound = append(executedRound, id)
		} else {
			next = append(next, id)
		}
	}

	if len(executedRound) == 0 {
		return front, false, nil
	}

	for _, id := range executedRound {
		st.executed[id] = true
		succs, err := dag.Successors(id)
		if err != nil {
			return nil, false, err
		}
		for _, succ := range succs {
			st.remaining[succ]--
			if st.remaining[succ] == 0 {
				next = append(next, succ)
			}
		}
	}
	slices.Sort(next)
	return next, true, nil
}

// swapPass selects and applies the single best SWAP for a fully blocked
// front layer. When no candidate is producible it falls back to the first
// hop of a shortest path for the first blocked gate.
func (r *SabreRouter) swapPass(dag *ir.DAG, t *Topology, st *sabreState, front []ir.GateID) error {
	a, b, found, err := r.selectSwap(dag, t, st, front)
	if err != nil {
		return err
	}
	if found {
		return st.applySwap(a, b)
	}

	g, err := dag.Gate(front[0])
	if err != nil {
		return err
	}
	p0, p1 := st.physOf[g.Qubit(0)], st.physOf[g.Qubit(1)]
	path, err := t.ShortestPath(p0, p1)
	if err != nil {
		return err
	}
	return st.applySwap(path[0], path[1])
}

// selectSwap scores every topology edge incident to a physical qubit
// holding an operand of a blocked front-layer gate and returns the
// lowest-scoring pair. Lower is better; ties keep the first discovered.
func (r *SabreRouter) selectSwap(dag *ir.DAG, t *Topology, st *sabreState, front []ir.GateID) (int, int, bool, error) {
	var active []int
	for _, id := range front {
		g, err := dag.Gate(id)
		if err != nil {
			return 0, 0, false, err
		}
		if g.NumQubits() != 2 {
			continue
		}
		for i := 0; i < 2; i++ {
			p := st.physOf[g.Qubit(i)]
			if !slices.Contains(active, p) {
				active = append(active, p)
			}
		}
	}
	slices.Sort(active)

	extended, err := r.extendedSet(dag, st, front)
	if err != nil {
		return 0, 0, false, err
	}

	bestScore := math.Inf(1)
	bestA, bestB := -1, -1
	scratch := make([]int, len(st.physOf))
	for _, p := range active {
		for _, nb := range t.adjacency[p] {
			score, err := r.scoreSwap(dag, t, st, front, extended, p, nb, scratch)
			if err != nil {
				return 0, 0, false, err
			}
			if score < bestScore {
				bestScore = score
				bestA, bestB = p, nb
			}
		}
	}
	return bestA, bestB, bestA != -1, nil
}

// extendedSet collects up to LookaheadDepth unexecuted successor nodes by
// breadth-first expansion across the front layer.
func (r *SabreRouter) extendedSet(dag *ir.DAG, st *sabreState, front []ir.GateID) ([]ir.GateID, error) {
	if r.LookaheadDepth <= 0 {
		return nil, nil
	}
	visited := make(map[ir.GateID]bool, len(front))
	for _, id := range front {
		visited[id] = true
	}
	queue := slices.Clone(front)
	var extended []ir.GateID
	for len(queue) > 0 && len(extended) < r.LookaheadDepth {
		id := queue[0]
		queue = queue[1:]
		succs, err := dag.Successors(id)
		if err != nil {
			return nil, err
		}
		for _, succ := range succs {
			if visited[succ] || st.executed[succ] {
				continue
			}
			visited[succ] = true
			extended = append(extended, succ)
			queue = append(queue, succ)
			if len(extended) == r.LookaheadDepth {
				break
			}
		}
	}
	return extended, nil
}

// scoreSwap simulates exchanging the logical occupants of (p0, p1) and
// returns the summed front-layer distance plus the weighted extended-set
// distance under the new mapping.
func (r *SabreRouter) scoreSwap(dag *ir.DAG, t *Topology, st *sabreState, front, extended []ir.GateID, p0, p1 int, scratch []int) (float64, error) {
	copy(scratch, st.physOf)
	if l0 := st.logOf[p0]; l0 != -1 {
		scratch[l0] = p1
	}
	if l1 := st.logOf[p1]; l1 != -1 {
		scratch[l1] = p0
	}

	t.ensureDistances()

	score := 0.0
	for _, id := range front {
		g, err := dag.Gate(id)
		if err != nil {
			return 0, err
		}
		if g.NumQubits() != 2 {
			continue
		}
		score += float64(t.dist[scratch[g.Qubit(0)]][scratch[g.Qubit(1)]])
	}

	extScore := 0.0
	for _, id := range extended {
		g, err := dag.Gate(id)
		if err != nil {
			return 0, err
		}
		if g.NumQubits() != 2 {
			continue
		}
		extScore += float64(t.dist[scratch[g.Qubit(0)]][scratch[g.Qubit(1)]])
	}

	return score + r.DecayFactor*r.ExtendedSetWeight*extScore, nil
}

// applySwap emits a SWAP gate on (a, b) and exchanges the two physical
// slots in both mapping arrays.
func (st *sabreState) applySwap(a, b int) error {
	swap, err := ir.NewSwap(a, b)
	if err != nil {
		return err
	}
	if err := st.routed.AddGate(swap); err != nil {
		return err
	}

	la, lb := st.logOf[a], st.logOf[b]
	if la != -1 {
		st.physOf[la] = b
	}
	if lb != -1 {
		st.physOf[lb] = a
	}
	st.logOf[a], st.logOf[b] = lb, la
	st.swaps++
	return nil
}
