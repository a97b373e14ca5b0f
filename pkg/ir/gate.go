package ir

import (
	"fmt"
	"strings"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

// Kind identifies a gate in the closed gate set.
//
// The set is partitioned into Clifford singletons (H, X, Y, Z, S, Sdg, T,
// Tdg), parameterized single-qubit rotations (Rx, Ry, Rz), and two-qubit
// gates (CX, CZ, Swap).
type Kind int

const (
	KindH Kind = iota
	KindX
	KindY
	KindZ
	KindS
	KindSdg
	KindT
	KindTdg
	KindRx
	KindRy
	KindRz
	KindCX
	KindCZ
	KindSwap

	numKinds
)

// GateID uniquely identifies a gate within a Circuit or DAG.
// IDs are assigned on insertion and are not stable across rebuilds.
type GateID int

// InvalidGateID is the sentinel for unassigned or missing gate IDs.
const InvalidGateID GateID = -1

// kindNames holds the wire-stable identifier for each kind.
// CX is spelled CNOT on the wire; both spellings parse.
var kindNames = [numKinds]string{
	"H", "X", "Y", "Z", "S", "Sdg", "T", "Tdg",
	"Rx", "Ry", "Rz", "CNOT", "CZ", "SWAP",
}

// String returns the wire-stable name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a wire name to a Kind. Matching is case-insensitive
// and accepts both CNOT and CX for the controlled-X gate.
func ParseKind(name string) (Kind, bool) {
	if strings.EqualFold(name, "CX") {
		return KindCX, true
	}
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(k), true
		}
	}
	return 0, false
}

// Arity returns the number of qubits the kind acts on.
func (k Kind) Arity() int {
	switch k {
	case KindCX, KindCZ, KindSwap:
		return 2
	default:
		return 1
	}
}

// Parameterized reports whether the kind carries a rotation angle.
func (k Kind) Parameterized() bool {
	return k == KindRx || k == KindRy || k == KindRz
}

// Hermitian reports whether the kind is self-inverse.
func (k Kind) Hermitian() bool {
	switch k {
	case KindH, KindX, KindY, KindZ, KindCX, KindCZ, KindSwap:
		return true
	default:
		return false
	}
}

// Gate is an immutable gate value: a kind, its ordered qubit operands, and
// an angle for parameterized kinds. The zero value is not a valid gate; use
// the constructors.
//
// For CX the operand tuple is (control, target). CZ is symmetric in
// semantics but stored as given. SWAP's tuple is unordered semantically.
type Gate struct {
	kind   Kind
	qubits [2]int
	angle  float64
	id     GateID
}

// NewGate constructs a validated gate of any kind. Non-parameterized kinds
// must pass angle 0; use the typed constructors where convenient.
func NewGate(kind Kind, qubits []int, angle float64) (Gate, error) {
	if kind < 0 || kind >= numKinds {
		return Gate{}, qopterr.New(qopterr.CodeInvalidGate, "unknown gate kind %d", int(kind))
	}
	if len(qubits) != kind.Arity() {
		return Gate{}, qopterr.New(qopterr.CodeInvalidGate,
			"%s expects %d operand(s), got %d", kind, kind.Arity(), len(qubits))
	}
	if !kind.Parameterized() && angle != 0 {
		return Gate{}, qopterr.New(qopterr.CodeInvalidGate,
			"%s does not take an angle", kind)
	}
	for _, q := range qubits {
		if q < 0 {
			return Gate{}, qopterr.New(qopterr.CodeInvalidGate,
				"%s operand %d is negative", kind, q)
		}
	}
	if kind.Arity() == 2 && qubits[0] == qubits[1] {
		return Gate{}, qopterr.New(qopterr.CodeInvalidGate,
			"%s operands must be distinct, got qubit %d twice", kind, qubits[0])
	}
	g := Gate{kind: kind, angle: angle, id: InvalidGateID}
	copy(g.qubits[:], qubits)
	return g, nil
}

// NewH returns a Hadamard gate on q.
func NewH(q int) Gate { return mustSingle(KindH, q) }

// NewX returns a Pauli-X gate on q.
func NewX(q int) Gate { return mustSingle(KindX, q) }

// NewY returns a Pauli-Y gate on q.
func NewY(q int) Gate { return mustSingle(KindY, q) }

// NewZ returns a Pauli-Z gate on q.
func NewZ(q int) Gate { return mustSingle(KindZ, q) }

// NewS returns a phase gate on q.
func NewS(q int) Gate { return mustSingle(KindS, q) }

// NewSdg returns the adjoint phase gate on q.
func NewSdg(q int) Gate { return mustSingle(KindSdg, q) }

// NewT returns a T gate on q.
func NewT(q int) Gate { return mustSingle(KindT, q) }

// NewTdg returns the adjoint T gate on q.
func NewTdg(q int) Gate { return mustSingle(KindTdg, q) }

// NewRx returns an X-axis rotation by angle radians on q.
func NewRx(q int, angle float64) Gate { return mustRotation(KindRx, q, angle) }

// NewRy returns a Y-axis rotation by angle radians on q.
func NewRy(q int, angle float64) Gate { return mustRotation(KindRy, q, angle) }

// NewRz returns a Z-axis rotation by angle radians on q.
func NewRz(q int, angle float64) Gate { return mustRotation(KindRz, q, angle) }

// NewCX returns a controlled-X gate with the given control and target.
func NewCX(control, target int) (Gate, error) {
	return NewGate(KindCX, []int{control, target}, 0)
}

// NewCZ returns a controlled-Z gate on the given pair.
func NewCZ(control, target int) (Gate, error) {
	return NewGate(KindCZ, []int{control, target}, 0)
}

// NewSwap returns a SWAP gate on the given pair.
func NewSwap(a, b int) (Gate, error) {
	return NewGate(KindSwap, []int{a, b}, 0)
}

func mustSingle(kind Kind, q int) Gate {
	g, err := NewGate(kind, []int{q}, 0)
	if err != nil {
		panic(err)
	}
	return g
}

func mustRotation(kind Kind, q int, angle float64) Gate {
	g, err := NewGate(kind, []int{q}, angle)
	if err != nil {
		panic(err)
	}
	return g
}

// Kind returns the gate's kind.
func (g Gate) Kind() Kind { return g.kind }

// Qubits returns the ordered operand tuple. The returned slice is a copy.
func (g Gate) Qubits() []int {
	out := make([]int, g.kind.Arity())
	copy(out, g.qubits[:])
	return out
}

// Qubit returns the i-th operand without allocating.
func (g Gate) Qubit(i int) int { return g.qubits[i] }

// NumQubits returns the gate's arity.
func (g Gate) NumQubits() int { return g.kind.Arity() }

// Angle returns the rotation angle in radians; zero for non-parameterized
// kinds.
func (g Gate) Angle() float64 { return g.angle }

// ID returns the gate's identifier within its owning container, or
// InvalidGateID if unassigned.
func (g Gate) ID() GateID { return g.id }

// WithID returns a copy of the gate carrying the given ID.
func (g Gate) WithID(id GateID) Gate {
	g.id = id
	return g
}

// Touches reports whether the gate acts on qubit q.
func (g Gate) Touches(q int) bool {
	for i := 0; i < g.NumQubits(); i++ {
		if g.qubits[i] == q {
			return true
		}
	}
	return false
}

// SameOperands reports whether both gates act on the same ordered operand
// tuple.
func (g Gate) SameOperands(o Gate) bool {
	if g.NumQubits() != o.NumQubits() {
		return false
	}
	for i := 0; i < g.NumQubits(); i++ {
		if g.qubits[i] != o.qubits[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether the gates share at least one qubit.
func (g Gate) Overlaps(o Gate) bool {
	for i := 0; i < g.NumQubits(); i++ {
		if o.Touches(g.qubits[i]) {
			return true
		}
	}
	return false
}

// Equal compares kind, operand tuple, and angle. Angles are compared
// bit-exactly; two angles equal mod 2π but not bit-equal compare unequal.
// Gate IDs are ignored.
func (g Gate) Equal(o Gate) bool {
	return g.kind == o.kind && g.SameOperands(o) && g.angle == o.angle
}

// String renders the gate for logs and debug output, e.g. "CNOT(0,1)" or
// "Rz(1.5708) q2".
func (g Gate) String() string {
	if g.kind.Parameterized() {
		return fmt.Sprintf("%s(%g) q%d", g.kind, g.angle, g.qubits[0])
	}
	if g.NumQubits() == 2 {
		return fmt.Sprintf("%s(%d,%d)", g.kind, g.qubits[0], g.qubits[1])
	}
	return fmt.Sprintf("%s q%d", g.kind, g.qubits[0])
}
