package passes

import (
	"math"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// cancellingPair reports whether g1·g2 equals the identity, assuming the
// gates act on the same ordered operand tuple. Hermitian kinds cancel with
// an equal kind; S/Sdg and T/Tdg cancel as adjoint pairs. Rotations are
// never cancelled here: the merge + identity-elimination path owns them.
func cancellingPair(g1, g2 ir.Gate) bool {
	if g1.Kind().Hermitian() {
		return g1.Kind() == g2.Kind()
	}
	switch g1.Kind() {
	case ir.KindS:
		return g2.Kind() == ir.KindSdg
	case ir.KindSdg:
		return g2.Kind() == ir.KindS
	case ir.KindT:
		return g2.Kind() == ir.KindTdg
	case ir.KindTdg:
		return g2.Kind() == ir.KindT
	}
	return false
}

// couldCancel reports whether the two gates form a cancelling pair on the
// same ordered operand tuple.
func couldCancel(g1, g2 ir.Gate) bool {
	return g1.SameOperands(g2) && cancellingPair(g1, g2)
}

// couldMerge reports whether the two gates are same-axis rotations on the
// same qubit.
func couldMerge(g1, g2 ir.Gate) bool {
	return g1.Kind() == g2.Kind() && g1.Kind().Parameterized() && g1.SameOperands(g2)
}

// diagonal reports whether the kind is diagonal in the computational basis.
func diagonal(k ir.Kind) bool {
	switch k {
	case ir.KindZ, ir.KindS, ir.KindSdg, ir.KindT, ir.KindTdg, ir.KindRz, ir.KindCZ:
		return true
	default:
		return false
	}
}

// zLike reports whether the kind is a diagonal single-qubit gate.
func zLike(k ir.Kind) bool {
	switch k {
	case ir.KindZ, ir.KindS, ir.KindSdg, ir.KindT, ir.KindTdg, ir.KindRz:
		return true
	default:
		return false
	}
}

// commutes reports whether [g1, g2] = 0 under the recognizer's rule set:
// disjoint supports, equal (kind, operands), both diagonal, a Z-like gate
// on a CX control, or X on a CX target.
func commutes(g1, g2 ir.Gate) bool {
	if !g1.Overlaps(g2) {
		return true
	}
	if g1.Kind() == g2.Kind() && g1.SameOperands(g2) {
		return true
	}
	if diagonal(g1.Kind()) && diagonal(g2.Kind()) {
		return true
	}
	// Z-like on the control wire of a CX
	if zLike(g1.Kind()) && g2.Kind() == ir.KindCX && g1.Qubit(0) == g2.Qubit(0) {
		return true
	}
	if zLike(g2.Kind()) && g1.Kind() == ir.KindCX && g2.Qubit(0) == g1.Qubit(0) {
		return true
	}
	// X on the target wire of a CX
	if g1.Kind() == ir.KindX && g2.Kind() == ir.KindCX && g1.Qubit(0) == g2.Qubit(1) {
		return true
	}
	if g2.Kind() == ir.KindX && g1.Kind() == ir.KindCX && g2.Qubit(0) == g1.Qubit(1) {
		return true
	}
	return false
}

// normalizeAngle reduces an angle modulo 2π and shifts it into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// effectivelyZero reports whether the angle is 0 mod 2π within tolerance.
func effectivelyZero(a, tolerance float64) bool {
	r := math.Mod(math.Abs(a), 2*math.Pi)
	return r < tolerance || (2*math.Pi-r) < tolerance
}
