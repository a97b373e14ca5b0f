package qasm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// gate spellings in emitted QASM, lowercase per convention.
var printNames = map[ir.Kind]string{
	ir.KindH:    "h",
	ir.KindX:    "x",
	ir.KindY:    "y",
	ir.KindZ:    "z",
	ir.KindS:    "s",
	ir.KindSdg:  "sdg",
	ir.KindT:    "t",
	ir.KindTdg:  "tdg",
	ir.KindRx:   "rx",
	ir.KindRy:   "ry",
	ir.KindRz:   "rz",
	ir.KindCX:   "cx",
	ir.KindCZ:   "cz",
	ir.KindSwap: "swap",
}

// Write emits the circuit in the same dialect Parse accepts, so emitted
// output round-trips through the front-end.
func Write(w io.Writer, c *ir.Circuit) error {
	if _, err := fmt.Fprintf(w, "OPENQASM 2.0;\nqreg q[%d];\n", c.NumQubits()); err != nil {
		return err
	}
	for _, g := range c.Gates() {
		if _, err := io.WriteString(w, formatGate(g)); err != nil {
			return err
		}
	}
	return nil
}

// Format renders the circuit to a string.
func Format(c *ir.Circuit) string {
	var sb strings.Builder
	_ = Write(&sb, c)
	return sb.String()
}

func formatGate(g ir.Gate) string {
	var sb strings.Builder
	sb.WriteString(printNames[g.Kind()])
	if g.Kind().Parameterized() {
		sb.WriteString("(")
		sb.WriteString(strconv.FormatFloat(g.Angle(), 'g', -1, 64))
		sb.WriteString(")")
	}
	sb.WriteString(" ")
	for i := 0; i < g.NumQubits(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", g.Qubit(i))
	}
	sb.WriteString(";\n")
	return sb.String()
}
