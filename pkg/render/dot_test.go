package render

import (
	"strings"
	"testing"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

func TestToDOT(t *testing.T) {
	c, err := ir.NewCircuit(2)
	if err != nil {
		t.Fatal(err)
	}
	cx, err := ir.NewCX(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range []ir.Gate{ir.NewH(0), cx, ir.NewH(1)} {
		if err := c.AddGate(g); err != nil {
			t.Fatal(err)
		}
	}

	dot, err := ToDOT(ir.FromCircuit(c))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"digraph circuit",
		`n0 [label="H q0"]`,
		`n1 [label="CNOT(0,1)", peripheries=2]`,
		"n0 -> n1;",
		"n1 -> n2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "n2 -> ") {
		t.Errorf("sink node must have no outgoing edges:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	c, err := ir.NewCircuit(1)
	if err != nil {
		t.Fatal(err)
	}
	dot, err := ToDOT(ir.FromCircuit(c))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, "digraph circuit") {
		t.Errorf("empty DOT malformed:\n%s", dot)
	}
}
