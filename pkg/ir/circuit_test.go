package ir

import (
	"testing"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/qopterr"
)

func TestNewCircuitBounds(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false},
		{2, false},
		{MaxQubits, false},
		{0, true},
		{-1, true},
		{MaxQubits + 1, true},
	}

	for _, tt := range tests {
		_, err := NewCircuit(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewCircuit(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if tt.wantErr && !qopterr.Is(err, qopterr.CodeCircuitTooLarge) {
			t.Errorf("NewCircuit(%d) error code = %q, want CIRCUIT_TOO_LARGE", tt.n, qopterr.GetCode(err))
		}
	}
}

func TestAddGateRange(t *testing.T) {
	c, err := NewCircuit(2)
	if err != nil {
		t.Fatalf("NewCircuit: %v", err)
	}
	if err := c.AddGate(NewH(0)); err != nil {
		t.Fatalf("AddGate(H q0): %v", err)
	}
	err = c.AddGate(NewH(2))
	if !qopterr.Is(err, qopterr.CodeOutOfRangeQubit) {
		t.Errorf("AddGate(H q2) error = %v, want OUT_OF_RANGE_QUBIT", err)
	}
	cx, _ := NewCX(0, 5)
	if err := c.AddGate(cx); !qopterr.Is(err, qopterr.CodeOutOfRangeQubit) {
		t.Errorf("AddGate(CX 0,5) error = %v, want OUT_OF_RANGE_QUBIT", err)
	}
	if c.NumGates() != 1 {
		t.Errorf("NumGates() = %d after failed adds, want 1", c.NumGates())
	}
}

func TestGateIDsUnique(t *testing.T) {
	c, _ := NewCircuit(2)
	for i := 0; i < 4; i++ {
		if err := c.AddGate(NewH(0)); err != nil {
			t.Fatal(err)
		}
	}
	seen := map[GateID]bool{}
	for _, g := range c.Gates() {
		if seen[g.ID()] {
			t.Fatalf("duplicate gate ID %d", g.ID())
		}
		seen[g.ID()] = true
	}
}

func TestCircuitDepth(t *testing.T) {
	bell, _ := NewCircuit(2)
	cx01, _ := NewCX(0, 1)
	mustAdd(t, bell, NewH(0))
	mustAdd(t, bell, cx01)
	if got := bell.Depth(); got != 2 {
		t.Errorf("Bell depth = %d, want 2", got)
	}

	parallel, _ := NewCircuit(3)
	mustAdd(t, parallel, NewH(0))
	mustAdd(t, parallel, NewH(1))
	mustAdd(t, parallel, NewH(2))
	if got := parallel.Depth(); got != 1 {
		t.Errorf("parallel depth = %d, want 1", got)
	}

	empty, _ := NewCircuit(1)
	if got := empty.Depth(); got != 0 {
		t.Errorf("empty depth = %d, want 0", got)
	}

	ghz, _ := NewCircuit(4)
	cx12, _ := NewCX(1, 2)
	cx23, _ := NewCX(2, 3)
	mustAdd(t, ghz, NewH(0))
	mustAdd(t, ghz, cx01)
	mustAdd(t, ghz, cx12)
	mustAdd(t, ghz, cx23)
	if got := ghz.Depth(); got != 4 {
		t.Errorf("GHZ depth = %d, want 4", got)
	}
}

func TestCircuitCounters(t *testing.T) {
	c, _ := NewCircuit(3)
	cx, _ := NewCX(0, 1)
	cz, _ := NewCZ(1, 2)
	mustAdd(t, c, NewH(0))
	mustAdd(t, c, NewH(1))
	mustAdd(t, c, cx)
	mustAdd(t, c, cz)
	mustAdd(t, c, NewRz(2, 0.5))

	if got := c.CountGates(KindH); got != 2 {
		t.Errorf("CountGates(H) = %d, want 2", got)
	}
	if got := c.CountGates(KindX); got != 0 {
		t.Errorf("CountGates(X) = %d, want 0", got)
	}
	if got := c.CountTwoQubitGates(); got != 2 {
		t.Errorf("CountTwoQubitGates() = %d, want 2", got)
	}
}

func TestCircuitClone(t *testing.T) {
	c, _ := NewCircuit(2)
	mustAdd(t, c, NewH(0))
	clone := c.Clone()
	mustAdd(t, clone, NewH(1))
	if c.NumGates() != 1 || clone.NumGates() != 2 {
		t.Errorf("clone not independent: orig %d gates, clone %d", c.NumGates(), clone.NumGates())
	}
}

func mustAdd(t *testing.T, c *Circuit, g Gate) {
	t.Helper()
	if err := c.AddGate(g); err != nil {
		t.Fatalf("AddGate(%v): %v", g, err)
	}
}
