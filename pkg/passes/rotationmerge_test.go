package passes

import (
	"math"
	"testing"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

func singleGate(t *testing.T, d *ir.DAG) ir.Gate {
	t.Helper()
	if d.NumNodes() != 1 {
		t.Fatalf("expected one node, have %d", d.NumNodes())
	}
	g, err := d.Gate(d.NodeIDs()[0])
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRotationMergeChain(t *testing.T) {
	// Rz(π/4); Rz(π/4); Rz(π/2) collapses to a single Rz(π).
	d := buildDAG(t, 1,
		ir.NewRz(0, math.Pi/4),
		ir.NewRz(0, math.Pi/4),
		ir.NewRz(0, math.Pi/2),
	)
	p := NewRotationMergePass()
	runPass(t, p, d)

	g := singleGate(t, d)
	if g.Kind() != ir.KindRz {
		t.Fatalf("kind = %v, want Rz", g.Kind())
	}
	if math.Abs(g.Angle()-math.Pi) > 1e-12 {
		t.Errorf("angle = %v, want π", g.Angle())
	}
	if got := p.Statistics().GatesRemoved; got != 2 {
		t.Errorf("GatesRemoved = %d, want 2", got)
	}
}

func TestRotationMergeNormalization(t *testing.T) {
	// Rz(π)·Rz(π) sums to 2π, which normalizes to 0.
	d := buildDAG(t, 1, ir.NewRz(0, math.Pi), ir.NewRz(0, math.Pi))
	runPass(t, NewRotationMergePass(), d)

	g := singleGate(t, d)
	if math.Abs(g.Angle()) > 1e-12 {
		t.Errorf("angle = %v, want 0", g.Angle())
	}
}

func TestRotationMergeRules(t *testing.T) {
	tests := []struct {
		name      string
		gates     []ir.Gate
		wantNodes int
	}{
		{
			"different axes do not merge",
			[]ir.Gate{ir.NewRz(0, 1.0), ir.NewRx(0, 1.0)},
			2,
		},
		{
			"different qubits do not merge",
			[]ir.Gate{ir.NewRz(0, 1.0), ir.NewRz(1, 1.0)},
			2,
		},
		{
			"barrier blocks merge",
			[]ir.Gate{ir.NewRz(0, 1.0), ir.NewH(0), ir.NewRz(0, 1.0)},
			3,
		},
		{
			"rx chain merges",
			[]ir.Gate{ir.NewRx(0, 0.5), ir.NewRx(0, 0.25)},
			1,
		},
		{
			"ry chain merges",
			[]ir.Gate{ir.NewRy(0, 0.5), ir.NewRy(0, 0.25), ir.NewRy(0, 0.25)},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildDAG(t, 2, tt.gates...)
			runPass(t, NewRotationMergePass(), d)
			if d.NumNodes() != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", d.NumNodes(), tt.wantNodes)
			}
		})
	}
}

func TestRotationMergeNoAdjacentPairsRemain(t *testing.T) {
	d := buildDAG(t, 2,
		ir.NewRz(0, 0.3), ir.NewRz(0, 0.4),
		ir.NewRx(1, 0.1), ir.NewRx(1, 0.2), ir.NewRx(1, 0.3),
		ir.NewH(0), ir.NewRz(0, 0.5), ir.NewRz(0, 0.6),
	)
	runPass(t, NewRotationMergePass(), d)

	order, err := d.TopologicalOrder()
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range order {
		g, _ := d.Gate(id)
		if !g.Kind().Parameterized() {
			continue
		}
		succs, _ := d.Successors(id)
		for _, succ := range succs {
			sg, _ := d.Gate(succ)
			if couldMerge(g, sg) {
				t.Errorf("adjacent mergeable pair survives: %v → %v", g, sg)
			}
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotationMergeIdempotent(t *testing.T) {
	d := buildDAG(t, 1, ir.NewRz(0, 0.5), ir.NewRz(0, 0.5), ir.NewH(0), ir.NewRz(0, 0.25))
	p := NewRotationMergePass()
	runPass(t, p, d)
	runPass(t, p, d)
	if got := p.Statistics().GatesRemoved; got != 0 {
		t.Errorf("second run removed %d, want 0", got)
	}
}
