package radhydro

import (
	"math"
	"testing"
)

func newTestReferenceFluid(n int) (*ReferenceFluid, *Grid) {
	g := newTestGrid(n)
	f := NewReferenceFluid(g, &Star{Core: Absent}, 5.0/3.0, 0.7, 1.0, 1e-24, 1e-14)
	return f, g
}

func TestReferenceFluidGlobalUfromQThenGlobalQfromURoundTrips(t *testing.T) {
	f, g := newTestReferenceFluid(1)
	c := g.Cells[0]
	c.Q[DEN] = 2.0
	c.Q[PRE] = 5.0
	c.Q[VEL] = 1.5

	if err := f.GlobalUfromQ(); err != nil {
		t.Fatal(err)
	}
	// Perturb Q to make sure GlobalQfromU actually recomputes it from U.
	c.Q[DEN], c.Q[PRE], c.Q[VEL] = 0, 0, 0

	if err := f.GlobalQfromU(); err != nil {
		t.Fatal(err)
	}
	if c.Q[DEN] != 2.0 {
		t.Errorf("DEN round-trip = %g, want 2.0", c.Q[DEN])
	}
	if math.Abs(c.Q[PRE]-5.0) > 1e-9 {
		t.Errorf("PRE round-trip = %g, want ~5.0", c.Q[PRE])
	}
	if math.Abs(c.Q[VEL]-1.5) > 1e-9 {
		t.Errorf("VEL round-trip = %g, want ~1.5", c.Q[VEL])
	}
}

func TestReferenceFluidFixPrimitivesClampsFloors(t *testing.T) {
	f, g := newTestReferenceFluid(1)
	c := g.Cells[0]
	c.Q[DEN] = -1
	c.Q[PRE] = -1
	c.Q[HII] = 1.5

	if err := f.FixPrimitives(); err != nil {
		t.Fatal(err)
	}
	if c.Q[DEN] != f.Dfloor() {
		t.Errorf("DEN = %g, want floor %g", c.Q[DEN], f.Dfloor())
	}
	if c.Q[PRE] != f.Pfloor() {
		t.Errorf("PRE = %g, want floor %g", c.Q[PRE], f.Pfloor())
	}
	if c.Q[HII] != 1 {
		t.Errorf("HII = %g, want clamped to 1", c.Q[HII])
	}
}

func TestReferenceFluidFixPrimitivesClampsNegativeHII(t *testing.T) {
	f, g := newTestReferenceFluid(1)
	g.Cells[0].Q[HII] = -0.5
	if err := f.FixPrimitives(); err != nil {
		t.Fatal(err)
	}
	if g.Cells[0].Q[HII] != 0 {
		t.Errorf("HII = %g, want clamped to 0", g.Cells[0].Q[HII])
	}
}

func TestReferenceFluidAdvSolutionIsNoOp(t *testing.T) {
	f, g := newTestReferenceFluid(1)
	c := g.Cells[0]
	c.U[UMASS] = 7
	if err := f.AdvSolution(1.0); err != nil {
		t.Fatal(err)
	}
	if c.U[UMASS] != 7 {
		t.Error("AdvSolution mutated conservative state")
	}
}

func TestReferenceFluidFixSolutionRecomputesThenClamps(t *testing.T) {
	f, g := newTestReferenceFluid(1)
	c := g.Cells[0]
	c.U[UMASS] = -5
	c.U[UENERGY] = -5

	if err := f.FixSolution(); err != nil {
		t.Fatal(err)
	}
	if c.Q[DEN] != f.Dfloor() {
		t.Errorf("DEN after FixSolution = %g, want floor %g", c.Q[DEN], f.Dfloor())
	}
	if c.Q[PRE] != f.Pfloor() {
		t.Errorf("PRE after FixSolution = %g, want floor %g", c.Q[PRE], f.Pfloor())
	}
}

func TestReferenceFluidCalcTemperatureNeutralVsIonised(t *testing.T) {
	f, _ := newTestReferenceFluid(1)
	neutral := f.CalcTemperature(0, 1.0, 1.0)
	ionised := f.CalcTemperature(1, 1.0, 1.0)
	if ionised >= neutral {
		t.Errorf("ionised temperature %g should be lower than neutral %g at fixed P,den (higher muInv)", ionised, neutral)
	}
}

func TestReferenceFluidGridAndStarAccessors(t *testing.T) {
	f, g := newTestReferenceFluid(2)
	if f.Grid() != g {
		t.Error("Grid() did not return the grid passed to NewReferenceFluid")
	}
	if f.Star().Core != Absent {
		t.Error("Star() did not return the star passed to NewReferenceFluid")
	}
}
