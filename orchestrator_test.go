package radhydro

import (
	"math"
	"testing"
)

// fakeFluid is a minimal Fluid implementation for exercising the
// orchestrator without a real hydrodynamics/grid collaborator.
type fakeFluid struct {
	grid *Grid
	star *Star

	dfloor, pfloor float64

	calls []string
}

func newFakeFluid(n int) *fakeFluid {
	cells := make([]*GridCell, n)
	for i := range cells {
		cells[i] = &GridCell{HeatCapacityRatio: 5.0 / 3.0}
		cells[i].Q[DEN] = 1
		cells[i].Q[PRE] = 1
		cells[i].U[UMASS] = 1
		cells[i].U[UENERGY] = 1
		for k := range cells[i].NeighborIDs {
			cells[i].NeighborIDs[k] = NoNeighbor
		}
	}
	g := NewGrid(cells, [NDim]float64{1, 1, 1})
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g.SetCausalOrder(nil, idx)
	return &fakeFluid{grid: g, star: &Star{Core: Absent}, dfloor: 1e-24, pfloor: 1e-14}
}

func (f *fakeFluid) Grid() *Grid { return f.grid }
func (f *fakeFluid) Star() *Star { return f.star }
func (f *fakeFluid) CalcTemperature(hii, pre, den float64) float64 {
	return pre / den
}
func (f *fakeFluid) GlobalQfromU() error   { f.calls = append(f.calls, "GlobalQfromU"); return nil }
func (f *fakeFluid) GlobalUfromQ() error   { f.calls = append(f.calls, "GlobalUfromQ"); return nil }
func (f *fakeFluid) FixPrimitives() error  { f.calls = append(f.calls, "FixPrimitives"); return nil }
func (f *fakeFluid) AdvSolution(dt float64) error {
	f.calls = append(f.calls, "AdvSolution")
	return nil
}
func (f *fakeFluid) FixSolution() error { f.calls = append(f.calls, "FixSolution"); return nil }
func (f *fakeFluid) Dfloor() float64    { return f.dfloor }
func (f *fakeFluid) Pfloor() float64    { return f.pfloor }

// fakeIntegrator records which methods were called, for verifying the
// orchestrator's sequencing.
type fakeIntegrator struct {
	name  string
	dt    float64
	calls []string
}

func (fi *fakeIntegrator) PreTimeStepCalculations(f Fluid) error {
	fi.calls = append(fi.calls, "PreTimeStepCalculations")
	return nil
}
func (fi *fakeIntegrator) Integrate(dt float64, f Fluid) error {
	fi.calls = append(fi.calls, "Integrate")
	return nil
}
func (fi *fakeIntegrator) UpdateSourceTerms(dt float64, f Fluid) error {
	fi.calls = append(fi.calls, "UpdateSourceTerms")
	return nil
}
func (fi *fakeIntegrator) CalculateTimeStep(dtMax float64, f Fluid) (float64, error) {
	if fi.dt > 0 {
		return fi.dt, nil
	}
	return dtMax, nil
}
func (fi *fakeIntegrator) ComponentName() string { return fi.name }

func TestFullStepSingleComponentRunsHydroStepOnly(t *testing.T) {
	f := newFakeFluid(1)
	cfg := NewConfig()
	cfg.DtMax = 10
	cfg.Tmax = 1000
	hydro := &fakeIntegrator{name: "hydro"}
	o := NewOrchestrator(f, cfg, map[ComponentID]Integrator{Hydro: hydro}, []ComponentID{Hydro}, nil)

	// First call is the firstTimeStep bootstrap.
	dt, err := o.FullStep(cfg.DtMax)
	if err != nil {
		t.Fatal(err)
	}
	if dt <= 0 || dt >= cfg.DtMax {
		t.Errorf("bootstrap dt = %g, want a small positive fraction of DtMax", dt)
	}
	// hydroStep calls Integrate/UpdateSourceTerms twice (predictor+corrector).
	n := countOccurrences(hydro.calls, "Integrate")
	if n != 2 {
		t.Errorf("hydro.Integrate called %d times in hydroStep, want 2", n)
	}
}

func TestFullStepMultiComponentRotatesStepCounter(t *testing.T) {
	f := newFakeFluid(1)
	cfg := NewConfig()
	cfg.DtMax = 10
	cfg.Tmax = 1000
	cfg.CoolingOn = true
	hydro := &fakeIntegrator{name: "hydro"}
	thermo := &fakeIntegrator{name: "thermo"}
	components := map[ComponentID]Integrator{Hydro: hydro, Thermo: thermo}
	active := []ComponentID{Hydro, Thermo}
	o := NewOrchestrator(f, cfg, components, active, nil)

	if _, err := o.FullStep(cfg.DtMax); err != nil {
		t.Fatal(err)
	}
	if _, err := o.FullStep(cfg.DtMax); err != nil {
		t.Fatal(err)
	}
	if o.stepCounter != 0 {
		t.Errorf("stepCounter after 2 steps over 2 components = %d, want 0 (wrapped)", o.stepCounter)
	}
}

func TestCalculateTimeStepCollapseSetsQuitting(t *testing.T) {
	f := newFakeFluid(1)
	cfg := NewConfig()
	cfg.DtMax = 10
	cfg.Tmax = 1e12 // huge tmax makes any dt collapse the thyd/trad/ttherm ratio
	hydro := &fakeIntegrator{name: "hydro", dt: 1e-6}
	o := NewOrchestrator(f, cfg, map[ComponentID]Integrator{Hydro: hydro}, []ComponentID{Hydro}, nil)
	o.firstTimeStep = false

	if _, err := o.calculateTimeStep(); err != nil {
		t.Fatal(err)
	}
	if !o.Quitting() {
		t.Error("expected Quitting() to be true when dt/tmax collapses below 1e-6")
	}
}

func TestCheckValuesCatchesNaN(t *testing.T) {
	f := newFakeFluid(1)
	f.grid.Cells[0].U[UENERGY] = math.NaN()
	cfg := NewConfig()
	o := NewOrchestrator(f, cfg, nil, []ComponentID{Hydro}, nil)

	if err := o.checkValues("test"); err == nil {
		t.Error("expected checkValues to report a catastrophic error for NaN energy")
	}
}

func TestCheckValuesCatchesZeroDensity(t *testing.T) {
	f := newFakeFluid(1)
	f.grid.Cells[0].Q[DEN] = 0
	cfg := NewConfig()
	o := NewOrchestrator(f, cfg, nil, []ComponentID{Hydro}, nil)

	if err := o.checkValues("test"); err == nil {
		t.Error("expected checkValues to report a catastrophic error for zero density")
	}
}

func TestInitMinTempFieldUsesFlatFloorByDefault(t *testing.T) {
	f := newFakeFluid(3)
	cfg := NewConfig()
	cfg.Tfloor = 250
	cfg.Thermo.MinTempInitialState = false
	o := NewOrchestrator(f, cfg, nil, nil, nil)

	o.InitMinTempField()
	for _, c := range f.grid.Cells {
		if c.Tmin != 250 {
			t.Errorf("Tmin = %g, want flat floor 250", c.Tmin)
		}
	}
}

func TestInitMinTempFieldUsesInitialStateWhenConfigured(t *testing.T) {
	f := newFakeFluid(1)
	f.grid.Cells[0].Q[PRE] = 4
	f.grid.Cells[0].Q[DEN] = 2
	cfg := NewConfig()
	cfg.Thermo.MinTempInitialState = true
	o := NewOrchestrator(f, cfg, nil, nil, nil)

	o.InitMinTempField()
	want := f.CalcTemperature(0, 4, 2)
	if f.grid.Cells[0].Tmin != want {
		t.Errorf("Tmin = %g, want %g (from initial state)", f.grid.Cells[0].Tmin, want)
	}
}

func TestCheckpointerFiresAtEqualIntervals(t *testing.T) {
	cp := NewCheckpointer(100, 4)
	times := []float64{10, 25, 26, 50, 75, 100}
	wantFire := []bool{false, true, false, true, true, true}
	for i, tt := range times {
		_, fired := cp.Update(tt)
		if fired != wantFire[i] {
			t.Errorf("Update(%g) fired = %v, want %v", tt, fired, wantFire[i])
		}
	}
	if cp.Count() != 4 {
		t.Errorf("Count() = %d, want 4", cp.Count())
	}
}

func TestCheckpointIfDueMatchesCheckpointerUpdate(t *testing.T) {
	f := newFakeFluid(3)
	f.grid.Cells[0].Q[DEN] = 1
	f.grid.Cells[1].Q[DEN] = 2
	f.grid.Cells[2].Q[DEN] = 3
	cfg := NewConfig()
	cfg.Tmax = 100
	cfg.NCheckpoints = 4
	o := NewOrchestrator(f, cfg, nil, nil, nil)

	dt, fired := o.CheckpointIfDue(10)
	if fired {
		t.Error("CheckpointIfDue fired at t=10 against a 4-way split of tmax=100")
	}
	if dt <= 0 {
		t.Errorf("dtUntilNext = %g, want positive", dt)
	}
}

func TestCheckpointIfDueFiresAtBoundary(t *testing.T) {
	f := newFakeFluid(2)
	cfg := NewConfig()
	cfg.Tmax = 100
	cfg.NCheckpoints = 2
	o := NewOrchestrator(f, cfg, nil, nil, nil)

	if _, fired := o.CheckpointIfDue(50); !fired {
		t.Error("expected CheckpointIfDue to fire at the first checkpoint boundary")
	}
	if o.checkpointer.Count() != 1 {
		t.Errorf("checkpointer Count() = %d, want 1", o.checkpointer.Count())
	}
}

func TestCheckpointIfDueNilLoggerDoesNotPanic(t *testing.T) {
	f := newFakeFluid(1)
	cfg := NewConfig()
	cfg.Tmax = 10
	cfg.NCheckpoints = 1
	o := NewOrchestrator(f, cfg, nil, nil, nil)

	if _, fired := o.CheckpointIfDue(10); !fired {
		t.Error("expected a checkpoint to fire at t=tmax")
	}
}

func countOccurrences(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}
