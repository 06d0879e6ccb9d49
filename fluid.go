package radhydro

// Fluid is the external collaborator contract the hard core consumes
// (spec §6). Mesh construction, primitive↔conservative conversion,
// Riemann solver / slope limiter choice are all out of scope (spec
// §1); only the call surface the integrators and orchestrator need
// is specified here, grounded on original_source/src/hydro.hpp's
// method set.
type Fluid interface {
	Grid() *Grid
	Star() *Star

	// CalcTemperature derives temperature from primitive state.
	CalcTemperature(hii, pre, den float64) float64

	GlobalQfromU() error
	GlobalUfromQ() error
	FixPrimitives() error

	// AdvSolution advances the conservative state by dt with the
	// fluid's own transport. Per-component source terms are not read
	// here: each component's UpdateSourceTerms has already folded them
	// into U (and cleared T[RATE]) before this is called.
	AdvSolution(dt float64) error

	// FixSolution clamps conservative/primitive state to the
	// configured floors after an advance.
	FixSolution() error

	Dfloor() float64
	Pfloor() float64
}

// ReferenceFluid is a minimal, self-contained Fluid: ideal-gas
// primitive/conservative bookkeeping with no spatial transport. Real
// flux/Riemann-solver/mesh-refinement logic is out of scope (see the
// Fluid interface above); ReferenceFluid exists so a driver can run the
// orchestrator over components that need no spatial transport of
// their own (thermodynamics, paired with NullHydro).
type ReferenceFluid struct {
	grid          *Grid
	star          *Star
	gamma         float64
	massFractionH float64
	rspec         float64
	dfloor        float64
	pfloor        float64
}

// NewReferenceFluid builds a ReferenceFluid over grid. massFractionH
// and rspec must match the values passed to the thermodynamics
// integrator's PhysicalConstants/ThermoParameters, so CalcTemperature
// stays consistent across components (see science/thermo.Integrator's
// muInv formula, which this mirrors).
func NewReferenceFluid(grid *Grid, star *Star, gamma, massFractionH, rspec, dfloor, pfloor float64) *ReferenceFluid {
	return &ReferenceFluid{
		grid:          grid,
		star:          star,
		gamma:         gamma,
		massFractionH: massFractionH,
		rspec:         rspec,
		dfloor:        dfloor,
		pfloor:        pfloor,
	}
}

func (f *ReferenceFluid) Grid() *Grid { return f.grid }
func (f *ReferenceFluid) Star() *Star { return f.star }

// CalcTemperature implements Fluid.
func (f *ReferenceFluid) CalcTemperature(hii, pre, den float64) float64 {
	muInv := f.massFractionH*(hii+1.0) + (1.0-f.massFractionH)*0.25
	return pre / (muInv * f.rspec * den)
}

// GlobalQfromU implements Fluid.
func (f *ReferenceFluid) GlobalQfromU() error {
	for _, c := range f.grid.Cells {
		den := c.U[UMASS]
		var kinetic float64
		for d := 0; d < NDim; d++ {
			v := c.U[UMOM+d] / den
			c.Q[VEL+d] = v
			kinetic += 0.5 * den * v * v
		}
		c.Q[DEN] = den
		c.Q[PRE] = (f.gamma - 1.0) * (c.U[UENERGY] - kinetic)
	}
	return nil
}

// GlobalUfromQ implements Fluid.
func (f *ReferenceFluid) GlobalUfromQ() error {
	for _, c := range f.grid.Cells {
		var kinetic float64
		for d := 0; d < NDim; d++ {
			c.U[UMOM+d] = c.Q[DEN] * c.Q[VEL+d]
			kinetic += 0.5 * c.Q[DEN] * c.Q[VEL+d] * c.Q[VEL+d]
		}
		c.U[UMASS] = c.Q[DEN]
		c.U[UENERGY] = c.Q[PRE]/(f.gamma-1.0) + kinetic
	}
	return nil
}

// FixPrimitives implements Fluid, clamping to the configured floors.
func (f *ReferenceFluid) FixPrimitives() error {
	for _, c := range f.grid.Cells {
		if c.Q[DEN] < f.dfloor {
			c.Q[DEN] = f.dfloor
		}
		if c.Q[PRE] < f.pfloor {
			c.Q[PRE] = f.pfloor
		}
		if c.Q[HII] < 0 {
			c.Q[HII] = 0
		} else if c.Q[HII] > 1 {
			c.Q[HII] = 1
		}
	}
	return nil
}

// AdvSolution implements Fluid as a no-op: spatial flux transport is
// the out-of-scope hydro solver's job (see NullHydro). Each active
// component's UpdateSourceTerms has already folded its local source
// terms into U by the time this is called.
func (f *ReferenceFluid) AdvSolution(dt float64) error { return nil }

// FixSolution implements Fluid.
func (f *ReferenceFluid) FixSolution() error {
	if err := f.GlobalQfromU(); err != nil {
		return err
	}
	return f.FixPrimitives()
}

func (f *ReferenceFluid) Dfloor() float64 { return f.dfloor }
func (f *ReferenceFluid) Pfloor() float64 { return f.pfloor }
