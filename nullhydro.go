package radhydro

// NullHydro is a no-op stand-in for the hydro component's flux solver
// and Riemann/slope-limiter internals, which are out of scope for this
// module (spec §1). Orchestrator always requires a Hydro entry in its
// component map (spec §4.G); NullHydro lets a driver run the
// thermodynamics (and/or radiation) component on its own, over a
// static velocity field, without a real hydro solver wired in.
type NullHydro struct{}

// PreTimeStepCalculations implements Integrator.
func (NullHydro) PreTimeStepCalculations(f Fluid) error { return nil }

// Integrate implements Integrator.
func (NullHydro) Integrate(dt float64, f Fluid) error { return nil }

// UpdateSourceTerms implements Integrator.
func (NullHydro) UpdateSourceTerms(dt float64, f Fluid) error { return nil }

// CalculateTimeStep implements Integrator: no binding limit, so dtMax
// passes through unchanged.
func (NullHydro) CalculateTimeStep(dtMax float64, f Fluid) (float64, error) {
	return dtMax, nil
}

// ComponentName implements Integrator.
func (NullHydro) ComponentName() string { return "Hydro" }
