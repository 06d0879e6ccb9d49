// Package thermo implements spec §4.E's thermodynamics integrator:
// preTimeStepCalculations and the subcycled integrate, grounded on
// original_source/src/Integrators/Thermodynamics.cpp.
package thermo

import (
	"math"

	"github.com/ionfront/radhydro"
	"github.com/ionfront/radhydro/science/raytrace"
	"github.com/ionfront/radhydro/science/rates"
	"github.com/ionfront/radhydro/science/spline"
)

// PhysicalConstants are the handful of unit-system values the
// integrator needs beyond the rate-function coefficients: the proton
// mass, Boltzmann constant, specific gas constant, dust extinction
// cross-section, pi, and the number of active spatial dimensions.
type PhysicalConstants struct {
	HydrogenMass          float64
	BoltzmannConst        float64
	SpecificGasConstant   float64
	DustExtinctionCrossSection float64
	Pi                    float64
	NDim                  int
}

// Integrator implements radhydro.Integrator for the thermodynamics
// component.
type Integrator struct {
	consts PhysicalConstants
	rate   rates.Constants

	collisionalExcitationHI *spline.LogSplineData

	cfg radhydro.ThermoParameters

	part  *radhydro.Partition
	tDamp float64 // m_cxhi_damp, 5e5 K
}

// New builds a thermodynamics Integrator. rateConsts must already be
// converted to code units by the caller (mirrors
// Thermodynamics::initialise's sequence of converter.toCodeUnits
// calls); ceHI is the compiled-in collisional-excitation-of-H-I spline
// table (science/spline.NewCollisionalExcitationHITable), also built
// with code-unit-converted rates. The H II recombination table
// (science/spline.NewRecombinationHIITable, science/rates.
// RecombinationHII) is a §4.A/4.C core rate function in its own right
// but is not driven from here: H[RHII] is populated by the radiation
// component, an external collaborator out of scope for this module
// (spec §1, §3).
func New(consts PhysicalConstants, rateConsts rates.Constants, ceHI *spline.LogSplineData, cfg radhydro.ThermoParameters, part *radhydro.Partition) *Integrator {
	return &Integrator{
		consts:                  consts,
		rate:                    rateConsts,
		collisionalExcitationHI: ceHI,
		cfg:                     cfg,
		part:                    part,
		tDamp:                   5.0e5,
	}
}

// ComponentName implements radhydro.Integrator.
func (t *Integrator) ComponentName() string { return "Thermodynamics" }

func (t *Integrator) cehiInterp(log10T float64) float64 {
	return t.collisionalExcitationHI.Interpolate(log10T)
}

// coolingTerms sums the five cooling processes at temperature T,
// given the cell's fixed (this-step) nH/HIIfrac/ne/nn.
func (t *Integrator) coolingTerms(nH, hiiFrac, ne, nn, T float64) float64 {
	c := 0.0
	c += t.rate.IonisedMetalLineCooling(ne, T)
	c += t.rate.NeutralMetalLineCooling(ne, nn, T)
	c += t.rate.CollisionalExcitationHI(nH, hiiFrac, T, t.cehiInterp, t.tDamp)
	c += t.rate.CollisionalIonisationEquilibriumCooling(ne, T)
	c += t.rate.NeutralMolecularLineCooling(nH, hiiFrac, T)
	return c
}

// PreTimeStepCalculations implements spec §4.E's preTimeStepCalculations.
func (t *Integrator) PreTimeStepCalculations(f radhydro.Fluid) error {
	star := f.Star()
	if star.On() {
		if err := raytrace.Sweep(f, t.part, t.consts.HydrogenMass); err != nil {
			return err
		}
	}

	g := f.Grid()
	cells, err := g.GetIterable(radhydro.CausalNonWind)
	if err != nil {
		return err
	}
	for _, cell := range cells {
		if !cell.ThermoActive(t.cfg.ThermoHIISwitch) {
			cell.T[radhydro.RATE] = 0
			continue
		}

		nH := t.cfg.MassFractionH * cell.Q[radhydro.DEN] / t.consts.HydrogenMass
		hiiFrac := cell.Q[radhydro.HII]
		ne := nH * hiiFrac
		nn := nH * (1.0 - hiiFrac)
		T := f.CalcTemperature(cell.Q[radhydro.HII], cell.Q[radhydro.PRE], cell.Q[radhydro.DEN])

		var fFUV float64
		if star.On() {
			var rsqrd float64
			for i := 0; i < t.consts.NDim; i++ {
				diff := cell.Xc[i] - star.Xc[i]
				rsqrd += diff * diff * g.Dx[i] * g.Dx[i]
			}
			fFUV = rates.FluxFUV(0.5*star.PhotonRate, rsqrd, t.consts.Pi)
		}
		tau := cell.T[radhydro.COLDEN]
		avFUV := 1.086 * t.consts.DustExtinctionCrossSection * tau

		rate := 0.0
		rate += t.rate.FarUltraVioletHeating(nH, avFUV, fFUV)
		rate += t.rate.InfraRedHeating(nH, avFUV, fFUV)
		rate += t.rate.CosmicRayHeating(nH)

		cell.T[radhydro.HEAT] = rate

		rate -= t.coolingTerms(nH, hiiFrac, ne, nn, T)
		rate = rates.SoftLanding(rate, T, cell.Tmin)

		cell.T[radhydro.RATE] = t.cfg.HeatingAmplification * rate
	}
	return nil
}

// Integrate implements spec §4.E's integrate, including the stiff
// subcycling loop with the biased-rounding nsteps formula, exactly as
// Thermodynamics::integrate computes it.
func (t *Integrator) Integrate(dt float64, f radhydro.Fluid) error {
	if !t.cfg.ThermoSubcycling {
		return nil
	}

	g := f.Grid()
	cells, err := g.GetIterable(radhydro.CausalNonWind)
	if err != nil {
		return err
	}

	for _, cell := range cells {
		if !cell.ThermoActive(t.cfg.ThermoHIISwitch) {
			cell.ClearThermo()
			continue
		}

		nH := t.cfg.MassFractionH * cell.Q[radhydro.DEN] / t.consts.HydrogenMass
		hiiFrac := cell.Q[radhydro.HII]
		ne := nH * hiiFrac
		nn := nH * (1.0 - hiiFrac)

		// dti deliberately permits division by zero RATE, producing
		// +Inf: dt > dti is then false below and the subcycle loop is
		// skipped naturally, matching Thermodynamics::integrate, which
		// has no explicit zero-RATE guard either.
		dti := math.Abs(0.10 * cell.U[radhydro.UENERGY] / cell.T[radhydro.RATE])

		muInv := t.cfg.MassFractionH*(hiiFrac+1.0) + (1.0-t.cfg.MassFractionH)*0.25
		pre2temp := 1.0 / (muInv * t.consts.SpecificGasConstant * cell.Q[radhydro.DEN])
		temp2pre := muInv * t.consts.SpecificGasConstant * cell.Q[radhydro.DEN]
		rate2dpre := math.Min(dt, dti) * (cell.HeatCapacityRatio - 1.0)
		dpre2rate := 1.0 / rate2dpre

		pressure := cell.Q[radhydro.PRE] + cell.T[radhydro.RATE]*rate2dpre
		subcycleT := pressure * pre2temp
		if pressure < f.Pfloor() || subcycleT < cell.Tmin {
			pfloor := math.Max(cell.Tmin*temp2pre, f.Pfloor())
			subcycleT = pfloor * pre2temp
			pressure = pfloor
		}

		if dt > dti {
			dtdti := dt / dti
			var nsteps int
			if dtdti-math.Trunc(dtdti) > 0 {
				nsteps = int(dtdti + 1.0)
			} else {
				nsteps = int(dtdti + 0.5)
			}
			dti = dt / float64(nsteps)
			nsteps--

			for i := 0; i < nsteps; i++ {
				subcycleRate := cell.T[radhydro.HEAT]
				subcycleRate -= t.coolingTerms(nH, hiiFrac, ne, nn, subcycleT)
				subcycleRate = t.cfg.HeatingAmplification * rates.SoftLanding(subcycleRate, subcycleT, cell.Tmin)

				pressure += subcycleRate * rate2dpre
				subcycleT = pressure * pre2temp
				if pressure < f.Pfloor() || subcycleT < cell.Tmin {
					pfloor := math.Max(cell.Tmin*temp2pre, f.Pfloor())
					subcycleT = pfloor * pre2temp
					pressure = pfloor
				}
			}
		}

		cell.T[radhydro.RATE] = (pressure - cell.Q[radhydro.PRE]) * dpre2rate
		cell.H[radhydro.TOT] = cell.T[radhydro.RATE]
	}
	return nil
}

// UpdateSourceTerms implements spec §4.G's subStep contract for
// thermodynamics: fold RATE·dt into conservative energy (RATE is an
// energy-density-per-time rate, not a derivative already advanced by
// dt), then clear RATE and HEAT.
func (t *Integrator) UpdateSourceTerms(dt float64, f radhydro.Fluid) error {
	g := f.Grid()
	cells, err := g.GetIterable(radhydro.CausalNonWind)
	if err != nil {
		return err
	}
	for _, cell := range cells {
		cell.U[radhydro.UENERGY] += cell.T[radhydro.RATE] * dt
		cell.T[radhydro.RATE] = 0
		cell.T[radhydro.HEAT] = 0
	}
	return nil
}

// CalculateTimeStep implements spec §4.F for thermodynamics: scan
// cells, candidate dt = frac*U[PRE]/|RATE| (frac 0.1 without
// subcycling, 1.0 with), take the minimum.
func (t *Integrator) CalculateTimeStep(dtMax float64, f radhydro.Fluid) (float64, error) {
	frac := 0.1
	if t.cfg.ThermoSubcycling {
		frac = 1.0
	}
	dt := dtMax
	for _, cell := range f.Grid().Cells {
		if cell.T[radhydro.RATE] != 0 {
			dti := math.Abs(frac * cell.U[radhydro.UENERGY] / cell.T[radhydro.RATE])
			if dti < dt {
				dt = dti
			}
		}
	}
	return dt, nil
}

// FillHeatingArrays computes the diagnostic H[*] breakdown for every
// active cell, re-running the ray trace first if a star is present —
// grounded on Thermodynamics::fillHeatingArrays, a supplemented
// feature (see SPEC_FULL.md).
func (t *Integrator) FillHeatingArrays(f radhydro.Fluid) error {
	star := f.Star()
	if star.On() {
		if err := raytrace.Sweep(f, t.part, t.consts.HydrogenMass); err != nil {
			return err
		}
	}
	g := f.Grid()
	cells, err := g.GetIterable(radhydro.CausalNonWind)
	if err != nil {
		return err
	}
	for _, cell := range cells {
		if !cell.ThermoActive(t.cfg.ThermoHIISwitch) {
			for i := range cell.H {
				cell.H[i] = 0
			}
			continue
		}
		nH := t.cfg.MassFractionH * cell.Q[radhydro.DEN] / t.consts.HydrogenMass
		hiiFrac := cell.Q[radhydro.HII]
		ne := hiiFrac * nH
		nn := (1.0 - hiiFrac) * nH
		T := f.CalcTemperature(cell.Q[radhydro.HII], cell.Q[radhydro.PRE], cell.Q[radhydro.DEN])

		var fFUV float64
		if star.On() {
			var rsqrd float64
			for i := 0; i < t.consts.NDim; i++ {
				diff := cell.Xc[i] - star.Xc[i]
				rsqrd += diff * diff * g.Dx[i] * g.Dx[i]
			}
			fFUV = rates.FluxFUV(0.5*star.PhotonRate, rsqrd, t.consts.Pi)
		}
		tau := cell.T[radhydro.COLDEN]
		avFUV := 1.086 * t.consts.DustExtinctionCrossSection * tau

		cell.H[radhydro.FUVH] = t.rate.FarUltraVioletHeating(nH, avFUV, fFUV)
		cell.H[radhydro.IRH] = t.rate.InfraRedHeating(nH, avFUV, fFUV)
		cell.H[radhydro.CRH] = t.rate.CosmicRayHeating(nH)

		cell.H[radhydro.IMLC] = -t.rate.IonisedMetalLineCooling(ne, T)
		cell.H[radhydro.NMLC] = -t.rate.NeutralMetalLineCooling(ne, nn, T)
		cell.H[radhydro.CEHI] = -t.rate.CollisionalExcitationHI(nH, hiiFrac, T, t.cehiInterp, t.tDamp)
		cell.H[radhydro.CIEC] = -t.rate.CollisionalIonisationEquilibriumCooling(ne, T)
		cell.H[radhydro.NMC] = -t.rate.NeutralMolecularLineCooling(nH, hiiFrac, T)

		cell.H[radhydro.TOT] += cell.H[radhydro.RHII] + cell.H[radhydro.EUVH]
	}
	return nil
}
