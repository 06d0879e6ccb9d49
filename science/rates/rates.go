// Package rates implements the per-process heating and cooling rate
// functions of spec §4.C, each a pure function of local cell state.
// Constants and formulas are reproduced from
// original_source/src/Integrators/Thermodynamics.cpp (Henney et al.
// 2009 eqs. A3, A6, A7, A9, A10, A11, A13, A14).
package rates

import "math"

// Constants holds the CGS-derived, already-code-unit-converted
// coefficients the rate functions need. All fields are converted once
// at init by the caller (mirrors Thermodynamics::initialise).
type Constants struct {
	Z0 float64 // metallicity scale, 5e-4

	T1, T2 float64 // ionised metal line cooling exponents, K
	T3, T4 float64 // neutral metal line cooling exponents, K

	IMLC float64 // ionised metal line cooling coefficient
	NMLC float64 // neutral metal line cooling coefficient

	CIECMinT float64 // collisional ionisation equilibrium cooling threshold, K
	CIEC     float64 // collisional ionisation equilibrium cooling coefficient

	N0  float64 // neutral/molecular cooling reference density
	NMC float64 // neutral/molecular cooling coefficient

	FUVHa, FUVHb, FUVHc float64 // FUV heating coefficients
	IRHa, IRHb          float64 // IR heating coefficients
	CRH                 float64 // cosmic-ray heating coefficient
}

// DefaultConstants returns the CGS values Thermodynamics::initialise
// assigns before unit conversion. Callers must convert each field
// with their own unit Converter before use; this function exists so
// tests and callers share one source of the literal constants.
func DefaultConstants() Constants {
	return Constants{
		Z0:       5.0e-4,
		T1:       33610,
		T2:       2180,
		T3:       28390,
		T4:       1780,
		IMLC:     2.905e-19,
		NMLC:     4.477e-20,
		CIECMinT: 5.0e4,
		CIEC:     3.485e-15,
		N0:       1.0e6,
		NMC:      3.981e-27,
		FUVHa:    1.9e-26,
		FUVHb:    1.00000,
		FUVHc:    6.40000,
		IRHa:     7.7e-32,
		IRHb:     3.0e4,
		CRH:      5.0e-27,
	}
}

// IonisedMetalLineCooling is Henney et al. 2009 eq. A9.
func (c *Constants) IonisedMetalLineCooling(ne, T float64) float64 {
	return c.IMLC * c.Z0 * ne * ne * math.Exp(-c.T1/T-(c.T2/T)*(c.T2/T))
}

// NeutralMetalLineCooling is Henney et al. 2009 eq. A10.
func (c *Constants) NeutralMetalLineCooling(ne, nn, T float64) float64 {
	return c.NMLC * c.Z0 * ne * nn * math.Exp(-c.T3/T-(c.T4/T)*(c.T4/T))
}

// CollisionalIonisationEquilibriumCooling is Henney et al. 2009 eq.
// A13, with a linear smoothing ramp over the 20000K band above the
// CIECMinT threshold (PION cooling.cc).
func (c *Constants) CollisionalIonisationEquilibriumCooling(ne, T float64) float64 {
	if T <= c.CIECMinT {
		return 0
	}
	cieRate := c.CIEC * ne * ne * c.Z0 * math.Exp(-0.63*math.Log(T)) * (1.0 - math.Exp(-math.Pow(1.0e-5*T, 1.63)))
	smoothing := math.Min(1.0, (T-5.0e4)/2.0e4)
	return cieRate * smoothing
}

// NeutralMolecularLineCooling is Henney et al. 2009 eq. A14.
func (c *Constants) NeutralMolecularLineCooling(nH, hiiFrac, T float64) float64 {
	T0 := 70.0 + 220.0*math.Pow(nH/c.N0, 0.2)
	return c.NMC * (1.0 - hiiFrac) * (1.0 - hiiFrac) * math.Pow(nH, 1.6) * math.Sqrt(T) * math.Exp(-T0/T)
}

// CollisionalExcitationHI evaluates the spline-interpolated
// collisional-excitation-of-HI cooling rate. splineInterpolate must be
// a *spline.LogSplineData.Interpolate bound method (passed as a
// closure to avoid an import cycle between rates and spline's
// callers).
func (c *Constants) CollisionalExcitationHI(nH, hiiFrac, T float64, splineInterpolate func(log10T float64) float64, tDamp float64) float64 {
	rate := splineInterpolate(math.Log10(T))
	return hiiFrac * (1.0 - hiiFrac) * nH * nH * math.Exp(2.302585093*rate-(T/tDamp)*(T/tDamp))
}

// RecombinationHII evaluates the spline-interpolated HII recombination
// cooling rate (Henney et al. 2009 eq. A11).
func RecombinationHII(nH, hiiFrac, T, boltzmannConst float64, splineInterpolate func(T float64) float64) float64 {
	rate := splineInterpolate(T)
	return hiiFrac * hiiFrac * nH * nH * boltzmannConst * T * rate
}

// FarUltraVioletHeating is Henney et al. 2009 eq. A3.
func (c *Constants) FarUltraVioletHeating(nH, avFUV, fFUV float64) float64 {
	return c.FUVHa * nH * fFUV * math.Exp(-1.9*avFUV) / (c.FUVHb + c.FUVHc*fFUV*math.Exp(-1.9*avFUV)/nH)
}

// InfraRedHeating is Henney et al. 2009 eq. A6.
func (c *Constants) InfraRedHeating(nH, avFUV, fFUV float64) float64 {
	return c.IRHa * nH * fFUV * math.Exp(-0.05*avFUV) * math.Exp(-2.0*math.Log(1.0+c.IRHb/nH))
}

// CosmicRayHeating is Henney et al. 2009 eq. A7, already scaled 10x
// to compensate for the absent X-ray heating term (the original's
// comment: "Hack: Increasing this by 10X to compensate for no X-ray
// heating" — folded into CRH by the caller's unit conversion/init,
// not re-applied here).
func (c *Constants) CosmicRayHeating(nH float64) float64 {
	return c.CRH * nH
}

// FluxFUV returns the FUV photon flux at squared distance distSqrd
// from a source emitting photonRate photons/second, per
// Thermodynamics::fluxFUV.
func FluxFUV(photonRate, distSqrd, pi float64) float64 {
	if distSqrd == 0 {
		return 0
	}
	return photonRate / (1.2e7 * 4 * pi * distSqrd)
}
