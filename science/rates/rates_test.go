package rates

import (
	"math"
	"testing"
)

func TestIonisedMetalLineCoolingZeroWhenNeZero(t *testing.T) {
	c := DefaultConstants()
	if got := c.IonisedMetalLineCooling(0, 1e4); got != 0 {
		t.Errorf("IonisedMetalLineCooling(ne=0) = %g, want 0", got)
	}
}

func TestIonisedMetalLineCoolingPositive(t *testing.T) {
	c := DefaultConstants()
	if got := c.IonisedMetalLineCooling(1e4, 1e4); got <= 0 {
		t.Errorf("IonisedMetalLineCooling = %g, want > 0", got)
	}
}

func TestNeutralMetalLineCoolingZeroWhenNnZero(t *testing.T) {
	c := DefaultConstants()
	if got := c.NeutralMetalLineCooling(1e4, 0, 1e4); got != 0 {
		t.Errorf("NeutralMetalLineCooling(nn=0) = %g, want 0", got)
	}
}

func TestCIECZeroAtAndBelowThreshold(t *testing.T) {
	c := DefaultConstants()
	if got := c.CollisionalIonisationEquilibriumCooling(1e4, 5e4); got != 0 {
		t.Errorf("CIEC at T=5e4 = %g, want exactly 0", got)
	}
	if got := c.CollisionalIonisationEquilibriumCooling(1e4, 1e4); got != 0 {
		t.Errorf("CIEC below threshold = %g, want 0", got)
	}
}

func TestCIECPositiveAboveThreshold(t *testing.T) {
	c := DefaultConstants()
	if got := c.CollisionalIonisationEquilibriumCooling(1e4, 6e4); got <= 0 {
		t.Errorf("CIEC at T=6e4 = %g, want > 0", got)
	}
}

func TestCIECRampFullyOnAt7e4(t *testing.T) {
	c := DefaultConstants()
	// Above 7e4 (5e4 + 2e4 ramp width) the smoothing factor saturates at 1,
	// so CIEC should vary continuously but the ramp contributes no further
	// kink; check continuity immediately around 7e4.
	below := c.CollisionalIonisationEquilibriumCooling(1e4, 7e4-1)
	at := c.CollisionalIonisationEquilibriumCooling(1e4, 7e4)
	above := c.CollisionalIonisationEquilibriumCooling(1e4, 7e4+1)
	if math.Abs(at-below) > 0.01*at || math.Abs(above-at) > 0.01*at {
		t.Errorf("CIEC not continuous around the ramp's saturation point: %g, %g, %g", below, at, above)
	}
}

func TestNeutralMolecularLineCoolingZeroWhenFullyIonised(t *testing.T) {
	c := DefaultConstants()
	if got := c.NeutralMolecularLineCooling(1e4, 1.0, 1e4); got != 0 {
		t.Errorf("NeutralMolecularLineCooling at HIIFrac=1 = %g, want 0", got)
	}
}

func TestCollisionalExcitationHIUsesSplineClosure(t *testing.T) {
	c := DefaultConstants()
	spline := func(log10T float64) float64 { return -20 } // fixed log10(rate)
	got := c.CollisionalExcitationHI(1e4, 0.5, 1e4, spline, 5e5)
	if got <= 0 {
		t.Errorf("CollisionalExcitationHI = %g, want > 0", got)
	}
}

func TestCollisionalExcitationHIZeroWhenFullyNeutralOrIonised(t *testing.T) {
	c := DefaultConstants()
	spline := func(log10T float64) float64 { return -20 }
	if got := c.CollisionalExcitationHI(1e4, 0, 1e4, spline, 5e5); got != 0 {
		t.Errorf("CollisionalExcitationHI at HIIFrac=0 = %g, want 0", got)
	}
	if got := c.CollisionalExcitationHI(1e4, 1, 1e4, spline, 5e5); got != 0 {
		t.Errorf("CollisionalExcitationHI at HIIFrac=1 = %g, want 0", got)
	}
}

func TestRecombinationHIIZeroWhenFullyNeutral(t *testing.T) {
	spline := func(T float64) float64 { return 1e-13 }
	if got := RecombinationHII(1e4, 0, 1e4, 1.38e-16, spline); got != 0 {
		t.Errorf("RecombinationHII at HIIFrac=0 = %g, want 0", got)
	}
}

func TestRecombinationHIIPositive(t *testing.T) {
	spline := func(T float64) float64 { return 1e-13 }
	if got := RecombinationHII(1e4, 1, 1e4, 1.38e-16, spline); got <= 0 {
		t.Errorf("RecombinationHII = %g, want > 0", got)
	}
}

func TestFarUltraVioletHeatingZeroWhenFluxZero(t *testing.T) {
	c := DefaultConstants()
	if got := c.FarUltraVioletHeating(1e4, 0, 0); got != 0 {
		t.Errorf("FarUltraVioletHeating(F=0) = %g, want 0", got)
	}
}

func TestInfraRedHeatingZeroWhenFluxZero(t *testing.T) {
	c := DefaultConstants()
	if got := c.InfraRedHeating(1e4, 0, 0); got != 0 {
		t.Errorf("InfraRedHeating(F=0) = %g, want 0", got)
	}
}

func TestCosmicRayHeatingProportionalToNH(t *testing.T) {
	c := DefaultConstants()
	if got := c.CosmicRayHeating(0); got != 0 {
		t.Errorf("CosmicRayHeating(0) = %g, want 0", got)
	}
	if got := c.CosmicRayHeating(2e4); got != 2*c.CosmicRayHeating(1e4) {
		t.Errorf("CosmicRayHeating not linear in nH")
	}
}

func TestFluxFUVZeroAtZeroDistance(t *testing.T) {
	if got := FluxFUV(1e49, 0, math.Pi); got != 0 {
		t.Errorf("FluxFUV at dist2=0 = %g, want 0", got)
	}
}

func TestFluxFUVInverseSquare(t *testing.T) {
	near := FluxFUV(1e49, 1, math.Pi)
	far := FluxFUV(1e49, 4, math.Pi)
	if math.Abs(near/far-4) > 1e-9 {
		t.Errorf("FluxFUV(dist2=1)/FluxFUV(dist2=4) = %g, want 4", near/far)
	}
}
