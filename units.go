package radhydro

import "math"

// Converter maps physical CGS quantities to the internal dimensionless
// "code units" used throughout the hard core, by applying fixed scale
// factors along three dimensions: mass, length, time.
//
// This is deliberately narrower than a general SI-unit-algebra package
// such as github.com/ctessum/unit: the exponents the integrator needs
// are fixed at compile time (see Exponents below), so a 3-field scale
// table is clearer than wiring a general Dimensions type for three
// numbers. See DESIGN.md.
type Converter struct {
	DScale float64 // mass scale, g
	LScale float64 // length scale, cm
	TScale float64 // time scale, s
}

// NewConverter builds a Converter from physical scale factors.
func NewConverter(dscale, lscale, tscale float64) *Converter {
	return &Converter{DScale: dscale, LScale: lscale, TScale: tscale}
}

// scaleFactor returns the multiplicative factor that converts a CGS
// quantity with the given (mass, length, time) exponents into code
// units.
func (c *Converter) scaleFactor(m, l, t int) float64 {
	return math.Pow(c.DScale, float64(m)) *
		math.Pow(c.LScale, float64(l)) *
		math.Pow(c.TScale, float64(t))
}

// ToCodeUnits converts a physical (CGS) value with dimension exponents
// (m, l, t) into code units.
func (c *Converter) ToCodeUnits(physical float64, m, l, t int) float64 {
	return physical / c.scaleFactor(m, l, t)
}

// FromCodeUnits converts a code-units value with dimension exponents
// (m, l, t) back into physical (CGS) units.
func (c *Converter) FromCodeUnits(coded float64, m, l, t int) float64 {
	return coded * c.scaleFactor(m, l, t)
}

// Exponents used throughout the hard core. GRAV's exponents are fixed
// at (0,1,-2) — acceleration, L·T⁻² — per the spec's redesign note;
// the source repository's other variant, (1,-2,-2), was dimensionally
// wrong and is not reproduced.
var (
	ExpDensity       = [3]int{1, -3, 0}
	ExpPressure      = [3]int{1, -1, -2}
	ExpVelocity      = [3]int{0, 1, -1}
	ExpGrav          = [3]int{0, 1, -2}
	ExpTime          = [3]int{0, 0, 1}
	ExpLength        = [3]int{0, 1, 0}
	ExpVolumetricRate = [3]int{1, 5, -3} // energy·time⁻¹·volume⁻¹ scaled, per spec §4.A
	ExpRecombCoeff   = [3]int{0, 3, -1}  // ion recombination rate coefficient, per spec §4.A
)
