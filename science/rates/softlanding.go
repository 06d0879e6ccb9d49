package rates

// softLandingBand is the fixed 200K ramp width spec §4.C and
// Thermodynamics::softLanding both use. The original source also
// defines an m_T_soft=300 constant that this function does not use —
// the ramp band is hardcoded to 200 in the original, and that's what
// is reproduced here.
const softLandingBand = 200.0

// SoftLanding damps a negative net rate as temperature approaches the
// floor Tmin, per spec §4.C: zero below Tmin, linearly ramped over
// the 200K band above it, unchanged if positive or beyond the band.
func SoftLanding(rate, T, Tmin float64) float64 {
	if rate >= 0.0 {
		return rate
	}
	if T <= Tmin {
		return 0
	}
	if T <= Tmin+softLandingBand {
		return rate * (T - Tmin) / softLandingBand
	}
	return rate
}
