package spline

import "math"

// Compiled-in Hummer (1994) / atomic-physics knot tables, reproduced
// bit-for-bit from original_source/src/Integrators/Thermodynamics.cpp
// per spec §4.A's compatibility contract.

// collisionalExcitationHITemps are the 26 knot temperatures, K, at
// T = 10^(3.5 + 0.1*i), i = 0..25.
var collisionalExcitationHITemps = [26]float64{
	3162.2776602, 3981.0717055, 5011.8723363, 6309.5734448, 7943.2823472,
	10000.0000000, 12589.2541179, 15848.9319246, 19952.6231497, 25118.8643151,
	31622.7766017, 39810.7170553, 50118.7233627, 63095.7344480, 79432.8234724,
	100000.0000000, 125892.5411794, 158489.3192461, 199526.2314969, 251188.6431510,
	316227.7660168, 398107.1705535, 501187.2336273, 630957.3444802, 794328.2347243,
	1000000.0000000,
}

// collisionalExcitationHIRates are the matching CGS rates.
var collisionalExcitationHIRates = [26]float64{
	1.150800e-34, 2.312065e-31, 9.571941e-29, 1.132400e-26, 4.954502e-25,
	9.794900e-24, 1.035142e-22, 6.652732e-22, 2.870781e-21, 9.036495e-21, 2.218196e-20,
	4.456562e-20, 7.655966e-20, 1.158777e-19, 1.588547e-19, 2.013724e-19, 2.393316e-19,
	2.710192e-19, 2.944422e-19, 3.104560e-19, 3.191538e-19, 3.213661e-19, 3.191538e-19,
	3.126079e-19, 3.033891e-19, 2.917427e-19,
}

// recombinationHIICoolB is the original 31-entry Hummer (1994) HII
// recombination cooling table. Only the first 26 entries are used
// (see NewRecombinationHIITable) — the original source code also only
// loads 26 of the 31 it defines. spec §9 records this as a likely bug
// and directs that the behaviour be preserved, pending physics review.
var recombinationHIICoolB = [31]float64{
	8.287e-11, 7.821e-11, 7.356e-11, 6.892e-11, 6.430e-11, 5.971e-11,
	5.515e-11, 5.062e-11, 4.614e-11, 4.170e-11, 3.734e-11, 3.306e-11, 2.888e-11,
	2.484e-11, 2.098e-11, 1.736e-11, 1.402e-11, 1.103e-11, 8.442e-12, 6.279e-12,
	4.539e-12, 3.192e-12, 2.185e-12, 1.458e-12, 9.484e-13, 6.023e-13, 3.738e-13,
	2.268e-13, 1.348e-13, 7.859e-14, 4.499e-14,
}

// ConvertFunc converts a CGS rate with the given (mass, length, time)
// exponents into code units, matching Converter.ToCodeUnits.
type ConvertFunc func(physical float64, m, l, t int) float64

// NewCollisionalExcitationHITable builds the log-log cubic spline over
// the 26-knot collisional-excitation-of-H-I table, converting each
// rate to code units with dimension (1,5,-3) before taking logs, per
// spec §4.A.
func NewCollisionalExcitationHITable(toCodeUnits ConvertFunc) (*LogSplineData, error) {
	xs := make([]float64, 26)
	ys := make([]float64, 26)
	for i := 0; i < 26; i++ {
		xs[i] = math.Log10(collisionalExcitationHITemps[i])
		ys[i] = math.Log10(toCodeUnits(collisionalExcitationHIRates[i], 1, 5, -3))
	}
	return NewLogSplineData(xs, ys)
}

// NewRecombinationHIITable builds the linear spline over the first 26
// of the 31 tabulated HII recombination cooling coefficients, at
// T = 10^(1 + 0.2*i), each divided by sqrt(T) and converted to code
// units with dimension (0,3,-1), per spec §4.A.
func NewRecombinationHIITable(toCodeUnits ConvertFunc) (*LinearSplineData, error) {
	const n = 26
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		T := math.Pow(10, 1.0+0.2*float64(i))
		xs[i] = T
		ys[i] = toCodeUnits(recombinationHIICoolB[i]/math.Sqrt(T), 0, 3, -1)
	}
	return NewLinearSplineData(xs, ys)
}
