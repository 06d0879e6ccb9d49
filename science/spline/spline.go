// Package spline provides the two small table interpolators spec §4.A
// describes: a cubic spline fit in log-log space, and a clamped
// linear interpolator. The cubic-spline construction (tridiagonal
// solve over natural boundary conditions, uniform-guess-then-binary
// search) is grounded on
// github.com/phil-mansfield/gotetra's math/interpolate/spline.go;
// this version renames the domain to log10(T)/log10(rate) and adds
// log-linear extrapolation beyond the table endpoints, since spec §4.A
// requires extrapolation rather than the example's out-of-bounds
// panic.
package spline

import "fmt"

type coeff struct {
	a, b, c, d float64
}

// LogSplineData is a cubic spline fit in log10-log10 space, per
// spec §4.A. Construction takes (log10 T, log10 rate) pairs;
// Interpolate(log10 T) returns log10(rate), extrapolating along the
// local logarithmic slope beyond the endpoints.
type LogSplineData struct {
	xs, ys, y2s []float64
	coeffs      []coeff
	dx          float64
}

// NewLogSplineData builds a LogSplineData from parallel (log10 T,
// log10 rate) slices. xs must be strictly increasing.
func NewLogSplineData(xs, ys []float64) (*LogSplineData, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("spline: len(xs)=%d != len(ys)=%d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("spline: table must have at least 2 knots, got %d", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("spline: xs must be strictly increasing at index %d", i)
		}
	}

	sp := &LogSplineData{
		xs:  append([]float64(nil), xs...),
		ys:  append([]float64(nil), ys...),
		y2s: make([]float64, len(xs)),
	}
	sp.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
	sp.calcY2s()
	sp.calcCoeffs()
	return sp, nil
}

// Interpolate returns the spline's value at x (log10 T). Outside
// [xs[0], xs[n-1]] it extrapolates linearly using the slope at the
// nearest endpoint, i.e. log-linear extrapolation in the original
// (non-log) quantities.
func (sp *LogSplineData) Interpolate(x float64) float64 {
	n := len(sp.xs)
	if x < sp.xs[0] {
		slope := sp.derivativeAt(0)
		return sp.ys[0] + slope*(x-sp.xs[0])
	}
	if x > sp.xs[n-1] {
		slope := sp.derivativeAtRight(n - 2)
		return sp.ys[n-1] + slope*(x-sp.xs[n-1])
	}
	i := sp.bsearch(x)
	dx := x - sp.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	return a*dx*dx*dx + b*dx*dx + c*dx + d
}

// derivativeAt returns the spline's first derivative evaluated at the
// left knot of segment i (used for endpoint extrapolation).
func (sp *LogSplineData) derivativeAt(i int) float64 {
	return sp.coeffs[i].c
}

// derivativeAtRight returns the spline's first derivative evaluated
// at the right knot of segment i.
func (sp *LogSplineData) derivativeAtRight(i int) float64 {
	a, b, c := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c
	dx := sp.xs[i+1] - sp.xs[i]
	return 3*a*dx*dx + 2*b*dx + c
}

func (sp *LogSplineData) bsearch(x float64) int {
	guess := int((x - sp.xs[0]) / sp.dx)
	n := len(sp.xs)
	if guess >= 0 && guess < n-1 && sp.xs[guess] <= x && sp.xs[guess+1] >= x {
		return guess
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= sp.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (sp *LogSplineData) calcY2s() {
	n := len(sp.xs)
	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	sp.y2s[0], sp.y2s[n-1] = 0, 0

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		j := i + 1
		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1]-ys[j])/(xs[j+1]-xs[j]) -
			(ys[j]-ys[j-1])/(xs[j]-xs[j-1]))
	}
	triDiagSolve(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *LogSplineData) calcCoeffs() {
	n := len(sp.xs)
	sp.coeffs = make([]coeff, n-1)
	xs, ys, y2s := sp.xs, sp.ys, sp.y2s
	for i := range sp.coeffs {
		h := xs[i+1] - xs[i]
		sp.coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * h)
		sp.coeffs[i].b = y2s[i] / 2
		sp.coeffs[i].c = (ys[i+1]-ys[i])/h -
			h*(y2s[i]/3+y2s[i+1]/6)
		sp.coeffs[i].d = ys[i]
	}
}

// triDiagSolve solves the tridiagonal system with sub-diagonal as,
// diagonal bs, super-diagonal cs, and right-hand side rs, writing the
// solution into dst (len(dst) == len(as)).
func triDiagSolve(as, bs, cs, rs []float64, dst []float64) {
	n := len(as)
	if n == 0 {
		return
	}
	cp := make([]float64, n)
	dp := make([]float64, n)

	cp[0] = cs[0] / bs[0]
	dp[0] = rs[0] / bs[0]
	for i := 1; i < n; i++ {
		m := bs[i] - as[i]*cp[i-1]
		cp[i] = cs[i] / m
		dp[i] = (rs[i] - as[i]*dp[i-1]) / m
	}
	dst[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		dst[i] = dp[i] - cp[i]*dst[i+1]
	}
}
