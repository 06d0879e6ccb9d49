package spline

import "fmt"

// LinearSplineData is a linear interpolator over (T, rate) knots,
// clamped outside the knot range, per spec §4.A. Grounded on
// github.com/phil-mansfield/gotetra's math/interpolate Linear type;
// that example panics out-of-range, which spec §4.A's clamping
// requirement rules out, so clamping is added here.
type LinearSplineData struct {
	xs, ys []float64
	dx     float64
}

// NewLinearSplineData builds a LinearSplineData from parallel (T,
// rate) slices. xs must be strictly increasing.
func NewLinearSplineData(xs, ys []float64) (*LinearSplineData, error) {
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
	return &LinearSplineData{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		dx: (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1),
	}, nil
}

// Interpolate returns the linearly interpolated value at x, clamped
// to the table's endpoint values outside [xs[0], xs[n-1]].
func (l *LinearSplineData) Interpolate(x float64) float64 {
	n := len(l.xs)
	if x <= l.xs[0] {
		return l.ys[0]
	}
	if x >= l.xs[n-1] {
		return l.ys[n-1]
	}
	i := l.bsearch(x)
	frac := (x - l.xs[i]) / (l.xs[i+1] - l.xs[i])
	return l.ys[i] + frac*(l.ys[i+1]-l.ys[i])
}

func (l *LinearSplineData) bsearch(x float64) int {
	guess := int((x - l.xs[0]) / l.dx)
	n := len(l.xs)
	if guess >= 0 && guess < n-1 && l.xs[guess] <= x && l.xs[guess+1] >= x {
		return guess
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= l.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
