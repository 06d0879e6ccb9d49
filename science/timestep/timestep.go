// Package timestep implements spec §4.F's global time-step reduction:
// each physics component supplies a candidate dt, the orchestrator
// takes the minimum across components, then across ranks.
package timestep

import "gonum.org/v1/gonum/floats"

// GlobalMinimum returns the minimum of the supplied per-component
// candidate time steps, using gonum/floats.Min the way the teacher's
// go.mod already depends on gonum for numeric reductions elsewhere.
func GlobalMinimum(candidates ...float64) float64 {
	return floats.Min(candidates)
}

// Bootstrap returns the spec §4.F first-call bootstrap value,
// dtMax*1e-20, used to let initial transients settle before any real
// time-step candidate has been computed.
func Bootstrap(dtMax float64) float64 {
	return dtMax * 1e-20
}
