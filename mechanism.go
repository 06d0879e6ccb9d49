/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package radhydro

// ComponentID is a closed set of physics components the orchestrator
// can drive, replacing an open class hierarchy (spec §9 "Dynamic
// dispatch on physics component → tagged variant": no user plugin is
// expected, so a small enum plus a getter is enough).
type ComponentID int

const (
	Hydro ComponentID = iota
	Thermo
	Radiation
)

func (id ComponentID) String() string {
	switch id {
	case Hydro:
		return "hydro"
	case Thermo:
		return "thermo"
	case Radiation:
		return "radiation"
	default:
		return "unknown"
	}
}

// Integrator is the capability every physics component must provide
// for the orchestrator to drive it through a full step (spec §6).
type Integrator interface {
	// PreTimeStepCalculations evaluates whatever state this component
	// needs once per full step, before any subStep of it runs.
	PreTimeStepCalculations(f Fluid) error

	// Integrate advances this component's internal state over dt,
	// writing its result into each cell's workspace (for thermo,
	// T[RATE]) without yet mutating Fluid's conservative state.
	Integrate(dt float64, f Fluid) error

	// UpdateSourceTerms folds the integrated result, scaled by dt,
	// into the fluid's conservative state and clears any per-step
	// accumulators this component owns.
	UpdateSourceTerms(dt float64, f Fluid) error

	// CalculateTimeStep returns this component's candidate time-step
	// limit, capped at dtMax. Components with no binding limit return
	// dtMax unchanged.
	CalculateTimeStep(dtMax float64, f Fluid) (float64, error)

	// ComponentName identifies this component in logs and error
	// messages.
	ComponentName() string
}
