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

// Primitive-variable indices into GridCell.Q.
const (
	DEN = iota // mass density
	PRE        // pressure
	HII        // ionised hydrogen fraction, in [0,1]
	VEL        // first velocity component; VEL, VEL+1, VEL+2 for 3 dims
	ADV = VEL + 3
	NQ  = ADV + 1
)

// Conservative-variable indices into GridCell.U. Layout mirrors Q:
// mass, momentum (nd components), energy. The original source reuses
// its UID enum to index both Q and U, so U[UID::PRE] denotes the
// conservative energy slot even though UID::PRE names the primitive
// pressure slot in Q; UENERGY is that same slot here.
const (
	UMASS = iota
	UMOM
	UENERGY = UMOM + 3
	NU      = UENERGY + 1
)

// Thermodynamic workspace indices into GridCell.T.
const (
	HEAT = iota // heating-only accumulator
	RATE        // net source rate, energy density per time
	COLDEN
	DCOLDEN
	NT
)

// Per-process rate-breakdown indices into GridCell.H, for diagnostics.
const (
	FUVH = iota // FUV heating
	IRH         // IR heating
	CRH         // cosmic-ray heating
	IMLC        // ionised metal line cooling
	NMLC        // neutral metal line cooling
	CEHI        // collisional excitation of H I cooling
	CIEC        // collisional ionisation equilibrium cooling
	NMC         // neutral/molecular line cooling
	RHII        // recombination of H II (provided by radiation)
	EUVH        // EUV heating (provided by radiation)
	TOT         // sum of all of the above
	NH
)

// NDim is the number of spatial dimensions this module supports for
// GridCell geometry and velocity components.
const NDim = 3

// NoNeighbor marks a missing upstream neighbour slot in
// GridCell.NeighborIDs — a domain boundary.
const NoNeighbor = -1

// GridCell is the per-cell record the hard core operates on. The
// external grid constructor (out of scope, see fluid.go) is
// responsible for allocating cells and wiring neighbour topology;
// the physics components described here only read and write the
// arrays below.
type GridCell struct {
	Q [NQ]float64 // primitive state
	U [NU]float64 // conservative state, kept coherent with Q by the fluid façade
	T [NT]float64 // thermodynamic workspace
	H [NH]float64 // per-process rate breakdown

	Xc [NDim]float64 // cell-center coordinates
	Dx [NDim]float64 // cell size
	Ds float64       // path length toward the star, used by the ray tracer

	HeatCapacityRatio float64 // gamma

	// NeighborIDs are up to four upstream-toward-the-star neighbour
	// cell indices (Raga weighting), NoNeighbor if absent.
	NeighborIDs      [4]int
	NeighborWeights  [4]float64

	// Tmin is this cell's minimum temperature, set once at
	// initialisation (see Orchestrator.InitMinTempField).
	Tmin float64

	id int // index into the owning Grid's cell slice
}

// ID returns this cell's index within its owning Grid.
func (c *GridCell) ID() int { return c.id }

// InWindRegion reports whether dist2 (squared distance from the
// cell center to the star, in code units) places the cell inside the
// stellar wind injection region, per spec §4.D.
func InWindRegion(dist2 float64) bool {
	const windRadius = 0.95
	return dist2 <= windRadius*windRadius
}

// ThermoActive reports whether the cell's advected scalar ADV is
// above the configured gate threshold, per spec §3/§4.E.
func (c *GridCell) ThermoActive(thermoHIISwitch float64) bool {
	return c.Q[ADV] >= thermoHIISwitch
}

// ClearThermo zeroes HEAT, RATE, and the full diagnostic breakdown,
// per spec §3's "cell with ADV < thermoHII_Switch contributes zero".
func (c *GridCell) ClearThermo() {
	c.T[HEAT] = 0
	c.T[RATE] = 0
	for i := range c.H {
		c.H[i] = 0
	}
}

// CheckInvariants checks DEN >= dfloor, PRE >= pfloor and 0 <= HII <= 1
// (spec §8's post-subStep invariants). It does not check T >= Tmin.
// It returns the first violated invariant as an error, or nil.
func (c *GridCell) CheckInvariants(dfloor, pfloor float64) error {
	switch {
	case c.Q[DEN] < dfloor:
		return &InvariantError{Field: "DEN", Value: c.Q[DEN], Bound: dfloor}
	case c.Q[PRE] < pfloor:
		return &InvariantError{Field: "PRE", Value: c.Q[PRE], Bound: pfloor}
	case c.Q[HII] < 0 || c.Q[HII] > 1:
		return &InvariantError{Field: "HII", Value: c.Q[HII], Bound: 0}
	default:
		return nil
	}
}
