// Package raytrace implements spec §4.D's causal column-density ray
// tracer, grounded on
// original_source/src/Integrators/Thermodynamics.cpp's rayTrace and
// updateColDen.
package raytrace

import "github.com/ionfront/radhydro"

// UpdateColDen implements spec §4.D's updateColDen: Raga-weight gather
// and normalize for cells outside the wind region, zero and reset
// inside it. hydrogenMass is m_H, the proton mass in code units.
func UpdateColDen(cell *radhydro.GridCell, dist2, hydrogenMass float64, getCell func(id int) (*radhydro.GridCell, error)) error {
	if !radhydro.InWindRegion(dist2) {
		var colden, wRaga [4]float64
		for i := 0; i < 4; i++ {
			id := cell.NeighborIDs[i]
			if id != radhydro.NoNeighbor {
				nb, err := getCell(id)
				if err != nil {
					return err
				}
				colden[i] = nb.T[radhydro.COLDEN] + nb.T[radhydro.DCOLDEN]
			}
			if colden[i] == 0 {
				wRaga[i] = 0
			} else {
				wRaga[i] = cell.NeighborWeights[i] / colden[i]
			}
		}
		sumW := wRaga[0] + wRaga[1] + wRaga[2] + wRaga[3]
		var newColden float64
		if sumW != 0 {
			for i := 0; i < 4; i++ {
				wRaga[i] /= sumW
				newColden += wRaga[i] * colden[i]
			}
		}
		cell.T[radhydro.COLDEN] = newColden
	} else {
		cell.T[radhydro.COLDEN] = 0
	}
	cell.T[radhydro.DCOLDEN] = (cell.Q[radhydro.DEN] / hydrogenMass) * cell.Ds
	return nil
}

// dist2 computes the squared distance from a cell center to the star
// in the cells' own coordinates (not scaled by the grid spacing), per
// Thermodynamics::rayTrace.
func dist2(cell *radhydro.GridCell, star *radhydro.Star) float64 {
	var d2 float64
	for i := 0; i < radhydro.NDim; i++ {
		diff := cell.Xc[i] - star.Xc[i]
		d2 += diff * diff
	}
	return d2
}

// Sweep runs spec §4.D's full causal sweep: receive-from-upstream (if
// the star is not on this rank), traverse CausalWind then
// CausalNonWind calling UpdateColDen, then send near-boundary values
// downstream. It is reimplemented over radhydro.Partition's typed
// channel messages instead of raw MPI send/receive calls (see
// DESIGN.md).
func Sweep(f radhydro.Fluid, part *radhydro.Partition, hydrogenMass float64) error {
	g := f.Grid()
	star := f.Star()

	if star.Core != radhydro.Here && part != nil {
		var ghostName radhydro.IterableName
		var msg radhydro.ThermoMsg
		if star.Core == radhydro.Left {
			ghostName = radhydro.LeftPartitionCells
			msg = part.ReceiveFromLeft()
		} else {
			ghostName = radhydro.RightPartitionCells
			msg = part.ReceiveFromRight()
		}
		ghosts, err := g.GetIterable(ghostName)
		if err != nil {
			return err
		}
		for i, ghost := range ghosts {
			ghost.T[radhydro.COLDEN] = msg.ColDen[i]
			ghost.T[radhydro.DCOLDEN] = msg.DColDen[i]
		}
	}

	wind, err := g.GetIterable(radhydro.CausalWind)
	if err != nil {
		return err
	}
	for _, cell := range wind {
		if err := UpdateColDen(cell, dist2(cell, star), hydrogenMass, g.GetCell); err != nil {
			return err
		}
	}
	nonWind, err := g.GetIterable(radhydro.CausalNonWind)
	if err != nil {
		return err
	}
	for _, cell := range nonWind {
		if err := UpdateColDen(cell, dist2(cell, star), hydrogenMass, g.GetCell); err != nil {
			return err
		}
	}

	if part == nil {
		return nil
	}

	// Send near-boundary (COL_DEN, DCOL_DEN) rightward unless the star
	// sits at (or past) the right edge of this rank's responsibility.
	// The values sent are this rank's own interior cells adjacent to
	// the boundary — the ones the sweep above actually updated — not
	// the ghost cells, which only ever mirror data received from the
	// neighbouring rank.
	if part.HasRight() && star.Core != radhydro.Right {
		part.SendRight(collect(g.RightInteriorCells()))
	}
	// Symmetric on the left.
	if part.HasLeft() && star.Core != radhydro.Left {
		part.SendLeft(collect(g.LeftInteriorCells()))
	}
	return nil
}

func collect(cells []*radhydro.GridCell) radhydro.ThermoMsg {
	msg := radhydro.ThermoMsg{
		ColDen:  make([]float64, len(cells)),
		DColDen: make([]float64, len(cells)),
	}
	for i, c := range cells {
		msg.ColDen[i] = c.T[radhydro.COLDEN]
		msg.DColDen[i] = c.T[radhydro.DCOLDEN]
	}
	return msg
}
