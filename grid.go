package radhydro

import "fmt"

// IterableName is a named, ordered cell iteration exposed by Grid,
// per spec §3/§6.
type IterableName string

const (
	// GridCellsIterable is every local cell, in storage order.
	GridCellsIterable IterableName = "GridCells"
	// CausalWind is cells inside the stellar wind injection region,
	// visited before CausalNonWind.
	CausalWind IterableName = "CausalWind"
	// CausalNonWind is the remaining cells, ordered near-to-star so an
	// upstream neighbour is always visited before its downstream cell.
	CausalNonWind IterableName = "CausalNonWind"
	// LeftPartitionCells are this rank's boundary ghost cells on the
	// left (west) edge of its slab.
	LeftPartitionCells IterableName = "LeftPartitionCells"
	// RightPartitionCells are this rank's boundary ghost cells on the
	// right (east) edge of its slab.
	RightPartitionCells IterableName = "RightPartitionCells"
)

// Grid owns a rank's local cells and exposes the ordered iterations
// the hard core depends on. Mesh construction, refinement, and
// partitioning decisions are an external collaborator's
// responsibility (spec §1 Non-goals); Grid here is the minimal
// surface described in spec §6 plus the bookkeeping needed to
// satisfy it.
type Grid struct {
	Cells []*GridCell

	// causalWind/causalNonWind hold indices into Cells in visitation
	// order; the external constructor (or test fixture) populates
	// these once after setting cell geometry and neighbour topology.
	causalWind    []int
	causalNonWind []int

	leftGhost  []*GridCell
	rightGhost []*GridCell

	// leftInterior/rightInterior are this rank's own cells immediately
	// inside its left/right boundary, paired index-for-index with
	// leftGhost/rightGhost. The ghost slices mirror the neighbouring
	// rank's data; these are the real, locally swept cells this rank
	// sends outward.
	leftInterior  []*GridCell
	rightInterior []*GridCell

	Dx          [NDim]float64
	CurrentTime float64
	DeltaTime   float64
}

// NewGrid builds a Grid over the given cells, wiring each cell's ID
// to its slice index.
func NewGrid(cells []*GridCell, dx [NDim]float64) *Grid {
	g := &Grid{Cells: cells, Dx: dx}
	for i, c := range cells {
		c.id = i
	}
	return g
}

// SetCausalOrder records the wind/non-wind visitation order computed
// by the external constructor from star position and dist² against
// the wind-region radius (spec §4.D step 2).
func (g *Grid) SetCausalOrder(wind, nonWind []int) {
	g.causalWind = wind
	g.causalNonWind = nonWind
}

// SetBoundaryCells records this rank's left/right ghost cells, in the
// iteration order the MPI wire protocol uses (spec §6), paired with
// the real local cells adjacent to each boundary (leftInterior[i]/
// rightInterior[i] is the local neighbour of left[i]/right[i]).
func (g *Grid) SetBoundaryCells(left, leftInterior, right, rightInterior []*GridCell) {
	g.leftGhost = left
	g.leftInterior = leftInterior
	g.rightGhost = right
	g.rightInterior = rightInterior
}

// LeftInteriorCells returns this rank's own cells just inside its left
// boundary, in the same order as LeftPartitionCells' ghost cells — the
// real, sweep-updated values this rank sends to its left neighbour,
// as opposed to the ghost cells themselves, which mirror data received
// from that neighbour rather than anything this rank computed.
func (g *Grid) LeftInteriorCells() []*GridCell { return g.leftInterior }

// RightInteriorCells is LeftInteriorCells' right-boundary counterpart.
func (g *Grid) RightInteriorCells() []*GridCell { return g.rightInterior }

// GetIterable returns the ordered cells for the named iteration.
func (g *Grid) GetIterable(name IterableName) ([]*GridCell, error) {
	switch name {
	case GridCellsIterable:
		return g.Cells, nil
	case CausalWind:
		return indexTo(g.Cells, g.causalWind), nil
	case CausalNonWind:
		return indexTo(g.Cells, g.causalNonWind), nil
	case LeftPartitionCells:
		return g.leftGhost, nil
	case RightPartitionCells:
		return g.rightGhost, nil
	default:
		return nil, fmt.Errorf("radhydro: unknown iterable %q", name)
	}
}

// GetCell returns the local cell with the given id.
func (g *Grid) GetCell(id int) (*GridCell, error) {
	if id < 0 || id >= len(g.Cells) {
		return nil, fmt.Errorf("radhydro: cell id %d out of range [0,%d)", id, len(g.Cells))
	}
	return g.Cells[id], nil
}

func indexTo(cells []*GridCell, idx []int) []*GridCell {
	out := make([]*GridCell, len(idx))
	for i, j := range idx {
		out[i] = cells[j]
	}
	return out
}
