package grid

// Neighborhood is a read-only toroidal view of the 3x3 block around a center
// cell. The grid behaves as a torus: the row or column one before 0 wraps to
// the last one, and one past the last wraps to 0.
type Neighborhood[C any] struct {
	cells *Cells[C]
	rows  [3]int
	cols  [3]int
}

// NewNeighborhood builds the view for center over cells.
func NewNeighborhood[C any](cells *Cells[C], center Loc) Neighborhood[C] {
	rowAbove, rowBelow := adjacentIndexes(center.Row, cells.size.Height)
	colLeft, colRight := adjacentIndexes(center.Col, cells.size.Width)
	return Neighborhood[C]{
		cells: cells,
		rows:  [3]int{rowAbove, center.Row, rowBelow},
		cols:  [3]int{colLeft, center.Col, colRight},
	}
}

// Center returns the center cell.
func (n *Neighborhood[C]) Center() *C {
	return n.Cell(1, 1)
}

// Cell addresses the 3x3 block by local coordinates, with (1, 1) the center.
// Rules that need a specific directional neighbor use this directly.
func (n *Neighborhood[C]) Cell(row, col int) *C {
	return n.cells.At(NewLoc(n.rows[row], n.cols[col]))
}

// ForNeighbors visits the 8 Moore neighbors, excluding the center, in a
// fixed order: NW, N, NE, W, E, SW, S, SE. Rules accumulate order-sensitive
// state during this traversal, so the order is part of the contract.
func (n *Neighborhood[C]) ForNeighbors(f func(*C)) {
	f(n.Cell(0, 0))
	f(n.Cell(0, 1))
	f(n.Cell(0, 2))

	f(n.Cell(1, 0))
	f(n.Cell(1, 2))

	f(n.Cell(2, 0))
	f(n.Cell(2, 1))
	f(n.Cell(2, 2))
}

func adjacentIndexes(i, max int) (int, int) {
	return wrap(i-1, max), wrap(i+1, max)
}

func wrap(i, max int) int {
	return (i%max + max) % max
}
