package grid

import "fmt"

// Cells is flat, row-major storage for one buffer of cell values. The length
// of the backing slice never changes after construction. Cell values must be
// plain value types: buffers are copied element-wise and rows are handed to
// concurrent workers.
type Cells[C any] struct {
	size  Size
	cells []C
}

// NewCells allocates size.Area() zero-valued cells. It panics on an empty
// size.
func NewCells[C any](size Size) *Cells[C] {
	if size.Empty() {
		panic(fmt.Sprintf("grid: invalid size %dx%d", size.Width, size.Height))
	}
	return &Cells[C]{size: size, cells: make([]C, size.Area())}
}

// Size returns the grid dimensions.
func (c *Cells[C]) Size() Size {
	return c.size
}

// Len returns the total number of cells.
func (c *Cells[C]) Len() int {
	return len(c.cells)
}

// Values exposes the backing slice in row-major order for bulk iteration,
// such as rendering or seeding.
func (c *Cells[C]) Values() []C {
	return c.cells
}

// At returns the cell at loc. It panics when loc is out of bounds: locations
// are expected to originate from iteration already bounded by the grid's own
// dimensions, so a miss is a programming error.
func (c *Cells[C]) At(loc Loc) *C {
	i, ok := loc.Index(c.size)
	if !ok {
		panic(fmt.Sprintf("grid: cell (%d, %d) out of bounds for %dx%d",
			loc.Row, loc.Col, c.size.Width, c.size.Height))
	}
	return &c.cells[i]
}

// Contains reports whether loc addresses a cell of this buffer.
func (c *Cells[C]) Contains(loc Loc) bool {
	_, ok := loc.Index(c.size)
	return ok
}

// Rows partitions the buffer into height contiguous, non-overlapping,
// width-sized row slices. Each row worker takes exclusive ownership of one
// slice, so concurrent row mutation needs no locks: no two workers can reach
// the same memory.
func (c *Cells[C]) Rows() [][]C {
	rows := make([][]C, c.size.Height)
	for row := range rows {
		start := row * c.size.Width
		rows[row] = c.cells[start : start+c.size.Width : start+c.size.Width]
	}
	return rows
}

// CopyFrom overwrites this buffer with source's values. Both buffers must
// have the same size.
func (c *Cells[C]) CopyFrom(source *Cells[C]) {
	if c.size != source.size {
		panic(fmt.Sprintf("grid: copy between %dx%d and %dx%d buffers",
			source.size.Width, source.size.Height, c.size.Width, c.size.Height))
	}
	copy(c.cells, source.cells)
}
