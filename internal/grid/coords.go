package grid

import (
	"fmt"
	"math"
)

// Size describes the dimensions of a simulation grid. Both dimensions must be
// positive; a zero-area grid is a construction-time contract violation.
type Size struct {
	Width  int
	Height int
}

// NewSize returns a validated Size. It panics if either dimension is < 1.
func NewSize(width, height int) Size {
	s := Size{Width: width, Height: height}
	if s.Empty() {
		panic(fmt.Sprintf("grid: invalid size %dx%d", width, height))
	}
	return s
}

// Empty reports whether the size covers no cells.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the total cell count.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Loc addresses one cell as (row, col). Validity is context-dependent and is
// checked against a Size on each access.
type Loc struct {
	Row int
	Col int
}

// NewLoc returns the location for the given row and column.
func NewLoc(row, col int) Loc {
	return Loc{Row: row, Col: col}
}

// Index returns the row-major slice index of the location within size, and
// whether the location is in bounds. There is no wraparound here; toroidal
// addressing is exclusively Neighborhood's concern.
func (l Loc) Index(size Size) (int, bool) {
	if l.Row < 0 || l.Row >= size.Height || l.Col < 0 || l.Col >= size.Width {
		return 0, false
	}
	return l.Row*size.Width + l.Col, true
}

// Distance returns the Euclidean distance to other on the unwrapped plane.
func (l Loc) Distance(other Loc) float64 {
	dr := float64(l.Row - other.Row)
	dc := float64(l.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}
