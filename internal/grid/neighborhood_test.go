package grid

import "testing"

func TestNeighborhoodWrapsAroundTorus(t *testing.T) {
	size := NewSize(6, 4) // width 6, height 4
	cells := NewCells[int](size)
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			*cells.At(NewLoc(row, col)) = row*size.Width + col
		}
	}

	n := NewNeighborhood(cells, NewLoc(0, 0))
	var got []int
	n.ForNeighbors(func(c *int) { got = append(got, *c) })

	index := func(row, col int) int { return row*size.Width + col }
	want := []int{
		index(size.Height-1, size.Width-1), // NW
		index(size.Height-1, 0),            // N
		index(size.Height-1, 1),            // NE
		index(0, size.Width-1),             // W
		index(0, 1),                        // E
		index(1, size.Width-1),             // SW
		index(1, 0),                        // S
		index(1, 1),                        // SE
	}
	if len(got) != len(want) {
		t.Fatalf("visited %d neighbors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbor %d = cell %d, want %d (order must be NW,N,NE,W,E,SW,S,SE)",
				i, got[i], want[i])
		}
	}
}

func TestNeighborhoodExcludesCenter(t *testing.T) {
	size := NewSize(3, 3)
	cells := NewCells[int](size)
	center := NewLoc(1, 1)
	*cells.At(center) = 99

	n := NewNeighborhood(cells, center)
	n.ForNeighbors(func(c *int) {
		if *c == 99 {
			t.Fatal("center cell visited as a neighbor")
		}
	})
	if *n.Center() != 99 {
		t.Fatal("Center() did not return the center cell")
	}
}

func TestNeighborhoodLocalCoordinates(t *testing.T) {
	size := NewSize(5, 5)
	cells := NewCells[int](size)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			*cells.At(NewLoc(row, col)) = row*10 + col
		}
	}

	n := NewNeighborhood(cells, NewLoc(2, 2))
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := (r+1)*10 + (c + 1)
			if got := *n.Cell(r, c); got != want {
				t.Fatalf("Cell(%d,%d) = %d, want %d", r, c, got, want)
			}
		}
	}
}

func TestNeighborhoodOnSingleCellGrid(t *testing.T) {
	cells := NewCells[int](NewSize(1, 1))
	*cells.At(NewLoc(0, 0)) = 7

	n := NewNeighborhood(cells, NewLoc(0, 0))
	visits := 0
	n.ForNeighbors(func(c *int) {
		visits++
		if *c != 7 {
			t.Fatalf("neighbor = %d, want 7", *c)
		}
	})
	// On a 1x1 torus every neighbor wraps back to the center cell, and the
	// 8 visits still happen.
	if visits != 8 {
		t.Fatalf("visited %d neighbors, want 8", visits)
	}
}
