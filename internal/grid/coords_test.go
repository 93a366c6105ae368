package grid

import "testing"

func TestNewSizePanicsOnZeroArea(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {0, 0}, {-1, 3}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewSize(%d, %d) did not panic", dims[0], dims[1])
				}
			}()
			NewSize(dims[0], dims[1])
		}()
	}
}

func TestLocIndexCoversGridUniquely(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 1}, {1, 7}, {5, 4}, {16, 9}} {
		size := NewSize(dims[0], dims[1])
		seen := make(map[int]Loc, size.Area())
		for row := 0; row < size.Height; row++ {
			for col := 0; col < size.Width; col++ {
				i, ok := NewLoc(row, col).Index(size)
				if !ok {
					t.Fatalf("in-bounds (%d,%d) rejected for %v", row, col, size)
				}
				if i < 0 || i >= size.Area() {
					t.Fatalf("index %d outside [0,%d)", i, size.Area())
				}
				if prev, dup := seen[i]; dup {
					t.Fatalf("index %d shared by %v and (%d,%d)", i, prev, row, col)
				}
				seen[i] = NewLoc(row, col)
			}
		}
		if len(seen) != size.Area() {
			t.Fatalf("covered %d of %d indexes", len(seen), size.Area())
		}
	}
}

func TestLocIndexRejectsOutOfBounds(t *testing.T) {
	size := NewSize(4, 3)
	for _, loc := range []Loc{
		NewLoc(3, 0), NewLoc(0, 4), NewLoc(-1, 0), NewLoc(0, -1), NewLoc(3, 4),
	} {
		if _, ok := loc.Index(size); ok {
			t.Fatalf("out-of-bounds %v accepted for %v", loc, size)
		}
	}
}

func TestLocDistance(t *testing.T) {
	if d := NewLoc(0, 0).Distance(NewLoc(3, 4)); d != 5 {
		t.Fatalf("distance = %v, want 5", d)
	}
	if d := NewLoc(2, 2).Distance(NewLoc(2, 2)); d != 0 {
		t.Fatalf("distance to self = %v", d)
	}
}
