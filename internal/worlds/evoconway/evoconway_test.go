package evoconway

import (
	"strconv"
	"testing"

	"evogrid/internal/gene"
	"evogrid/internal/grid"
	"evogrid/internal/rng"
	"evogrid/internal/worlds"
)

func newEmptyWorld(t *testing.T, width, height, warmup int) *World {
	t.Helper()
	w, err := New(worlds.Config{
		Width:  width,
		Height: height,
		Params: map[string]string{"fill": "0", "warmup": strconv.Itoa(warmup)},
	})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func placeConway(w *World, row, col int) {
	*w.grid.Cells().At(grid.NewLoc(row, col)) = Cell{
		HasCreature: true,
		Creature:    ConwayCreature(),
	}
}

func TestWarmupBehavesLikeConwayBlinker(t *testing.T) {
	w := newEmptyWorld(t, 5, 5, 10)
	placeConway(w, 1, 2)
	placeConway(w, 2, 2)
	placeConway(w, 3, 2)

	w.Step()

	wantAlive := map[grid.Loc]bool{
		grid.NewLoc(2, 1): true,
		grid.NewLoc(2, 2): true,
		grid.NewLoc(2, 3): true,
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			loc := grid.NewLoc(row, col)
			got := w.grid.Cells().At(loc).HasCreature
			if got != wantAlive[loc] {
				t.Fatalf("cell (%d,%d) alive=%v, want %v", row, col, got, wantAlive[loc])
			}
		}
	}
}

func TestWarmupChildrenInheritConwayGenome(t *testing.T) {
	w := newEmptyWorld(t, 5, 5, 10)
	placeConway(w, 1, 2)
	placeConway(w, 2, 2)
	placeConway(w, 3, 2)

	w.Step()

	// (2,1) is newborn: all its parents carry the Conway genome, so the
	// unanimous merge reproduces it exactly, even in deterministic warm-up.
	child := w.grid.Cells().At(grid.NewLoc(2, 1))
	if !child.HasCreature {
		t.Fatal("expected newborn creature at (2,1)")
	}
	if child.Creature != ConwayCreature() {
		t.Fatalf("child genome = %+v, want Conway genome", child.Creature)
	}
}

func TestSurvivalGeneGatesNeighborCounts(t *testing.T) {
	cases := []struct {
		name      string
		survival  gene.BitSet8
		neighbors int
		want      bool
	}{
		{"conway survives with 2", 0b110, 2, true},
		{"conway survives with 3", 0b110, 3, true},
		{"conway dies with 1", 0b110, 1, false},
		{"conway dies with 4", 0b110, 4, false},
		{"isolate dies alone", 0b110, 0, false},
		{"hermit gene survives with 1", 0b1, 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			creature := Creature{Survival: c.survival}
			if got := creature.survives(c.neighbors, rng.Deterministic()); got != c.want {
				t.Fatalf("survives(%d) = %v, want %v", c.neighbors, got, c.want)
			}
		})
	}
}

func TestGenomeSizePenalty(t *testing.T) {
	policy := rng.Stochastic(rng.NewSeeded(17, 0))

	// A full genome (all 16 bits) never passes the size check.
	bloated := Creature{Survival: 0xff, Repro: 0xff}
	for i := 0; i < 1000; i++ {
		if bloated.hasSmallGenome(policy) {
			t.Fatal("16-bit genome passed the size penalty")
		}
	}

	// An empty genome always passes.
	lean := Creature{}
	for i := 0; i < 1000; i++ {
		if !lean.hasSmallGenome(policy) {
			t.Fatal("empty genome failed the size penalty")
		}
	}

	// Deterministic mode freezes the penalty off entirely.
	if !bloated.hasSmallGenome(rng.Deterministic()) {
		t.Fatal("penalty fired in deterministic mode")
	}
}

func TestReproductionRequiresEligibleParent(t *testing.T) {
	// Warm-up keeps the step deterministic: no mutation, no genome-size
	// penalty, so the expected births are exact.
	w := newEmptyWorld(t, 5, 5, 10)
	// One creature that reproduces only at count 1; its empty neighbors all
	// see exactly 1 neighbor, so it is an eligible parent everywhere around
	// it, but it dies itself (no neighbors).
	parent := Creature{Survival: 0b10, Repro: 0b1}
	*w.grid.Cells().At(grid.NewLoc(2, 2)) = Cell{HasCreature: true, Creature: parent}

	w.Step()

	if w.grid.Cells().At(grid.NewLoc(2, 2)).HasCreature {
		t.Fatal("isolated creature survived")
	}
	for _, loc := range []grid.Loc{
		grid.NewLoc(1, 1), grid.NewLoc(1, 2), grid.NewLoc(1, 3),
		grid.NewLoc(2, 1), grid.NewLoc(2, 3),
		grid.NewLoc(3, 1), grid.NewLoc(3, 2), grid.NewLoc(3, 3),
	} {
		cell := w.grid.Cells().At(loc)
		if !cell.HasCreature {
			t.Fatalf("no child at %v", loc)
		}
		if cell.Creature != parent {
			t.Fatalf("child at %v = %+v, want the single parent's genome", loc, cell.Creature)
		}
	}
}

func TestCensusAggregatesGenomes(t *testing.T) {
	w := newEmptyWorld(t, 4, 4, 0)
	placeConway(w, 0, 0)
	placeConway(w, 1, 1)

	census := w.Census()
	if census.LiveCells != 2 {
		t.Fatalf("LiveCells = %d, want 2", census.LiveCells)
	}
	// The Conway genome has 2 survival bits and 1 repro bit.
	if census.MeanGenomeBits != 3 {
		t.Fatalf("MeanGenomeBits = %v, want 3", census.MeanGenomeBits)
	}
	if census.AlleleFrequency[1] != 1 || census.AlleleFrequency[2] != 1 {
		t.Fatalf("survival allele frequencies = %v", census.AlleleFrequency)
	}
	if census.AlleleFrequency[0] != 0 {
		t.Fatalf("bit 0 frequency = %v, want 0", census.AlleleFrequency[0])
	}
}

func TestColorDistinguishesGenomes(t *testing.T) {
	a := ConwayCreature().Color()
	b := Creature{Survival: 0xff, Repro: 0xff}.Color()
	if a == b {
		t.Fatal("distinct genomes rendered identically")
	}
	if a[3] != 0xff || b[3] != 0xff {
		t.Fatal("creature colors must be opaque")
	}
}
