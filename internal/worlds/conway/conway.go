// Package conway implements the classic Game of Life on a toroidal grid:
// a live cell survives with 2 or 3 live neighbors, a dead cell is born with
// exactly 3. The transition itself is fully deterministic; randomness is
// only used to seed the initial board.
package conway

import (
	"evogrid/internal/grid"
	"evogrid/internal/model"
	"evogrid/internal/rng"
	"evogrid/internal/worlds"
)

const defaultFillOdds = 0.3

var (
	aliveColor = [4]uint8{0, 0, 0, 0xff}
	deadColor  = [4]uint8{0xff, 0xff, 0xff, 0xff}
)

// Cell holds one Conway cell.
type Cell struct {
	Alive bool
}

// Transition applies the survival/birth rule for one cell.
func (c Cell) Transition(n *grid.Neighborhood[Cell], next *Cell, _ rng.Policy) {
	live := 0
	n.ForNeighbors(func(nb *Cell) {
		if nb.Alive {
			live++
		}
	})
	if c.Alive {
		next.Alive = live == 2 || live == 3
	} else {
		next.Alive = live == 3
	}
}

// World runs Conway's Game of Life.
type World struct {
	grid *grid.Grid[Cell]
	gen  uint64
}

// New builds a Conway world and seeds each cell alive with the "fill"
// parameter's odds (default 0.3).
func New(cfg worlds.Config) (*World, error) {
	size := grid.NewSize(cfg.Width, cfg.Height)
	w := &World{grid: grid.New[Cell](size)}

	r := rng.NewSeeded(cfg.Seed, 0)
	fill := cfg.ParamFloat("fill", defaultFillOdds)
	for i := range w.grid.Cells().Values() {
		w.grid.Cells().Values()[i].Alive = r.Bool(fill)
	}
	return w, nil
}

// Name returns the world identifier.
func (w *World) Name() string { return "conway" }

// Size returns the grid dimensions.
func (w *World) Size() grid.Size { return w.grid.Size() }

// Generation reports committed steps.
func (w *World) Generation() uint64 { return w.gen }

// Step advances one generation.
func (w *World) Step() {
	w.grid.Update(rng.Deterministic(), nil)
	w.gen++
}

// Census counts the live cells.
func (w *World) Census() model.Census {
	live := 0
	for _, c := range w.grid.Cells().Values() {
		if c.Alive {
			live++
		}
	}
	return model.Census{Generation: w.gen, LiveCells: live}
}

// ColorAt renders live cells black on white.
func (w *World) ColorAt(loc grid.Loc) [4]uint8 {
	if w.grid.Cells().At(loc).Alive {
		return aliveColor
	}
	return deadColor
}

func init() {
	worlds.MustRegister("conway", func(cfg worlds.Config) (worlds.World, error) {
		return New(cfg)
	})
}
