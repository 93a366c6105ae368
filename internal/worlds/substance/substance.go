// Package substance implements a diffusion world: colored substances decay
// each generation and donate a fraction of themselves to same-colored
// neighbors, while a set of fixed sources keeps stamping full-strength
// substance into the grid through the engine's exogenous-update hook.
package substance

import (
	"evogrid/internal/grid"
	"evogrid/internal/model"
	"evogrid/internal/rng"
	"evogrid/internal/worlds"
)

const (
	donateFraction = 0.1
	decayFraction  = 0.01
	minAmount      = 0.01

	defaultClusterCount  = 40
	defaultClusterRadius = 5
	defaultClusterSize   = 10
)

// Substance is a colored quantity in one cell.
type Substance struct {
	Color  [3]uint8
	Amount float32
}

func clampAmount(amount float32) float32 {
	if amount < 0 {
		return 0
	}
	if amount > 1 {
		return 1
	}
	return amount
}

// Cell holds an optional substance.
type Cell struct {
	HasSubstance bool
	Substance    Substance
}

// Transition moves substance between cells. A cell holding substance
// collects donations from same-colored neighbors and pays out its own decay
// and donation; an empty cell adopts the color of the first donating
// neighbor in traversal order, so the fixed neighbor order is the tie-break
// between competing colors.
func (c Cell) Transition(n *grid.Neighborhood[Cell], next *Cell, _ rng.Policy) {
	if c.HasSubstance {
		amount := next.Substance.Amount + sumDonations(n, c.Substance.Color)
		if amount < minAmount {
			next.HasSubstance = false
			next.Substance = Substance{}
			return
		}
		next.Substance.Amount = clampAmount(amount - (donateFraction+decayFraction)*c.Substance.Amount)
		return
	}

	color, ok := firstDonorColor(n)
	if !ok {
		return
	}
	amount := sumDonations(n, color)
	if amount >= minAmount {
		next.HasSubstance = true
		next.Substance = Substance{Color: color, Amount: clampAmount(amount)}
	}
}

func sumDonations(n *grid.Neighborhood[Cell], color [3]uint8) float32 {
	var donated float32
	n.ForNeighbors(func(nb *Cell) {
		if nb.HasSubstance && nb.Substance.Amount >= minAmount && nb.Substance.Color == color {
			donated += (donateFraction / 8.0) * nb.Substance.Amount
		}
	})
	return donated
}

func firstDonorColor(n *grid.Neighborhood[Cell]) ([3]uint8, bool) {
	var color [3]uint8
	found := false
	n.ForNeighbors(func(nb *Cell) {
		if !found && nb.HasSubstance && nb.Substance.Amount >= minAmount {
			color = nb.Substance.Color
			found = true
		}
	})
	return color, found
}

// Source stamps a fixed substance into its cell every generation.
type Source struct {
	Loc       grid.Loc
	Substance Substance
}

// World runs the substance-diffusion simulation.
type World struct {
	grid    *grid.Grid[Cell]
	sources []Source
	gen     uint64
}

// New builds the world and scatters source clusters. Parameters: "clusters",
// "cluster_radius", "cluster_size".
func New(cfg worlds.Config) (*World, error) {
	size := grid.NewSize(cfg.Width, cfg.Height)
	w := &World{grid: grid.New[Cell](size)}

	r := rng.NewSeeded(cfg.Seed, 0)
	count := cfg.ParamInt("clusters", defaultClusterCount)
	radius := cfg.ParamInt("cluster_radius", defaultClusterRadius)
	clusterSize := cfg.ParamInt("cluster_size", defaultClusterSize)
	w.addSourceClusters(r, count, radius, clusterSize)
	return w, nil
}

// addSourceClusters places count clusters of same-substance sources, each
// scattered within radius around a random center.
func (w *World) addSourceClusters(r *rng.Random, count, radius, size int) {
	for i := 0; i < count; i++ {
		center := grid.NewLoc(
			r.IntN(w.grid.Size().Height),
			r.IntN(w.grid.Size().Width),
		)
		w.addSourceCluster(r, center, radius, size)
	}
}

func (w *World) addSourceCluster(r *rng.Random, center grid.Loc, radius, size int) {
	substance := Substance{Color: randomColor(r), Amount: 1.0}
	for i := 0; i < size; i++ {
		loc := grid.NewLoc(
			wrapOffset(r, center.Row, radius, w.grid.Size().Height),
			wrapOffset(r, center.Col, radius, w.grid.Size().Width),
		)
		w.sources = append(w.sources, Source{Loc: loc, Substance: substance})
	}
}

func randomColor(r *rng.Random) [3]uint8 {
	color := [3]uint8{0xff, uint8(r.IntN(0xff)), uint8(r.IntN(0x80))}
	return r.ShuffleColorRGB(color)
}

// wrapOffset perturbs index by up to radius in either direction, wrapping
// toroidally so sources never land out of bounds.
func wrapOffset(r *rng.Random, index, radius, max int) int {
	offset := r.IntBetween(-radius, radius+1)
	return ((index+offset)%max + max) % max
}

// Name returns the world identifier.
func (w *World) Name() string { return "substance" }

// Size returns the grid dimensions.
func (w *World) Size() grid.Size { return w.grid.Size() }

// Generation reports committed steps.
func (w *World) Generation() uint64 { return w.gen }

// Sources exposes the fixed source list.
func (w *World) Sources() []Source {
	return w.sources
}

// Step advances one generation. The sources are stamped into the next buffer
// through the update hook, before the per-cell pass, so the fresh substance
// is part of the committed generation.
func (w *World) Step() {
	w.grid.Update(rng.Deterministic(), func(g *grid.Grid[Cell]) {
		for _, source := range w.sources {
			cell := g.NextCells().At(source.Loc)
			cell.HasSubstance = true
			cell.Substance = source.Substance
		}
	})
	w.gen++
}

// Census counts cells holding visible substance.
func (w *World) Census() model.Census {
	live := 0
	for _, c := range w.grid.Cells().Values() {
		if c.HasSubstance {
			live++
		}
	}
	return model.Census{Generation: w.gen, LiveCells: live}
}

// ColorAt renders the substance color with its amount as alpha.
func (w *World) ColorAt(loc grid.Loc) [4]uint8 {
	c := w.grid.Cells().At(loc)
	if !c.HasSubstance {
		return [4]uint8{0, 0, 0, 0xff}
	}
	s := c.Substance
	return [4]uint8{s.Color[0], s.Color[1], s.Color[2], uint8(s.Amount * 0xff)}
}

func init() {
	worlds.MustRegister("substance", func(cfg worlds.Config) (worlds.World, error) {
		return New(cfg)
	})
}
