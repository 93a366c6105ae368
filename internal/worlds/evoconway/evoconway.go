// Package evoconway implements an evolutionary variant of Conway's Game of
// Life. Each creature carries two heritable 8-bit genes: one naming the
// neighbor counts it survives at, one naming the counts at which it can
// reproduce into an adjacent empty cell. Children inherit both genes by
// proportional-vote merge over their live neighbors, with a small mutation
// rate, and larger genomes pay a survival penalty so generality has a cost.
package evoconway

import (
	"evogrid/internal/gene"
	"evogrid/internal/grid"
	"evogrid/internal/model"
	"evogrid/internal/rng"
	"evogrid/internal/worlds"
)

const (
	defaultFillOdds    = 0.3
	defaultWarmupSteps = 10
	mutationOdds       = 0.001
)

var emptyCellColor = [4]uint8{0, 0, 0, 0xff}

// Creature is the heritable payload of a live cell.
type Creature struct {
	// Survival bit n set means the creature survives with n+1 live
	// neighbors.
	Survival gene.BitSet8
	// Repro bit n set means the creature reproduces into an empty cell that
	// has n+1 live neighbors.
	Repro gene.BitSet8
}

// ConwayCreature returns the genome encoding the classic rule: survive with
// 2 or 3 neighbors, reproduce at 3.
func ConwayCreature() Creature {
	return Creature{Survival: 0b110, Repro: 0b100}
}

// GenomeBits returns the total set bits across both genes.
func (c Creature) GenomeBits() int {
	return c.Survival.OnesCount() + c.Repro.OnesCount()
}

func (c Creature) survives(numNeighbors int, policy rng.Policy) bool {
	return numNeighbors > 0 &&
		c.Survival.Has(numNeighbors-1) &&
		c.hasSmallGenome(policy)
}

func (c Creature) canReproduce(numNeighbors int) bool {
	return numNeighbors > 0 && c.Repro.Has(numNeighbors-1)
}

// hasSmallGenome is the survival penalty on genome size: a creature with all
// 16 bits set never passes, one with few bits almost always does. With a
// deterministic policy the penalty is frozen off.
func (c Creature) hasSmallGenome(policy rng.Policy) bool {
	if !policy.Enabled() {
		return true
	}
	return policy.Stream().Bool(1.0 - float64(c.GenomeBits())/16.0)
}

// Color derives a stable display color from the genome: red encodes the
// union of trigger bits, green and blue the sizes of the two genes.
func (c Creature) Color() [4]uint8 {
	red := uint8(c.Survival | c.Repro)

	numSurvival := uint8(c.Survival.OnesCount())
	green := ((numSurvival & 0b1000) | (numSurvival << 1)) << 4

	numRepro := uint8(c.Repro.OnesCount())
	blue := ((numRepro & 0b1000) | (numRepro << 1)) << 4

	return [4]uint8{red, green, blue, 0xff}
}

// Cell holds an optional creature.
type Cell struct {
	HasCreature bool
	Creature    Creature
}

// Transition applies survival to live cells and gene-merged reproduction to
// empty ones.
func (c Cell) Transition(n *grid.Neighborhood[Cell], next *Cell, policy rng.Policy) {
	numNeighbors := countNeighborCreatures(n)
	if c.HasCreature {
		if !c.Creature.survives(numNeighbors, policy) {
			next.HasCreature = false
			next.Creature = Creature{}
		}
		return
	}
	if child, ok := maybeReproduce(n, numNeighbors, policy); ok {
		next.HasCreature = true
		next.Creature = child
	}
}

func countNeighborCreatures(n *grid.Neighborhood[Cell]) int {
	count := 0
	n.ForNeighbors(func(nb *Cell) {
		if nb.HasCreature {
			count++
		}
	})
	return count
}

func maybeReproduce(n *grid.Neighborhood[Cell], numNeighbors int, policy rng.Policy) (Creature, bool) {
	if numNeighbors == 0 {
		return Creature{}, false
	}

	survivalGenes := make([]gene.BitSet8Gene, 0, 8)
	reproGenes := make([]gene.BitSet8Gene, 0, 8)
	n.ForNeighbors(func(nb *Cell) {
		if nb.HasCreature && nb.Creature.canReproduce(numNeighbors) {
			survivalGenes = append(survivalGenes, gene.BitSet8Gene{Value: nb.Creature.Survival})
			reproGenes = append(reproGenes, gene.BitSet8Gene{Value: nb.Creature.Repro})
		}
	})
	if len(survivalGenes) == 0 {
		return Creature{}, false
	}

	child := Creature{
		Survival: gene.MergeBitSet8Genes(survivalGenes, policy, mutationOdds).Value,
		Repro:    gene.MergeBitSet8Genes(reproGenes, policy, mutationOdds).Value,
	}
	if !child.hasSmallGenome(policy) {
		return Creature{}, false
	}
	return child, true
}

// World runs the evolutionary Conway simulation.
type World struct {
	grid   *grid.Grid[Cell]
	policy rng.Policy
	gen    uint64
	// warmupLeft counts down plain-Conway generations before evolution
	// switches on; it lets recognizable Life patterns establish first.
	warmupLeft int
}

// New builds the world. Parameters: "fill" initial creature odds, "warmup"
// plain-Conway generations before evolution starts.
func New(cfg worlds.Config) (*World, error) {
	size := grid.NewSize(cfg.Width, cfg.Height)
	w := &World{
		grid:       grid.New[Cell](size),
		policy:     rng.Stochastic(rng.NewSeeded(cfg.Seed, 1)),
		warmupLeft: cfg.ParamInt("warmup", defaultWarmupSteps),
	}

	r := rng.NewSeeded(cfg.Seed, 0)
	fill := cfg.ParamFloat("fill", defaultFillOdds)
	for i := range w.grid.Cells().Values() {
		if r.Bool(fill) {
			w.grid.Cells().Values()[i] = Cell{HasCreature: true, Creature: ConwayCreature()}
		}
	}
	return w, nil
}

// Name returns the world identifier.
func (w *World) Name() string { return "evoconway" }

// Size returns the grid dimensions.
func (w *World) Size() grid.Size { return w.grid.Size() }

// Generation reports committed steps.
func (w *World) Generation() uint64 { return w.gen }

// Step advances one generation, deterministically while warm-up generations
// remain and stochastically afterwards.
func (w *World) Step() {
	if w.warmupLeft > 0 {
		w.warmupLeft--
		w.grid.Update(rng.Deterministic(), nil)
	} else {
		w.grid.Update(w.policy, nil)
	}
	w.gen++
}

// Census counts live creatures and aggregates their genomes: allele
// frequency tracks the survival gene per bit position.
func (w *World) Census() model.Census {
	census := model.Census{Generation: w.gen}
	var ones [8]int
	totalBits := 0
	for _, c := range w.grid.Cells().Values() {
		if !c.HasCreature {
			continue
		}
		census.LiveCells++
		totalBits += c.Creature.GenomeBits()
		for i := 0; i < 8; i++ {
			if c.Creature.Survival.Has(i) {
				ones[i]++
			}
		}
	}
	if census.LiveCells > 0 {
		census.MeanGenomeBits = float64(totalBits) / float64(census.LiveCells)
		for i := 0; i < 8; i++ {
			census.AlleleFrequency[i] = float64(ones[i]) / float64(census.LiveCells)
		}
	}
	return census
}

// ColorAt renders a creature's genome-derived color, or the empty-cell
// background.
func (w *World) ColorAt(loc grid.Loc) [4]uint8 {
	c := w.grid.Cells().At(loc)
	if c.HasCreature {
		return c.Creature.Color()
	}
	return emptyCellColor
}

func init() {
	worlds.MustRegister("evoconway", func(cfg worlds.Config) (worlds.World, error) {
		return New(cfg)
	})
}
