// Package evosubstance implements an enzyme-matching evolutionary world.
// Creatures live on a static layer of coded substances. A creature carries
// an enzyme gene (an 8-bit code) and a match-weight gene: survival is gated
// on neighbor count like Conway variants, then weighted by how well the
// enzyme matches the substance code under the creature, with the match
// weight deciding how much the match matters. Both genes are inherited by
// merge from the neighboring parents.
package evosubstance

import (
	"evogrid/internal/gene"
	"evogrid/internal/grid"
	"evogrid/internal/model"
	"evogrid/internal/rng"
	"evogrid/internal/worlds"
)

const (
	defaultFillOdds      = 0.3
	defaultSubstanceOdds = 0.5
	mutationOdds         = 0.001
	mutationStdev        = 0.001
)

var emptyCellColor = [4]uint8{0, 0, 0, 0xff}

// Creature is the heritable payload of a live cell.
type Creature struct {
	Enzyme      gene.BitSet8Gene
	MatchWeight gene.FractionGene
}

// Color derives a display color from the genome: red encodes the enzyme
// code, green the match weight.
func (c Creature) Color() [4]uint8 {
	return [4]uint8{
		uint8(c.Enzyme.Value),
		uint8(c.MatchWeight.Value * 0xff),
		0x40,
		0xff,
	}
}

// survivalOdds blends a neutral baseline with the enzyme/substance match
// fraction: a match weight of 0 ignores the substrate entirely, a weight of
// 1 makes survival track the match exactly.
func (c Creature) survivalOdds(code gene.BitSet8, hasSubstance bool) float64 {
	if !hasSubstance {
		return 1.0 - float64(c.MatchWeight.Value)
	}
	match := float64(c.Enzyme.Value.MatchingCount(code)) / 8.0
	w := float64(c.MatchWeight.Value)
	return (1.0 - w) + w*match
}

func (c Creature) survives(numNeighbors int, code gene.BitSet8, hasSubstance bool, policy rng.Policy) bool {
	if numNeighbors == 0 || !c.Enzyme.Value.Has(numNeighbors-1) {
		return false
	}
	if !policy.Enabled() {
		return true
	}
	return policy.Stream().Bool(c.survivalOdds(code, hasSubstance))
}

// Substance is an inert coded substrate; it never moves or decays.
type Substance struct {
	Code gene.BitSet8
}

// Color renders the code's nybbles as two channels.
func (s Substance) Color() [4]uint8 {
	hi, lo := s.Code.Nybbles()
	return [4]uint8{hi, lo, 0x80, 0x99}
}

// Cell holds an optional creature above an optional substance.
type Cell struct {
	HasCreature  bool
	Creature     Creature
	HasSubstance bool
	Substance    Substance
}

// Transition applies enzyme-gated survival to live cells and gene-merged
// reproduction to empty ones. The substance layer passes through untouched
// via the snapshot copy.
func (c Cell) Transition(n *grid.Neighborhood[Cell], next *Cell, policy rng.Policy) {
	numNeighbors := countNeighborCreatures(n)
	if c.HasCreature {
		if !c.Creature.survives(numNeighbors, c.Substance.Code, c.HasSubstance, policy) {
			next.HasCreature = false
			next.Creature = Creature{}
		}
		return
	}
	if child, ok := maybeReproduce(n, policy); ok {
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

func maybeReproduce(n *grid.Neighborhood[Cell], policy rng.Policy) (Creature, bool) {
	enzymeGenes := make([]gene.BitSet8Gene, 0, 8)
	matchWeightGenes := make([]gene.FractionGene, 0, 8)
	n.ForNeighbors(func(nb *Cell) {
		if nb.HasCreature {
			enzymeGenes = append(enzymeGenes, nb.Creature.Enzyme)
			matchWeightGenes = append(matchWeightGenes, nb.Creature.MatchWeight)
		}
	})
	if len(enzymeGenes) == 0 {
		return Creature{}, false
	}

	return Creature{
		Enzyme:      gene.MergeBitSet8Genes(enzymeGenes, policy, mutationOdds),
		MatchWeight: gene.MergeFractionGenes(matchWeightGenes, policy, mutationStdev),
	}, true
}

// World runs the enzyme-matching simulation.
type World struct {
	grid   *grid.Grid[Cell]
	policy rng.Policy
	gen    uint64
}

// New builds the world. The substance layer is seeded once with random
// codes ("substance" odds per cell) and creatures with random enzymes on
// top ("fill" odds).
func New(cfg worlds.Config) (*World, error) {
	size := grid.NewSize(cfg.Width, cfg.Height)
	w := &World{
		grid:   grid.New[Cell](size),
		policy: rng.Stochastic(rng.NewSeeded(cfg.Seed, 1)),
	}

	r := rng.NewSeeded(cfg.Seed, 0)
	fill := cfg.ParamFloat("fill", defaultFillOdds)
	substanceOdds := cfg.ParamFloat("substance", defaultSubstanceOdds)
	for i := range w.grid.Cells().Values() {
		cell := &w.grid.Cells().Values()[i]
		if r.Bool(substanceOdds) {
			cell.HasSubstance = true
			cell.Substance = Substance{Code: gene.RandomBitSet8(0.5, r)}
		}
		if r.Bool(fill) {
			cell.HasCreature = true
			cell.Creature = Creature{
				Enzyme:      gene.BitSet8Gene{Value: gene.RandomBitSet8(0.5, r)},
				MatchWeight: gene.NewFractionGene(float32(r.Float64())),
			}
		}
	}
	return w, nil
}

// Name returns the world identifier.
func (w *World) Name() string { return "evosubstance" }

// Size returns the grid dimensions.
func (w *World) Size() grid.Size { return w.grid.Size() }

// Generation reports committed steps.
func (w *World) Generation() uint64 { return w.gen }

// Step advances one generation.
func (w *World) Step() {
	w.grid.Update(w.policy, nil)
	w.gen++
}

// Census counts live creatures and aggregates enzymes and match weights:
// allele frequency tracks the enzyme gene per bit position.
func (w *World) Census() model.Census {
	census := model.Census{Generation: w.gen}
	var ones [8]int
	totalBits := 0
	totalWeight := 0.0
	for _, c := range w.grid.Cells().Values() {
		if !c.HasCreature {
			continue
		}
		census.LiveCells++
		totalBits += c.Creature.Enzyme.Value.OnesCount()
		totalWeight += float64(c.Creature.MatchWeight.Value)
		for i := 0; i < 8; i++ {
			if c.Creature.Enzyme.Value.Has(i) {
				ones[i]++
			}
		}
	}
	if census.LiveCells > 0 {
		census.MeanGenomeBits = float64(totalBits) / float64(census.LiveCells)
		census.MeanMatchWeight = totalWeight / float64(census.LiveCells)
		for i := 0; i < 8; i++ {
			census.AlleleFrequency[i] = float64(ones[i]) / float64(census.LiveCells)
		}
	}
	return census
}

// ColorAt renders the creature if present, else the substance, else the
// background.
func (w *World) ColorAt(loc grid.Loc) [4]uint8 {
	c := w.grid.Cells().At(loc)
	if c.HasCreature {
		return c.Creature.Color()
	}
	if c.HasSubstance {
		return c.Substance.Color()
	}
	return emptyCellColor
}

func init() {
	worlds.MustRegister("evosubstance", func(cfg worlds.Config) (worlds.World, error) {
		return New(cfg)
	})
}
