package gene

import (
	"fmt"

	"evogrid/internal/rng"
)

// BitSet8Gene is a heritable 8-bit flag vector.
type BitSet8Gene struct {
	Value BitSet8
}

// MergeBitSet8Genes derives a child gene from 1..8 parents. For each bit
// position independently: unanimous parents decide the bit outright;
// otherwise the bit is set with probability ones/(ones+zeros), a
// population-proportional vote rather than a fixed-threshold majority, so a
// minority allele still has a chance to propagate. After the vote the bit is
// flipped with probability mutationOdds when the policy is stochastic.
// Callers must supply at least one parent; merge does not validate that.
func MergeBitSet8Genes(parents []BitSet8Gene, policy rng.Policy, mutationOdds float64) BitSet8Gene {
	var counts bitCounts
	for _, parent := range parents {
		counts.tally(parent.Value)
	}
	return BitSet8Gene{Value: counts.vote(policy, mutationOdds)}
}

// bitCounts tallies, per bit position, how many parents have the bit set and
// how many have it clear. It exists only for the duration of one merge.
type bitCounts struct {
	ones  [8]int
	zeros [8]int
}

func (c *bitCounts) tally(bits BitSet8) {
	for i := 0; i < 8; i++ {
		if bits.Has(i) {
			c.ones[i]++
		} else {
			c.zeros[i]++
		}
	}
}

func (c *bitCounts) vote(policy rng.Policy, mutationOdds float64) BitSet8 {
	var result BitSet8
	for i := 0; i < 8; i++ {
		if mergeCounts(c.ones[i], c.zeros[i], policy) {
			result.Set(i)
		}
		if policy.Enabled() && policy.Stream().Bool(mutationOdds) {
			result.Flip(i)
		}
	}
	return result
}

func mergeCounts(ones, zeros int, policy rng.Policy) bool {
	switch {
	case ones == 0:
		return false
	case zeros == 0:
		return true
	default:
		// A split vote needs randomness; in deterministic mode this is a
		// caller contract violation and Stream panics.
		return policy.Stream().Bool(float64(ones) / float64(ones+zeros))
	}
}

// FractionGene is a heritable scalar constrained to [0, 1].
type FractionGene struct {
	Value float32
}

// NewFractionGene returns the gene for value, panicking outside [0, 1].
func NewFractionGene(value float32) FractionGene {
	if !(value >= 0 && value <= 1) {
		panic(fmt.Sprintf("gene: fraction %v outside [0,1]", value))
	}
	return FractionGene{Value: value}
}

// MergeFractionGenes derives a child gene as the arithmetic mean of the
// parents' values, resampled through a truncated normal around the mean when
// the policy is stochastic (mutation as a bounded random walk). With a
// deterministic policy the result is exactly the mean, supporting a frozen,
// non-evolving mode. Callers must supply at least one parent.
func MergeFractionGenes(parents []FractionGene, policy rng.Policy, mutationStdev float64) FractionGene {
	var sum float32
	for _, parent := range parents {
		sum += parent.Value
	}
	mean := sum / float32(len(parents))
	if !policy.Enabled() {
		return NewFractionGene(mean)
	}
	sample := policy.Stream().TruncatedNormal(float64(mean), mutationStdev, 0.0, 1.0)
	return NewFractionGene(float32(sample))
}
