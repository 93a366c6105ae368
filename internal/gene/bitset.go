// Package gene holds the small heritable state carried by individual cells
// and the probabilistic merge operators that derive a child's genes from its
// live neighbors.
package gene

import (
	"fmt"
	"math/bits"
	"strings"

	"evogrid/internal/rng"
)

// BitSet8 is an 8-bit flag vector, one bit per discrete trigger condition
// (for example "exactly i+1 live neighbors").
type BitSet8 uint8

// RandomBitSet8 returns a set where each bit is set independently with the
// given odds.
func RandomBitSet8(bitOdds float64, r *rng.Random) BitSet8 {
	var result BitSet8
	for i := 0; i < 8; i++ {
		if r.Bool(bitOdds) {
			result.Set(i)
		}
	}
	return result
}

// Has reports whether bit index is set.
func (b BitSet8) Has(index int) bool {
	return b&(1<<index) != 0
}

// Set sets bit index.
func (b *BitSet8) Set(index int) {
	*b |= 1 << index
}

// Flip inverts bit index.
func (b *BitSet8) Flip(index int) {
	*b ^= 1 << index
}

// OnesCount returns the number of set bits.
func (b BitSet8) OnesCount() int {
	return bits.OnesCount8(uint8(b))
}

// MatchingCount returns how many of the 8 bit positions agree with other.
func (b BitSet8) MatchingCount(other BitSet8) int {
	return 8 - (b ^ other).OnesCount()
}

// Nybbles splits the set into its high nybble and its low nybble shifted
// into the high position.
func (b BitSet8) Nybbles() (uint8, uint8) {
	return uint8(b) & 0xf0, (uint8(b) & 0x0f) << 4
}

// String renders the set as the list of 1-based positions, matching the
// "survives with n neighbors" reading used by the Conway-style worlds.
func (b BitSet8) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < 8; i++ {
		if b.Has(i) {
			if sb.Len() > 1 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", i+1)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
