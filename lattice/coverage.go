package lattice

import "math/bits"

// coverageWords is the fixed width of a Coverage bitset in 64-bit words,
// giving 1024 bits total — matching the source's utils::bit_vector<1024>
// used by the phrase composer to track consumed lattice positions.
const coverageWords = 1024 / 64

// Coverage is a fixed-width (1024-bit) bitset recording which lattice
// positions a phrase derivation has consumed so far. It is copied by
// value; composing a new coverage from an old one is a struct copy plus
// an Or, never a pointer alias, so distinct search states never share
// mutable state.
type Coverage struct {
	words [coverageWords]uint64
}

// Set marks position i as covered.
func (c *Coverage) Set(i int) {
	c.words[i/64] |= 1 << uint(i%64)
}

// Test reports whether position i is covered.
func (c Coverage) Test(i int) bool {
	return c.words[i/64]&(1<<uint(i%64)) != 0
}

// Rank counts how many of positions [0, k] are set when bit is true, or
// unset when bit is false. Used by the distortion test: a phrase
// starting at `first` is monotone-reachable iff
// coverage.Rank(first-1, true) == coverage.Rank(last-1, true).
func (c Coverage) Rank(k int, bit bool) int {
	if k < 0 {
		return 0
	}
	count := 0
	full := k / 64
	for w := 0; w < full; w++ {
		count += bits.OnesCount64(c.words[w])
	}
	rem := k % 64
	mask := uint64(1)<<uint(rem+1) - 1
	count += bits.OnesCount64(c.words[full] & mask)
	if !bit {
		count = (k + 1) - count
	}
	return count
}

// Select returns the position of the k-th (0-based) set bit when bit is
// true, or the k-th unset bit when bit is false, within [0, coverageWords*64).
// It returns -1 if fewer than k+1 such positions exist, completing the
// set/test/rank/select quartet spec.md §3 requires of the coverage bitset.
func (c Coverage) Select(k int, bit bool) int {
	if k < 0 {
		return -1
	}
	remaining := k
	for w := 0; w < coverageWords; w++ {
		word := c.words[w]
		if !bit {
			word = ^word
		}
		count := bits.OnesCount64(word)
		if remaining >= count {
			remaining -= count
			continue
		}
		for b := 0; b < 64; b++ {
			if word&(1<<uint(b)) != 0 {
				if remaining == 0 {
					return w*64 + b
				}
				remaining--
			}
		}
	}
	return -1
}

// FirstUncovered returns the lowest position in [0, size) not yet
// covered, or size if every position in range is covered. The phrase
// composer uses this to seed the next wave of a search state.
func (c Coverage) FirstUncovered(size int) int {
	for i := 0; i < size; i++ {
		if !c.Test(i) {
			return i
		}
	}
	return size
}

// IsComplete reports whether every position in [0, size) is covered.
func (c Coverage) IsComplete(size int) bool {
	return c.FirstUncovered(size) == size
}

// Or returns the union of c and other as a new Coverage, leaving both
// operands unmodified.
func (c Coverage) Or(other Coverage) Coverage {
	var out Coverage
	for i := range out.words {
		out.words[i] = c.words[i] | other.words[i]
	}
	return out
}

// Equal reports whether c and other cover exactly the same positions.
func (c Coverage) Equal(other Coverage) bool {
	return c.words == other.words
}
