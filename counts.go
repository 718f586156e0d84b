package fmindex

import "golang.org/x/exp/constraints"

// Counts is the cumulative-count table (C) of a sequence.
type Counts struct {
	alphabet *Alphabet
	// below[k] is the number of positions holding a symbol of rank < k; len(below) = σ+1.
	below []int
}

// BuildCounts tallies each alphabet symbol in seq and takes prefix sums in alphabet order.
func BuildCounts(seq []Symbol, alphabet *Alphabet) *Counts {
	freq := make([]int, alphabet.Len())
	for _, s := range seq {
		r, _ := alphabet.Rank(s)
		freq[r]++
	}
	return &Counts{alphabet: alphabet, below: prefixSums(freq)}
}

// Below returns the number of positions whose symbol is strictly less than s.
// s need not occur in the sequence.
func (c *Counts) Below(s Symbol) int {
	return c.below[c.alphabet.Insertion(s)]
}

// Total returns the number of occurrences of s, zero if absent.
func (c *Counts) Total(s Symbol) int {
	r, ok := c.alphabet.Rank(s)
	if !ok {
		return 0
	}
	return c.below[r+1] - c.below[r]
}

// prefixSums returns the exclusive prefix sums of v followed by the grand total.
func prefixSums[T constraints.Integer](v []T) []T {
	sums := make([]T, len(v)+1)
	for i, x := range v {
		sums[i+1] = sums[i] + x
	}
	return sums
}
