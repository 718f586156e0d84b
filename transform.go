package fmindex

import "golang.org/x/exp/constraints"

// prevIndex returns the position before i in a cyclic sequence of length n.
func prevIndex[T constraints.Integer](i, n T) T {
	if i == 0 {
		return n - 1
	}
	return i - 1
}

// BuildTransform returns the Burrows-Wheeler transform: the symbol preceding each
// suffix in suffix array order, wrapping around for the suffix starting at 0.
func BuildTransform(seq []Symbol, sa []int) []Symbol {
	n := len(seq)
	bw := make([]Symbol, n)
	for i, pos := range sa {
		bw[i] = seq[prevIndex(pos, n)]
	}
	return bw
}
