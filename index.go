// Package fmindex implements an FM-index: a Burrows-Wheeler transform of a sequence
// together with a cumulative-count table and a rank structure, answering exact
// substring queries by backward search without touching the sequence itself.
//
// An Index is immutable once built and safe for concurrent use.
package fmindex

import (
	"errors"

	"github.com/viniciusth/rmq"
)

var (
	ErrNoSuffixArray = errors.New("fmindex: suffix array was not retained")
	ErrNoLCP         = errors.New("fmindex: LCP array was not built")
	ErrOutOfRange    = errors.New("fmindex: suffix rank out of range")
)

type Index struct {
	n           int
	alphabet    *Alphabet
	suffixArray []int
	bw          []Symbol
	counts      *Counts
	occ         Ranker
	lcp         []int
	lcpRMQ      *rmq.RMQHybridNaive[int]
	records     *recordListing
}

// Len returns the length of the indexed sequence, sentinel included.
func (ix *Index) Len() int {
	return ix.n
}

func (ix *Index) Alphabet() *Alphabet {
	return ix.alphabet
}

// SuffixArray returns a copy of the suffix array, or nil if it was skipped.
func (ix *Index) SuffixArray() []int {
	if ix.suffixArray == nil {
		return nil
	}
	return append([]int(nil), ix.suffixArray...)
}

// Transform returns a copy of the Burrows-Wheeler transform.
func (ix *Index) Transform() []Symbol {
	return append([]Symbol(nil), ix.bw...)
}

// TransformBytes renders the transform as bytes, printing the sentinel as sentinel.
func (ix *Index) TransformBytes(sentinel byte) []byte {
	out := make([]byte, len(ix.bw))
	for i, s := range ix.bw {
		if b, ok := s.Byte(); ok {
			out[i] = b
		} else {
			out[i] = sentinel
		}
	}
	return out
}

// C returns the number of sequence positions holding a symbol smaller than s.
func (ix *Index) C(s Symbol) int {
	return ix.counts.Below(s)
}

// Occ returns the number of occurrences of s in the transform up to and including row i.
// i is clamped to [-1, Len()-1].
func (ix *Index) Occ(s Symbol, i int) int {
	return ix.occ.Occ(s, i)
}

// Frequency returns how often s occurs in the sequence.
func (ix *Index) Frequency(s Symbol) int {
	return ix.counts.Total(s)
}

// lf maps row i to the row of the suffix starting one position earlier.
func (ix *Index) lf(i int) int {
	c := ix.bw[i]
	return ix.counts.Below(c) + ix.occ.Occ(c, i) - 1
}

// Text reconstructs the indexed text from the transform alone, sentinel excluded.
func (ix *Index) Text() []byte {
	if ix.n <= 1 {
		return []byte{}
	}
	out := make([]byte, ix.n-1)
	// Row 0 is the sentinel suffix; its transform symbol is the last text byte.
	row := 0
	for k := ix.n - 2; k >= 0; k-- {
		out[k], _ = ix.bw[row].Byte()
		row = ix.lf(row)
	}
	return out
}

// LongestCommonPrefix returns the length of the longest common prefix of the suffixes
// at suffix array ranks i and j.
func (ix *Index) LongestCommonPrefix(i, j int) (int, error) {
	if ix.lcp == nil {
		return 0, ErrNoLCP
	}
	if i < 0 || j < 0 || i >= ix.n || j >= ix.n {
		return 0, ErrOutOfRange
	}
	if i == j {
		return ix.n - ix.suffixArray[i], nil
	}
	lo, hi := min(i, j), max(i, j)
	return ix.lcp[ix.lcpRMQ.Query(lo, hi-1)], nil
}

// LongestRepeat returns the start and length of the longest substring occurring at least
// twice. pos is -1 when no symbol repeats.
func (ix *Index) LongestRepeat() (pos, length int, err error) {
	if ix.lcp == nil {
		return 0, 0, ErrNoLCP
	}
	pos = -1
	for i, l := range ix.lcp {
		if l > length {
			pos, length = ix.suffixArray[i], l
		}
	}
	return pos, length, nil
}
