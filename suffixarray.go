package fmindex

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownStrategy = errors.New("fmindex: unknown suffix sort strategy")
	ErrTooLong         = errors.New("fmindex: sequence too long")
)

// maxSequenceLen bounds the sequence length, sentinel included. Induced sorting stores
// positions as int32 and the bitmap ranker as uint32.
var maxSequenceLen = math.MaxInt32 - 1

func checkLen(n int) error {
	if n > maxSequenceLen {
		return fmt.Errorf("%w: %d symbols, at most %d", ErrTooLong, n, maxSequenceLen)
	}
	return nil
}

// SortStrategy selects how the suffix array is constructed.
// Every strategy produces the same permutation.
type SortStrategy int

const (
	// SortInduced uses induced sorting (SA-IS), O(n).
	SortInduced SortStrategy = iota
	// SortDoubling uses prefix doubling with radix passes, O(n log n).
	SortDoubling
	// SortPartition partitions around pivot suffixes with direct suffix comparisons.
	// Quadratic or worse on repetitive input; meant for small sequences.
	SortPartition
)

var strategyNames = map[SortStrategy]string{
	SortInduced:   "induced",
	SortDoubling:  "doubling",
	SortPartition: "partition",
}

func (s SortStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortStrategy(%d)", int(s))
}

func ParseSortStrategy(name string) (SortStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// BuildSuffixArray returns the positions of seq ordered by the suffix starting at each.
// Suffixes that are prefixes of longer ones sort first, so seq does not need a sentinel,
// but with one every suffix is distinct and the order is strict.
func BuildSuffixArray(seq []Symbol, strategy SortStrategy) ([]int, error) {
	if err := checkLen(len(seq)); err != nil {
		return nil, err
	}
	switch strategy {
	case SortInduced:
		return inducedSort(seq), nil
	case SortDoubling:
		return doublingSort(seq), nil
	case SortPartition:
		return partitionSort(seq), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
}

// compareSuffixes compares seq[a:] and seq[b:] lexicographically.
func compareSuffixes(seq []Symbol, a, b int) int {
	for a < len(seq) && b < len(seq) {
		if seq[a] != seq[b] {
			if seq[a] < seq[b] {
				return -1
			}
			return 1
		}
		a++
		b++
	}
	// the shorter suffix is a prefix of the other one
	switch {
	case a == b:
		return 0
	case a == len(seq):
		return -1
	default:
		return 1
	}
}

type span struct {
	lo, hi int
}

// partitionSort sorts suffixes by repeatedly splitting a range around its middle suffix.
// Ranges are kept on an explicit stack and every split goes through one scratch buffer.
func partitionSort(seq []Symbol) []int {
	n := len(seq)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	if n < 2 {
		return sa
	}

	scratch := make([]int, n)
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.lo >= s.hi {
			continue
		}

		mid := s.lo + (s.hi-s.lo)/2
		pivot := sa[mid]
		l, r := s.lo, s.hi
		for i := s.lo; i <= s.hi; i++ {
			if i == mid {
				continue
			}
			if compareSuffixes(seq, sa[i], pivot) < 0 {
				scratch[l] = sa[i]
				l++
			} else {
				scratch[r] = sa[i]
				r--
			}
		}
		// l == r: the slot left over belongs to the pivot.
		scratch[l] = pivot
		copy(sa[s.lo:s.hi+1], scratch[s.lo:s.hi+1])

		stack = append(stack, span{s.lo, l - 1}, span{l + 1, s.hi})
	}
	return sa
}

// doublingSort ranks suffixes by their first k symbols for k = 1, 2, 4, ...
// until all ranks are distinct. Each round is two stable counting sorts.
func doublingSort(seq []Symbol) []int {
	n := len(seq)
	sa := make([]int, n)
	if n == 0 {
		return sa
	}

	alphabet := NewAlphabet(seq)
	rank := make([]int, n)
	for i, s := range seq {
		rank[i], _ = alphabet.Rank(s)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	buckets := make([]int, max(n, alphabet.Len()))
	classes := alphabet.Len()
	countingSort(sa, order, rank, buckets[:classes])

	next := make([]int, n)
	for k := 1; classes < n; k <<= 1 {
		// Order by the second half: suffixes shorter than k have none and come first.
		p := 0
		for i := max(0, n-k); i < n; i++ {
			order[p] = i
			p++
		}
		for _, pos := range sa {
			if pos >= k {
				order[p] = pos - k
				p++
			}
		}
		countingSort(sa, order, rank, buckets[:classes])

		next[sa[0]] = 0
		classes = 1
		for i := 1; i < n; i++ {
			a, b := sa[i-1], sa[i]
			if rank[a] != rank[b] || secondRank(rank, a, k) != secondRank(rank, b, k) {
				classes++
			}
			next[b] = classes - 1
		}
		rank, next = next, rank
	}
	return sa
}

func secondRank(rank []int, pos, k int) int {
	if pos+k < len(rank) {
		return rank[pos+k]
	}
	return -1
}

// countingSort writes src into dst, stably ordered by key. len(buckets) must exceed every key.
func countingSort(dst, src, key, buckets []int) {
	clear(buckets)
	for _, i := range src {
		buckets[key[i]]++
	}
	sum := 0
	for c, v := range buckets {
		buckets[c] = sum
		sum += v
	}
	for _, i := range src {
		dst[buckets[key[i]]] = i
		buckets[key[i]]++
	}
}
