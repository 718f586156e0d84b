package fmindex

import (
	"slices"
	"sort"
)

// Alphabet is the sorted set of distinct symbols of a sequence.
// Ranks are dense: the i-th smallest symbol has rank i.
type Alphabet struct {
	symbols []Symbol
	ranks   map[Symbol]int
}

// NewAlphabet extracts the alphabet of seq in a single pass.
// Byte-encoded symbols are collected through a presence table, anything else through a set.
func NewAlphabet(seq []Symbol) *Alphabet {
	var present [byteSymbols]bool
	var wide map[Symbol]struct{}
	for _, s := range seq {
		if s >= 0 && s < byteSymbols {
			present[s] = true
			continue
		}
		if wide == nil {
			wide = make(map[Symbol]struct{})
		}
		wide[s] = struct{}{}
	}

	symbols := make([]Symbol, 0, len(wide)+16)
	for s, ok := range present {
		if ok {
			symbols = append(symbols, Symbol(s))
		}
	}
	if wide != nil {
		for s := range wide {
			symbols = append(symbols, s)
		}
		slices.Sort(symbols)
	}

	ranks := make(map[Symbol]int, len(symbols))
	for i, s := range symbols {
		ranks[s] = i
	}
	return &Alphabet{symbols: symbols, ranks: ranks}
}

func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns the alphabet in ascending order. The slice must not be modified.
func (a *Alphabet) Symbols() []Symbol {
	return a.symbols
}

// Rank returns the dense rank of s, or false if s does not occur.
func (a *Alphabet) Rank(s Symbol) (int, bool) {
	r, ok := a.ranks[s]
	return r, ok
}

func (a *Alphabet) Contains(s Symbol) bool {
	_, ok := a.ranks[s]
	return ok
}

// Insertion returns the number of alphabet symbols strictly less than s,
// which is the rank s has or would have if it were inserted.
func (a *Alphabet) Insertion(s Symbol) int {
	if r, ok := a.ranks[s]; ok {
		return r
	}
	return sort.Search(len(a.symbols), func(i int) bool { return a.symbols[i] >= s })
}
