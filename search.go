package fmindex

import "slices"

// Range is an inclusive interval of suffix array rows. Lo > Hi is the empty range.
type Range struct {
	Lo, Hi int
}

func (r Range) Empty() bool {
	return r.Lo > r.Hi
}

func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo + 1
}

type Result struct {
	Matched bool
	// Range holds the rows of the matching suffixes. It is empty when Matched is false.
	Range Range
	Count int
}

func (ix *Index) Search(pattern []byte) Result {
	return ix.SearchSymbols(EncodePattern(pattern))
}

func (ix *Index) SearchString(pattern string) Result {
	return ix.Search([]byte(pattern))
}

// SearchSymbols runs backward search: starting from every row, each pattern symbol from
// last to first narrows the range to the suffixes that begin with the consumed part.
// The empty pattern matches all rows; a symbol outside the alphabet matches nothing.
func (ix *Index) SearchSymbols(pattern []Symbol) Result {
	r := Range{Lo: 0, Hi: ix.n - 1}
	for i := len(pattern) - 1; i >= 0; i-- {
		r = ix.narrow(r, pattern[i])
		if r.Empty() {
			return Result{Range: r}
		}
	}
	return Result{Matched: true, Range: r, Count: r.Len()}
}

// narrow keeps the rows of r whose suffix is preceded by c and maps them to the rows
// of the extended suffixes.
func (ix *Index) narrow(r Range, c Symbol) Range {
	base := ix.counts.Below(c)
	return Range{
		Lo: base + ix.occ.Occ(c, r.Lo-1),
		Hi: base + ix.occ.Occ(c, r.Hi) - 1,
	}
}

func (ix *Index) Count(pattern []byte) int {
	return ix.Search(pattern).Count
}

func (ix *Index) Contains(pattern []byte) bool {
	return ix.Search(pattern).Matched
}

// Locate returns the ascending start positions of pattern in the text.
func (ix *Index) Locate(pattern []byte) ([]int, error) {
	if ix.suffixArray == nil {
		return nil, ErrNoSuffixArray
	}
	res := ix.Search(pattern)
	if !res.Matched {
		return []int{}, nil
	}
	positions := append([]int(nil), ix.suffixArray[res.Range.Lo:res.Range.Hi+1]...)
	slices.Sort(positions)
	return positions, nil
}
