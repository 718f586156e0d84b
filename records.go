package fmindex

import (
	"errors"
	"sort"

	"github.com/viniciusth/rmq"
)

var (
	ErrNoRecords = errors.New("fmindex: record listing was not built")
)

// recordListing answers "which records contain the pattern" over a suffix array range
// in time proportional to the number of records reported.
type recordListing struct {
	count int
	// recordOf[p] is the record holding text position p.
	recordOf []int
	// prev[i] is the largest row j < i whose suffix lies in the same record as row i, or -1.
	prev    []int
	prevRMQ *rmq.RMQHybridNaive[int]
}

// WithRecords splits the text into records starting at the given ascending offsets,
// enabling FindRecords. Positions before the first offset belong to record 0 and the
// sentinel belongs to the last record. Retains the suffix array.
func (b *Builder) WithRecords(offsets []int) *Builder {
	b.offsets = offsets
	return b
}

func buildRecordListing(suffixArray []int, offsets []int) *recordListing {
	n := len(suffixArray)
	count := max(len(offsets), 1)
	recordOf := buildRecordOf(n, offsets)
	prev := buildPrevArray(suffixArray, recordOf, count)
	return &recordListing{
		count:    count,
		recordOf: recordOf,
		prev:     prev,
		prevRMQ:  rmq.NewRMQHybridNaive(prev),
	}
}

func buildRecordOf(n int, offsets []int) []int {
	recordOf := make([]int, n)
	for p := range recordOf {
		r := sort.SearchInts(offsets, p+1) - 1
		recordOf[p] = max(r, 0)
	}
	if len(offsets) > 0 && n > 0 {
		recordOf[n-1] = len(offsets) - 1
	}
	return recordOf
}

// For each row i of the suffix array, prev[i] is the previous row of the same record, -1 if none.
func buildPrevArray(suffixArray, recordOf []int, records int) []int {
	prev := make([]int, len(suffixArray))
	recordPrev := make([]int, records)
	for i := range recordPrev {
		recordPrev[i] = -1
	}

	for i, pos := range suffixArray {
		rec := recordOf[pos]
		prev[i] = recordPrev[rec]
		recordPrev[rec] = i
	}
	return prev
}

// FindRecords returns up to k distinct records in which an occurrence of pattern starts,
// in no particular order. Records are adjacent in the text, so an occurrence may run past
// the end of its record into the next one; it is still reported for the record it starts in.
func (ix *Index) FindRecords(pattern []byte, k int) ([]int, error) {
	if ix.records == nil {
		return nil, ErrNoRecords
	}
	res := ix.Search(pattern)
	if !res.Matched || k <= 0 {
		return []int{}, nil
	}
	matches := make([]int, 0, min(k, ix.records.count))
	return ix.records.list(res.Range.Lo, res.Range.Lo, res.Range.Hi, k, ix.suffixArray, matches), nil
}

// list reports every record whose first row inside [baseL, r] lies in [l, r].
// Such a row has prev < baseL, and the row minimising prev over [l, r] is one of them.
func (rl *recordListing) list(baseL, l, r, k int, suffixArray, matches []int) []int {
	if k <= len(matches) || l > r {
		return matches
	}

	p := rl.prevRMQ.Query(l, r)
	if rl.prev[p] >= baseL {
		return matches
	}
	matches = append(matches, rl.recordOf[suffixArray[p]])
	matches = rl.list(baseL, l, p-1, k, suffixArray, matches)
	return rl.list(baseL, p+1, r, k, suffixArray, matches)
}

// Records returns the number of records the index was split into, 0 without WithRecords.
func (ix *Index) Records() int {
	if ix.records == nil {
		return 0
	}
	return ix.records.count
}

// RecordOf returns the record holding text position pos.
func (ix *Index) RecordOf(pos int) (int, error) {
	if ix.records == nil {
		return 0, ErrNoRecords
	}
	if pos < 0 || pos >= ix.n {
		return 0, ErrOutOfRange
	}
	return ix.records.recordOf[pos], nil
}
