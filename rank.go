package fmindex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	ErrUnknownRanker = errors.New("fmindex: unknown rank backend")
)

// Ranker answers rank queries over a transform.
//
// Occ returns the number of occurrences of s in bw[0..i], inclusive.
// i is clamped to [-1, Len()-1]: Occ(s, -1) is 0 and any i past the end counts
// the whole transform. Symbols outside the alphabet always rank 0.
type Ranker interface {
	Occ(s Symbol, i int) int
	Len() int
}

// RankBackend selects the Ranker implementation.
type RankBackend int

const (
	// RankDense stores a running count per symbol per position: O(n·σ) space, O(1) queries.
	RankDense RankBackend = iota
	// RankBitmap keeps one compressed bitmap of positions per symbol and ranks inside it.
	RankBitmap
)

var rankerNames = map[RankBackend]string{
	RankDense:  "dense",
	RankBitmap: "bitmap",
}

func (r RankBackend) String() string {
	if name, ok := rankerNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RankBackend(%d)", int(r))
}

func ParseRankBackend(name string) (RankBackend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r, n := range rankerNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRanker, name)
}

func BuildRanker(bw []Symbol, alphabet *Alphabet, backend RankBackend) (Ranker, error) {
	if err := checkLen(len(bw)); err != nil {
		return nil, err
	}
	switch backend {
	case RankDense:
		return newDenseRanker(bw, alphabet), nil
	case RankBitmap:
		return newBitmapRanker(bw, alphabet), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownRanker, backend)
	}
}

// clampRow maps i into [-1, n-1].
func clampRow(i, n int) int {
	if i < -1 {
		return -1
	}
	if i >= n {
		return n - 1
	}
	return i
}

type denseRanker struct {
	alphabet *Alphabet
	n        int
	// counts[r*n+i] is the number of rank-r symbols in bw[0..i].
	counts []uint32
}

func newDenseRanker(bw []Symbol, alphabet *Alphabet) *denseRanker {
	n := len(bw)
	ranks := make([]int, n)
	for i, s := range bw {
		ranks[i], _ = alphabet.Rank(s)
	}

	counts := make([]uint32, n*alphabet.Len())
	for r := 0; r < alphabet.Len(); r++ {
		row := counts[r*n : (r+1)*n]
		var running uint32
		for i, sr := range ranks {
			if sr == r {
				running++
			}
			row[i] = running
		}
	}
	return &denseRanker{alphabet: alphabet, n: n, counts: counts}
}

func (d *denseRanker) Occ(s Symbol, i int) int {
	r, ok := d.alphabet.Rank(s)
	if !ok {
		return 0
	}
	i = clampRow(i, d.n)
	if i < 0 {
		return 0
	}
	return int(d.counts[r*d.n+i])
}

func (d *denseRanker) Len() int {
	return d.n
}

type bitmapRanker struct {
	alphabet *Alphabet
	n        int
	rows     []*roaring.Bitmap
}

func newBitmapRanker(bw []Symbol, alphabet *Alphabet) *bitmapRanker {
	rows := make([]*roaring.Bitmap, alphabet.Len())
	for r := range rows {
		rows[r] = roaring.New()
	}
	for i, s := range bw {
		r, _ := alphabet.Rank(s)
		rows[r].Add(uint32(i))
	}
	for _, row := range rows {
		row.RunOptimize()
	}
	return &bitmapRanker{alphabet: alphabet, n: len(bw), rows: rows}
}

func (b *bitmapRanker) Occ(s Symbol, i int) int {
	r, ok := b.alphabet.Rank(s)
	if !ok {
		return 0
	}
	i = clampRow(i, b.n)
	if i < 0 {
		return 0
	}
	// Rank counts set positions <= i.
	return int(b.rows[r].Rank(uint32(i)))
}

func (b *bitmapRanker) Len() int {
	return b.n
}
