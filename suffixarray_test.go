package fmindex

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSuffixArrayMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	inputs := map[string][]Symbol{
		"empty":      {},
		"single":     {Sentinel},
		"banana":     EncodeText([]byte("banana")),
		"repetitive": EncodeText([]byte("abababababababababab")),
		"runs":       EncodeText([]byte("aaaaabbbbbaaaaabbbbb")),
		"dna":        EncodeText(randomText(r, 500, "acgt")),
		"binary":     EncodeText(randomText(r, 500, "01")),
		// no sentinel: shorter suffixes must still sort before their extensions
		"unterminated": EncodeText([]byte("aaaa"))[:4],
		"wide":         {900, -3, 42, 900, -3, 42, 7},
	}

	for name, seq := range inputs {
		want := naiveSuffixArray(seq)
		for _, strategy := range allStrategies {
			t.Run(name+"/"+strategy.String(), func(t *testing.T) {
				got, err := BuildSuffixArray(seq, strategy)
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("suffix array mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestSuffixArraySortedOrder(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	seq := EncodeText(randomText(r, 2000, "ab"))
	for _, strategy := range allStrategies {
		sa, err := BuildSuffixArray(seq, strategy)
		if err != nil {
			t.Fatal(err)
		}
		perm := slices.Clone(sa)
		slices.Sort(perm)
		for i, p := range perm {
			if p != i {
				t.Fatalf("%v: not a permutation, missing %d", strategy, i)
			}
		}
		for i := 0; i+1 < len(sa); i++ {
			if compareSuffixes(seq, sa[i], sa[i+1]) >= 0 {
				t.Fatalf("%v: suffix %d is not below suffix %d", strategy, sa[i], sa[i+1])
			}
		}
	}
}

func TestUnknownStrategy(t *testing.T) {
	if _, err := BuildSuffixArray(EncodeText([]byte("x")), SortStrategy(-1)); err == nil {
		t.Error("expected an error")
	}
}

func TestPrevIndex(t *testing.T) {
	if got := prevIndex(0, 7); got != 6 {
		t.Errorf("prevIndex(0, 7) = %d, want 6", got)
	}
	if got := prevIndex(uint8(3), uint8(7)); got != 2 {
		t.Errorf("prevIndex(3, 7) = %d, want 2", got)
	}
}

func TestTransformIsRearrangement(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	seq := EncodeText(randomText(r, 1000, "acgtn"))
	sa, err := BuildSuffixArray(seq, SortInduced)
	if err != nil {
		t.Fatal(err)
	}
	bw := BuildTransform(seq, sa)

	sorted := slices.Clone(seq)
	slices.Sort(sorted)
	got := slices.Clone(bw)
	slices.Sort(got)
	if diff := cmp.Diff(sorted, got); diff != "" {
		t.Errorf("transform multiset differs (-want +got):\n%s", diff)
	}

	for i, pos := range sa {
		if pos == 0 && bw[i] != seq[len(seq)-1] {
			t.Errorf("wrap-around row %d holds %d, want %d", i, bw[i], seq[len(seq)-1])
		}
	}
}

func BenchmarkSuffixArray(b *testing.B) {
	r := rand.New(rand.NewSource(5))
	seq := EncodeText(randomText(r, 1<<15, "acgt"))
	for _, strategy := range []SortStrategy{SortInduced, SortDoubling} {
		b.Run(strategy.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := BuildSuffixArray(seq, strategy); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
