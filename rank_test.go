package fmindex

import (
	"math/rand"
	"testing"
)

func TestRankInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	seq := EncodeText(randomText(r, 400, "acgt"))
	sa, err := BuildSuffixArray(seq, SortInduced)
	if err != nil {
		t.Fatal(err)
	}
	bw := BuildTransform(seq, sa)
	alphabet := NewAlphabet(seq)
	counts := BuildCounts(seq, alphabet)
	n := len(bw)

	for _, backend := range allRankers {
		t.Run(backend.String(), func(t *testing.T) {
			occ, err := BuildRanker(bw, alphabet, backend)
			if err != nil {
				t.Fatal(err)
			}
			if occ.Len() != n {
				t.Fatalf("Len() = %d, want %d", occ.Len(), n)
			}
			for _, s := range alphabet.Symbols() {
				naive := 0
				if got := occ.Occ(s, -1); got != 0 {
					t.Fatalf("Occ(%d, -1) = %d, want 0", s, got)
				}
				for i := 0; i < n; i++ {
					if bw[i] == s {
						naive++
					}
					got := occ.Occ(s, i)
					if got != naive {
						t.Fatalf("Occ(%d, %d) = %d, want %d", s, i, got, naive)
					}
					if i > 0 && got < occ.Occ(s, i-1) {
						t.Fatalf("Occ(%d, .) decreases at %d", s, i)
					}
				}
				if got, want := occ.Occ(s, n-1), counts.Total(s); got != want {
					t.Errorf("Occ(%d, n-1) = %d, want total %d", s, got, want)
				}
			}
		})
	}
}

func TestRankClamping(t *testing.T) {
	seq := EncodeText([]byte("banana"))
	sa, _ := BuildSuffixArray(seq, SortInduced)
	bw := BuildTransform(seq, sa)
	alphabet := NewAlphabet(seq)
	a := ByteSymbol('a')

	for _, backend := range allRankers {
		occ, err := BuildRanker(bw, alphabet, backend)
		if err != nil {
			t.Fatal(err)
		}
		tests := []struct {
			s    Symbol
			i    int
			want int
		}{
			{a, -100, 0},
			{a, -1, 0},
			{a, 0, 1},
			{a, 6, 3},
			{a, 7, 3},
			{a, 1 << 30, 3},
			{ByteSymbol('z'), 3, 0},
			{Symbol(-5), 3, 0},
			{Symbol(100000), 6, 0},
			{Sentinel, 6, 1},
		}
		for _, tc := range tests {
			if got := occ.Occ(tc.s, tc.i); got != tc.want {
				t.Errorf("%v: Occ(%d, %d) = %d, want %d", backend, tc.s, tc.i, got, tc.want)
			}
		}
	}
}

func TestCounts(t *testing.T) {
	text := []byte("abracadabra")
	seq := EncodeText(text)
	alphabet := NewAlphabet(seq)
	counts := BuildCounts(seq, alphabet)

	syms := alphabet.Symbols()
	if syms[0] != Sentinel {
		t.Fatalf("first alphabet symbol = %d, want the sentinel", syms[0])
	}
	if got := counts.Below(syms[0]); got != 0 {
		t.Errorf("C[first] = %d, want 0", got)
	}
	for i := 0; i+1 < len(syms); i++ {
		if got, want := counts.Below(syms[i+1])-counts.Below(syms[i]), counts.Total(syms[i]); got != want {
			t.Errorf("C[%d]-C[%d] = %d, want %d", syms[i+1], syms[i], got, want)
		}
	}

	// Symbols outside the alphabet get the count of their would-be slot.
	tests := []struct {
		s    Symbol
		want int
	}{
		{Symbol(-1), 0},
		{ByteSymbol('0'), 1},  // below 'a': only the sentinel
		{ByteSymbol('e'), 10}, // above a, b, c, d
		{ByteSymbol('z'), 12}, // past everything
	}
	for _, tc := range tests {
		if got := counts.Below(tc.s); got != tc.want {
			t.Errorf("Below(%d) = %d, want %d", tc.s, got, tc.want)
		}
		if got := counts.Total(tc.s); got != 0 {
			t.Errorf("Total(%d) = %d, want 0", tc.s, got)
		}
	}
}

func TestAlphabet(t *testing.T) {
	a := NewAlphabet([]Symbol{5, 3, 5, 300, 3, -2, 0})
	want := []Symbol{-2, 0, 3, 5, 300}
	if a.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", a.Len(), len(want))
	}
	for i, s := range want {
		if a.Symbols()[i] != s {
			t.Errorf("Symbols()[%d] = %d, want %d", i, a.Symbols()[i], s)
		}
		if r, ok := a.Rank(s); !ok || r != i {
			t.Errorf("Rank(%d) = %d, %v, want %d", s, r, ok, i)
		}
	}
	if a.Contains(4) {
		t.Error("Contains(4) = true")
	}
	if got := a.Insertion(4); got != 3 {
		t.Errorf("Insertion(4) = %d, want 3", got)
	}
	if got := a.Insertion(1000); got != 5 {
		t.Errorf("Insertion(1000) = %d, want 5", got)
	}

	if empty := NewAlphabet(nil); empty.Len() != 0 {
		t.Errorf("empty alphabet has %d symbols", empty.Len())
	}
}
