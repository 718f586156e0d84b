package fmindex

import (
	"errors"
	"math/rand"
	"testing"
)

func naiveLCP(seq []Symbol, a, b int) int {
	l := 0
	for a+l < len(seq) && b+l < len(seq) && seq[a+l] == seq[b+l] {
		l++
	}
	return l
}

func TestLongestRepeat(t *testing.T) {
	tests := []struct {
		text    string
		repeat  string
		wantLen int
	}{
		{"banana", "ana", 3},
		{"mississippi", "issi", 4},
		{"abcdef", "", 0},
		{"aaaa", "aaa", 3},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			ix, err := NewBuilder([]byte(tc.text)).SkipSuffixArray().WithLCP().Build()
			if err != nil {
				t.Fatal(err)
			}
			pos, length, err := ix.LongestRepeat()
			if err != nil {
				t.Fatal(err)
			}
			if length != tc.wantLen {
				t.Fatalf("length = %d, want %d", length, tc.wantLen)
			}
			if length == 0 {
				if pos != -1 {
					t.Errorf("pos = %d, want -1", pos)
				}
				return
			}
			if got := tc.text[pos : pos+length]; got != tc.repeat {
				t.Errorf("repeat = %q, want %q", got, tc.repeat)
			}
		})
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	text := randomText(r, 300, "ab")
	seq := EncodeText(text)
	ix, err := NewBuilder(text).WithLCP().Build()
	if err != nil {
		t.Fatal(err)
	}
	sa := ix.SuffixArray()

	for k := 0; k < 200; k++ {
		i, j := r.Intn(len(sa)), r.Intn(len(sa))
		got, err := ix.LongestCommonPrefix(i, j)
		if err != nil {
			t.Fatal(err)
		}
		want := naiveLCP(seq, sa[i], sa[j])
		if got != want {
			t.Fatalf("LongestCommonPrefix(%d, %d) = %d, want %d", i, j, got, want)
		}
	}

	if _, err := ix.LongestCommonPrefix(-1, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("error = %v, want ErrOutOfRange", err)
	}
}

func TestLCPNotBuilt(t *testing.T) {
	ix, err := NewBuilder([]byte("banana")).Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ix.LongestRepeat(); !errors.Is(err, ErrNoLCP) {
		t.Errorf("LongestRepeat error = %v, want ErrNoLCP", err)
	}
	if _, err := ix.LongestCommonPrefix(0, 1); !errors.Is(err, ErrNoLCP) {
		t.Errorf("LongestCommonPrefix error = %v, want ErrNoLCP", err)
	}
}
