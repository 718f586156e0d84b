package fmindex

// inducedSort builds the suffix array with SA-IS (Nong, Zhang and Chan).
// Symbols are first replaced by their dense alphabet rank plus one and a virtual
// terminator 0 is appended, so the input does not need to carry its own sentinel.
// Positions are stored as int32; callers enforce maxSequenceLen.
func inducedSort(seq []Symbol) []int {
	n := len(seq)
	if n == 0 {
		return []int{}
	}

	alphabet := NewAlphabet(seq)
	text := make([]int32, n+1)
	for i, s := range seq {
		r, _ := alphabet.Rank(s)
		text[i] = int32(r) + 1
	}

	sa := sais(text, alphabet.Len()+1)

	// sa[0] is the virtual terminator.
	out := make([]int, n)
	for i, p := range sa[1:] {
		out[i] = int(p)
	}
	return out
}

// sais returns the suffix array of text. The last symbol of text must be a unique 0,
// every other symbol must be in [1, k).
func sais(text []int32, k int) []int32 {
	n := len(text)
	sa := make([]int32, n)
	if n == 1 {
		return sa
	}

	// stype[i] is true when text[i:] < text[i+1:].
	stype := make([]bool, n)
	stype[n-1] = true
	for i := n - 2; i >= 0; i-- {
		stype[i] = text[i] < text[i+1] || (text[i] == text[i+1] && stype[i+1])
	}

	var lms []int32
	for i := 1; i < n; i++ {
		if isLMS(stype, i) {
			lms = append(lms, int32(i))
		}
	}

	sizes := make([]int32, k)
	for _, c := range text {
		sizes[c]++
	}
	bkt := make([]int32, k)

	// First pass: LMS positions in text order sort the LMS substrings.
	induce(text, sa, stype, sizes, bkt, lms)

	sorted := make([]int32, 0, len(lms))
	for _, p := range sa {
		if isLMS(stype, int(p)) {
			sorted = append(sorted, p)
		}
	}

	names := make([]int32, n)
	for i := range names {
		names[i] = -1
	}
	name := int32(-1)
	prev := int32(-1)
	for _, p := range sorted {
		if prev < 0 || !lmsEqual(text, stype, prev, p) {
			name++
		}
		names[p] = name
		prev = p
	}

	// The last LMS position is the terminator, so the reduced text ends with a unique 0.
	reduced := make([]int32, len(lms))
	for i, p := range lms {
		reduced[i] = names[p]
	}

	var reducedSA []int32
	if int(name)+1 < len(lms) {
		reducedSA = sais(reduced, int(name)+1)
	} else {
		reducedSA = make([]int32, len(lms))
		for i, c := range reduced {
			reducedSA[c] = int32(i)
		}
	}

	ordered := make([]int32, len(lms))
	for i, r := range reducedSA {
		ordered[i] = lms[r]
	}
	induce(text, sa, stype, sizes, bkt, ordered)
	return sa
}

func isLMS(stype []bool, i int) bool {
	return i > 0 && stype[i] && !stype[i-1]
}

// induce seeds sa with lms at the tails of their buckets, then induces L-type suffixes
// left to right and S-type suffixes right to left.
func induce(text, sa []int32, stype []bool, sizes, bkt []int32, lms []int32) {
	for i := range sa {
		sa[i] = -1
	}

	bucketTails(sizes, bkt)
	for i := len(lms) - 1; i >= 0; i-- {
		p := lms[i]
		c := text[p]
		sa[bkt[c]] = p
		bkt[c]--
	}

	bucketHeads(sizes, bkt)
	for i := 0; i < len(sa); i++ {
		p := sa[i]
		if p > 0 && !stype[p-1] {
			c := text[p-1]
			sa[bkt[c]] = p - 1
			bkt[c]++
		}
	}

	bucketTails(sizes, bkt)
	for i := len(sa) - 1; i >= 0; i-- {
		p := sa[i]
		if p > 0 && stype[p-1] {
			c := text[p-1]
			sa[bkt[c]] = p - 1
			bkt[c]--
		}
	}
}

func bucketHeads(sizes, bkt []int32) {
	var sum int32
	for c, v := range sizes {
		bkt[c] = sum
		sum += v
	}
}

func bucketTails(sizes, bkt []int32) {
	var sum int32
	for c, v := range sizes {
		sum += v
		bkt[c] = sum - 1
	}
}

// lmsEqual reports whether the LMS substrings starting at a and b are identical.
func lmsEqual(text []int32, stype []bool, a, b int32) bool {
	last := int32(len(text) - 1)
	if a == last || b == last {
		return a == b
	}
	for i := int32(0); ; i++ {
		if text[a+i] != text[b+i] || stype[a+i] != stype[b+i] {
			return false
		}
		if i > 0 {
			aEnd, bEnd := isLMS(stype, int(a+i)), isLMS(stype, int(b+i))
			if aEnd || bEnd {
				return aEnd && bEnd
			}
		}
	}
}
