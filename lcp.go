package fmindex

// Kasai's algorithm for building the LCP array in O(n) time.
// lcp[i] is the length of the longest common prefix of the suffixes at sa[i] and sa[i+1].
func BuildLCPArray(suffixArray []int, seq []Symbol) []int {
	if len(suffixArray) == 0 {
		return []int{}
	}
	rank := make([]int, len(suffixArray))
	for i := range suffixArray {
		rank[suffixArray[i]] = i
	}

	lcp := make([]int, len(suffixArray)-1)
	l := 0
	for i := range suffixArray {
		if rank[i]+1 == len(suffixArray) {
			l = 0
			continue
		}
		j := suffixArray[rank[i]+1]
		for i+l < len(seq) && j+l < len(seq) && seq[i+l] == seq[j+l] {
			l++
		}
		lcp[rank[i]] = l
		if l > 0 {
			l--
		}
	}

	return lcp
}
