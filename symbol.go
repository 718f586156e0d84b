package fmindex

// Symbol is one position of an indexed sequence.
// Bytes are stored shifted up by one so that the zero value is free for the sentinel.
type Symbol int32

const (
	// Sentinel terminates every indexed sequence. It is out-of-band for byte input,
	// so it compares strictly below every byte regardless of the input alphabet.
	Sentinel Symbol = 0

	// byteSymbols is the number of symbols a byte-encoded sequence can hold (256 bytes + sentinel).
	byteSymbols = 257
)

func ByteSymbol(b byte) Symbol {
	return Symbol(b) + 1
}

// Byte returns the byte s encodes. ok is false for the sentinel and for
// symbols outside the byte range.
func (s Symbol) Byte() (b byte, ok bool) {
	if s <= Sentinel || s >= byteSymbols {
		return 0, false
	}
	return byte(s - 1), true
}

// EncodeText converts text into a sequence terminated by the sentinel.
func EncodeText(text []byte) []Symbol {
	seq := make([]Symbol, len(text)+1)
	for i, b := range text {
		seq[i] = ByteSymbol(b)
	}
	seq[len(text)] = Sentinel
	return seq
}

// EncodePattern converts a query into symbols. No sentinel is appended.
func EncodePattern(pattern []byte) []Symbol {
	p := make([]Symbol, len(pattern))
	for i, b := range pattern {
		p[i] = ByteSymbol(b)
	}
	return p
}
