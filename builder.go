package fmindex

import (
	"log/slog"
	"time"

	"github.com/viniciusth/rmq"
)

type Builder struct {
	text     []byte
	strategy SortStrategy
	ranker   RankBackend
	keepSA   bool
	useLCP   bool
	offsets  []int
	logger   *slog.Logger
}

// NewBuilder prepares an index over text. The sentinel is appended by Build,
// text itself may contain any byte.
func NewBuilder(text []byte) *Builder {
	return &Builder{
		text:     text,
		strategy: SortInduced,
		ranker:   RankDense,
		keepSA:   true,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// Chooses the suffix array construction algorithm. The result is the same for all of them.
func (b *Builder) SuffixSort(strategy SortStrategy) *Builder {
	b.strategy = strategy
	return b
}

// Chooses the rank structure backing Occ.
// RankDense costs 4·n·σ bytes, RankBitmap is much smaller on large alphabets but slower to query.
func (b *Builder) RankWith(backend RankBackend) *Builder {
	b.ranker = backend
	return b
}

// Drops the suffix array after construction. Saves n words of memory,
// but Locate stops working. Ignored when WithLCP or WithRecords is set.
func (b *Builder) SkipSuffixArray() *Builder {
	b.keepSA = false
	return b
}

// Builds the LCP array and a range-minimum structure over it.
// Costs 2·n extra words, enables LongestCommonPrefix and LongestRepeat.
func (b *Builder) WithLCP() *Builder {
	b.useLCP = true
	return b
}

// Reports the duration of each construction stage at debug level.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

func (b *Builder) Build() (*Index, error) {
	if _, ok := strategyNames[b.strategy]; !ok {
		return nil, ErrUnknownStrategy
	}
	if _, ok := rankerNames[b.ranker]; !ok {
		return nil, ErrUnknownRanker
	}
	if err := checkLen(len(b.text) + 1); err != nil {
		return nil, err
	}

	started := time.Now()
	stage := func(name string, since time.Time, attrs ...any) {
		b.logger.Debug("fmindex: stage done", append([]any{"stage", name, "elapsed", time.Since(since)}, attrs...)...)
	}

	t := time.Now()
	seq := EncodeText(b.text)
	alphabet := NewAlphabet(seq)
	stage("alphabet", t, "n", len(seq), "sigma", alphabet.Len())

	t = time.Now()
	suffixArray, err := BuildSuffixArray(seq, b.strategy)
	if err != nil {
		return nil, err
	}
	stage("suffix-array", t, "strategy", b.strategy)

	t = time.Now()
	bw := BuildTransform(seq, suffixArray)
	stage("transform", t)

	t = time.Now()
	counts := BuildCounts(seq, alphabet)
	stage("counts", t)

	t = time.Now()
	occ, err := BuildRanker(bw, alphabet, b.ranker)
	if err != nil {
		return nil, err
	}
	stage("rank", t, "backend", b.ranker)

	ix := &Index{
		n:        len(seq),
		alphabet: alphabet,
		bw:       bw,
		counts:   counts,
		occ:      occ,
	}

	if b.useLCP {
		t = time.Now()
		ix.lcp = BuildLCPArray(suffixArray, seq)
		if len(ix.lcp) > 0 {
			ix.lcpRMQ = rmq.NewRMQHybridNaive(ix.lcp)
		}
		stage("lcp", t)
	}
	if b.offsets != nil {
		t = time.Now()
		ix.records = buildRecordListing(suffixArray, b.offsets)
		stage("records", t, "records", ix.records.count)
	}
	if b.keepSA || b.useLCP || b.offsets != nil {
		ix.suffixArray = suffixArray
	}

	b.logger.Debug("fmindex: index built", "n", ix.n, "sigma", alphabet.Len(), "elapsed", time.Since(started))
	return ix, nil
}
