package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/viniciusth/fmindex"
	"github.com/viniciusth/fmindex/config"
)

type variant struct {
	name   string
	config func(*fmindex.Builder) *fmindex.Builder
}

var variants = map[string]variant{
	"induced_dense":       {name: "induced_dense", config: func(b *fmindex.Builder) *fmindex.Builder { return b }},
	"induced_bitmap":      {name: "induced_bitmap", config: func(b *fmindex.Builder) *fmindex.Builder { return b.RankWith(fmindex.RankBitmap) }},
	"doubling_dense":      {name: "doubling_dense", config: func(b *fmindex.Builder) *fmindex.Builder { return b.SuffixSort(fmindex.SortDoubling) }},
	"partition_dense":     {name: "partition_dense", config: func(b *fmindex.Builder) *fmindex.Builder { return b.SuffixSort(fmindex.SortPartition) }},
	"induced_dense_no_sa": {name: "induced_dense_no_sa", config: func(b *fmindex.Builder) *fmindex.Builder { return b.SkipSuffixArray() }},
}

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

const dna = "acgt"

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

// Stop waits for the sampler to exit, so maxAlloc is no longer written.
func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text []byte, base func([]byte) *fmindex.Builder, configure func(*fmindex.Builder) *fmindex.Builder) (time.Duration, uint64, uint64, *fmindex.Index) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	builder := configure(base(text))
	ix, err := builder.Build()
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, ix
}

func measureQuery(ix *fmindex.Index, patterns [][]byte) (time.Duration, int) {
	start := time.Now()
	total := 0
	for _, p := range patterns {
		total += ix.Count(p)
	}
	return time.Since(start), total
}

// buildText returns n random nucleotides. With high density, a P-long motif is planted
// every 4P positions so queries hit many rows.
func buildText(r *rand.Rand, n, p int, density densityType) ([]byte, []byte) {
	text := make([]byte, n)
	for i := range text {
		text[i] = dna[r.Intn(len(dna))]
	}
	if density != densityHigh {
		return text, nil
	}
	motif := make([]byte, p)
	for i := range motif {
		motif[i] = dna[r.Intn(len(dna))]
	}
	for pos := 0; pos+p <= n; pos += 4 * p {
		copy(text[pos:], motif)
	}
	return text, motif
}

func runBenchmark(v variant, base func([]byte) *fmindex.Builder, N, P, Q, runs int, density densityType) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text, motif := buildText(r, N, P, density)

		bt, bp, ba, ix := measureBuild(text, base, v.config)
		patterns := make([][]byte, Q)
		for i := range patterns {
			if motif != nil {
				patterns[i] = motif
			} else {
				start := r.Intn(N - P + 1)
				patterns[i] = text[start : start+P]
			}
		}
		qt, hits := measureQuery(ix, patterns)
		fmt.Printf("%s,%d,%d,%d,%s,%.0f,%d,%d,%.0f,%d\n",
			v.name, N, P, Q, density,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), hits)
	}
}

func variantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	variantName := flag.String("variant", "", "Variant to benchmark")
	n := flag.Int("n", 0, "Text length N")
	p := flag.Int("p", 0, "Pattern length P")
	q := flag.Int("q", 0, "Number of queries Q")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	d := flag.String("d", "low", "Density: low or high")
	lcp := flag.Bool("lcp", false, "Also build the LCP array")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// The LCP setting applies to every variant; sort and rank come from the variant itself.
	base := func(text []byte) *fmindex.Builder {
		b := fmindex.NewBuilder(text)
		if *lcp || settings.Index.LCP {
			b.WithLCP()
		}
		return b
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *variantName == "" || *n <= 0 || *p <= 0 || *q <= 0 || *p > *n {
		fmt.Println("Usage: go run main.go -variant=<variant> -n=<N> -p=<P> -q=<Q> -d=<density> [-runs=<runs>] [-lcp]")
		fmt.Println("Available variants:", variantNames())
		os.Exit(1)
	}

	v, ok := variants[*variantName]
	if !ok {
		fmt.Println("Invalid variant:", *variantName)
		os.Exit(1)
	}

	runBenchmark(v, base, *n, *p, *q, *runs, densityType(*d))
}
