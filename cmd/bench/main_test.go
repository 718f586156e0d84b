package main

import (
	"math/rand"
	"testing"

	"github.com/viniciusth/fmindex"
)

func TestMemMonitorStop(t *testing.T) {
	for i := 0; i < 20; i++ {
		mm := newMemMonitor()
		buf := make([]byte, 1<<16)
		buf[0] = 1
		if peak := mm.Stop(); peak == 0 {
			t.Fatalf("run %d: peak allocation is 0", i)
		}
		// A second read after Stop must see the same value.
		if mm.maxAlloc == 0 {
			t.Fatalf("run %d: maxAlloc reset after Stop", i)
		}
	}
}

func TestMeasureBuild(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	text, motif := buildText(r, 2000, 8, densityHigh)
	if len(motif) != 8 {
		t.Fatalf("motif length = %d, want 8", len(motif))
	}

	for _, name := range variantNames() {
		t.Run(name, func(t *testing.T) {
			_, _, _, ix := measureBuild(text, fmindex.NewBuilder, variants[name].config)
			if ix.Len() != len(text)+1 {
				t.Fatalf("Len() = %d, want %d", ix.Len(), len(text)+1)
			}
			if _, hits := measureQuery(ix, [][]byte{motif}); hits < 2000/32 {
				t.Errorf("motif found %d times, want at least %d", hits, 2000/32)
			}
		})
	}
}
