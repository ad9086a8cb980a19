// core/haplotype/enumerate_test.go
package haplotype

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"realign-core/dbg"
	"realign-core/genome"
)

const (
	bubbleRef = "AAACCCGGGTTT"
	bubbleAlt = "AAACCAGGGTTT" // SNP at offset 5
)

func bubbleGraph(t *testing.T, altReads int) *dbg.Graph {
	t.Helper()
	var reads []genome.Read
	for i := 0; i < altReads; i++ {
		reads = append(reads, genome.Read{
			Name: "alt", Contig: "chr1", MapQ: 60,
			Seq:  []byte(bubbleAlt),
			Qual: bytes.Repeat([]byte{30}, len(bubbleAlt)),
		})
	}
	g, err := dbg.Build([]byte(bubbleRef), reads, dbg.Options{
		MinK: 4, MaxK: 12, StepK: 2,
		MinMapQ: 10, MinBaseQual: 15, MinEdgeWeight: 1,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestEnumerateBubble(t *testing.T) {
	g := bubbleGraph(t, 3)
	got := Enumerate(g, 0)
	if len(got) != 2 {
		t.Fatalf("want ref + alt, got %d paths: %v", len(got), got)
	}
	// Three alt reads outweigh the reference thread, so alt comes first.
	if got[0] != bubbleAlt || got[1] != bubbleRef {
		t.Errorf("order [alt ref] expected, got %v", got)
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	g := bubbleGraph(t, 3)
	first := Enumerate(g, 2)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Enumerate(g, 2)); diff != "" {
			t.Fatalf("enumeration not reproducible (-want +got):\n%s", diff)
		}
	}
}

func TestEnumerateAlwaysIncludesReference(t *testing.T) {
	g := bubbleGraph(t, 3)
	got := Enumerate(g, 1)
	if len(got) != 1 {
		t.Fatalf("cap of 1 must yield exactly 1 haplotype, got %v", got)
	}
	if got[0] != bubbleRef {
		t.Errorf("reference path must survive truncation, got %q", got[0])
	}
}

func TestEnumerateRespectsCap(t *testing.T) {
	g := bubbleGraph(t, 3)
	for n := 1; n <= 4; n++ {
		got := Enumerate(g, n)
		if len(got) > n {
			t.Errorf("max_num_paths=%d returned %d haplotypes", n, len(got))
		}
		found := false
		for _, h := range got {
			if h == bubbleRef {
				found = true
			}
		}
		if !found {
			t.Errorf("max_num_paths=%d dropped the reference haplotype", n)
		}
	}
}

func TestEnumerateReferenceOnlyGraph(t *testing.T) {
	g, err := dbg.Build([]byte(bubbleRef), nil, dbg.Options{
		MinK: 4, MaxK: 12, StepK: 2,
		MinMapQ: 10, MinBaseQual: 15, MinEdgeWeight: 1,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := Enumerate(g, 0)
	if len(got) != 1 || got[0] != bubbleRef {
		t.Errorf("reference-only graph must yield exactly the reference, got %v", got)
	}
}
