// internal/cliutil/regions_test.go
package cliutil

import (
	"testing"

	"realign-core/genome"
)

func TestParseRegion(t *testing.T) {
	got, err := ParseRegion("chr1:100-250")
	if err != nil || got != genome.MakeRange("chr1", 100, 250) {
		t.Errorf("got %v, %v", got, err)
	}
	got, err = ParseRegion("chrM")
	if err != nil || got.Contig != "chrM" || got.End != -1 {
		t.Errorf("bare contig: %v, %v", got, err)
	}
	// Contig names may contain colons; only the last one separates the span.
	got, err = ParseRegion("HLA-A:01:100-200")
	if err != nil || got.Contig != "HLA-A:01" || got.Start != 100 || got.End != 200 {
		t.Errorf("colon contig: %v, %v", got, err)
	}
	for _, bad := range []string{"", "chr1:", "chr1:10", "chr1:x-20", "chr1:20-10", "chr1:-5-10"} {
		if _, err := ParseRegion(bad); err == nil {
			t.Errorf("ParseRegion(%q) must fail", bad)
		}
	}
}

func TestExpandPositionals(t *testing.T) {
	out, err := ExpandPositionals([]string{"chr1", "chr2:1-10"})
	if err != nil || len(out) != 2 {
		t.Errorf("got %v, %v", out, err)
	}
	if _, err := ExpandPositionals([]string{"chr1", "--sort"}); err == nil {
		t.Error("stray flag must be rejected")
	}
}
