// core/window/selector_test.go
package window

import (
	"bytes"
	"testing"

	"realign-core/genome"
)

func defaultOpts() Options {
	return Options{
		MinSupportingReads: 2,
		MaxSupportingReads: 100,
		MinMapQ:            10,
		MinBaseQual:        20,
		MinWindowDistance:  5,
		MaxWindowSize:      30,
	}
}

func mkRead(t *testing.T, name string, pos int, cig string, seq string) genome.Read {
	t.Helper()
	c, err := genome.ParseCigar(cig)
	if err != nil {
		t.Fatalf("cigar %q: %v", cig, err)
	}
	return genome.Read{
		Name:   name,
		Contig: "chr1",
		Pos:    pos,
		MapQ:   60,
		Cigar:  c,
		Seq:    []byte(seq),
		Qual:   bytes.Repeat([]byte{40}, len(seq)),
	}
}

func refOf(n int) []byte { return bytes.Repeat([]byte{'A'}, n) }

func TestSelectDeletionCluster(t *testing.T) {
	span := genome.MakeRange("chr1", 100, 160)
	ref := refOf(span.Len())
	var reads []genome.Read
	for i := 0; i < 3; i++ {
		reads = append(reads, mkRead(t, "d", 110, "5M2D5M", "AAAAAAAAAA"))
	}
	got := Select(span, ref, reads, defaultOpts())
	if len(got) != 1 {
		t.Fatalf("want 1 window, got %d: %v", len(got), got)
	}
	w := got[0].Span
	if w.Start != 115 || w.End != 117 {
		t.Errorf("window %v, want chr1:115-117", w)
	}
}

func TestSelectSeparatesDistantClusters(t *testing.T) {
	span := genome.MakeRange("chr1", 100, 160)
	ref := refOf(span.Len())
	var reads []genome.Read
	for i := 0; i < 3; i++ {
		reads = append(reads, mkRead(t, "a", 110, "5M2D5M", "AAAAAAAAAA"))
		reads = append(reads, mkRead(t, "b", 140, "5M2D5M", "AAAAAAAAAA"))
	}
	got := Select(span, ref, reads, defaultOpts())
	if len(got) != 2 {
		t.Fatalf("want 2 windows, got %d: %v", len(got), got)
	}
	opt := defaultOpts()
	for i := 1; i < len(got); i++ {
		if got[i].Span.Start-got[i-1].Span.End < opt.MinWindowDistance-1 {
			t.Errorf("windows %v and %v closer than min distance", got[i-1].Span, got[i].Span)
		}
	}
}

func TestSelectMergesNearbyAnchorsAndCapsSize(t *testing.T) {
	span := genome.MakeRange("chr1", 100, 160)
	ref := refOf(span.Len())
	var reads []genome.Read
	for i := 0; i < 3; i++ {
		reads = append(reads, mkRead(t, "a", 110, "5M2D5M", "AAAAAAAAAA"))
		reads = append(reads, mkRead(t, "b", 140, "5M2D5M", "AAAAAAAAAA"))
	}
	opt := defaultOpts()
	opt.MinWindowDistance = 50 // force the two clusters into one window
	opt.MaxWindowSize = 40
	got := Select(span, ref, reads, opt)
	if len(got) != 1 {
		t.Fatalf("want 1 merged window, got %d: %v", len(got), got)
	}
	if w := got[0].Span; w.Start != 115 || w.End != 147 {
		t.Errorf("merged window %v, want chr1:115-147", w)
	}

	// The same merged window is discarded when it exceeds max_window_size.
	opt.MaxWindowSize = 20
	if got := Select(span, ref, reads, opt); len(got) != 0 {
		t.Errorf("oversized window must be dropped, got %v", got)
	}
}

func TestSelectIgnoresLowMapQ(t *testing.T) {
	span := genome.MakeRange("chr1", 100, 160)
	ref := refOf(span.Len())
	var reads []genome.Read
	for i := 0; i < 3; i++ {
		r := mkRead(t, "low", 110, "5M2D5M", "AAAAAAAAAA")
		r.MapQ = 5
		reads = append(reads, r)
	}
	if got := Select(span, ref, reads, defaultOpts()); len(got) != 0 {
		t.Errorf("low-mapq reads must not open windows, got %v", got)
	}
}

func TestSelectMismatchNeedsBaseQuality(t *testing.T) {
	span := genome.MakeRange("chr1", 100, 120)
	ref := refOf(span.Len())
	strong := []genome.Read{
		mkRead(t, "m1", 105, "5M", "AACAA"),
		mkRead(t, "m2", 105, "5M", "AACAA"),
	}
	got := Select(span, ref, strong, defaultOpts())
	if len(got) != 1 || got[0].Span.Start != 107 {
		t.Fatalf("mismatch window: got %v, want start 107", got)
	}

	weak := make([]genome.Read, len(strong))
	copy(weak, strong)
	for i := range weak {
		weak[i].Qual = bytes.Repeat([]byte{5}, len(weak[i].Seq))
	}
	if got := Select(span, ref, weak, defaultOpts()); len(got) != 0 {
		t.Errorf("low-quality mismatches must not count, got %v", got)
	}
}

func TestSelectSupportUpperBound(t *testing.T) {
	span := genome.MakeRange("chr1", 100, 160)
	ref := refOf(span.Len())
	var reads []genome.Read
	for i := 0; i < 8; i++ {
		reads = append(reads, mkRead(t, "d", 110, "5M2D5M", "AAAAAAAAAA"))
	}
	opt := defaultOpts()
	opt.MaxSupportingReads = 5
	if got := Select(span, ref, reads, opt); len(got) != 0 {
		t.Errorf("support above max_num_supporting_reads must not anchor, got %v", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := defaultOpts().Validate(); err != nil {
		t.Fatalf("default options should validate: %v", err)
	}
	bad := defaultOpts()
	bad.MaxSupportingReads = 1
	if err := bad.Validate(); err == nil {
		t.Error("max < min must fail validation")
	}
	bad = defaultOpts()
	bad.MaxWindowSize = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero max_window_size must fail validation")
	}
}
