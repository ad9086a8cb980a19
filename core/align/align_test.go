// core/align/align_test.go
package align

import (
	"testing"

	"realign-core/genome"
)

func scoring() Options {
	return Options{
		Match:     4,
		Mismatch:  -2,
		GapOpen:   -6,
		GapExtend: -1,
		K:         4,
		ErrorRate: 0.1,
	}
}

const tgt = "ACGTAGGCTAGCTTAAGCAT"

func TestGapScoreFormula(t *testing.T) {
	opt := scoring()
	for g := 1; g <= 6; g++ {
		want := opt.GapOpen + (g-1)*opt.GapExtend
		if got := opt.GapScore(g); got != want {
			t.Errorf("GapScore(%d) = %d, want %d", g, got, want)
		}
	}
	if opt.GapScore(1) != opt.GapOpen {
		t.Error("a 1-base gap must cost exactly gap_open")
	}
}

func TestAlignIdentical(t *testing.T) {
	opt := scoring()
	for _, s := range []string{"ACGTACGGTTCA", tgt, "GATTACAGATCA"} {
		res, err := Align([]byte(s), []byte(s), opt)
		if err != nil {
			t.Fatalf("Align(%q): %v", s, err)
		}
		if res.Score != len(s)*opt.Match {
			t.Errorf("score %d, want %d", res.Score, len(s)*opt.Match)
		}
		if res.Start != 0 {
			t.Errorf("start %d, want 0", res.Start)
		}
		if len(res.Ops) != 1 || res.Ops[0].Op != 'M' || res.Ops[0].Len != len(s) {
			t.Errorf("ops %v, want all-match", res.Ops)
		}
	}
}

func TestAlignDeletion(t *testing.T) {
	opt := scoring()
	// Remove target bases 8..10: one 3-base deletion in the query.
	query := tgt[:8] + tgt[11:]
	res, err := Align([]byte(query), []byte(tgt), opt)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := len(query)*opt.Match + opt.GapScore(3)
	if res.Score != want {
		t.Errorf("score %d, want %d", res.Score, want)
	}
	if got := res.Ops.String(); got != "8M3D9M" {
		t.Errorf("cigar %s, want 8M3D9M", got)
	}
	if res.Start != 0 {
		t.Errorf("start %d, want 0", res.Start)
	}
}

func TestAlignInsertion(t *testing.T) {
	opt := scoring()
	query := tgt[:8] + "GG" + tgt[8:]
	res, err := Align([]byte(query), []byte(tgt), opt)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := len(tgt)*opt.Match + opt.GapScore(2)
	if res.Score != want {
		t.Errorf("score %d, want %d", res.Score, want)
	}
	insRuns := 0
	for _, op := range res.Ops {
		if op.Op == 'I' {
			insRuns++
			if op.Len != 2 {
				t.Errorf("insertion run of %d, want 2", op.Len)
			}
		}
	}
	if insRuns != 1 {
		t.Errorf("ops %v, want a single 2-base insertion", res.Ops)
	}
}

func TestAlignMismatchOverGap(t *testing.T) {
	opt := scoring()
	query := []byte(tgt)
	query[10] = 'A' // tgt[10] is 'G'
	res, err := Align(query, []byte(tgt), opt)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := (len(tgt)-1)*opt.Match + opt.Mismatch
	if res.Score != want {
		t.Errorf("score %d, want %d", res.Score, want)
	}
	if got := res.Ops.String(); got != "20M" {
		t.Errorf("cigar %s, want 20M (mismatch cheaper than gaps)", got)
	}
}

func TestAlignInteriorQuery(t *testing.T) {
	opt := scoring()
	query := tgt[7:15]
	res, err := Align([]byte(query), []byte(tgt), opt)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if res.Start != 7 {
		t.Errorf("start %d, want 7", res.Start)
	}
	if res.Score != len(query)*opt.Match {
		t.Errorf("score %d, want %d", res.Score, len(query)*opt.Match)
	}
}

func TestAlignSeedlessFallback(t *testing.T) {
	opt := scoring()
	// No 4-mer of the query occurs in the target, yet the unseeded fallback
	// pass must still find the best fit.
	res, err := Align([]byte("ACAC"), []byte("GGGGACAGGGG"), opt)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := 3*opt.Match + opt.Mismatch
	if res.Score != want || res.Start != 4 {
		t.Errorf("got score %d start %d, want %d / 4", res.Score, res.Start, want)
	}
}

func TestAlignEmptyInput(t *testing.T) {
	if _, err := Align(nil, []byte("ACGT"), scoring()); err == nil {
		t.Error("empty query must error")
	}
	if _, err := Align([]byte("ACGT"), nil, scoring()); err == nil {
		t.Error("empty target must error")
	}
}

func TestResultBetterTieBreaks(t *testing.T) {
	mk := func(score int, cig string, start int) Result {
		c, err := genome.ParseCigar(cig)
		if err != nil {
			t.Fatalf("cigar: %v", err)
		}
		return Result{Score: score, Ops: c, Start: start}
	}
	if !mk(10, "5M", 0).Better(mk(8, "5M", 0)) {
		t.Error("higher score must win")
	}
	if !mk(10, "5M", 3).Better(mk(10, "2M1D3M", 0)) {
		t.Error("equal score: fewer gap ops must win")
	}
	if !mk(10, "2M1I2M", 1).Better(mk(10, "2M1D3M", 4)) {
		t.Error("equal score and gaps: earliest start must win")
	}
}

func TestOptionsValidateSignConvention(t *testing.T) {
	if err := scoring().Validate(); err != nil {
		t.Fatalf("valid scoring rejected: %v", err)
	}
	for _, mutate := range []func(*Options){
		func(o *Options) { o.Match = -1 },
		func(o *Options) { o.Mismatch = 1 },
		func(o *Options) { o.GapOpen = 1 },
		func(o *Options) { o.GapExtend = 2 },
		func(o *Options) { o.K = 1 },
		func(o *Options) { o.ErrorRate = 1.5 },
	} {
		o := scoring()
		mutate(&o)
		if err := o.Validate(); err == nil {
			t.Errorf("expected rejection of %+v", o)
		}
	}
}
