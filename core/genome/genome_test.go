// core/genome/genome_test.go
package genome

import (
	"errors"
	"testing"
)

func TestAreCanonicalBases(t *testing.T) {
	if ok, bad := AreCanonicalBases([]byte("ACGTACGT"), CanonACGT); !ok || bad != -1 {
		t.Errorf("ACGT run should be canonical, got ok=%v bad=%d", ok, bad)
	}
	if ok, bad := AreCanonicalBases([]byte("ACGNT"), CanonACGT); ok || bad != 3 {
		t.Errorf("N under ACGT: want ok=false bad=3, got ok=%v bad=%d", ok, bad)
	}
	if ok, _ := AreCanonicalBases([]byte("ACGNT"), CanonACGTN); !ok {
		t.Error("N should be allowed under ACGTN")
	}
	if ok, bad := AreCanonicalBases(nil, CanonACGT); ok || bad != 0 {
		t.Errorf("empty sequence must not be canonical, got ok=%v bad=%d", ok, bad)
	}
}

func TestRangeContainsAndOverlaps(t *testing.T) {
	hay := MakeRange("chr1", 100, 200)
	if !hay.Contains(MakeRange("chr1", 100, 200)) {
		t.Error("range should contain itself")
	}
	if !hay.Contains(MakeRange("chr1", 150, 160)) {
		t.Error("inner range should be contained")
	}
	if hay.Contains(MakeRange("chr1", 150, 201)) {
		t.Error("range extending past end must not be contained")
	}
	if hay.Contains(MakeRange("chr2", 150, 160)) {
		t.Error("contig mismatch must not be contained")
	}
	if !hay.Overlaps(MakeRange("chr1", 199, 300)) || hay.Overlaps(MakeRange("chr1", 200, 300)) {
		t.Error("overlap boundary wrong: [100,200) vs [199,300) yes, vs [200,300) no")
	}
}

func TestComparePositions(t *testing.T) {
	idx := MakeContigIndex([]string{"chr1", "chr2", "chrX"})
	lt, err := ComparePositions(MakePosition("chr1", 500), MakePosition("chr2", 1), idx)
	if err != nil || lt >= 0 {
		t.Errorf("chr1 must order before chr2, got %d err=%v", lt, err)
	}
	eq, err := ComparePositions(MakePosition("chrX", 7), MakePosition("chrX", 7), idx)
	if err != nil || eq != 0 {
		t.Errorf("identical positions must compare equal, got %d err=%v", eq, err)
	}
	if _, err := ComparePositions(MakePosition("chrM", 0), MakePosition("chr1", 0), idx); !errors.Is(err, ErrUnknownContig) {
		t.Errorf("missing contig must surface ErrUnknownContig, got %v", err)
	}
}

func TestParseCigarRoundTrip(t *testing.T) {
	for _, s := range []string{"10M", "3S7M2I4M1D6M", "100M2D1M", "*"} {
		c, err := ParseCigar(s)
		if err != nil {
			t.Fatalf("ParseCigar(%q): %v", s, err)
		}
		if got := c.String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestParseCigarRejectsMalformed(t *testing.T) {
	for _, s := range []string{"M", "3", "3Q", "0M", "3M4"} {
		if _, err := ParseCigar(s); err == nil {
			t.Errorf("ParseCigar(%q) should fail", s)
		}
	}
}

func TestReadStartEnd(t *testing.T) {
	c, _ := ParseCigar("2S5M2I3M4D6M")
	r := Read{Name: "r1", Contig: "chr3", Pos: 1000, Cigar: c}
	if ReadStart(r) != 1000 {
		t.Errorf("ReadStart = %d", ReadStart(r))
	}
	// ref consumed: 5M + 3M + 4D + 6M = 18; end inclusive = 1017
	if got := ReadEnd(r); got != 1017 {
		t.Errorf("ReadEnd = %d, want 1017", got)
	}
	if rr := ReadRange(r); rr.Start != 1000 || rr.End != 1018 {
		t.Errorf("ReadRange = %v", rr)
	}
}

func TestIsProperlyPlaced(t *testing.T) {
	base := Read{Contig: "chr1", MateContig: "chr1"}
	if !IsProperlyPlaced(base) {
		t.Error("same-contig pair is properly placed")
	}
	cross := base
	cross.MateContig = "chr2"
	if IsProperlyPlaced(cross) {
		t.Error("cross-contig pair is not properly placed")
	}
	single := base
	single.MateUnmapped = true
	single.MateContig = "chr9"
	if !IsProperlyPlaced(single) {
		t.Error("unmapped mate does not constrain placement")
	}
	un := base
	un.Unmapped = true
	if IsProperlyPlaced(un) {
		t.Error("unmapped read is never properly placed")
	}
}

func TestSatisfiesRequirements(t *testing.T) {
	c, _ := ParseCigar("10M")
	r := Read{Contig: "chr1", MapQ: 30, Cigar: c, MateContig: "chr1"}
	req := ReadRequirements{MinMapQ: 20, RequireProperPlacement: true, RequireParsedCigar: true}
	if !SatisfiesRequirements(r, req) {
		t.Error("read should pass requirements")
	}
	low := r
	low.MapQ = 10
	if SatisfiesRequirements(low, req) {
		t.Error("low mapq must fail")
	}
	nocig := r
	nocig.Cigar = nil
	if SatisfiesRequirements(nocig, req) {
		t.Error("missing cigar must fail when required")
	}
}

func TestAnnotationsSetOverwrites(t *testing.T) {
	a := make(Annotations)
	a.Set("DP", NumberOf(10))
	a.Set("DP", NumberOf(12), NumberOf(3))
	if got := a.Numbers("DP"); len(got) != 2 || got[0] != 12 || got[1] != 3 {
		t.Errorf("Set must overwrite: %v", got)
	}
	a.Set("HP", TextOf("ACGT"))
	if got := a.Texts("HP"); len(got) != 1 || got[0] != "ACGT" {
		t.Errorf("text values: %v", got)
	}
}
