// core/genome/read.go
package genome

// Read is an externally owned aligned sequencing read. The realigner never
// mutates a Read it is handed; replacement alignments are produced as copies.
type Read struct {
	Name   string
	Contig string
	Pos    int // 0-based leftmost reference coordinate
	MapQ   int
	Cigar  Cigar
	Seq    []byte
	Qual   []byte // raw quality values, not ASCII-offset

	Unmapped     bool
	MateUnmapped bool
	MateContig   string
}

// ReadStart returns the first reference base covered by r. This is cheap:
// the start is carried on the record.
func ReadStart(r Read) int { return r.Pos }

// ReadEnd returns the last reference base covered by r's cigar operations.
// Note the result is INCLUSIVE, unlike most range operations, and requires a
// walk over the cigar.
func ReadEnd(r Read) int {
	ref := r.Cigar.RefLength()
	if ref == 0 {
		return r.Pos
	}
	return r.Pos + ref - 1
}

// ReadRange derives the half-open reference span covered by r's alignment.
func ReadRange(r Read) Range {
	return MakeRange(r.Contig, ReadStart(r), ReadEnd(r)+1)
}

// IsProperlyPlaced reports whether r and its mate, where mapped, are aligned
// to the same contig. This is weaker than the SAM proper-pair flag.
func IsProperlyPlaced(r Read) bool {
	if r.Unmapped {
		return false
	}
	if r.MateUnmapped || r.MateContig == "" {
		return true
	}
	return r.MateContig == r.Contig
}

// ReadRequirements is a caller-supplied predicate over reads.
type ReadRequirements struct {
	MinMapQ                int
	RequireProperPlacement bool
	RequireParsedCigar     bool
}

// SatisfiesRequirements reports whether r passes every requirement in req.
func SatisfiesRequirements(r Read, req ReadRequirements) bool {
	if r.Unmapped {
		return false
	}
	if r.MapQ < req.MinMapQ {
		return false
	}
	if req.RequireProperPlacement && !IsProperlyPlaced(r) {
		return false
	}
	if req.RequireParsedCigar && len(r.Cigar) == 0 {
		return false
	}
	return true
}
