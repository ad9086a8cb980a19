// core/genome/genome.go
package genome

import (
	"errors"
	"fmt"
)

// Position is a single 0-based reference coordinate.
type Position struct {
	Contig        string
	Pos           int
	ReverseStrand bool
}

// Range is a half-open 0-based reference interval [Start, End).
type Range struct {
	Contig string
	Start  int
	End    int
}

// MakePosition builds a Position from a contig name and 0-based offset.
func MakePosition(contig string, pos int) Position {
	return Position{Contig: contig, Pos: pos}
}

// MakeRange builds a Range from a contig name and half-open coordinates.
func MakeRange(contig string, start, end int) Range {
	return Range{Contig: contig, Start: start, End: end}
}

// Len returns the number of bases spanned by r.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether needle is wholly contained in r.
func (r Range) Contains(needle Range) bool {
	return r.Contig == needle.Contig && r.Start <= needle.Start && needle.End <= r.End
}

// Overlaps reports whether r and other share at least one base.
func (r Range) Overlaps(other Range) bool {
	return r.Contig == other.Contig && r.Start < other.End && other.Start < r.End
}

// IntervalStr renders an interval as "chr:start-end". With baseZero=false the
// start is shifted to 1-based, the customary display convention.
func IntervalStr(contig string, start, end int, baseZero bool) string {
	if !baseZero {
		start++
	}
	return fmt.Sprintf("%s:%d-%d", contig, start, end)
}

// String renders r 0-based.
func (r Range) String() string { return IntervalStr(r.Contig, r.Start, r.End, true) }

// ErrUnknownContig is returned when a contig name is absent from a ContigIndex.
// Ordering cannot be established, so callers must treat this as fatal.
var ErrUnknownContig = errors.New("contig not present in contig index")

// ContigIndex maps contig names to their ordinal in reference order.
type ContigIndex map[string]int

// MakeContigIndex builds a ContigIndex from contigs in reference order.
func MakeContigIndex(contigs []string) ContigIndex {
	idx := make(ContigIndex, len(contigs))
	for i, c := range contigs {
		idx[c] = i
	}
	return idx
}

// ComparePositions orders a and b lexicographically by contig ordinal, then by
// offset. It returns <0, 0 or >0 in the usual comparator convention, and
// ErrUnknownContig if either contig is missing from idx.
func ComparePositions(a, b Position, idx ContigIndex) (int, error) {
	ca, ok := idx[a.Contig]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownContig, a.Contig)
	}
	cb, ok := idx[b.Contig]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownContig, b.Contig)
	}
	if ca != cb {
		return ca - cb, nil
	}
	return a.Pos - b.Pos, nil
}
