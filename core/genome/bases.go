// core/genome/bases.go
package genome

// Canon selects the set of bases considered canonical.
type Canon int

const (
	// CanonACGT allows A, C, G and T only.
	CanonACGT Canon = iota
	// CanonACGTN additionally allows the ambiguous N base.
	CanonACGTN
)

// IsCanonicalBase reports whether base belongs to the canonical set canon.
func IsCanonicalBase(base byte, canon Canon) bool {
	switch base {
	case 'A', 'C', 'G', 'T':
		return true
	case 'N':
		return canon == CanonACGTN
	default:
		return false
	}
}

// AreCanonicalBases reports whether every base in seq belongs to canon.
// On failure badPos is the 0-based offset of the first offending base;
// on success badPos is -1. The empty sequence is not canonical.
func AreCanonicalBases(seq []byte, canon Canon) (ok bool, badPos int) {
	if len(seq) == 0 {
		return false, 0
	}
	for i, b := range seq {
		if !IsCanonicalBase(b, canon) {
			return false, i
		}
	}
	return true, -1
}
