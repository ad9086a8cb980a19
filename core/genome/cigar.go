// core/genome/cigar.go
package genome

import (
	"fmt"
	"strings"
)

// CigarOp is one run-length encoded alignment operation.
type CigarOp struct {
	Len int
	Op  byte // one of MIDNSHP=X
}

// Cigar is an ordered list of alignment operations.
type Cigar []CigarOp

func validCigarOp(op byte) bool {
	switch op {
	case 'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X':
		return true
	}
	return false
}

// ParseCigar parses a SAM-style cigar string ("3M1I4M"). "*" parses to nil.
func ParseCigar(s string) (Cigar, error) {
	if s == "" || s == "*" {
		return nil, nil
	}
	var c Cigar
	n := 0
	sawDigit := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= '0' && b <= '9' {
			n = n*10 + int(b-'0')
			sawDigit = true
			continue
		}
		if !validCigarOp(b) {
			return nil, fmt.Errorf("cigar %q: bad op %q at %d", s, b, i)
		}
		if !sawDigit || n == 0 {
			return nil, fmt.Errorf("cigar %q: missing length before op %q at %d", s, b, i)
		}
		c = append(c, CigarOp{Len: n, Op: b})
		n = 0
		sawDigit = false
	}
	if sawDigit {
		return nil, fmt.Errorf("cigar %q: trailing length without op", s)
	}
	return c, nil
}

// String renders c in SAM notation; nil renders as "*".
func (c Cigar) String() string {
	if len(c) == 0 {
		return "*"
	}
	var sb strings.Builder
	for _, op := range c {
		fmt.Fprintf(&sb, "%d%c", op.Len, op.Op)
	}
	return sb.String()
}

// RefLength is the number of reference bases consumed by c.
func (c Cigar) RefLength() int {
	n := 0
	for _, op := range c {
		switch op.Op {
		case 'M', 'D', 'N', '=', 'X':
			n += op.Len
		}
	}
	return n
}

// ReadLength is the number of read bases consumed by c.
func (c Cigar) ReadLength() int {
	n := 0
	for _, op := range c {
		switch op.Op {
		case 'M', 'I', 'S', '=', 'X':
			n += op.Len
		}
	}
	return n
}

// HasIndelOrClip reports whether c contains an insertion, deletion or
// soft-clip operation.
func (c Cigar) HasIndelOrClip() bool {
	for _, op := range c {
		switch op.Op {
		case 'I', 'D', 'S':
			return true
		}
	}
	return false
}
