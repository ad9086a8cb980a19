// core/readstsv/loader.go
//
// Package readstsv loads aligned reads from a whitespace-separated text
// format: one read per line,
//
//	name contig pos mapq cigar seq [qual [mate]]
//
// pos is 0-based; qual is Phred+33 text or "*"; mate is the mate's contig,
// "=" for same-contig or "*" for an unmapped mate. A contig of "*" marks the
// read itself unmapped. Lines starting with '#' are comments.
//
// Names must be unique: downstream merging is keyed by name, so paired mates
// need distinct names (e.g. a /1 and /2 suffix). Duplicates are rejected.
package readstsv

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"realign-core/genome"
)

func Load(path string) ([]genome.Read, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var list []genome.Read
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	seen := make(map[string]int)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 6 || len(f) > 8 {
			return nil, fmt.Errorf("%s:%d bad field count %d", path, ln, len(f))
		}
		if prev, dup := seen[f[0]]; dup {
			return nil, fmt.Errorf("%s:%d duplicate read name %q (first seen line %d); names must be unique", path, ln, f[0], prev)
		}
		seen[f[0]] = ln
		r := genome.Read{Name: f[0]}
		if f[1] == "*" {
			r.Unmapped = true
		} else {
			r.Contig = f[1]
		}
		if r.Pos, err = strconv.Atoi(f[2]); err != nil {
			return nil, fmt.Errorf("%s:%d bad pos: %v", path, ln, err)
		}
		if r.MapQ, err = strconv.Atoi(f[3]); err != nil {
			return nil, fmt.Errorf("%s:%d bad mapq: %v", path, ln, err)
		}
		if r.Cigar, err = genome.ParseCigar(f[4]); err != nil {
			return nil, fmt.Errorf("%s:%d bad cigar: %v", path, ln, err)
		}
		r.Seq = []byte(strings.ToUpper(f[5]))
		if len(f) >= 7 && f[6] != "*" {
			if len(f[6]) != len(r.Seq) {
				return nil, fmt.Errorf("%s:%d qual length %d != seq length %d", path, ln, len(f[6]), len(r.Seq))
			}
			r.Qual = decodeQual(f[6])
		}
		if len(f) == 8 {
			switch f[7] {
			case "*":
				r.MateUnmapped = true
			case "=":
				r.MateContig = r.Contig
			default:
				r.MateContig = f[7]
			}
		}
		list = append(list, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeQual(s string) []byte {
	q := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 33 {
			c = 33
		}
		q[i] = c - 33
	}
	return q
}
