// core/window/selector.go
package window

import (
	"fmt"

	"realign-core/genome"
)

// Options holds the window-selection thresholds.
type Options struct {
	MinSupportingReads int
	MaxSupportingReads int
	MinMapQ            int
	MinBaseQual        int
	MinWindowDistance  int
	MaxWindowSize      int
}

// Validate rejects inconsistent thresholds. Called once, before any window is
// processed.
func (o Options) Validate() error {
	if o.MinSupportingReads < 0 {
		return fmt.Errorf("window: min_num_supporting_reads must be >= 0, got %d", o.MinSupportingReads)
	}
	if o.MaxSupportingReads < o.MinSupportingReads {
		return fmt.Errorf("window: max_num_supporting_reads (%d) < min_num_supporting_reads (%d)",
			o.MaxSupportingReads, o.MinSupportingReads)
	}
	if o.MinMapQ < 0 || o.MinBaseQual < 0 {
		return fmt.Errorf("window: quality thresholds must be >= 0")
	}
	if o.MinWindowDistance <= 0 {
		return fmt.Errorf("window: min_windows_distance must be > 0, got %d", o.MinWindowDistance)
	}
	if o.MaxWindowSize <= 0 {
		return fmt.Errorf("window: max_window_size must be > 0, got %d", o.MaxWindowSize)
	}
	return nil
}

// Window is a contiguous genomic interval flagged for reassembly.
type Window struct {
	Span genome.Range
}

// Select scans read evidence over span and returns the candidate windows,
// sorted by start, non-overlapping, never closer than MinWindowDistance and
// never longer than MaxWindowSize. ref holds the reference bases for span,
// with ref[0] at span.Start. Reads with an empty cigar are ignored.
func Select(span genome.Range, ref []byte, reads []genome.Read, opt Options) []Window {
	n := span.Len()
	if n <= 0 {
		return nil
	}
	support := make([]int, n)
	stamp := make([]int, n) // last read serial that touched a position
	for i := range stamp {
		stamp[i] = -1
	}

	for serial, r := range reads {
		if r.Unmapped || r.MapQ < opt.MinMapQ || len(r.Cigar) == 0 {
			continue
		}
		mark := func(p int) {
			i := p - span.Start
			if i < 0 || i >= n {
				return
			}
			if stamp[i] == serial {
				return // one vote per read per position
			}
			stamp[i] = serial
			support[i]++
		}
		refPos := r.Pos
		readPos := 0
		for _, op := range r.Cigar {
			switch op.Op {
			case 'S':
				// A clip touches the boundary position it abuts.
				if readPos == 0 {
					mark(refPos - 1)
				} else {
					mark(refPos)
				}
				readPos += op.Len
			case 'I':
				if anyQualAtLeast(r.Qual, readPos, op.Len, opt.MinBaseQual) {
					mark(refPos)
				}
				readPos += op.Len
			case 'D', 'N':
				for p := refPos; p < refPos+op.Len; p++ {
					mark(p)
				}
				refPos += op.Len
			case 'M', '=', 'X':
				for k := 0; k < op.Len; k++ {
					p := refPos + k
					i := p - span.Start
					if i < 0 || i >= n || readPos+k >= len(r.Seq) {
						continue
					}
					if qualAt(r.Qual, readPos+k) < opt.MinBaseQual {
						continue
					}
					if r.Seq[readPos+k] != ref[i] {
						mark(p)
					}
				}
				refPos += op.Len
				readPos += op.Len
			case 'H', 'P':
				// consume neither
			}
		}
	}

	return mergeAnchors(span, support, opt)
}

// mergeAnchors turns candidate anchor positions into merged windows.
func mergeAnchors(span genome.Range, support []int, opt Options) []Window {
	var out []Window
	start, end := -1, -1 // current run of anchors, absolute coords, inclusive
	flush := func() {
		if start < 0 {
			return
		}
		w := genome.MakeRange(span.Contig, start, end+1)
		// Noisy regions are not reassembled; their reads keep their original
		// alignments.
		if w.Len() <= opt.MaxWindowSize {
			out = append(out, Window{Span: w})
		}
		start, end = -1, -1
	}
	for i, s := range support {
		if s < opt.MinSupportingReads || s > opt.MaxSupportingReads {
			continue
		}
		p := span.Start + i
		if start < 0 {
			start, end = p, p
			continue
		}
		if p-end < opt.MinWindowDistance {
			end = p
			continue
		}
		flush()
		start, end = p, p
	}
	flush()
	return out
}

func qualAt(qual []byte, i int) int {
	if i >= len(qual) {
		// Missing qualities do not veto evidence.
		return 255
	}
	return int(qual[i])
}

func anyQualAtLeast(qual []byte, off, n, min int) bool {
	for i := off; i < off+n; i++ {
		if qualAt(qual, i) >= min {
			return true
		}
	}
	return n == 0
}
