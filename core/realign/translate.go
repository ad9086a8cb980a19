// core/realign/translate.go
package realign

import (
	"realign-core/align"
	"realign-core/genome"
)

// translateAlignment lifts a read-vs-haplotype alignment into reference
// coordinates through the haplotype-vs-reference alignment. refStart is the
// reference coordinate of windowRef[0]. Returns the new read position and a
// reference-relative cigar whose read-consumed length equals the original.
func translateAlignment(readRes, hapRes align.Result, refStart int) (int, genome.Cigar) {
	// Per-haplotype-base geometry: refCoord[i] is the window-ref offset of
	// haplotype base i, or -1 where the haplotype inserts relative to the
	// reference; delBefore[i] is the length of the reference deletion
	// immediately before haplotype base i. Windows are bounded, so the
	// per-base expansion stays small.
	hapLen := 0
	for _, op := range hapRes.Ops {
		if op.Op == 'M' || op.Op == 'I' {
			hapLen += op.Len
		}
	}
	refCoord := make([]int, hapLen)
	delBefore := make([]int, hapLen+1)
	hi, rp := 0, hapRes.Start
	for _, op := range hapRes.Ops {
		switch op.Op {
		case 'M':
			for k := 0; k < op.Len; k++ {
				refCoord[hi] = rp
				hi++
				rp++
			}
		case 'I':
			for k := 0; k < op.Len; k++ {
				refCoord[hi] = -1
				hi++
			}
		case 'D':
			delBefore[hi] += op.Len
			rp += op.Len
		}
	}

	var ops genome.Cigar
	push := func(op byte, n int) {
		if n <= 0 {
			return
		}
		if len(ops) > 0 && ops[len(ops)-1].Op == op {
			ops[len(ops)-1].Len += n
			return
		}
		ops = append(ops, genome.CigarOp{Len: n, Op: op})
	}

	h := readRes.Start // current haplotype base under the read
	startH := h
	crossed := func(at int) {
		// Reference deletions between haplotype bases materialize only once
		// the read has entered the alignment.
		if at > startH {
			push('D', delBefore[at])
		}
	}
	for _, op := range readRes.Ops {
		switch op.Op {
		case 'M':
			for k := 0; k < op.Len; k++ {
				if h >= hapLen {
					push('I', 1) // read runs off the haplotype end
					continue
				}
				crossed(h)
				if refCoord[h] < 0 {
					push('I', 1)
				} else {
					push('M', 1)
				}
				h++
			}
		case 'I':
			push('I', op.Len)
		case 'D':
			for k := 0; k < op.Len; k++ {
				if h >= hapLen {
					break
				}
				crossed(h)
				if refCoord[h] >= 0 {
					push('D', 1)
				}
				h++
			}
		}
	}

	// Position: the first read base sitting on a real reference base.
	pos := refStart
	for i := startH; i < hapLen; i++ {
		if refCoord[i] >= 0 {
			pos = refStart + refCoord[i]
			break
		}
	}

	ops = tidyCigar(ops)
	return pos, ops
}

// tidyCigar converts unaligned read overhang at either end into soft-clips
// and trims boundary deletions, which carry no read bases.
func tidyCigar(ops genome.Cigar) genome.Cigar {
	for len(ops) > 0 && ops[0].Op == 'D' {
		ops = ops[1:]
	}
	for len(ops) > 0 && ops[len(ops)-1].Op == 'D' {
		ops = ops[:len(ops)-1]
	}
	if len(ops) > 0 && ops[0].Op == 'I' {
		ops[0].Op = 'S'
	}
	if len(ops) > 0 && ops[len(ops)-1].Op == 'I' {
		ops[len(ops)-1].Op = 'S'
	}
	return ops
}
