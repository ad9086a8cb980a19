// internal/output/rows.go
package output

import (
	"realign-core/genome"
	"realign-core/realign"

	"realign/pkg/api"
)

// ToAPIWindow converts a processed window to its stable wire form. Haplotype
// sequences are included only when withSeqs is set; they can dominate the
// output size.
func ToAPIWindow(res realign.WindowResult, withSeqs bool) api.WindowV1 {
	v := api.WindowV1{
		Contig:         res.Span.Contig,
		Start:          res.Span.Start,
		End:            res.Span.End,
		Status:         string(res.Disposition),
		K:              res.K,
		HaplotypeCount: len(res.Haplotypes.Seqs),
		ReadCount:      len(res.Reads),
		Realigned:      res.Realigned,
	}
	if withSeqs {
		v.Haplotypes = res.Haplotypes.Seqs
	}
	if len(res.Notes) > 0 {
		v.ScoreGains = make(map[string]float64, len(res.Notes))
		for name := range res.Notes {
			if ns := res.Notes.Numbers(name); len(ns) > 0 {
				v.ScoreGains[name] = ns[0]
			}
		}
	}
	return v
}

// ToAPIRead converts one read alignment to its stable wire form.
func ToAPIRead(r genome.Read, withSeq, realigned bool) api.ReadV1 {
	v := api.ReadV1{
		Name:      r.Name,
		Contig:    r.Contig,
		Pos:       r.Pos,
		MapQ:      r.MapQ,
		Cigar:     r.Cigar.String(),
		Realigned: realigned,
	}
	if withSeq {
		v.Seq = string(r.Seq)
	}
	return v
}
