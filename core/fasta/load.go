// core/fasta/load.go
package fasta

import (
	"context"
	"fmt"

	"realign-core/genome"
)

// Reference holds the contigs of a FASTA file, keyed by ID and kept in file
// order so downstream coordinate comparisons stay deterministic.
type Reference struct {
	order []string
	seqs  map[string][]byte
}

// LoadPath reads an entire FASTA file into memory. Duplicate contig IDs are
// rejected.
func LoadPath(ctx context.Context, path string) (*Reference, error) {
	ref := &Reference{seqs: make(map[string][]byte)}
	err := StreamPathCtx(ctx, path, func(r Record) error {
		if _, dup := ref.seqs[r.ID]; dup {
			return fmt.Errorf("fasta: duplicate contig %q in %s", r.ID, path)
		}
		ref.order = append(ref.order, r.ID)
		ref.seqs[r.ID] = r.Seq
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ref.order) == 0 {
		return nil, fmt.Errorf("fasta: no sequences in %s", path)
	}
	return ref, nil
}

// Contigs returns the contig IDs in file order.
func (r *Reference) Contigs() []string { return r.order }

// Sequence returns the full sequence of contig.
func (r *Reference) Sequence(contig string) ([]byte, bool) {
	s, ok := r.seqs[contig]
	return s, ok
}

// Slice returns the bases covered by rg.
func (r *Reference) Slice(rg genome.Range) ([]byte, error) {
	seq, ok := r.seqs[rg.Contig]
	if !ok {
		return nil, fmt.Errorf("fasta: %w: %q", genome.ErrUnknownContig, rg.Contig)
	}
	if rg.Start < 0 || rg.End > len(seq) || rg.Start > rg.End {
		return nil, fmt.Errorf("fasta: range %v outside contig %q (%d bases)", rg, rg.Contig, len(seq))
	}
	return seq[rg.Start:rg.End], nil
}

// Index builds the contig ordering used by position comparisons.
func (r *Reference) Index() genome.ContigIndex {
	return genome.MakeContigIndex(r.order)
}
