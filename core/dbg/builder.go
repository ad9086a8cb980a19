// core/dbg/builder.go
package dbg

import (
	"errors"
	"fmt"

	"realign-core/genome"
)

// ErrUnresolved is returned when no acyclic, reference-connected graph exists
// by max_k. The window falls back to its original alignments; this is an
// expected outcome, not a failure.
var ErrUnresolved = errors.New("dbg: graph unresolved at max_k")

// Options holds the graph-building thresholds.
type Options struct {
	MinK          int
	MaxK          int
	StepK         int
	MinMapQ       int
	MinBaseQual   int
	MinEdgeWeight int
	MaxNumPaths   int // 0 = unlimited; consumed by the haplotype enumerator
}

// Validate rejects inconsistent thresholds.
func (o Options) Validate() error {
	if o.MinK < 2 {
		return fmt.Errorf("dbg: min_k must be >= 2, got %d", o.MinK)
	}
	if o.MaxK < o.MinK {
		return fmt.Errorf("dbg: max_k (%d) < min_k (%d)", o.MaxK, o.MinK)
	}
	if o.StepK < 1 {
		return fmt.Errorf("dbg: step_k must be >= 1, got %d", o.StepK)
	}
	if o.MinMapQ < 0 || o.MinBaseQual < 0 {
		return fmt.Errorf("dbg: quality thresholds must be >= 0")
	}
	if o.MinEdgeWeight < 1 {
		return fmt.Errorf("dbg: min_edge_weight must be >= 1, got %d", o.MinEdgeWeight)
	}
	if o.MaxNumPaths < 0 {
		return fmt.Errorf("dbg: max_num_paths must be >= 0, got %d", o.MaxNumPaths)
	}
	return nil
}

// Build assembles a de Bruijn graph from the window's padded reference
// sequence and the reads covering it. Starting at min_k it rebuilds from
// scratch at k+step_k whenever the graph is cyclic or the reference sink is
// unreachable, up to max_k; cycles correspond to repeats shorter than k, so
// enlarging k disambiguates them. Returns ErrUnresolved when the ladder is
// exhausted.
func Build(ref []byte, reads []genome.Read, opt Options) (*Graph, error) {
	for k := opt.MinK; k <= opt.MaxK; k += opt.StepK {
		g, ok := buildAt(k, ref, reads, opt)
		if ok {
			return g, nil
		}
	}
	return nil, ErrUnresolved
}

// buildAt constructs and checks the graph for a single k.
func buildAt(k int, ref []byte, reads []genome.Read, opt Options) (*Graph, bool) {
	if k > len(ref) {
		return nil, false
	}
	g := newGraph(k)

	// Thread the reference first; its first and last k-mers fix the source
	// and sink.
	prev := int32(-1)
	for i := 0; i+k <= len(ref); i++ {
		if ok, _ := genome.AreCanonicalBases(ref[i:i+k], genome.CanonACGT); !ok {
			return nil, false // reference gap inside the window
		}
		id := g.addNode(string(ref[i : i+k]))
		g.refPath = append(g.refPath, id)
		if prev >= 0 {
			g.addEdge(prev, id, true)
		}
		prev = id
	}

	for _, r := range reads {
		if r.Unmapped || r.MapQ < opt.MinMapQ {
			continue
		}
		addReadKmers(g, r, k, opt.MinBaseQual)
	}

	g.prune(opt.MinEdgeWeight)
	if g.hasCycle() || !g.connected() {
		return nil, false
	}
	return g, true
}

// addReadKmers streams the read's k-mers into the graph. Runs are broken at
// non-canonical bases and at bases below the quality floor, so a single bad
// base voids the k-mers overlapping it rather than the whole read.
func addReadKmers(g *Graph, r genome.Read, k, minBaseQual int) {
	seq := r.Seq
	usable := func(i int) bool {
		if !genome.IsCanonicalBase(seq[i], genome.CanonACGT) {
			return false
		}
		return i >= len(r.Qual) || int(r.Qual[i]) >= minBaseQual
	}
	runStart := 0
	flush := func(start, end int) {
		if end-start < k {
			return
		}
		prev := g.addNode(string(seq[start : start+k]))
		for i := start + 1; i+k <= end; i++ {
			cur := g.addNode(string(seq[i : i+k]))
			g.addEdge(prev, cur, false)
			prev = cur
		}
	}
	for i := 0; i < len(seq); i++ {
		if usable(i) {
			continue
		}
		flush(runStart, i)
		runStart = i + 1
	}
	flush(runStart, len(seq))
}
