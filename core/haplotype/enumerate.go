// core/haplotype/enumerate.go
package haplotype

import (
	"sort"

	"realign-core/dbg"
	"realign-core/genome"
)

// Set binds a window span to its ordered candidate haplotype strings. This is
// the record exported at the system boundary; downstream consumers key on it.
type Set struct {
	Span genome.Range
	Seqs []string
}

// Enumerate walks every source-to-sink path of an acyclic graph and returns
// the spelled haplotype strings. Out-edges are taken strongest-support first
// (ties broken by target k-mer), so for a given maxNumPaths > 0 the same
// bounded subset is produced on every run: the cap is a hard truncation, not
// a sample. The reference haplotype is always a member of the result, even
// when it is not among the top-weighted paths.
func Enumerate(g *dbg.Graph, maxNumPaths int) []string {
	var out []string
	var path []int32

	var dfs func(id int32) bool
	dfs = func(id int32) bool {
		path = append(path, id)
		defer func() { path = path[:len(path)-1] }()

		if id == g.Sink() {
			out = append(out, dbg.SpellPath(g, path))
			return maxNumPaths == 0 || len(out) < maxNumPaths
		}
		edges := g.OutEdges(id)
		sort.SliceStable(edges, func(i, j int) bool {
			if edges[i].Weight != edges[j].Weight {
				return edges[i].Weight > edges[j].Weight
			}
			return g.NodeSeq(edges[i].To) < g.NodeSeq(edges[j].To)
		})
		for _, e := range edges {
			if !dfs(e.To) {
				return false
			}
		}
		return true
	}
	dfs(g.Source())

	ref := g.RefHaplotype()
	for _, h := range out {
		if h == ref {
			return out
		}
	}
	// Guarantee the fallback path survives truncation.
	if maxNumPaths > 0 && len(out) >= maxNumPaths {
		out = out[:len(out)-1]
	}
	return append(out, ref)
}
