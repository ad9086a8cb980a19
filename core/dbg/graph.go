// core/dbg/graph.go
package dbg

// The graph holds nodes and edges in flat arenas addressed by integer index.
// A de Bruijn graph over repetitive input is naturally cyclic, so nodes must
// not own references to each other: index-based addressing keeps cycle
// detection a plain visited-set walk and makes teardown-and-rebuild on k
// escalation a matter of dropping the arenas.

type node struct {
	seq string
	out []int32 // edge arena indices, insertion order
}

type edge struct {
	from, to int32
	weight   int
	isRef    bool
	pruned   bool
}

// Edge is the read-only view handed to graph consumers.
type Edge struct {
	From, To int32
	Weight   int
	IsRef    bool
}

// Graph is a de Bruijn graph for one window at one k. It lives for the
// duration of a single assembly attempt.
type Graph struct {
	k       int
	nodes   []node
	edges   []edge
	index   map[string]int32
	edgeIdx map[int64]int32
	refPath []int32 // node indices of the reference thread, in order
}

func newGraph(k int) *Graph {
	return &Graph{
		k:       k,
		index:   make(map[string]int32),
		edgeIdx: make(map[int64]int32),
	}
}

// K returns the k-mer size the graph was built at.
func (g *Graph) K() int { return g.k }

// NumNodes returns the number of distinct k-mers in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Source returns the node holding the first reference k-mer.
func (g *Graph) Source() int32 { return g.refPath[0] }

// Sink returns the node holding the last reference k-mer.
func (g *Graph) Sink() int32 { return g.refPath[len(g.refPath)-1] }

// NodeSeq returns the k-mer interned at node id.
func (g *Graph) NodeSeq(id int32) string { return g.nodes[id].seq }

// OutEdges returns the live outgoing edges of node id, in insertion order.
func (g *Graph) OutEdges(id int32) []Edge {
	var out []Edge
	for _, ei := range g.nodes[id].out {
		e := g.edges[ei]
		if e.pruned {
			continue
		}
		out = append(out, Edge{From: e.from, To: e.to, Weight: e.weight, IsRef: e.isRef})
	}
	return out
}

// RefHaplotype reconstructs the reference sequence from the reference thread.
func (g *Graph) RefHaplotype() string {
	if len(g.refPath) == 0 {
		return ""
	}
	return SpellPath(g, g.refPath)
}

// SpellPath concatenates a node path into its nucleotide string: the full
// first k-mer followed by the last base of each subsequent k-mer.
func SpellPath(g *Graph, path []int32) string {
	if len(path) == 0 {
		return ""
	}
	buf := make([]byte, 0, g.k+len(path)-1)
	buf = append(buf, g.nodes[path[0]].seq...)
	for _, id := range path[1:] {
		s := g.nodes[id].seq
		buf = append(buf, s[len(s)-1])
	}
	return string(buf)
}

// addNode interns seq, collapsing repeated k-mers onto one vertex.
func (g *Graph) addNode(seq string) int32 {
	if id, ok := g.index[seq]; ok {
		return id
	}
	id := int32(len(g.nodes))
	g.nodes = append(g.nodes, node{seq: seq})
	g.index[seq] = id
	return id
}

// addEdge records a k-1 overlap transition, incrementing the support weight
// on repeat crossings.
func (g *Graph) addEdge(from, to int32, isRef bool) {
	key := int64(from)<<32 | int64(uint32(to))
	if ei, ok := g.edgeIdx[key]; ok {
		g.edges[ei].weight++
		if isRef {
			g.edges[ei].isRef = true
		}
		return
	}
	ei := int32(len(g.edges))
	g.edges = append(g.edges, edge{from: from, to: to, weight: 1, isRef: isRef})
	g.edgeIdx[key] = ei
	g.nodes[from].out = append(g.nodes[from].out, ei)
}

// prune drops non-reference edges supported by fewer than minWeight crossings.
// Reference edges stay so the fallback haplotype always survives pruning.
func (g *Graph) prune(minWeight int) {
	for i := range g.edges {
		if !g.edges[i].isRef && g.edges[i].weight < minWeight {
			g.edges[i].pruned = true
		}
	}
}

// hasCycle reports whether any node is reachable from itself via live edges.
func (g *Graph) hasCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]byte, len(g.nodes))
	type frame struct {
		id   int32
		next int
	}
	for start := range g.nodes {
		if color[start] != white {
			continue
		}
		stack := []frame{{id: int32(start)}}
		color[start] = gray
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			advanced := false
			for f.next < len(g.nodes[f.id].out) {
				ei := g.nodes[f.id].out[f.next]
				f.next++
				e := g.edges[ei]
				if e.pruned {
					continue
				}
				switch color[e.to] {
				case gray:
					return true
				case white:
					color[e.to] = gray
					stack = append(stack, frame{id: e.to})
					advanced = true
				}
				if advanced {
					break
				}
			}
			if !advanced && f.next >= len(g.nodes[f.id].out) {
				color[f.id] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	return false
}

// connected reports whether the sink is reachable from the source.
func (g *Graph) connected() bool {
	if len(g.refPath) == 0 {
		return false
	}
	seen := make([]bool, len(g.nodes))
	queue := []int32{g.Source()}
	seen[g.Source()] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == g.Sink() {
			return true
		}
		for _, ei := range g.nodes[id].out {
			e := g.edges[ei]
			if e.pruned || seen[e.to] {
				continue
			}
			seen[e.to] = true
			queue = append(queue, e.to)
		}
	}
	return false
}
