// core/align/align.go
package align

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"realign-core/genome"
)

// Options holds the alignment scoring weights and seeding parameters.
type Options struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
	K         int
	ErrorRate float64
}

// Validate enforces the scoring sign convention before any window is
// processed: gap_open <= 0 <= match, mismatch <= 0, gap_extend <= 0.
func (o Options) Validate() error {
	if o.Match < 0 {
		return fmt.Errorf("align: match must be >= 0, got %d", o.Match)
	}
	if o.Mismatch > 0 {
		return fmt.Errorf("align: mismatch must be <= 0, got %d", o.Mismatch)
	}
	if o.GapOpen > 0 {
		return fmt.Errorf("align: gap_open must be <= 0, got %d", o.GapOpen)
	}
	if o.GapExtend > 0 {
		return fmt.Errorf("align: gap_extend must be <= 0, got %d", o.GapExtend)
	}
	if o.K < 2 {
		return fmt.Errorf("align: k must be >= 2, got %d", o.K)
	}
	if o.ErrorRate < 0 || o.ErrorRate >= 1 {
		return fmt.Errorf("align: error_rate must be in [0,1), got %g", o.ErrorRate)
	}
	return nil
}

// GapScore returns the cost of a gap of length g: gap_open for the first base
// and gap_extend for each additional one.
func (o Options) GapScore(g int) int {
	if g <= 0 {
		return 0
	}
	return o.GapOpen + (g-1)*o.GapExtend
}

// Result is one alignment of a query inside a target. Ops uses M (aligned,
// match or mismatch), I (query insertion) and D (target deletion); Start is
// the 0-based target offset of the first aligned base.
type Result struct {
	Score int
	Ops   genome.Cigar
	Start int
}

// GapOpCount counts gap operations in the result, the first tie-break key.
func (r Result) GapOpCount() int {
	n := 0
	for _, op := range r.Ops {
		if op.Op == 'I' || op.Op == 'D' {
			n++
		}
	}
	return n
}

// Better reports whether r should be preferred over other: higher score,
// then fewer gap operations, then earliest start offset.
func (r Result) Better(other Result) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}
	if g1, g2 := r.GapOpCount(), other.GapOpCount(); g1 != g2 {
		return g1 < g2
	}
	return r.Start < other.Start
}

var errEmptyInput = errors.New("align: empty query or target")

// Align fits query inside target with affine-gap scoring. The target is
// first indexed by its k-mers to vote likely start offsets for the query;
// the dynamic program then runs only over a band around each surviving seed
// diagonal instead of the whole target. When no seed matches (highly
// divergent or very short queries) it falls back to a full-width pass, so
// the result is score-equivalent to unseeded dynamic programming.
func Align(query, target []byte, opt Options) (Result, error) {
	if len(query) == 0 || len(target) == 0 {
		return Result{}, errEmptyInput
	}

	band := bandWidth(len(query), opt.ErrorRate)
	offsets := seedOffsets(query, target, opt)

	var best Result
	haveBest := false
	for _, off := range offsets {
		lo := off - band
		if lo < 0 {
			lo = 0
		}
		hi := off + len(query) + band
		if hi > len(target) {
			hi = len(target)
		}
		if hi-lo < 1 {
			continue
		}
		res, ok := fitQuery(query, target[lo:hi], opt)
		if !ok {
			continue
		}
		res.Start += lo
		if !haveBest || res.Better(best) {
			best = res
			haveBest = true
		}
	}
	if !haveBest {
		res, ok := fitQuery(query, target, opt)
		if !ok {
			return Result{}, fmt.Errorf("align: no alignment for %d-base query in %d-base target", len(query), len(target))
		}
		best = res
	}
	return best, nil
}

// bandWidth derives the DP band from the configured error rate: each
// tolerated error can shift the alignment diagonal by one.
func bandWidth(queryLen int, errorRate float64) int {
	b := 2 * int(math.Ceil(errorRate*float64(queryLen)))
	if b < 4 {
		b = 4
	}
	return b
}

// seedOffsets votes candidate target start offsets from shared k-mers and
// prunes clearly-inferior ones. Offsets are returned strongest first, ties
// broken leftmost.
func seedOffsets(query, target []byte, opt Options) []int {
	k := opt.K
	if k > len(query) {
		k = len(query)
	}
	if k < 2 || k > len(target) {
		return nil
	}
	index := make(map[string][]int)
	for i := 0; i+k <= len(target); i++ {
		km := string(target[i : i+k])
		index[km] = append(index[km], i)
	}
	votes := make(map[int]int)
	for i := 0; i+k <= len(query); i++ {
		for _, tpos := range index[string(query[i:i+k])] {
			off := tpos - i
			votes[off]++
		}
	}
	if len(votes) == 0 {
		return nil
	}
	maxVotes := 0
	for _, v := range votes {
		if v > maxVotes {
			maxVotes = v
		}
	}
	// A single error voids up to k k-mers; offsets falling further behind the
	// leader than the error budget allows cannot carry the optimum.
	budget := int(math.Ceil(opt.ErrorRate*float64(len(query)))) * k
	floor := maxVotes - budget
	if floor < 1 {
		floor = 1
	}
	var out []int
	for off, v := range votes {
		if v >= floor {
			out = append(out, off)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if votes[out[i]] != votes[out[j]] {
			return votes[out[i]] > votes[out[j]]
		}
		return out[i] < out[j]
	})
	const maxCandidates = 8
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

// DP state tags for traceback.
const (
	fromNone byte = iota
	fromMatch
	fromIns // gap in target, consumes query
	fromDel // gap in query, consumes target
	fromStart
)

const negInf = math.MinInt32 / 4

// fitQuery globally aligns query inside window: leading and trailing target
// bases are free, query bases must all be accounted for (aligned or in a
// gap). Classic three-state affine DP; a gap of length g scores
// gap_open + (g-1)*gap_extend because opening transitions charge gap_open
// and in-gap transitions charge gap_extend.
func fitQuery(query, window []byte, opt Options) (Result, bool) {
	m, n := len(query), len(window)

	mat := make([][]int, m+1) // aligned state
	ins := make([][]int, m+1) // gap in target
	del := make([][]int, m+1) // gap in query
	matFrom := make([][]byte, m+1)
	insFrom := make([][]byte, m+1)
	delFrom := make([][]byte, m+1)
	for i := 0; i <= m; i++ {
		mat[i] = make([]int, n+1)
		ins[i] = make([]int, n+1)
		del[i] = make([]int, n+1)
		matFrom[i] = make([]byte, n+1)
		insFrom[i] = make([]byte, n+1)
		delFrom[i] = make([]byte, n+1)
		for j := 0; j <= n; j++ {
			mat[i][j], ins[i][j], del[i][j] = negInf, negInf, negInf
		}
	}
	// Row 0: the alignment may begin after any number of free target bases.
	for j := 0; j <= n; j++ {
		mat[0][j] = 0
		matFrom[0][j] = fromStart
	}

	sub := func(i, j int) int {
		if query[i-1] == window[j-1] {
			return opt.Match
		}
		return opt.Mismatch
	}

	for i := 1; i <= m; i++ {
		for j := 0; j <= n; j++ {
			// Insertion: query base i unaligned (includes query overhang).
			best, from := mat[i-1][j]+opt.GapOpen, fromMatch
			if s := ins[i-1][j] + opt.GapExtend; s > best {
				best, from = s, fromIns
			}
			if s := del[i-1][j] + opt.GapOpen; s > best {
				best, from = s, fromDel
			}
			ins[i][j], insFrom[i][j] = best, from

			if j == 0 {
				continue
			}
			// Aligned: query base i on window base j.
			best, from = mat[i-1][j-1], fromMatch
			if s := ins[i-1][j-1]; s > best {
				best, from = s, fromIns
			}
			if s := del[i-1][j-1]; s > best {
				best, from = s, fromDel
			}
			mat[i][j], matFrom[i][j] = best+sub(i, j), from

			// Deletion: window base j skipped inside the alignment.
			best, from = mat[i][j-1]+opt.GapOpen, fromMatch
			if s := del[i][j-1] + opt.GapExtend; s > best {
				best, from = s, fromDel
			}
			if s := ins[i][j-1] + opt.GapOpen; s > best {
				best, from = s, fromIns
			}
			del[i][j], delFrom[i][j] = best, from
		}
	}

	// Best end: any window column, aligned or insertion state. Trailing
	// deletions never help (non-positive cost) and would only add gap ops.
	endJ, endState, bestScore := -1, fromNone, negInf
	for j := 0; j <= n; j++ {
		if mat[m][j] > bestScore {
			bestScore, endJ, endState = mat[m][j], j, fromMatch
		}
		if ins[m][j] > bestScore {
			bestScore, endJ, endState = ins[m][j], j, fromIns
		}
	}
	if endJ < 0 || bestScore <= negInf {
		return Result{}, false
	}

	ops, start := traceback(matFrom, insFrom, delFrom, m, endJ, endState)
	return Result{Score: bestScore, Ops: ops, Start: start}, true
}

func traceback(matFrom, insFrom, delFrom [][]byte, endI, endJ int, endState byte) (genome.Cigar, int) {
	var rev []genome.CigarOp
	push := func(op byte) {
		if len(rev) > 0 && rev[len(rev)-1].Op == op {
			rev[len(rev)-1].Len++
			return
		}
		rev = append(rev, genome.CigarOp{Len: 1, Op: op})
	}
	i, j, state := endI, endJ, endState
	for i > 0 {
		switch state {
		case fromMatch:
			push('M')
			state = matFrom[i][j]
			i--
			j--
		case fromIns:
			push('I')
			state = insFrom[i][j]
			i--
		case fromDel:
			push('D')
			state = delFrom[i][j]
			j--
		default:
			i = 0
		}
	}
	// Reverse into leftmost-first order.
	ops := make(genome.Cigar, len(rev))
	for k := range rev {
		ops[k] = rev[len(rev)-1-k]
	}
	return ops, j
}
