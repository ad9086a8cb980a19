// core/realign/realign.go
package realign

import (
	"fmt"

	"go.uber.org/zap"

	"realign-core/align"
	"realign-core/dbg"
	"realign-core/genome"
	"realign-core/haplotype"
	"realign-core/window"
)

// Status is a per-window pipeline state.
type Status string

const (
	StatusSelected   Status = "selected"
	StatusGraphBuilt Status = "graph_built"
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
	StatusAligned    Status = "aligned"
)

// WindowResult is the outcome of one window's reassembly attempt.
// Disposition is StatusAligned when the haplotype pipeline ran, or
// StatusUnresolved when the graph could not be resolved by max_k and the
// reads keep their original alignments.
type WindowResult struct {
	Span         genome.Range
	Disposition  Status
	K            int // k the graph resolved at; 0 when unresolved
	Haplotypes   haplotype.Set
	RefHaplotype string        // the reference's own path through the graph
	Reads        []genome.Read // window reads after realignment
	Realigned    int           // reads whose alignment was replaced

	// Notes holds per-read score gains keyed by read name; nil unless
	// diagnostics are enabled.
	Notes genome.Annotations
}

// Realigner drives the per-window pipeline: build graph, enumerate
// haplotypes, align haplotypes to the reference and reads to haplotypes,
// and keep whichever alignment explains each read best.
type Realigner struct {
	opt Options
	log *zap.Logger
}

// New validates opt once and returns a Realigner. A nil logger disables
// logging.
func New(opt Options, log *zap.Logger) (*Realigner, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Realigner{opt: opt, log: log}, nil
}

// Options returns the validated configuration the realigner runs with.
func (r *Realigner) Options() Options { return r.opt }

// SelectWindows scans region and returns the candidate windows. ref must
// cover region with ref[0] at region.Start.
func (r *Realigner) SelectWindows(region genome.Range, ref []byte, reads []genome.Read) ([]window.Window, error) {
	if len(ref) < region.Len() {
		return nil, fmt.Errorf("realign: reference holds %d bases, region %v needs %d", len(ref), region, region.Len())
	}
	wins := window.Select(region, ref, reads, r.opt.Window)
	r.log.Debug("window selection done",
		zap.String("region", region.String()),
		zap.Int("windows", len(wins)))
	return wins, nil
}

// ProcessWindow runs one window through the state machine
// SELECTED -> GRAPH_BUILT -> (RESOLVED | UNRESOLVED) -> ALIGNED.
// UNRESOLVED short-circuits with no alignment changes. region/ref follow the
// SelectWindows convention; reads are the candidates overlapping region.
func (r *Realigner) ProcessWindow(win window.Window, region genome.Range, ref []byte, reads []genome.Read) WindowResult {
	span := r.padSpan(win.Span, region)
	winRef := ref[span.Start-region.Start : span.End-region.Start]
	winReads := r.windowReads(span, reads)

	res := WindowResult{Span: span, Disposition: StatusSelected}

	g, err := dbg.Build(winRef, winReads, r.opt.Graph)
	if err != nil {
		// Expected for noisy or low-complexity windows: fall back to the
		// original alignments.
		r.log.Debug("window unresolved", zap.String("span", span.String()))
		res.Disposition = StatusUnresolved
		res.Reads = winReads
		return res
	}
	res.Disposition = StatusGraphBuilt
	res.K = g.K()

	seqs := haplotype.Enumerate(g, r.opt.Graph.MaxNumPaths)
	res.Haplotypes = haplotype.Set{Span: span, Seqs: seqs}
	res.Disposition = StatusResolved

	refHap := g.RefHaplotype()
	res.RefHaplotype = refHap
	hapToRef := make([]align.Result, len(seqs))
	for i, h := range seqs {
		if h == refHap {
			hapToRef[i] = align.Result{
				Score: len(refHap) * r.opt.Align.Match,
				Ops:   genome.Cigar{{Len: len(refHap), Op: 'M'}},
			}
			continue
		}
		ar, err := align.Align([]byte(h), winRef, r.opt.Align)
		if err != nil {
			r.log.Warn("haplotype-to-reference alignment failed",
				zap.String("span", span.String()), zap.Error(err))
			hapToRef[i] = align.Result{Score: -1 << 30}
			continue
		}
		hapToRef[i] = ar
	}

	res.Reads = make([]genome.Read, 0, len(winReads))
	for _, rd := range winReads {
		res.Reads = append(res.Reads, r.realignRead(rd, span, winRef, seqs, refHap, hapToRef, &res))
	}
	res.Disposition = StatusAligned
	return res
}

// realignRead aligns one read against every haplotype and swaps its
// alignment when the best haplotype beats the reference by the configured
// margin. Every read is realigned against the haplotype set, including those
// that contributed no k-mers to the graph.
func (r *Realigner) realignRead(rd genome.Read, span genome.Range, winRef []byte,
	seqs []string, refHap string, hapToRef []align.Result, res *WindowResult) genome.Read {

	if len(rd.Cigar) == 0 && !rd.Unmapped {
		// Malformed cigar upstream: excluded from realignment entirely.
		r.log.Warn("read excluded from realignment: no parseable cigar",
			zap.String("read", rd.Name))
		return rd
	}

	orig, err := align.Align(rd.Seq, winRef, r.opt.Align)
	if err != nil {
		return rd
	}

	bestIdx := -1
	var best align.Result
	for i, h := range seqs {
		if h == refHap {
			continue
		}
		ar, err := align.Align(rd.Seq, []byte(h), r.opt.Align)
		if err != nil {
			continue
		}
		if bestIdx < 0 || ar.Better(best) {
			best, bestIdx = ar, i
		}
	}
	if bestIdx < 0 || best.Score <= orig.Score+r.opt.MinScoreGain {
		return rd
	}

	pos, cigar := translateAlignment(best, hapToRef[bestIdx], span.Start)
	if len(cigar) == 0 || cigar.ReadLength() != len(rd.Seq) {
		// Translation lost read bases; keep the original alignment.
		r.log.Warn("dropping inconsistent translated alignment",
			zap.String("read", rd.Name), zap.String("cigar", cigar.String()))
		return rd
	}

	out := rd
	out.Pos = pos
	out.Cigar = cigar
	res.Realigned++
	if r.opt.Diag.Enabled {
		if res.Notes == nil {
			res.Notes = genome.Annotations{}
		}
		res.Notes.Set(rd.Name, genome.NumberOf(float64(best.Score-orig.Score)))
	}
	return out
}

// Run drives the full pipeline sequentially over one region and returns the
// per-window results plus every input read, realigned where a haplotype won.
func (r *Realigner) Run(region genome.Range, ref []byte, reads []genome.Read) ([]WindowResult, []genome.Read, error) {
	wins, err := r.SelectWindows(region, ref, reads)
	if err != nil {
		return nil, nil, err
	}
	out := make([]genome.Read, len(reads))
	copy(out, reads)
	byName := make(map[string]int, len(reads))
	for i, rd := range reads {
		byName[readKey(rd)] = i
	}

	results := make([]WindowResult, 0, len(wins))
	for _, w := range wins {
		wr := r.ProcessWindow(w, region, ref, reads)
		MergeReads(out, byName, wr.Reads)
		results = append(results, wr)
	}
	return results, out, nil
}

// MergeReads folds realigned window reads back into the full read set,
// matching by read identity. Used by Run and by concurrent drivers merging
// per-window results.
func MergeReads(all []genome.Read, byKey map[string]int, updated []genome.Read) {
	for _, rd := range updated {
		if i, ok := byKey[readKey(rd)]; ok {
			all[i] = rd
		}
	}
}

// ReadIndex builds the identity index MergeReads expects.
func ReadIndex(reads []genome.Read) map[string]int {
	byKey := make(map[string]int, len(reads))
	for i, rd := range reads {
		byKey[readKey(rd)] = i
	}
	return byKey
}

// readKey identifies a read across realignment. Names are unique per the
// input contract (readstsv rejects duplicates), so the name alone suffices
// even after the position and cigar change.
func readKey(rd genome.Read) string { return rd.Name }

func (r *Realigner) padSpan(span, region genome.Range) genome.Range {
	// Alternate branches attach to the graph through reference k-mers lying
	// wholly outside the divergent run, so the window must reach at least
	// max_k bases past the selected anchors or the first divergence can sit
	// inside every flanking k-mer and the branch never joins the source.
	pad := r.opt.Pad
	if pad < r.opt.Graph.MaxK {
		pad = r.opt.Graph.MaxK
	}
	s := span
	s.Start -= pad
	s.End += pad
	if s.Start < region.Start {
		s.Start = region.Start
	}
	if s.End > region.End {
		s.End = region.End
	}
	return s
}

// windowReads picks the reads whose alignment span overlaps the window.
func (r *Realigner) windowReads(span genome.Range, reads []genome.Read) []genome.Read {
	var out []genome.Read
	for _, rd := range reads {
		if rd.Unmapped || len(rd.Cigar) == 0 {
			continue
		}
		if genome.ReadRange(rd).Overlaps(span) {
			out = append(out, rd)
		}
	}
	return out
}
