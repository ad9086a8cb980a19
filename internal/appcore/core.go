// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"realign-core/fasta"
	"realign-core/genome"
	"realign-core/readstsv"
	"realign-core/realign"

	"realign/internal/cliutil"
	"realign/internal/cmdutil"
	"realign/internal/common"
	"realign/internal/output"
	"realign/internal/pipeline"
	"realign/internal/runutil"
	"realign/internal/writers"
	"realign/pkg/api"
)

// Options carries everything the shared runner needs besides the
// realignment parameters themselves.
type Options struct {
	RefFile   string
	ReadsFile string
	Regions   []string // empty = every contig of the reference

	Threads int

	EmitReads bool
	OutDir    string
	OutFormat string // reads artifact follows the window output format
	WithSeq   bool   // include sequences in emitted reads

	Quiet bool
	Log   *zap.Logger
}

// VisitorFunc filters or transforms a window result before it is written.
type VisitorFunc[T any] func(realign.WindowResult) (keep bool, out T, err error)

// WriterFactory abstracts the output stream so binaries can share Run.
type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Artifact names written under OutDir when EmitReads is set; the extension
// follows the window output format.
const (
	ReadsFileName      = "realigned_reads.tsv"
	ReadsJSONLFileName = "realigned_reads.jsonl"
)

// Run loads the inputs, drives the pipeline over every region, and streams
// window results through the writer factory. Exit codes: 0 ok, 2 bad input,
// 3 runtime failure, 130 canceled.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	ropt realign.Options,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	outw := bufio.NewWriter(stdout)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	ref, err := fasta.LoadPath(ctx, o.RefFile)
	if err != nil {
		return fail(stderr, err, 2)
	}
	reads, err := readstsv.Load(o.ReadsFile)
	if err != nil {
		return fail(stderr, err, 2)
	}
	regions, err := ResolveRegions(ref, o.Regions)
	if err != nil {
		return fail(stderr, err, 2)
	}

	r, err := realign.New(ropt, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	readsByContig := SplitReads(reads)
	thr := o.Threads

	inCh, writeErr := wf.Start(outw, bufferFor(thr))
	seen := runutil.NewLRUSet[runutil.WindowKey](0)

	var perr error
	// Keyed by read name so a read seen from two overlapping regions is
	// emitted once, keeping the moved version.
	realigned := make(map[string]api.ReadV1)
	original := make(map[string]genome.Read, len(reads))
	for _, rd := range reads {
		original[rd.Name] = rd
	}

	for _, region := range regions {
		refSeq, err := ref.Slice(region)
		if err != nil {
			perr = err
			break
		}
		regionReads := Overlapping(readsByContig[region.Contig], region)
		if len(regionReads) == 0 {
			cmdutil.Warnf(stderr, o.Quiet, "no reads overlap %s", region.String())
		}

		_, merged, err := cmdutil.RunStream[T](
			ctx,
			pipeline.Config{Threads: thr},
			r, region, refSeq, regionReads,
			func(res realign.WindowResult) (bool, T, error) {
				var zero T
				if seen.Add(runutil.KeyOf(res)) {
					return false, zero, nil // window already emitted via an overlapping region
				}
				return visit(res)
			},
			func(v T) error {
				select {
				case inCh <- v:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		)
		if err != nil {
			perr = err
			break
		}
		if o.EmitReads {
			for _, rd := range merged {
				orig, ok := original[rd.Name]
				moved := !ok || orig.Pos != rd.Pos || orig.Cigar.String() != rd.Cigar.String()
				if prev, dup := realigned[rd.Name]; dup && prev.Realigned && !moved {
					continue
				}
				realigned[rd.Name] = output.ToAPIRead(rd, o.WithSeq, moved)
			}
		}
	}

	close(inCh)
	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}

	if o.EmitReads {
		rows := make([]api.ReadV1, 0, len(realigned))
		for _, v := range realigned {
			rows = append(rows, v)
		}
		if err := writeReadsArtifact(o.OutDir, o.OutFormat, rows); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		log.Debug("wrote realigned reads",
			zap.String("dir", o.OutDir), zap.Int("reads", len(rows)))
	}
	return 0
}

// fail maps an error to an exit code; cancellation always exits 130 no matter
// which stage it surfaced from.
func fail(stderr io.Writer, err error, code int) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	fmt.Fprintln(stderr, err)
	return code
}

func bufferFor(threads int) int {
	if threads < 1 {
		return 64
	}
	return threads * 4
}

// ResolveRegions parses the requested regions, or defaults to every contig,
// and clamps whole-contig requests to the contig length.
func ResolveRegions(ref *fasta.Reference, specs []string) ([]genome.Range, error) {
	if len(specs) == 0 {
		var out []genome.Range
		for _, c := range ref.Contigs() {
			seq, _ := ref.Sequence(c)
			out = append(out, genome.MakeRange(c, 0, len(seq)))
		}
		return out, nil
	}
	var out []genome.Range
	for _, s := range specs {
		rg, err := cliutil.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		seq, ok := ref.Sequence(rg.Contig)
		if !ok {
			return nil, fmt.Errorf("%w: %q", genome.ErrUnknownContig, rg.Contig)
		}
		if rg.End < 0 || rg.End > len(seq) {
			rg.End = len(seq)
		}
		if rg.Start >= rg.End {
			return nil, fmt.Errorf("region %s is empty on this reference", s)
		}
		out = append(out, rg)
	}
	return out, nil
}

func SplitReads(reads []genome.Read) map[string][]genome.Read {
	m := make(map[string][]genome.Read)
	for _, rd := range reads {
		if rd.Unmapped {
			continue
		}
		m[rd.Contig] = append(m[rd.Contig], rd)
	}
	return m
}

func Overlapping(reads []genome.Read, region genome.Range) []genome.Read {
	var out []genome.Read
	for _, rd := range reads {
		if len(rd.Cigar) == 0 {
			continue
		}
		if genome.ReadRange(rd).Overlaps(region) {
			out = append(out, rd)
		}
	}
	return out
}

func writeReadsArtifact(dir, format string, rows []api.ReadV1) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := ReadsFileName
	if format == "jsonl" {
		name = ReadsJSONLFileName
	}
	fh, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if format == "jsonl" {
		common.SortAPIReads(rows)
		ch, done := writers.StartReadJSONLWriter(bw, 64)
		for _, v := range rows {
			ch <- v
		}
		close(ch)
		if err := <-done; err != nil {
			_ = fh.Close()
			return err
		}
	} else if err := writers.WriteReadsTSV(bw, rows, true); err != nil {
		_ = fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
