// internal/windowsapp/app.go
//
// Package windowsapp is the selection-only binary: it scans read evidence and
// reports candidate windows without assembling or realigning anything. Useful
// for tuning selection thresholds before paying for the full pipeline.
package windowsapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"realign-core/fasta"
	"realign-core/readstsv"
	"realign-core/realign"

	"realign/internal/appcore"
	"realign/internal/cli"
	"realign/internal/version"
	"realign/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("realign-windows")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			_ = outw.Flush()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "realign-windows version %s\n", version.Version)
		_ = outw.Flush()
		return 0
	}

	ropt, err := cli.ResolveRealignOptions(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	r, err := realign.New(ropt, nil)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	ref, err := fasta.LoadPath(ctx, opts.RefFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	reads, err := readstsv.Load(opts.ReadsFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	regions, err := appcore.ResolveRegions(ref, opts.Regions)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	byContig := appcore.SplitReads(reads)
	inCh, writeErr := writers.StartWindowWriter(outw, opts.Output, opts.Sort, opts.Header, false, false, 64)

	var perr error
scan:
	for _, region := range regions {
		if perr = ctx.Err(); perr != nil {
			break
		}
		refSeq, err := ref.Slice(region)
		if err != nil {
			perr = err
			break
		}
		regionReads := appcore.Overlapping(byContig[region.Contig], region)
		wins, err := r.SelectWindows(region, refSeq, regionReads)
		if err != nil {
			perr = err
			break
		}
		for _, win := range wins {
			res := realign.WindowResult{
				Span:        win.Span,
				Disposition: realign.StatusSelected,
				Reads:       appcore.Overlapping(regionReads, win.Span),
			}
			select {
			case inCh <- res:
			case <-ctx.Done():
				perr = ctx.Err()
				break scan
			}
		}
	}

	close(inCh)
	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
