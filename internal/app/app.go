// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"realign-core/realign"

	"realign/internal/appcore"
	"realign/internal/cli"
	"realign/internal/logutil"
	"realign/internal/version"
	"realign/internal/visitors"
	"realign/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("realign")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "realign version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	ropt, err := cli.ResolveRealignOptions(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := logutil.Nop()
	if !opts.Quiet {
		log, err = logutil.New(opts.Verbose)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = log.Sync() }()
	}

	coreOpts := appcore.Options{
		RefFile: opts.RefFile, ReadsFile: opts.ReadsFile, Regions: opts.Regions,
		Threads:   opts.Threads,
		EmitReads: opts.EmitReads, OutDir: opts.OutDir, OutFormat: opts.Output, WithSeq: opts.Haplotypes,
		Quiet: opts.Quiet, Log: log,
	}
	visit := visitors.PassThrough{}.Visit
	if opts.OnlyRealigned {
		visit = visitors.OnlyRealigned{}.Visit
	}
	writer := appcore.NewWindowWriterFactory(opts.Output, opts.Sort, opts.Header, opts.Pretty, opts.Haplotypes)
	return appcore.Run[realign.WindowResult](parent, stdout, stderr, coreOpts, ropt, visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
