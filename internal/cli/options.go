// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"realign/internal/cliutil"
	"realign/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	RefFile    string
	ReadsFile  string
	Regions    []string
	ConfigFile string

	// Parameter overrides; -1 means "keep the configured value".
	MinScoreGain int
	Pad          int
	MinK         int
	MaxK         int
	StepK        int
	MaxPaths     int

	// Performance
	Threads int

	// Output
	Output        string // text | json | jsonl
	Sort          bool
	Header        bool // true unless --no-header
	Pretty        bool
	Haplotypes    bool // include haplotype sequences in window output
	OnlyRealigned bool
	EmitReads     bool
	OutDir        string

	// Misc
	Quiet   bool
	Verbose bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: local re-assembly and read realignment

Version: %s

Usage: %s [flags] [region ...]

Regions are "contig" or "contig:start-end" (0-based, half-open); with no
region every contig of the reference is processed.

`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.RefFile, "reference", "", "reference FASTA (.gz ok, '-' for stdin) [*]")
	fs.StringVar(&opt.ReadsFile, "reads", "", "aligned reads TSV [*]")
	var regions stringSlice
	fs.Var(&regions, "region", "region to process (repeatable)")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML parameter file")

	// Parameter overrides
	fs.IntVar(&opt.MinScoreGain, "min-score-gain", -1, "score margin a haplotype must win by (-1 = configured) [-1]")
	fs.IntVar(&opt.Pad, "pad", -1, "window padding in bases (-1 = configured) [-1]")
	fs.IntVar(&opt.MinK, "min-k", -1, "initial assembly k-mer size (-1 = configured) [-1]")
	fs.IntVar(&opt.MaxK, "max-k", -1, "maximum assembly k-mer size (-1 = configured) [-1]")
	fs.IntVar(&opt.StepK, "step-k", -1, "k-mer escalation step (-1 = configured) [-1]")
	fs.IntVar(&opt.MaxPaths, "max-paths", -1, "haplotype enumeration cap (-1 = configured) [-1]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort windows by coordinate for determinism [false]")
	fs.BoolVar(&opt.Pretty, "pretty", false, "pretty haplotype block under each text row [false]")
	fs.BoolVar(&opt.Haplotypes, "haplotypes", false, "include haplotype sequences in output [false]")
	fs.BoolVar(&opt.OnlyRealigned, "only-realigned", false, "emit only windows where a read moved [false]")
	fs.BoolVar(&opt.EmitReads, "emit-reads", false, "write realigned reads under --out-dir [false]")
	fs.StringVar(&opt.OutDir, "out-dir", "", "directory for per-run artifacts")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")

	// Misc
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug-level logging [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Regions = regions
	opt.Header = !noHeader

	pos, err := cliutil.ExpandPositionals(fs.Args())
	if err != nil {
		return opt, err
	}
	opt.Regions = append(opt.Regions, pos...)

	// Validation
	if opt.RefFile == "" {
		return opt, errors.New("--reference is required")
	}
	if opt.ReadsFile == "" {
		return opt, errors.New("--reads is required")
	}
	for _, r := range opt.Regions {
		if _, err := cliutil.ParseRegion(r); err != nil {
			return opt, err
		}
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be >= 0")
	}
	if opt.Output != "text" && opt.Output != "json" && opt.Output != "jsonl" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.EmitReads && opt.OutDir == "" {
		return opt, errors.New("--emit-reads requires --out-dir")
	}
	if opt.Pretty && opt.Output != "text" {
		return opt, errors.New("--pretty only applies to text output")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
