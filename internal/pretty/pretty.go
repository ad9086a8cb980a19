// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strings"

	"realign-core/realign"
)

// Options control the ASCII rendering.
type Options struct {
	// MaxWidth caps the rendered sequence width; longer haplotypes are
	// truncated with an ellipsis. If <=0, use default (95).
	MaxWidth int

	ExactGlyph    string // default "|"
	MismatchGlyph string // default "*"
}

// DefaultOptions keeps the current look & feel.
var DefaultOptions = Options{
	MaxWidth:      95,
	ExactGlyph:    "|",
	MismatchGlyph: "*",
}

const linePrefix = "# "

// RenderWindow returns a multi-line annotation block for one processed
// window: the reference haplotype, then each alternate with a match track
// where the lengths allow a column-wise comparison.
func RenderWindow(res realign.WindowResult, opt Options) string {
	if opt.MaxWidth <= 0 {
		opt.MaxWidth = DefaultOptions.MaxWidth
	}
	if opt.ExactGlyph == "" {
		opt.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if opt.MismatchGlyph == "" {
		opt.MismatchGlyph = DefaultOptions.MismatchGlyph
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s status=%s k=%d reads=%d realigned=%d\n",
		linePrefix, res.Span.String(), res.Disposition, res.K, len(res.Reads), res.Realigned)

	ref := res.RefHaplotype
	if ref == "" {
		return sb.String()
	}
	fmt.Fprintf(&sb, "%sref  %s\n", linePrefix, clip(ref, opt.MaxWidth))

	n := 0
	for _, h := range res.Haplotypes.Seqs {
		if h == ref {
			continue
		}
		n++
		if len(h) == len(ref) {
			fmt.Fprintf(&sb, "%s     %s\n", linePrefix, clip(matchTrack(ref, h, opt), opt.MaxWidth))
		}
		label := fmt.Sprintf("h%-3d", n)
		if d := len(h) - len(ref); d != 0 {
			fmt.Fprintf(&sb, "%s%s %s (%+d bp)\n", linePrefix, label, clip(h, opt.MaxWidth), d)
		} else {
			fmt.Fprintf(&sb, "%s%s %s\n", linePrefix, label, clip(h, opt.MaxWidth))
		}
	}
	return sb.String()
}

func matchTrack(a, b string, opt Options) string {
	var sb strings.Builder
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			sb.WriteString(opt.ExactGlyph)
		} else {
			sb.WriteString(opt.MismatchGlyph)
		}
	}
	return sb.String()
}

func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
