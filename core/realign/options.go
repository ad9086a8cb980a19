// core/realign/options.go
package realign

import (
	"fmt"

	"realign-core/align"
	"realign-core/dbg"
	"realign-core/window"
)

// Diagnostics toggles per-window diagnostic emission.
type Diagnostics struct {
	Enabled            bool
	OutputRoot         string
	EmitRealignedReads bool
}

// Options groups the four independently validated sub-configurations. It is
// loaded once per run and shared read-only by every component; there is no
// mutable global.
type Options struct {
	Window window.Options
	Graph  dbg.Options
	Align  align.Options
	Diag   Diagnostics

	// MinScoreGain is the margin by which a haplotype alignment must beat
	// the read's reference alignment before the alignment is replaced.
	MinScoreGain int

	// Pad widens each window by this many reference bases on both sides
	// before assembly, so reads overhanging the window edges still thread
	// cleanly through the graph. The effective pad is never less than
	// Graph.MaxK: flanking reference k-mers must clear the divergent run for
	// alternate branches to attach.
	Pad int
}

// Validate checks every sub-configuration once, before any window is
// processed. Scoring violations are rejected here, not per window.
func (o Options) Validate() error {
	if err := o.Window.Validate(); err != nil {
		return err
	}
	if err := o.Graph.Validate(); err != nil {
		return err
	}
	if err := o.Align.Validate(); err != nil {
		return err
	}
	if o.MinScoreGain < 0 {
		return fmt.Errorf("realign: min_score_gain must be >= 0, got %d", o.MinScoreGain)
	}
	if o.Pad < 0 {
		return fmt.Errorf("realign: pad must be >= 0, got %d", o.Pad)
	}
	if o.Diag.Enabled && o.Diag.OutputRoot == "" {
		return fmt.Errorf("realign: diagnostics enabled but output_root empty")
	}
	return nil
}

// DefaultOptions returns a workable starting configuration.
func DefaultOptions() Options {
	return Options{
		Window: window.Options{
			MinSupportingReads: 2,
			MaxSupportingReads: 300,
			MinMapQ:            20,
			MinBaseQual:        20,
			MinWindowDistance:  80,
			MaxWindowSize:      1000,
		},
		Graph: dbg.Options{
			MinK:          10,
			MaxK:          100,
			StepK:         1,
			MinMapQ:       14,
			MinBaseQual:   15,
			MinEdgeWeight: 2,
			MaxNumPaths:   256,
		},
		Align: align.Options{
			Match:     4,
			Mismatch:  -2,
			GapOpen:   -6,
			GapExtend: -1,
			K:         23,
			ErrorRate: 0.01,
		},
		MinScoreGain: 0,
		Pad:          20,
	}
}
