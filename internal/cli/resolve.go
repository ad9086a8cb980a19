// internal/cli/resolve.go
package cli

import (
	"realign-core/realign"

	"realign/internal/config"
)

// ResolveRealignOptions layers defaults, the optional config file, and CLI
// overrides (flag value -1 keeps whatever the lower layer set).
func ResolveRealignOptions(opts Options) (realign.Options, error) {
	ropt := realign.DefaultOptions()
	if opts.ConfigFile != "" {
		f, err := config.Load(opts.ConfigFile)
		if err != nil {
			return ropt, err
		}
		ropt = f.Apply(ropt)
	}
	override(&ropt.MinScoreGain, opts.MinScoreGain)
	override(&ropt.Pad, opts.Pad)
	override(&ropt.Graph.MinK, opts.MinK)
	override(&ropt.Graph.MaxK, opts.MaxK)
	override(&ropt.Graph.StepK, opts.StepK)
	override(&ropt.Graph.MaxNumPaths, opts.MaxPaths)
	if opts.EmitReads {
		ropt.Diag = realign.Diagnostics{Enabled: true, OutputRoot: opts.OutDir, EmitRealignedReads: true}
	}
	return ropt, nil
}

func override(dst *int, v int) {
	if v >= 0 {
		*dst = v
	}
}
