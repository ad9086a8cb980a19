// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"realign-core/genome"
	"realign-core/realign"
)

// Config controls the window-processing pipeline.
type Config struct {
	Threads int // worker goroutines; <1 means one per CPU
}

// ForEachWindow selects candidate windows over region and processes them
// concurrently. Results are delivered to visit in genomic order regardless of
// worker scheduling, and the returned read set carries every replacement
// alignment merged back in. ref follows the usual convention: ref[0] sits at
// region.Start.
func ForEachWindow(
	ctx context.Context,
	cfg Config,
	r *realign.Realigner,
	region genome.Range,
	ref []byte,
	reads []genome.Read,
	visit func(realign.WindowResult) error,
) ([]genome.Read, error) {
	wins, err := r.SelectWindows(region, ref, reads)
	if err != nil {
		return nil, err
	}

	thr := cfg.Threads
	if thr < 1 {
		thr = runtime.NumCPU()
	}

	// Windows are independent; each worker writes only its own slot.
	results := make([]realign.WindowResult, len(wins))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(thr)
	for i, w := range wins {
		i, w := i, w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.ProcessWindow(w, region, ref, reads)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]genome.Read, len(reads))
	copy(out, reads)
	byKey := realign.ReadIndex(out)
	for _, res := range results {
		realign.MergeReads(out, byKey, res.Reads)
		if err := visit(res); err != nil {
			return nil, err
		}
	}
	return out, nil
}
