// internal/cmdutil/stream.go
package cmdutil

import (
	"context"

	"realign-core/genome"
	"realign-core/realign"

	"realign/internal/pipeline"
)

// RunStream runs the window pipeline over one region, applies a visitor, and
// streams kept results via send. It returns the number of kept outputs, the
// merged read set, and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	r *realign.Realigner,
	region genome.Range,
	ref []byte,
	reads []genome.Read,
	visit func(realign.WindowResult) (bool, T, error),
	send func(T) error,
) (int, []genome.Read, error) {
	total := 0
	out, err := pipeline.ForEachWindow(ctx, cfg, r, region, ref, reads, func(res realign.WindowResult) error {
		keep, v, vErr := visit(res)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(v); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, out, err
}
