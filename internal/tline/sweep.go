package tline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sweep simulates every parameter set, running up to workers simulations at
// once (GOMAXPROCS when workers < 1). Results keep the order of sets. The
// first failure cancels the sets that have not started yet.
func Sweep(ctx context.Context, sets []Params, workers int) ([]*Field, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Field, len(sets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range sets {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := sets[i].Simulate()
			if err != nil {
				return fmt.Errorf("set %d: %w", i, err)
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
