package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/NamanBalaji/swarmsim/internal/config"
)

// RunBatch plays runs independent simulations seeded cfg.Seed, cfg.Seed+1, ...
// with at most cfg.Parallel in flight. onDone, if set, is called with every
// finished result and may be called concurrently. The first error cancels
// the remaining runs.
func RunBatch(ctx context.Context, cfg *config.Config, runs int, onDone func(*Result) error) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)

	results := make([]*Result, runs)
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			eng, err := New(cfg, cfg.Seed+int64(i))
			if err != nil {
				return err
			}

			res, err := eng.Run(ctx)
			if err != nil {
				return err
			}

			results[i] = res
			if onDone != nil {
				return onDone(res)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
