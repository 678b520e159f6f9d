package simulation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SweepResult aggregates a batch of independent runs of the same config.
type SweepResult struct {
	Runs             int     `json:"runs"`
	Bankruptcies     int     `json:"bankruptcies"`
	TargetHits       int     `json:"target_hits"`
	MinFinalBalance  float64 `json:"min_final_balance"`
	MeanFinalBalance float64 `json:"mean_final_balance"`
	MaxFinalBalance  float64 `json:"max_final_balance"`
}

// RunSweep executes runs independent simulations in parallel. Runs are
// sequential internally but independent of each other, so they fan out
// across goroutines. A seeded sweep stays deterministic: run i uses
// seed + i.
func RunSweep(ctx context.Context, cfg Config, runs int) (SweepResult, error) {
	if runs <= 0 {
		return SweepResult{}, fmt.Errorf("%w: runs must be positive", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return SweepResult{}, err
	}

	results := make([]Result, runs)
	group, ctx := errgroup.WithContext(ctx)

	for i := 0; i < runs; i++ {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			runCfg := cfg
			if cfg.Seed != nil {
				seed := *cfg.Seed + int64(i)
				runCfg.Seed = &seed
			}

			result, err := Run(runCfg)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return SweepResult{}, err
	}

	sweep := SweepResult{Runs: runs}
	var total float64
	for i, result := range results {
		final := result.FinalBalance
		total += final
		if i == 0 || final < sweep.MinFinalBalance {
			sweep.MinFinalBalance = final
		}
		if i == 0 || final > sweep.MaxFinalBalance {
			sweep.MaxFinalBalance = final
		}
		if result.Terminal() == OutcomeBankrupt {
			sweep.Bankruptcies++
		}
		if result.TargetReached(cfg) {
			sweep.TargetHits++
		}
	}
	sweep.MeanFinalBalance = total / float64(runs)

	return sweep, nil
}
