package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble dispatches independent runs with consecutive seeds across
// goroutines. The plant and schedule are shared read-only; every run gets a
// fresh Simulator, fresh controllers and a fresh random source, so no
// locking is needed. This is the entry point an external optimizer uses to
// evaluate a population of candidates.
type Ensemble struct {
	plant     Dynamics
	sched     Schedule
	numRuns   int
	seedStart int64
}

func NewEnsemble(plant Dynamics, sched Schedule, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{plant: plant, sched: sched, numRuns: numRuns, seedStart: seedStart}
}

// Run executes the ensemble. The context is checked before each run starts;
// an individual run is never interrupted once in flight.
func (e *Ensemble) Run(ctx context.Context, cp ControlParams, p Params) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pCopy := p
			pCopy.Seed = e.seedStart + int64(i)

			res, err := New(e.plant, e.sched).Run(cp, pCopy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
