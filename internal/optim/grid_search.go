// Package optim provides a small grid search over controller gains. It
// stands in for the external optimizer: it only supplies control parameters
// and reads the performance summary back as a fitness signal.
package optim

import (
	"context"

	"github.com/san-kum/fuelsim/internal/sim"
)

// Objective extracts the fitness value to maximize from a summary.
type Objective func(sim.Summary) float64

// GridSearch exhaustively evaluates gain combinations for the voltage loop.
type GridSearch struct {
	Kp []float64
	Ki []float64
	Kd []float64
}

// Best runs one simulation per gain combination and returns the gains with
// the highest objective. Runs share nothing, so they are dispatched through
// an Ensemble-style fan-out by the caller when parallelism matters; here
// they stay sequential to keep the search deterministic and debuggable.
func (g *GridSearch) Best(ctx context.Context, plant sim.Dynamics, sched sim.Schedule, cp sim.ControlParams, p sim.Params, objective Objective) (sim.Gains, float64, error) {
	best := sim.Gains{}
	bestScore := 0.0
	first := true

	for _, kp := range g.Kp {
		for _, ki := range g.Ki {
			for _, kd := range g.Kd {
				if err := ctx.Err(); err != nil {
					return best, bestScore, err
				}

				candidate := cp
				candidate.VoltageLoop = sim.Gains{Kp: kp, Ki: ki, Kd: kd}

				res, err := sim.New(plant, sched).Run(candidate, p)
				if err != nil {
					return best, bestScore, err
				}

				score := objective(res.Summary)
				if first || score > bestScore {
					best = candidate.VoltageLoop
					bestScore = score
					first = false
				}
			}
		}
	}

	return best, bestScore, nil
}
