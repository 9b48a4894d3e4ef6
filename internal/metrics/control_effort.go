// Package metrics provides optional streaming metrics that observe every
// simulation step, complementing the aggregate performance summary.
package metrics

import (
	"math"

	"github.com/san-kum/fuelsim/internal/sim"
)

// ControlEffort averages the per-step actuator movement: how hard the
// controllers are working. High effort with a good summary usually means
// gains worth retuning.
type ControlEffort struct {
	name    string
	prev    sim.Control
	started bool
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(s sim.State, u sim.Control, t float64) {
	if c.started {
		c.sum += math.Abs(u.FuelFlow-c.prev.FuelFlow) + math.Abs(u.Cooling-c.prev.Cooling)
		c.samples++
	}
	c.prev = u
	c.started = true
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.prev = sim.Control{}
	c.started = false
	c.sum = 0
	c.samples = 0
}
