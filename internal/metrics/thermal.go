package metrics

import (
	"math"

	"github.com/san-kum/fuelsim/internal/sim"
)

// ThermalDeviation averages the absolute distance between stack temperature
// and the temperature setpoint.
type ThermalDeviation struct {
	name     string
	setpoint float64
	sum      float64
	samples  int
}

func NewThermalDeviation(setpoint float64) *ThermalDeviation {
	return &ThermalDeviation{name: "thermal_deviation", setpoint: setpoint}
}

func (m *ThermalDeviation) Name() string { return m.name }

func (m *ThermalDeviation) Observe(s sim.State, u sim.Control, t float64) {
	m.sum += math.Abs(s.Temperature - m.setpoint)
	m.samples++
}

func (m *ThermalDeviation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *ThermalDeviation) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakPower tracks the maximum instantaneous power over the run.
type PeakPower struct {
	name string
	max  float64
}

func NewPeakPower() *PeakPower {
	return &PeakPower{name: "peak_power"}
}

func (m *PeakPower) Name() string { return m.name }

func (m *PeakPower) Observe(s sim.State, u sim.Control, t float64) {
	if s.Power > m.max {
		m.max = s.Power
	}
}

func (m *PeakPower) Value() float64 { return m.max }

func (m *PeakPower) Reset() { m.max = 0 }
