package sim

import (
	"math"
	"math/rand"
)

// State is the physical state of the stack at a single point in time.
// The orchestrator owns one instance and overwrites it each step; history
// lives only in the output series.
type State struct {
	Voltage     float64
	Current     float64
	Power       float64
	Temperature float64
	Pressure    float64
	FuelFlow    float64
	AirFlow     float64
	Efficiency  float64
}

func (s State) IsValid() bool {
	for _, v := range []float64{
		s.Voltage, s.Current, s.Power, s.Temperature,
		s.Pressure, s.FuelFlow, s.AirFlow, s.Efficiency,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Control holds the actuator commands issued during one step, after clamping.
type Control struct {
	FuelFlow float64
	Cooling  float64
}

// Disturbance is the load/temperature/pressure perturbation applied at one step.
type Disturbance struct {
	Load        float64
	Temperature float64
	Pressure    float64
}

// Dynamics advances the physical state one timestep.
type Dynamics interface {
	Advance(s State, dt float64, d Disturbance) State
	Efficiency(s State, d Disturbance) float64
	InitialState(ic InitialConditions) State
}

// Schedule produces the disturbance for a given simulation time. The rng is
// the run-local random source, so seeded runs replay identically.
type Schedule interface {
	At(t float64, rng *rand.Rand) Disturbance
}

// Metric observes every step and reduces to a single value after the run.
type Metric interface {
	Name() string
	Observe(s State, u Control, t float64)
	Value() float64
	Reset()
}

// Observer receives every step as it happens. This is the extension point
// for live views and for callers that want a cooperative cancellation
// checkpoint; the simulator itself never stops mid-run.
type Observer interface {
	OnStep(s State, u Control, t float64)
}

// Gains are the tuning constants for one PID loop.
type Gains struct {
	Kp float64
	Ki float64
	Kd float64
}

// ControlParams configures both feedback loops for a run.
type ControlParams struct {
	VoltageSetpoint     float64
	TemperatureSetpoint float64
	VoltageLoop         Gains
	CoolingLoop         Gains

	// IntegralLimit, when positive, clamps each loop's integral term to
	// ±IntegralLimit. Off by default: the unbounded integral is a known
	// limitation that existing response curves depend on.
	IntegralLimit float64
}

// InitialConditions seed the state at t=0.
type InitialConditions struct {
	Voltage     float64
	Current     float64
	Temperature float64
	Pressure    float64
}

// Params configures a single run.
type Params struct {
	Duration float64
	TimeStep float64
	Init     InitialConditions

	// Seed drives the stochastic pressure channel. Zero selects system
	// entropy; any other value makes the run reproducible.
	Seed int64
}

// Series holds the parallel per-step outputs of a run. All slices share
// length floor(Duration/TimeStep).
type Series struct {
	Time        []float64
	Voltage     []float64
	Current     []float64
	Power       []float64
	Temperature []float64
	Pressure    []float64
	Efficiency  []float64
}

// Summary is the aggregate read by optimizers as a fitness signal.
type Summary struct {
	AveragePower      float64
	AverageEfficiency float64
	StabilityIndex    float64
	ResponseTime      float64
}

// Result is immutable once returned. A returned Result is always complete;
// partial runs are never handed back.
type Result struct {
	Series   Series
	Controls []Control
	Summary  Summary
	Metrics  map[string]float64
}
