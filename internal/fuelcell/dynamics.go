package fuelcell

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fuelsim/internal/sim"
)

var (
	// ErrUnknownChemistry indicates a chemistry name with no table entry.
	ErrUnknownChemistry = errors.New("fuelcell: unknown chemistry")

	// ErrInvalidConfig indicates a static configuration value out of range.
	ErrInvalidConfig = errors.New("fuelcell: invalid configuration")
)

const (
	thermalTimeConstant = 60.0 // seconds
	idealFlowRatio      = 2.0  // air:fuel stoichiometry
	minVoltage          = 0.1
	minTempFactor       = 0.5
	minFlowFactor       = 0.7

	activationCoeff    = 0.1
	ohmicCoeff         = 0.05
	concentrationCoeff = 0.02
	concentrationKnee  = 500.0 // current density above which mass transport bites
)

// Config is the immutable static configuration of one stack.
type Config struct {
	Chemistry            Chemistry
	ActiveArea           float64 // cm²
	OperatingTemperature float64 // °C
	OperatingPressure    float64 // atm
	FuelFlowRate         float64
	AirFlowRate          float64
}

// Stack advances the physical state of a fuel cell stack one timestep at a
// time: first-order thermal relaxation, lag-free pressure, and a simplified
// polarization curve with activation, ohmic and concentration losses.
type Stack struct {
	cfg  Config
	data chemistryData
}

// New validates the configuration once; anything implausible after this
// point is clamped during the run, never raised.
func New(cfg Config) (*Stack, error) {
	if !cfg.Chemistry.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChemistry, cfg.Chemistry)
	}
	if cfg.ActiveArea <= 0 {
		return nil, fmt.Errorf("%w: active area must be positive, got %v", ErrInvalidConfig, cfg.ActiveArea)
	}
	if cfg.FuelFlowRate <= 0 {
		return nil, fmt.Errorf("%w: fuel flow rate must be positive, got %v", ErrInvalidConfig, cfg.FuelFlowRate)
	}
	if cfg.AirFlowRate <= 0 {
		return nil, fmt.Errorf("%w: air flow rate must be positive, got %v", ErrInvalidConfig, cfg.AirFlowRate)
	}
	return &Stack{cfg: cfg, data: chemistries[cfg.Chemistry]}, nil
}

func (s *Stack) Config() Config { return s.cfg }

// InitialState builds the t=0 state from the run's initial conditions and
// the stack's configured flows.
func (s *Stack) InitialState(ic sim.InitialConditions) sim.State {
	st := sim.State{
		Voltage:     ic.Voltage,
		Current:     ic.Current,
		Temperature: ic.Temperature,
		Pressure:    ic.Pressure,
		FuelFlow:    s.cfg.FuelFlowRate,
		AirFlow:     s.cfg.AirFlowRate,
	}
	st.Power = st.Voltage * st.Current
	return st
}

// Advance computes the state after dt under the given disturbances.
//
// The current/voltage coupling is quasi-static: current density gates the
// voltage using the prior step's current as the load reference, then the new
// current is read back from that same density. It is not a causal ODE and
// must stay this way — optimizer fitness curves were fit against this exact
// response shape.
func (s *Stack) Advance(st sim.State, dt float64, d sim.Disturbance) sim.State {
	next := st

	target := s.cfg.OperatingTemperature + d.Temperature
	next.Temperature += (target - next.Temperature) * dt / thermalTimeConstant

	next.Pressure = s.cfg.OperatingPressure + d.Pressure

	tempFactor := s.temperatureFactor(next.Temperature)
	loadFactor := 1 + d.Load

	ocv := s.data.baseline * tempFactor

	density := (st.Current / s.cfg.ActiveArea) * loadFactor

	activation := activationCoeff * math.Log(density+1)
	ohmic := ohmicCoeff * density
	concentration := 0.0
	if density > concentrationKnee {
		r := density / concentrationKnee
		concentration = concentrationCoeff * r * r
	}

	next.Voltage = math.Max(minVoltage, ocv-activation-ohmic-concentration)
	next.Current = density * s.cfg.ActiveArea

	return next
}

// Efficiency derates the chemistry's ceiling by how far temperature, flow
// stoichiometry and current density sit from their sweet spots. The caller
// clamps the final value to [0, 100].
func (s *Stack) Efficiency(st sim.State, d sim.Disturbance) float64 {
	density := st.Current / s.cfg.ActiveArea
	densityFactor := math.Max(0.4, 1-density/2000)
	return s.data.maxEfficiency * densityFactor * s.temperatureFactor(st.Temperature) * s.flowFactor(st)
}

// temperatureFactor penalizes deviation from the chemistry optimum, floored
// at 0.5 so a cold start still produces output.
func (s *Stack) temperatureFactor(temp float64) float64 {
	return math.Max(minTempFactor, 1-math.Abs(temp-s.data.optimalTemp)/100)
}

// flowFactor penalizes deviation of the air:fuel ratio from the ideal 2:1,
// floored at 0.7.
func (s *Stack) flowFactor(st sim.State) float64 {
	if st.FuelFlow == 0 {
		return minFlowFactor
	}
	ratio := st.AirFlow / st.FuelFlow
	return math.Max(minFlowFactor, 1-math.Abs(ratio-idealFlowRatio)/idealFlowRatio)
}
