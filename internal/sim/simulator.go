package sim

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/fuelsim/internal/control"
)

// Actuator limits. Values outside are clamped, never raised: a mid-sweep
// crash would cost the whole optimization batch.
const (
	MinFuelFlow = 0.1
	MaxFuelFlow = 50.0
	MinCooling  = 0.0
	MaxCooling  = 1000.0

	// AirFuelRatio slaves air flow to fuel flow; air is not independently
	// actuated.
	AirFuelRatio = 2.0

	MaxEfficiency = 100.0
)

// Simulator owns the fixed-step time loop: disturbance, dynamics advance,
// both PID updates, actuator clamps, output recompute, series append. It has
// two states, running and complete; there is no pause or resume.
type Simulator struct {
	plant     Dynamics
	sched     Schedule
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(plant Dynamics, sched Schedule) *Simulator {
	return &Simulator{
		plant:  plant,
		sched:  sched,
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetLogger enables debug logging of runtime clamps. A nil logger is ignored.
func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run executes one complete simulation. Each call is self-contained: fresh
// controllers, fresh random source, no state shared with other calls, so
// independent runs can be dispatched from separate goroutines against
// separate Simulators with zero locking.
func (s *Simulator) Run(cp ControlParams, p Params) (*Result, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	voltageLoop := control.NewPID(cp.VoltageLoop.Kp, cp.VoltageLoop.Ki, cp.VoltageLoop.Kd, cp.VoltageSetpoint)
	coolingLoop := control.NewPID(cp.CoolingLoop.Kp, cp.CoolingLoop.Ki, cp.CoolingLoop.Kd, cp.TemperatureSetpoint)
	voltageLoop.IntegralLimit = cp.IntegralLimit
	coolingLoop.IntegralLimit = cp.IntegralLimit

	steps := int(p.Duration / p.TimeStep)
	result := &Result{
		Series: Series{
			Time:        make([]float64, 0, steps),
			Voltage:     make([]float64, 0, steps),
			Current:     make([]float64, 0, steps),
			Power:       make([]float64, 0, steps),
			Temperature: make([]float64, 0, steps),
			Pressure:    make([]float64, 0, steps),
			Efficiency:  make([]float64, 0, steps),
		},
		Controls: make([]Control, 0, steps),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	state := s.plant.InitialState(p.Init)

	for i := 0; i < steps; i++ {
		t := float64(i) * p.TimeStep

		d := s.sched.At(t, rng)
		state = s.plant.Advance(state, p.TimeStep, d)

		uVolt := voltageLoop.Compute(state.Voltage, t)
		uTemp := coolingLoop.Compute(state.Temperature, t)

		state.FuelFlow = s.clamp("fuel_flow", state.FuelFlow+uVolt, MinFuelFlow, MaxFuelFlow, t)
		state.AirFlow = AirFuelRatio * state.FuelFlow

		// Cooling demand rises as temperature exceeds the setpoint, so the
		// loop output is negated before the actuator clamp.
		cooling := s.clamp("cooling", -uTemp, MinCooling, MaxCooling, t)

		state.Power = state.Voltage * state.Current
		state.Efficiency = s.clamp("efficiency", s.plant.Efficiency(state, d), 0, MaxEfficiency, t)

		u := Control{FuelFlow: state.FuelFlow, Cooling: cooling}

		result.Series.Time = append(result.Series.Time, t)
		result.Series.Voltage = append(result.Series.Voltage, state.Voltage)
		result.Series.Current = append(result.Series.Current, state.Current)
		result.Series.Power = append(result.Series.Power, state.Power)
		result.Series.Temperature = append(result.Series.Temperature, state.Temperature)
		result.Series.Pressure = append(result.Series.Pressure, state.Pressure)
		result.Series.Efficiency = append(result.Series.Efficiency, state.Efficiency)
		result.Controls = append(result.Controls, u)

		for _, m := range s.metrics {
			m.Observe(state, u, t)
		}
		for _, o := range s.observers {
			o.OnStep(state, u, t)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	result.Summary = Analyze(result, cp.VoltageSetpoint, p.Duration)

	return result, nil
}

func (s *Simulator) validate(p Params) error {
	if s.plant == nil {
		return ErrNoDynamics
	}
	if p.TimeStep <= 0 {
		return fmt.Errorf("%w: timestep must be positive, got %v", ErrInvalidParams, p.TimeStep)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidParams, p.Duration)
	}
	return nil
}

func (s *Simulator) clamp(name string, v, lo, hi, t float64) float64 {
	if v < lo {
		s.logger.Debug("clamped", "signal", name, "t", t, "value", v, "limit", lo)
		return lo
	}
	if v > hi {
		s.logger.Debug("clamped", "signal", name, "t", t, "value", v, "limit", hi)
		return hi
	}
	return v
}
