package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// stubPlant relaxes voltage toward 1.0 and reports a flat efficiency.
type stubPlant struct{}

func (stubPlant) InitialState(ic InitialConditions) State {
	return State{
		Voltage:     ic.Voltage,
		Current:     ic.Current,
		Temperature: ic.Temperature,
		Pressure:    ic.Pressure,
		FuelFlow:    5,
		AirFlow:     10,
	}
}

func (stubPlant) Advance(s State, dt float64, d Disturbance) State {
	s.Voltage += (1.0 - s.Voltage) * dt / 10
	s.Current = 2.0
	return s
}

func (stubPlant) Efficiency(s State, d Disturbance) float64 { return 50 }

type quietSchedule struct{}

func (quietSchedule) At(t float64, rng *rand.Rand) Disturbance { return Disturbance{} }

func testControl() ControlParams {
	return ControlParams{
		VoltageSetpoint:     0.9,
		TemperatureSetpoint: 70,
		VoltageLoop:         Gains{Kp: 1, Ki: 0.1, Kd: 0.01},
		CoolingLoop:         Gains{Kp: 1, Ki: 0.1, Kd: 0.01},
	}
}

func TestRunSeriesLength(t *testing.T) {
	s := New(stubPlant{}, quietSchedule{})

	tests := []struct {
		duration float64
		dt       float64
		steps    int
	}{
		{300, 1, 300},
		{10, 0.1, 100},
		{100, 3, 33}, // floor(100/3)
		{1, 1, 1},
	}

	for _, tt := range tests {
		res, err := s.Run(testControl(), Params{Duration: tt.duration, TimeStep: tt.dt, Seed: 1})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		for name, n := range map[string]int{
			"time":        len(res.Series.Time),
			"voltage":     len(res.Series.Voltage),
			"current":     len(res.Series.Current),
			"power":       len(res.Series.Power),
			"temperature": len(res.Series.Temperature),
			"pressure":    len(res.Series.Pressure),
			"efficiency":  len(res.Series.Efficiency),
			"controls":    len(res.Controls),
		} {
			if n != tt.steps {
				t.Errorf("duration=%v dt=%v: %s series length %d, want %d", tt.duration, tt.dt, name, n, tt.steps)
			}
		}
	}
}

func TestRunInvalidParams(t *testing.T) {
	s := New(stubPlant{}, quietSchedule{})

	tests := []struct {
		name string
		p    Params
	}{
		{"zero dt", Params{Duration: 10, TimeStep: 0}},
		{"negative dt", Params{Duration: 10, TimeStep: -1}},
		{"zero duration", Params{Duration: 0, TimeStep: 1}},
		{"negative duration", Params{Duration: -10, TimeStep: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(testControl(), tt.p); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestRunNoDynamics(t *testing.T) {
	s := New(nil, quietSchedule{})
	if _, err := s.Run(testControl(), Params{Duration: 10, TimeStep: 1}); !errors.Is(err, ErrNoDynamics) {
		t.Errorf("expected ErrNoDynamics, got %v", err)
	}
}

func TestFuelFlowClamped(t *testing.T) {
	// Enormous gain forces the actuator past both rails.
	cp := testControl()
	cp.VoltageLoop = Gains{Kp: 1e6}

	s := New(stubPlant{}, quietSchedule{})
	res, err := s.Run(cp, Params{Duration: 50, TimeStep: 1, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, u := range res.Controls {
		if u.FuelFlow < MinFuelFlow || u.FuelFlow > MaxFuelFlow {
			t.Fatalf("step %d: fuel flow %f outside [%f, %f]", i, u.FuelFlow, MinFuelFlow, MaxFuelFlow)
		}
	}
}

func TestCoolingClamped(t *testing.T) {
	cp := testControl()
	cp.CoolingLoop = Gains{Kp: 1e6}

	s := New(stubPlant{}, quietSchedule{})
	res, err := s.Run(cp, Params{Duration: 50, TimeStep: 1, Init: InitialConditions{Temperature: 500}, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, u := range res.Controls {
		if u.Cooling < MinCooling || u.Cooling > MaxCooling {
			t.Fatalf("step %d: cooling %f outside [%f, %f]", i, u.Cooling, MinCooling, MaxCooling)
		}
	}
}

type countingMetric struct {
	n int
}

func (m *countingMetric) Name() string { return "count" }

func (m *countingMetric) Observe(s State, u Control, t float64) { m.n++ }

func (m *countingMetric) Value() float64 { return float64(m.n) }

func (m *countingMetric) Reset() { m.n = 0 }

func TestMetricsObserveEveryStep(t *testing.T) {
	s := New(stubPlant{}, quietSchedule{})
	m := &countingMetric{}
	s.AddMetric(m)

	res, err := s.Run(testControl(), Params{Duration: 25, TimeStep: 1, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if m.n != 25 {
		t.Errorf("expected 25 observations, got %d", m.n)
	}
	if res.Metrics["count"] != 25 {
		t.Errorf("expected metric in result, got %v", res.Metrics)
	}

	// Metrics reset between runs.
	if _, err := s.Run(testControl(), Params{Duration: 10, TimeStep: 1, Seed: 1}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if m.n != 10 {
		t.Errorf("expected metric reset before second run, got %d", m.n)
	}
}

type recordingObserver struct {
	states []State
}

func (r *recordingObserver) OnStep(s State, u Control, t float64) {
	r.states = append(r.states, s)
}

func TestObserverSeesEveryStep(t *testing.T) {
	s := New(stubPlant{}, quietSchedule{})
	obs := &recordingObserver{}
	s.AddObserver(obs)

	if _, err := s.Run(testControl(), Params{Duration: 15, TimeStep: 1, Seed: 1}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(obs.states) != 15 {
		t.Errorf("expected 15 observations, got %d", len(obs.states))
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"zero", State{}, true},
		{"normal", State{Voltage: 0.7, Current: 0.1, Temperature: 70}, true},
		{"nan voltage", State{Voltage: math.NaN()}, false},
		{"inf power", State{Power: math.Inf(1)}, false},
		{"neg inf temperature", State{Temperature: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestRunStatesStayValid(t *testing.T) {
	s := New(stubPlant{}, quietSchedule{})
	obs := &recordingObserver{}
	s.AddObserver(obs)

	if _, err := s.Run(testControl(), Params{Duration: 50, TimeStep: 1, Seed: 1}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, st := range obs.states {
		if !st.IsValid() {
			t.Fatalf("step %d: invalid state %+v", i, st)
		}
	}
}

func TestPowerIsVoltageTimesCurrent(t *testing.T) {
	s := New(stubPlant{}, quietSchedule{})
	res, err := s.Run(testControl(), Params{Duration: 20, TimeStep: 1, Init: InitialConditions{Voltage: 0.3}, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := range res.Series.Power {
		want := res.Series.Voltage[i] * res.Series.Current[i]
		if math.Abs(res.Series.Power[i]-want) > 1e-12 {
			t.Fatalf("step %d: power %f != V*I %f", i, res.Series.Power[i], want)
		}
	}
}
