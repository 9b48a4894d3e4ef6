package sim

import (
	"math"
	"testing"
)

func seriesResult(times, voltage, power, efficiency []float64) *Result {
	return &Result{Series: Series{
		Time:       times,
		Voltage:    voltage,
		Power:      power,
		Efficiency: efficiency,
	}}
}

func TestAnalyzeAverages(t *testing.T) {
	r := seriesResult(
		[]float64{0, 1, 2, 3},
		[]float64{0.5, 0.5, 0.5, 0.5},
		[]float64{1, 2, 3, 4},
		[]float64{40, 50, 60, 50},
	)

	s := Analyze(r, 0.7, 4)
	if math.Abs(s.AveragePower-2.5) > 1e-12 {
		t.Errorf("average power = %f, want 2.5", s.AveragePower)
	}
	if math.Abs(s.AverageEfficiency-50) > 1e-12 {
		t.Errorf("average efficiency = %f, want 50", s.AverageEfficiency)
	}
}

func TestAnalyzeStabilityIndex(t *testing.T) {
	// Constant power: zero deviation, index exactly 1.
	r := seriesResult(
		[]float64{0, 1, 2},
		[]float64{0.7, 0.7, 0.7},
		[]float64{5, 5, 5},
		[]float64{50, 50, 50},
	)
	if s := Analyze(r, 0.7, 3); math.Abs(s.StabilityIndex-1) > 1e-12 {
		t.Errorf("stability index = %f, want 1", s.StabilityIndex)
	}

	// Known spread: power {2, 4} has mean 3, stddev 1, index 1 - 1/3.
	r = seriesResult(
		[]float64{0, 1},
		[]float64{0.7, 0.7},
		[]float64{2, 4},
		[]float64{50, 50},
	)
	if s := Analyze(r, 0.7, 2); math.Abs(s.StabilityIndex-(1-1.0/3)) > 1e-12 {
		t.Errorf("stability index = %f, want %f", s.StabilityIndex, 1-1.0/3)
	}
}

func TestAnalyzeZeroPowerGuard(t *testing.T) {
	r := seriesResult(
		[]float64{0, 1, 2},
		[]float64{0.1, 0.1, 0.1},
		[]float64{0, 0, 0},
		[]float64{0, 0, 0},
	)
	if s := Analyze(r, 0.7, 3); s.StabilityIndex != 0 {
		t.Errorf("expected guarded stability index 0 for zero mean power, got %f", s.StabilityIndex)
	}
}

func TestAnalyzeResponseTime(t *testing.T) {
	// Setpoint 1.0, band ±0.1: first sample inside the band at t=2.
	r := seriesResult(
		[]float64{0, 1, 2, 3},
		[]float64{0.5, 0.8, 0.95, 1.0},
		[]float64{1, 1, 1, 1},
		[]float64{50, 50, 50, 50},
	)
	if s := Analyze(r, 1.0, 4); s.ResponseTime != 2 {
		t.Errorf("response time = %f, want 2", s.ResponseTime)
	}
}

func TestAnalyzeResponseTimeFallback(t *testing.T) {
	r := seriesResult(
		[]float64{0, 1, 2},
		[]float64{0.2, 0.2, 0.2},
		[]float64{1, 1, 1},
		[]float64{50, 50, 50},
	)
	if s := Analyze(r, 1.0, 3); s.ResponseTime != 3 {
		t.Errorf("expected fallback to end time 3, got %f", s.ResponseTime)
	}
}

func TestAnalyzeEmptySeries(t *testing.T) {
	s := Analyze(&Result{}, 0.7, 0)
	if s.AveragePower != 0 || s.StabilityIndex != 0 {
		t.Errorf("expected zeroed summary for empty series, got %+v", s)
	}
}
