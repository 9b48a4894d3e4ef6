// Package disturbance produces the time-indexed load, temperature and
// pressure perturbations a run is exercised against.
package disturbance

import (
	"math"
	"math/rand"

	"github.com/san-kum/fuelsim/internal/sim"
)

// Step is a load perturbation applied on the open interval (Start, End).
type Step struct {
	Start float64
	End   float64
	Delta float64
}

// Profile is a data-driven disturbance schedule. Load steps and the
// temperature sine are deterministic; the pressure channel draws from the
// run's random source, so a seeded run replays exactly.
type Profile struct {
	Name string

	LoadSteps []Step

	TempAmplitude float64
	TempFrequency float64

	PressureJitter float64
}

func (p Profile) At(t float64, rng *rand.Rand) sim.Disturbance {
	var d sim.Disturbance

	for _, s := range p.LoadSteps {
		if t > s.Start && t < s.End {
			d.Load += s.Delta
		}
	}

	d.Temperature = p.TempAmplitude * math.Sin(p.TempFrequency*t)

	if p.PressureJitter != 0 {
		d.Pressure = p.PressureJitter * (rng.Float64() - 0.5)
	}

	return d
}

// standardSteps is the baseline load-following pattern: a +20% step between
// 30 s and 60 s, then a -10% dip between 120 s and 150 s.
func standardSteps() []Step {
	return []Step{
		{Start: 30, End: 60, Delta: 0.2},
		{Start: 120, End: 150, Delta: -0.1},
	}
}

// None is the quiet schedule used to measure intrinsic stability.
func None() Profile {
	return Profile{Name: "none"}
}

// LoadFollowing is the default schedule.
func LoadFollowing() Profile {
	return Profile{
		Name:           "load_following",
		LoadSteps:      standardSteps(),
		TempAmplitude:  2.0,
		TempFrequency:  0.01,
		PressureJitter: 0.05,
	}
}

// Startup keeps disturbances mild while the stack warms up from ambient.
func Startup() Profile {
	return Profile{
		Name:           "startup",
		TempAmplitude:  1.0,
		TempFrequency:  0.01,
		PressureJitter: 0.02,
	}
}

// ThermalCycling amplifies the ambient temperature swing.
func ThermalCycling() Profile {
	return Profile{
		Name:           "thermal_cycling",
		LoadSteps:      standardSteps(),
		TempAmplitude:  10.0,
		TempFrequency:  0.05,
		PressureJitter: 0.05,
	}
}

// PressureVariation amplifies the stochastic pressure channel.
func PressureVariation() Profile {
	return Profile{
		Name:           "pressure_variation",
		TempAmplitude:  2.0,
		TempFrequency:  0.01,
		PressureJitter: 0.2,
	}
}

// ByName resolves a named schedule.
func ByName(name string) (Profile, bool) {
	switch name {
	case "none":
		return None(), true
	case "load_following", "":
		return LoadFollowing(), true
	case "startup":
		return Startup(), true
	case "thermal_cycling":
		return ThermalCycling(), true
	case "pressure_variation":
		return PressureVariation(), true
	}
	return Profile{}, false
}

// Names lists the available schedules.
func Names() []string {
	return []string{"none", "load_following", "startup", "thermal_cycling", "pressure_variation"}
}
