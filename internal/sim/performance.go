package sim

import "math"

const responseBand = 0.1 // fraction of the voltage setpoint

// Analyze derives the aggregate performance summary from a completed run.
//
// StabilityIndex is 1 minus the coefficient of variation of power; a mean
// power near zero makes the ratio meaningless, so it is guarded to 0.
// ResponseTime is the time of the first sample within 10% of the voltage
// setpoint, falling back to the simulation end time when the band is never
// reached. The fallback is deliberate, not an error.
func Analyze(r *Result, voltageSetpoint, duration float64) Summary {
	s := Summary{
		AveragePower:      mean(r.Series.Power),
		AverageEfficiency: mean(r.Series.Efficiency),
		ResponseTime:      duration,
	}

	if math.Abs(s.AveragePower) > 1e-9 {
		s.StabilityIndex = 1 - stddev(r.Series.Power, s.AveragePower)/s.AveragePower
	}

	band := responseBand * voltageSetpoint
	for i, v := range r.Series.Voltage {
		if math.Abs(v-voltageSetpoint) <= band {
			s.ResponseTime = r.Series.Time[i]
			break
		}
	}

	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
