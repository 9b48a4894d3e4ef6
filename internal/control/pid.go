// Package control provides the feedback loops closed around the stack:
// a scalar PID used once for the voltage loop (actuating fuel flow) and
// once for the temperature loop (actuating cooling).
package control

// PID is a stateful proportional-integral-derivative controller.
//
// There is no anti-windup clamp by default: under sustained error the
// integral grows without bound. That is a known limitation of the response
// shapes downstream fitness evaluation was tuned against, so it is opt-in
// via IntegralLimit rather than always on.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Setpoint float64

	// IntegralLimit, when positive, clamps the integral term to
	// ±IntegralLimit.
	IntegralLimit float64

	integral float64
	prevErr  float64
	lastTime float64
}

func NewPID(kp, ki, kd, setpoint float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, Setpoint: setpoint}
}

// Compute returns the control output for a measurement taken at time t.
// Calls with t at or before the last update are no-ops returning 0, which
// guards dt <= 0; the first call at t=0 therefore produces no output.
func (p *PID) Compute(measured, t float64) float64 {
	if t <= p.lastTime {
		return 0
	}

	err := p.Setpoint - measured
	dt := t - p.lastTime

	p.integral += err * dt
	if p.IntegralLimit > 0 {
		if p.integral > p.IntegralLimit {
			p.integral = p.IntegralLimit
		} else if p.integral < -p.IntegralLimit {
			p.integral = -p.IntegralLimit
		}
	}

	derivative := (err - p.prevErr) / dt
	out := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

	p.prevErr = err
	p.lastTime = t

	return out
}

// Reset clears the accumulated state so the controller can be reused for a
// fresh run.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.lastTime = 0
}
