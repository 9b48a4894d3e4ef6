package sim

import "errors"

// Validation is fatal and happens once before the loop. Inside the loop
// out-of-range values are clamped, never returned as errors, so unattended
// sweeps keep going.
var (
	// ErrInvalidParams indicates a non-positive timestep or duration.
	ErrInvalidParams = errors.New("sim: invalid simulation parameters")

	// ErrNoDynamics indicates the simulator was built without a plant model.
	ErrNoDynamics = errors.New("sim: no dynamics model")
)
