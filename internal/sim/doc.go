// Package sim owns the closed-loop simulation: the fixed-step orchestrator,
// the shared state/series types, the performance analyzer and the parallel
// ensemble runner.
//
// A run wires a [Dynamics] plant and a disturbance [Schedule] into
// [Simulator], which closes two PID loops around the plant (voltage to fuel
// flow, temperature to cooling) and appends one sample per step to the
// output [Series]. Validation happens once before the loop and is fatal;
// inside the loop implausible values are clamped and logged at debug level,
// never raised, so unattended optimization sweeps always get a complete
// [Result] back.
package sim
