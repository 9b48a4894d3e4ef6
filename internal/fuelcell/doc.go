// Package fuelcell models a fuel cell stack for closed-loop simulation.
//
// [Stack] implements [sim.Dynamics]: temperature relaxes toward the
// operating point with a 60 s time constant, pressure tracks its setpoint
// without lag, and voltage follows a simplified polarization curve
//
//	V = max(0.1, OCV − activation − ohmic − concentration)
//
// where the open-circuit voltage and loss terms depend on the chemistry
// table in [Chemistry] and on current density.
package fuelcell
