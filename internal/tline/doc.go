// Package tline simulates voltage waveforms on a lossless transmission line.
//
// The line is modelled with the d'Alembert decomposition: the voltage at
// every point is the sum of a right-traveling and a left-traveling wave.
// Each time step the two waves are advected one step's propagation distance
// by piecewise-linear resampling, and the impedance discontinuities at the
// source and load ends inject and reflect signal:
//
//   - [Simulate]: run a drive waveform through a source–trace–load segment
//   - [Field]: the resulting space-time voltage array
//   - [Interp]: clamp-to-boundary linear interpolation used for advection
//   - [Sweep]: run independent parameter sets concurrently
//
// # Units
//
// Distances and times are normalized so that the propagation velocity and
// the nominal rise time are both 1. Impedances are in ohms.
//
// # Example
//
//	drv := drive.Ramp(100, 20, 1)
//	f, err := tline.Simulate(drv, 20, 100, 1e6, 0.5, 50, 20)
//	if err != nil {
//	    return err
//	}
//	load := f.Load()
//
// # Thread Safety
//
// Simulate keeps all of its working state local to the call, so any number
// of simulations may run concurrently. A [Field] is read-only after it is
// returned.
package tline
