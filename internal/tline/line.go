package tline

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Velocity is the normalized propagation velocity.
const Velocity = 1.0

// Params is one source–trace–load configuration together with its drive.
type Params struct {
	Drive   []float64 // Thevenin source voltage, one sample per time step
	ZSource float64
	ZTrace  float64
	ZLoad   float64
	Length  float64 // in units of rise time × velocity
	Samples int     // spatial samples reported, ghosts excluded
	EndTime float64
}

// Validate reports the first parameter Simulate cannot accept. Impedances
// are not checked: degenerate values propagate as Inf or NaN.
func (p Params) Validate() error {
	if len(p.Drive) == 0 {
		return &ParamError{Name: "drive", Value: 0, Reason: "must not be empty"}
	}
	if p.Samples < 2 {
		return &ParamError{Name: "samples", Value: p.Samples, Reason: "must be at least 2"}
	}
	if !positiveFinite(p.Length) {
		return &ParamError{Name: "length", Value: p.Length, Reason: "must be positive and finite"}
	}
	if !positiveFinite(p.EndTime) {
		return &ParamError{Name: "end_time", Value: p.EndTime, Reason: "must be positive and finite"}
	}
	return nil
}

// TimeStep is the simulated duration of one drive sample.
func (p Params) TimeStep() float64 {
	return p.EndTime / float64(len(p.Drive))
}

// Spacing is the distance between adjacent reported samples.
func (p Params) Spacing() float64 {
	return p.Length / float64(p.Samples-1)
}

// ReflectionCoefficient is the fraction of an incident wave reflected where
// a line of impedance zNear meets a termination zFar.
func ReflectionCoefficient(zFar, zNear float64) float64 {
	return (zFar - zNear) / (zFar + zNear)
}

// InjectionGain is the source-to-line voltage divider ratio.
func InjectionGain(zSource, zTrace float64) float64 {
	return 1 / (1 + zSource/zTrace)
}

// OvershootLevel is the first peak seen at an open load for a drive step of
// height maxV.
func OvershootLevel(maxV, zSource, zTrace float64) float64 {
	return maxV * 2 / (1 + zSource/zTrace)
}

// UndershootLevel is the trough that follows the overshoot once the wave
// reflected off the source end returns to an open load.
func UndershootLevel(maxV, zSource, zTrace float64) float64 {
	return OvershootLevel(maxV, zSource, zTrace) * (1 + ReflectionCoefficient(zSource, zTrace))
}

// grid returns the nX+2 positions of the simulation: nX points spanning
// [0, length] plus one ghost point one step's travel outside each end.
func grid(length float64, samples int, dt float64) []float64 {
	x := make([]float64, samples+2)
	copy(x[1:], linspace(samples, 0, length))
	x[0] = -Velocity * dt
	x[samples+1] = length + Velocity*dt
	return x
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func linspace(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	switch n {
	case 0:
		return out
	case 1:
		out[0] = lo
		return out
	}
	floats.Span(out, lo, hi)
	out[n-1] = hi
	return out
}
