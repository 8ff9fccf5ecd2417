// Package drive generates source drive waveforms sampled on the simulation
// time grid, where sample i sits at t = i·endT/n.
package drive

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	KindRamp     = "ramp"
	KindTriangle = "triangle"
	KindStep     = "step"
	KindPulse    = "pulse"
)

var (
	ErrUnknownKind = errors.New("drive: unknown waveform kind")
	ErrSampling    = errors.New("drive: invalid sampling")
)

// Spec describes a drive waveform in a config file.
type Spec struct {
	Kind   string  `yaml:"kind" json:"kind"`
	MaxV   float64 `yaml:"max_v" json:"max_v"`
	Delay  float64 `yaml:"delay,omitempty" json:"delay,omitempty"`
	Rise   float64 `yaml:"rise,omitempty" json:"rise,omitempty"`
	Fall   float64 `yaml:"fall,omitempty" json:"fall,omitempty"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Period float64 `yaml:"period,omitempty" json:"period,omitempty"`
}

// Sample renders the waveform as n samples covering [0, endT).
func (s Spec) Sample(n int, endT float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d samples", ErrSampling, n)
	}
	if !(endT > 0) || math.IsInf(endT, 0) {
		return nil, fmt.Errorf("%w: end time %v", ErrSampling, endT)
	}
	switch s.Kind {
	case KindRamp, "":
		return Ramp(n, endT, s.MaxV), nil
	case KindTriangle:
		return Triangle(n, s.MaxV), nil
	case KindStep:
		return Step(n, endT, s.MaxV, s.Delay), nil
	case KindPulse:
		return s.Pulse().Sample(n, endT), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
}

// Pulse converts the spec to a pulse from 0 to MaxV.
func (s Spec) Pulse() Pulse {
	return Pulse{
		V1:     0,
		V2:     s.MaxV,
		Delay:  s.Delay,
		Rise:   s.Rise,
		Fall:   s.Fall,
		Width:  s.Width,
		Period: s.Period,
	}
}

// Ramp is a rising edge of unit rise time followed by a falling edge of the
// same slope half way through the run, clipped between 0 and maxV.
func Ramp(n int, endT, maxV float64) []float64 {
	out := make([]float64, n)
	half := n / 2
	lo, hi := math.Min(0, maxV), math.Max(0, maxV)
	for i, s := range linspace(half, 0, endT/2) {
		out[i] = clip(maxV*s, lo, hi)
		out[half+i] = clip(maxV*(1-s), lo, hi)
	}
	if n%2 == 1 && n > 1 {
		out[n-1] = out[n-2]
	}
	return out
}

// Triangle rises linearly from 0 to maxV over the first half of the samples
// and falls back to 0 over the second half.
func Triangle(n int, maxV float64) []float64 {
	half := n / 2
	out := make([]float64, 0, n)
	out = append(out, linspace(half, 0, maxV)...)
	return append(out, linspace(n-half, maxV, 0)...)
}

// Step is 0 before delay and maxV from delay on.
func Step(n int, endT, maxV, delay float64) []float64 {
	out := make([]float64, n)
	dt := endT / float64(n)
	for i := range out {
		if float64(i)*dt >= delay {
			out[i] = maxV
		}
	}
	return out
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
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
