package drive

import "math"

// Pulse follows SPICE PULSE(V1 V2 TD TR TF PW PER) semantics. A zero period
// produces a single pulse.
type Pulse struct {
	V1, V2 float64
	Delay  float64
	Rise   float64
	Fall   float64
	Width  float64
	Period float64
}

// At evaluates the pulse at time t.
func (p Pulse) At(t float64) float64 {
	if t < p.Delay {
		return p.V1
	}

	t -= p.Delay
	if p.Period > 0 {
		t = math.Mod(t, p.Period)
	}

	if t < p.Rise {
		return p.V1 + (p.V2-p.V1)*t/p.Rise
	}
	if t < p.Rise+p.Width {
		return p.V2
	}

	fallStart := p.Rise + p.Width
	if t < fallStart+p.Fall {
		return p.V2 - (p.V2-p.V1)*(t-fallStart)/p.Fall
	}
	return p.V1
}

// Sample evaluates the pulse at n evenly spaced times starting at 0.
func (p Pulse) Sample(n int, endT float64) []float64 {
	out := make([]float64, n)
	dt := endT / float64(n)
	for i := range out {
		out[i] = p.At(float64(i) * dt)
	}
	return out
}
