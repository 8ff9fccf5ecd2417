// Package fdtd solves the lossless telegrapher equations with a staggered
// leapfrog finite-difference scheme. It is an independent reference for the
// traveling-wave simulator in package tline: same parameters, same output
// shape, different numerics.
//
// Units follow tline: velocity 1, so the per-unit-length inductance is Z0
// and the capacitance 1/Z0. Voltages live on the Samples nodes, currents on
// the Samples-1 half nodes between them. Both ends are lumped resistive
// terminations updated semi-implicitly.
package fdtd

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/tlinesim/internal/tline"
)

// DefaultCourant is the ratio of the internal time step to the node spacing.
// At 1 the interior update is exact for a lossless line.
const DefaultCourant = 1.0

var ErrCourant = errors.New("fdtd: courant number must be in (0, 1]")

type Options struct {
	Courant float64
}

// Result holds the voltage field sampled on the drive's time grid and the
// energy stored on the line at each of those times.
type Result struct {
	Field    *tline.Field
	Energy   []float64
	Substeps int // internal steps per drive sample
}

type state struct {
	v, i       []float64
	l, c, dx   float64
	dt         float64
	zSource    float64
	zLoad      float64
	sourceGain float64 // C·dx / 2dt
}

// Simulate runs p. Row k of the field is the line voltage at t = k·dt with
// dt = EndTime/len(Drive); drive samples are linearly interpolated between
// those times.
func Simulate(p tline.Params, o Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if o.Courant == 0 {
		o.Courant = DefaultCourant
	}
	if !(o.Courant > 0 && o.Courant <= 1) {
		return nil, fmt.Errorf("%w: %g", ErrCourant, o.Courant)
	}

	steps := len(p.Drive)
	sampleDt := p.TimeStep()
	dx := p.Length / float64(p.Samples-1)
	sub := int(math.Ceil(sampleDt / (o.Courant * dx / tline.Velocity)))
	src := driveFunc(p.Drive, sampleDt)

	s := &state{
		v:       make([]float64, p.Samples),
		i:       make([]float64, p.Samples-1),
		l:       p.ZTrace / tline.Velocity,
		c:       1 / (p.ZTrace * tline.Velocity),
		dx:      dx,
		dt:      sampleDt / float64(sub),
		zSource: p.ZSource,
		zLoad:   p.ZLoad,
	}
	s.sourceGain = s.c * s.dx / (2 * s.dt)

	res := &Result{Energy: make([]float64, steps), Substeps: sub}
	rows := make([][]float64, steps)
	t := 0.0
	for k := 0; k < steps; k++ {
		rows[k] = append([]float64(nil), s.v...)
		res.Energy[k] = s.energy()
		for i := 0; i < sub; i++ {
			s.step(src, t)
			t += s.dt
		}
	}

	f, err := tline.NewField(rows)
	if err != nil {
		return nil, err
	}
	res.Field = f
	return res, nil
}

// step advances currents by a full step, then voltages, then both ends.
func (s *state) step(src func(float64) float64, t float64) {
	ki := s.dt / (s.l * s.dx)
	for k := range s.i {
		s.i[k] -= ki * (s.v[k+1] - s.v[k])
	}

	kv := s.dt / (s.c * s.dx)
	for k := 1; k < len(s.v)-1; k++ {
		s.v[k] -= kv * (s.i[k] - s.i[k-1])
	}

	a := s.sourceGain
	switch {
	case s.zSource == 0:
		s.v[0] = src(t + s.dt)
	default:
		b := 1 / (2 * s.zSource)
		s.v[0] = ((a-b)*s.v[0] + src(t+s.dt/2)/s.zSource - s.i[0]) / (a + b)
	}

	last := len(s.v) - 1
	switch {
	case s.zLoad == 0:
		s.v[last] = 0
	default:
		b := 1 / (2 * s.zLoad)
		s.v[last] = ((a-b)*s.v[last] + s.i[last-1]) / (a + b)
	}
}

// energy is the stored electric plus magnetic energy, ½CV² + ½LI² summed
// over the cells.
func (s *state) energy() float64 {
	return 0.5 * s.dx * (s.c*floats.Dot(s.v, s.v) + s.l*floats.Dot(s.i, s.i))
}

// driveFunc interpolates drive samples placed at t = k·dt, holding the ends.
func driveFunc(drive []float64, dt float64) func(float64) float64 {
	if len(drive) == 1 {
		v := drive[0]
		return func(float64) float64 { return v }
	}
	ts := make([]float64, len(drive))
	for k := range ts {
		ts[k] = float64(k) * dt
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(ts, drive); err != nil {
		panic(err) // ts is strictly increasing
	}
	return pl.Predict
}
