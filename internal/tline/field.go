package tline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is the total voltage on the line indexed by [time step][sample].
type Field struct {
	rows [][]float64
}

func newField(steps, samples int) *Field {
	backing := make([]float64, steps*samples)
	rows := make([][]float64, steps)
	for i := range rows {
		rows[i] = backing[i*samples : (i+1)*samples : (i+1)*samples]
	}
	return &Field{rows: rows}
}

// NewField copies rows into a Field. Every row must have the same non-zero
// length.
func NewField(rows [][]float64) (*Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty field", ErrShape)
	}
	f := newField(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrShape, i, len(r), len(rows[0]))
		}
		copy(f.rows[i], r)
	}
	return f, nil
}

func (f *Field) Steps() int { return len(f.rows) }

func (f *Field) Samples() int {
	if len(f.rows) == 0 {
		return 0
	}
	return len(f.rows[0])
}

func (f *Field) At(step, sample int) float64 { return f.rows[step][sample] }

// Row returns a copy of the voltage profile at one time step.
func (f *Field) Row(step int) []float64 {
	out := make([]float64, f.Samples())
	copy(out, f.rows[step])
	return out
}

// Column returns the voltage trace over time at one spatial sample.
func (f *Field) Column(sample int) []float64 {
	out := make([]float64, len(f.rows))
	for i, r := range f.rows {
		out[i] = r[sample]
	}
	return out
}

func (f *Field) Source() []float64 { return f.Column(0) }

func (f *Field) Load() []float64 { return f.Column(f.Samples() - 1) }

// ProbeIndex maps a fraction of the line length to a sample index, rounding
// down and clamping to the line.
func (f *Field) ProbeIndex(frac float64) int {
	n := f.Samples()
	idx := int(frac * float64(n))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// Probe returns the trace at the given fraction of the line length.
func (f *Field) Probe(frac float64) []float64 {
	return f.Column(f.ProbeIndex(frac))
}

// Rows returns a deep copy of the field.
func (f *Field) Rows() [][]float64 {
	out := make([][]float64, len(f.rows))
	for i := range f.rows {
		out[i] = f.Row(i)
	}
	return out
}

// TimeAxis spreads the steps evenly over [0, endT].
func (f *Field) TimeAxis(endT float64) []float64 {
	return linspace(f.Steps(), 0, endT)
}

// PositionAxis spreads the samples evenly over [0, length].
func (f *Field) PositionAxis(length float64) []float64 {
	return linspace(f.Samples(), 0, length)
}

// Bounds returns the smallest and largest finite voltage in the field.
func (f *Field) Bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range f.rows {
		for _, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Finite reports whether every value in the field is a finite number.
func (f *Field) Finite() bool {
	for _, r := range f.rows {
		if floats.HasNaN(r) {
			return false
		}
		for _, v := range r {
			if math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
