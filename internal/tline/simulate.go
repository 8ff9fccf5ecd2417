package tline

// Simulate runs drive through a line of the given length between a source
// of impedance zSource and a load of impedance zLoad. The returned field has
// one row per drive sample and one column per spatial sample, ordered from
// the source end to the load end. endT is the duration covered by drive.
func Simulate(drive []float64, zSource, zTrace, zLoad, length float64, samples int, endT float64) (*Field, error) {
	p := Params{
		Drive:   drive,
		ZSource: zSource,
		ZTrace:  zTrace,
		ZLoad:   zLoad,
		Length:  length,
		Samples: samples,
		EndTime: endT,
	}
	return p.Simulate()
}

// Simulate runs the configured line. See the package-level Simulate.
func (p Params) Simulate() (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dt := p.TimeStep()
	x := grid(p.Length, p.Samples, dt)
	last := len(x) - 1

	behind := make([]float64, len(x))
	ahead := make([]float64, len(x))
	for i, xi := range x {
		behind[i] = xi - Velocity*dt
		ahead[i] = xi + Velocity*dt
	}

	divider := 1 + p.ZSource/p.ZTrace
	gammaSource := ReflectionCoefficient(p.ZSource, p.ZTrace)
	gammaLoad := ReflectionCoefficient(p.ZLoad, p.ZTrace)

	right := make([]float64, len(x))
	left := make([]float64, len(x))
	f := newField(len(p.Drive), p.Samples)

	for t, v := range p.Drive {
		reflectedFromLoad := right[last]

		right[0] = v/divider + left[0]*gammaSource
		if err := interpInto(right, behind, x, right); err != nil {
			return nil, err
		}

		left[last] = reflectedFromLoad * gammaLoad
		if err := interpInto(left, ahead, x, left); err != nil {
			return nil, err
		}

		row := f.rows[t]
		for k := range row {
			row[k] = right[k+1] + left[k+1]
		}
	}

	return f, nil
}
