package spice

import (
	"fmt"

	"github.com/san-kum/tlinesim/internal/analysis"
	"github.com/san-kum/tlinesim/internal/tline"
)

// Comparison is the RMS difference between simulated and reference probe
// traces over the time both cover.
type Comparison struct {
	Source float64
	Mid    float64
	Load   float64
	Points int
}

// Compare resamples normalized reference traces onto the field's time axis
// and measures each probe. probeFrac selects the field column compared
// against the middle node.
func Compare(ref *Traces, f *tline.Field, endT, probeFrac float64) (Comparison, error) {
	if ref.Len() == 0 {
		return Comparison{}, ErrNoTrace
	}

	times := f.TimeAxis(endT)
	last := ref.Time[ref.Len()-1]
	n := 0
	for n < len(times) && times[n] <= last {
		n++
	}
	if n == 0 {
		return Comparison{}, fmt.Errorf("%w: reference ends before the field starts", ErrNoTrace)
	}
	times = times[:n]

	c := Comparison{Points: n}
	probes := []struct {
		dst *float64
		ref []float64
		sim []float64
	}{
		{&c.Source, ref.Source, f.Source()},
		{&c.Mid, ref.Mid, f.Probe(probeFrac)},
		{&c.Load, ref.Load, f.Load()},
	}

	for _, p := range probes {
		resampled, err := tline.Interp(times, ref.Time, p.ref)
		if err != nil {
			return Comparison{}, err
		}
		rms, err := analysis.RMSDiff(resampled, p.sim[:n])
		if err != nil {
			return Comparison{}, err
		}
		*p.dst = rms
	}
	return c, nil
}
