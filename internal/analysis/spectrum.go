package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a one-sided magnitude spectrum.
type Spectrum struct {
	Freq  []float64
	Power []float64
}

// PowerSpectrum optionally tapers trace with a Hann window, removes its
// mean, zero-pads it to a power of two and returns the magnitudes of the
// non-negative frequency bins. dt is the sample spacing.
func PowerSpectrum(trace []float64, dt float64, hann bool) Spectrum {
	if len(trace) < 2 || dt <= 0 {
		return Spectrum{}
	}

	data := make([]float64, len(trace))
	copy(data, trace)
	if hann {
		window.Apply(data, window.Hann)
	}
	floats.AddConst(-floats.Sum(data)/float64(len(data)), data)

	n := dsputils.NextPowerOf2(len(data))
	coeffs := fft.FFTReal(dsputils.ZeroPadF(data, n))

	s := Spectrum{
		Freq:  make([]float64, n/2),
		Power: make([]float64, n/2),
	}
	for k := range s.Power {
		s.Freq[k] = float64(k) / (float64(n) * dt)
		s.Power[k] = cmplx.Abs(coeffs[k])
	}
	return s
}

// DominantFrequency is the frequency of the strongest non-DC bin, or 0 when
// the trace is too short or flat.
func DominantFrequency(trace []float64, dt float64) float64 {
	s := PowerSpectrum(trace, dt, false)
	if len(s.Power) < 2 {
		return 0
	}
	k := 1 + floats.MaxIdx(s.Power[1:])
	if s.Power[k] == 0 {
		return 0
	}
	return s.Freq[k]
}
