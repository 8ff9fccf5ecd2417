package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrLength = errors.New("analysis: traces differ in length")

// Peak returns the index and value of the largest sample, or -1 for an
// empty trace.
func Peak(trace []float64) (int, float64) {
	if len(trace) == 0 {
		return -1, math.NaN()
	}
	i := floats.MaxIdx(trace)
	return i, trace[i]
}

// TroughAfter returns the index and value of the smallest sample at or
// after from.
func TroughAfter(trace []float64, from int) (int, float64) {
	if from < 0 {
		from = 0
	}
	if from >= len(trace) {
		return -1, math.NaN()
	}
	i := from + floats.MinIdx(trace[from:])
	return i, trace[i]
}

// ArrivalIndex is the first sample whose magnitude reaches threshold, or -1.
func ArrivalIndex(trace []float64, threshold float64) int {
	for i, v := range trace {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return -1
}

// SettlingIndex is the first sample from which the trace stays within tol
// of final, or -1 when the last sample is still outside.
func SettlingIndex(trace []float64, final, tol float64) int {
	idx := -1
	for i := len(trace) - 1; i >= 0; i-- {
		if math.Abs(trace[i]-final) > tol {
			break
		}
		idx = i
	}
	return idx
}

// RMSDiff is the root-mean-square difference of two equal-length traces.
func RMSDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLength, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 2) / math.Sqrt(float64(len(a))), nil
}

// Summary collects the figures of merit of one probe trace.
type Summary struct {
	Peak          float64
	PeakTime      float64
	Trough        float64
	TroughTime    float64
	Arrival       float64
	Final         float64
	Settling      float64
	SettledWithin float64
	RingingFreq   float64
}

// Summarize measures trace sampled every dt. Arrival is where the trace
// first reaches 10% of its peak magnitude. Settling uses a 2% band around
// the final value. Times of events that never happen are NaN.
func Summarize(trace []float64, dt float64) Summary {
	s := Summary{
		PeakTime:   math.NaN(),
		TroughTime: math.NaN(),
		Arrival:    math.NaN(),
		Settling:   math.NaN(),
		Peak:       math.NaN(),
		Trough:     math.NaN(),
		Final:      math.NaN(),
	}
	if len(trace) == 0 {
		return s
	}

	at := func(i int) float64 {
		if i < 0 {
			return math.NaN()
		}
		return float64(i) * dt
	}

	pi, pv := Peak(trace)
	s.Peak, s.PeakTime = pv, at(pi)
	ti, tv := TroughAfter(trace, pi)
	s.Trough, s.TroughTime = tv, at(ti)

	scale := math.Max(math.Abs(floats.Max(trace)), math.Abs(floats.Min(trace)))
	if scale > 0 {
		s.Arrival = at(ArrivalIndex(trace, 0.1*scale))
	}

	s.Final = trace[len(trace)-1]
	s.SettledWithin = 0.02 * scale
	s.Settling = at(SettlingIndex(trace, s.Final, s.SettledWithin))
	s.RingingFreq = DominantFrequency(trace, dt)
	return s
}

// Metrics flattens the summary for run metadata. NaN entries are dropped.
func (s Summary) Metrics(prefix string) map[string]float64 {
	all := map[string]float64{
		"peak":         s.Peak,
		"peak_time":    s.PeakTime,
		"trough":       s.Trough,
		"trough_time":  s.TroughTime,
		"arrival":      s.Arrival,
		"final":        s.Final,
		"settling":     s.Settling,
		"ringing_freq": s.RingingFreq,
	}
	out := make(map[string]float64, len(all))
	for k, v := range all {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[prefix+k] = v
	}
	return out
}
