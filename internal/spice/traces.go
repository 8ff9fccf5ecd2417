package spice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrNoTrace = errors.New("spice: no trace data")

// Traces are the three probe voltages of a reference run.
type Traces struct {
	Time   []float64
	Source []float64
	Mid    []float64
	Load   []float64
}

func (t *Traces) Len() int { return len(t.Time) }

// ReadTraces parses wrdata output. Both the single-scale layout (time and
// three values) and the default layout (a time column before every value)
// are accepted. Header and other non-numeric lines are skipped, as are rows
// whose time does not advance.
func ReadTraces(r io.Reader) (*Traces, error) {
	tr := &Traces{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		vals := make([]float64, len(fields))
		numeric := true
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				numeric = false
				break
			}
			vals[i] = v
		}
		if !numeric {
			continue
		}

		var t, vs, vm, vl float64
		switch len(vals) {
		case 4:
			t, vs, vm, vl = vals[0], vals[1], vals[2], vals[3]
		case 6:
			t, vs, vm, vl = vals[0], vals[1], vals[3], vals[5]
		default:
			return nil, fmt.Errorf("spice: line %d: %d columns, want 4 or 6", line, len(vals))
		}

		if n := len(tr.Time); n > 0 && !(t > tr.Time[n-1]) {
			continue
		}
		tr.Time = append(tr.Time, t)
		tr.Source = append(tr.Source, vs)
		tr.Mid = append(tr.Mid, vm)
		tr.Load = append(tr.Load, vl)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if tr.Len() == 0 {
		return nil, ErrNoTrace
	}
	return tr, nil
}

// Normalize returns a copy with time converted from seconds to rise times
// after the edge starts: (t·1e9 − startNs) / riseNs.
func (t *Traces) Normalize(startNs, riseNs float64) *Traces {
	out := &Traces{
		Time:   make([]float64, t.Len()),
		Source: append([]float64(nil), t.Source...),
		Mid:    append([]float64(nil), t.Mid...),
		Load:   append([]float64(nil), t.Load...),
	}
	for i, v := range t.Time {
		out.Time[i] = (v*1e9 - startNs) / riseNs
	}
	return out
}
