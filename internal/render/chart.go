package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/tlinesim/internal/storage"
	"github.com/san-kum/tlinesim/internal/tline"
)

var (
	ErrEmpty = errors.New("render: chart has no data")
	ErrShape = errors.New("render: series length does not match x axis")
)

// Series is one named trace sharing the chart's x axis.
type Series struct {
	Name string
	Y    []float64
}

// Guide is a horizontal reference line at Y drawn over [From, To] on the
// x axis.
type Guide struct {
	Label    string
	Y        float64
	From, To float64
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series
	Guides []Guide
}

func (c *Chart) Validate() error {
	if len(c.X) == 0 || len(c.Series) == 0 {
		return ErrEmpty
	}
	for _, s := range c.Series {
		if len(s.Y) != len(c.X) {
			return fmt.Errorf("%w: %q has %d points, x has %d", ErrShape, s.Name, len(s.Y), len(c.X))
		}
	}
	return nil
}

// ProbeChart plots voltage against time at the source, a quarter of the
// way down the line, and the load.
func ProbeChart(title string, f *tline.Field, times []float64) *Chart {
	c := &Chart{
		Title:  title,
		XLabel: "time (rise times)",
		YLabel: "voltage",
		X:      times,
	}
	for _, frac := range storage.ProbeFractions {
		c.Series = append(c.Series, Series{Name: storage.ProbeName(frac), Y: f.Probe(frac)})
	}
	return c
}

// OvershootGuides marks the first peak and the following trough expected
// at an open load, spanning [0, endT].
func OvershootGuides(maxV, zSource, zTrace, endT float64) []Guide {
	return []Guide{
		{Label: "overshoot", Y: tline.OvershootLevel(maxV, zSource, zTrace), To: endT},
		{Label: "undershoot", Y: tline.UndershootLevel(maxV, zSource, zTrace), To: endT},
	}
}

// bounds returns the finite y range over all series and guides.
func (c *Chart) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	add := func(v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	for _, s := range c.Series {
		for _, v := range s.Y {
			add(v)
		}
	}
	for _, g := range c.Guides {
		add(g.Y)
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
