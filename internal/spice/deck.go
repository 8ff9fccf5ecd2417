package spice

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/tlinesim/internal/drive"
)

// Reference timing in nanoseconds: a 1 ns edge launched after a 10 ns
// settling delay, simulated for ten rise times.
const (
	DefaultRiseNs  = 1.0
	DefaultStartNs = 10.0
	DefaultProbe   = 0.25
)

var ErrDeck = errors.New("spice: invalid deck")

// Deck is a source, two cascaded lossless lines and a load. The middle node
// sits ProbeFrac of the way along the total delay. Times are in ns.
type Deck struct {
	Title     string
	ZSource   float64
	ZTrace    float64
	ZLoad     float64
	Delay     float64
	ProbeFrac float64
	Pulse     drive.Pulse
	TStop     float64
	TStep     float64
	Output    string
}

// NewDeck builds the reference circuit for a line whose length is given in
// rise times.
func NewDeck(zSource, zTrace, zLoad, length float64) Deck {
	return Deck{
		Title:     fmt.Sprintf("tline zs=%g zt=%g zl=%g len=%g", zSource, zTrace, zLoad, length),
		ZSource:   zSource,
		ZTrace:    zTrace,
		ZLoad:     zLoad,
		Delay:     length * DefaultRiseNs,
		ProbeFrac: DefaultProbe,
		Pulse: drive.Pulse{
			V1:     0,
			V2:     1,
			Delay:  DefaultStartNs,
			Rise:   DefaultRiseNs,
			Fall:   DefaultRiseNs,
			Width:  380,
			Period: 800,
		},
		TStop:  DefaultStartNs + 10*DefaultRiseNs,
		TStep:  DefaultRiseNs / 100,
		Output: "traces.dat",
	}
}

func (d Deck) Validate() error {
	switch {
	case !(d.Delay > 0):
		return fmt.Errorf("%w: delay %v", ErrDeck, d.Delay)
	case !(d.ProbeFrac > 0 && d.ProbeFrac < 1):
		return fmt.Errorf("%w: probe fraction %v", ErrDeck, d.ProbeFrac)
	case !(d.TStop > 0):
		return fmt.Errorf("%w: stop time %v", ErrDeck, d.TStop)
	case !(d.TStep > 0):
		return fmt.Errorf("%w: time step %v", ErrDeck, d.TStep)
	case !(d.ZSource > 0 && d.ZTrace > 0 && d.ZLoad > 0):
		return fmt.Errorf("%w: impedances must be positive", ErrDeck)
	case d.Output == "":
		return fmt.Errorf("%w: no output file", ErrDeck)
	}
	return nil
}

func ns(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + "n"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteNetlist writes an ngspice batch deck that runs a transient analysis
// and dumps v(vs), v(vm) and v(vl) with wrdata.
func (d Deck) WriteNetlist(w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	p := d.Pulse
	lines := []string{
		"* " + d.Title,
		fmt.Sprintf("V1 vsrc 0 PULSE(%s %s %s %s %s %s %s)",
			num(p.V1), num(p.V2), ns(p.Delay), ns(p.Rise), ns(p.Fall), ns(p.Width), ns(p.Period)),
		"RS vsrc vs " + num(d.ZSource),
		fmt.Sprintf("T1 vs 0 vm 0 Z0=%s TD=%s", num(d.ZTrace), ns(d.Delay*d.ProbeFrac)),
		fmt.Sprintf("T2 vm 0 vl 0 Z0=%s TD=%s", num(d.ZTrace), ns(d.Delay*(1-d.ProbeFrac))),
		"RL vl 0 " + num(d.ZLoad),
		fmt.Sprintf(".tran %s %s", ns(d.TStep), ns(d.TStop)),
		".control",
		"set wr_singlescale",
		"set wr_vecnames",
		"run",
		"wrdata " + d.Output + " v(vs) v(vm) v(vl)",
		".endc",
		".end",
	}
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}
