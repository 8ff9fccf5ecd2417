package fdtd

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/tlinesim/internal/analysis"
	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

func params(zS, zL float64) tline.Params {
	return tline.Params{
		Drive:   drive.Ramp(100, 20, 1),
		ZSource: zS,
		ZTrace:  100,
		ZLoad:   zL,
		Length:  0.5,
		Samples: 50,
		EndTime: 20,
	}
}

func TestMatchedLineAgreesWithTravelingWaves(t *testing.T) {
	p := params(100, 100)
	res, err := Simulate(p, Options{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	want, err := p.Simulate()
	if err != nil {
		t.Fatalf("tline: %v", err)
	}

	for _, probe := range []float64{0, 0.25, 1} {
		rms, err := analysis.RMSDiff(res.Field.Probe(probe), want.Probe(probe))
		if err != nil {
			t.Fatal(err)
		}
		if rms > 1e-3 {
			t.Errorf("probe %v: rms = %g", probe, rms)
		}
	}
	if res.Substeps != 20 {
		t.Errorf("substeps = %d, want 20", res.Substeps)
	}
}

func TestOpenLoadSettles(t *testing.T) {
	res, err := Simulate(params(100, math.Inf(1)), Options{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if v := res.Field.At(40, 49); math.Abs(v-1) > 1e-3 {
		t.Errorf("load at t=8 is %v, want 1", v)
	}
	if v := res.Field.At(0, 49); v != 0 {
		t.Errorf("load at t=0 is %v, want 0", v)
	}
}

func TestStrongSourceOvershoot(t *testing.T) {
	res, err := Simulate(params(20, 1e6), Options{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	_, peak := analysis.Peak(res.Field.Load())
	if want := tline.OvershootLevel(1, 20, 100); peak > want+0.01 || peak < want-0.2 {
		t.Errorf("peak = %v, want just under %v", peak, want)
	}
}

func TestShortedLoad(t *testing.T) {
	res, err := Simulate(params(20, 0), Options{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for k, v := range res.Field.Load() {
		if v != 0 {
			t.Fatalf("load at step %d = %v, want 0", k, v)
		}
	}
}

func TestEnergyAbsorbedByMatchedSource(t *testing.T) {
	d := make([]float64, 200)
	for k := 10; k < 30; k++ {
		d[k] = 1
	}
	p := params(100, 1e6)
	p.Drive = d

	res, err := Simulate(p, Options{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Energy[0] != 0 {
		t.Errorf("initial energy = %v", res.Energy[0])
	}
	_, peak := analysis.Peak(res.Energy)
	if peak <= 0 {
		t.Fatalf("pulse never entered the line")
	}
	if last := res.Energy[len(res.Energy)-1]; last > 1e-6*peak {
		t.Errorf("energy left on the line = %g of peak %g", last, peak)
	}
}

func TestSimulateErrors(t *testing.T) {
	if _, err := Simulate(params(100, 100), Options{Courant: 1.5}); !errors.Is(err, ErrCourant) {
		t.Errorf("courant 1.5: err = %v", err)
	}
	if _, err := Simulate(params(100, 100), Options{Courant: -1}); !errors.Is(err, ErrCourant) {
		t.Errorf("courant -1: err = %v", err)
	}

	p := params(100, 100)
	p.Samples = 1
	var pe *tline.ParamError
	if _, err := Simulate(p, Options{}); !errors.As(err, &pe) {
		t.Errorf("samples 1: err = %v, want ParamError", err)
	}
}

func TestSmallerCourantTakesMoreSubsteps(t *testing.T) {
	res, err := Simulate(params(100, 100), Options{Courant: 0.5})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Substeps != 40 {
		t.Errorf("substeps = %d, want 40", res.Substeps)
	}
}
