package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/tlinesim/internal/config"
	"github.com/san-kum/tlinesim/internal/tline"
)

func TestGridSearchSize(t *testing.T) {
	g := NewGridSearch([]string{"z_source", "length"}, [][]float64{{10, 20, 30}, {0.25, 0.5}}, 1)
	if g.Size() != 6 {
		t.Errorf("Size() = %d, want 6", g.Size())
	}
	if NewGridSearch(nil, nil, 1).Size() != 0 {
		t.Error("empty grid should have size 0")
	}
}

func TestGridSearchOrder(t *testing.T) {
	g := NewGridSearch([]string{"z_source", "length"}, [][]float64{{10, 20}, {0.25, 0.5}}, 2)
	base := config.DefaultConfig()
	base.Steps, base.Samples = 40, 10

	cands, _, err := g.Search(context.Background(), base, func(*tline.Field, *config.Config) float64 { return 0 })
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := [][2]float64{{10, 0.25}, {10, 0.5}, {20, 0.25}, {20, 0.5}}
	if len(cands) != len(want) {
		t.Fatalf("candidates = %d", len(cands))
	}
	for i, c := range cands {
		if c.Config.ZSource != want[i][0] || c.Config.Length != want[i][1] {
			t.Errorf("candidate %d = zs %g length %g, want %v", i, c.Config.ZSource, c.Config.Length, want[i])
		}
		if c.Params["z_source"] != want[i][0] || c.Params["length"] != want[i][1] {
			t.Errorf("candidate %d params = %v", i, c.Params)
		}
	}
	if base.ZSource != config.DefaultZSource {
		t.Error("search modified the base config")
	}
}

// A source impedance matched to the line leaves the open load peaking at
// the drive amplitude.
func TestGridSearchSeriesTermination(t *testing.T) {
	g := NewGridSearch([]string{"z_source"}, [][]float64{{10, 50, 100, 200}}, 0)
	base := config.DefaultConfig()

	cands, best, err := g.Search(context.Background(), base, Deviation("load_peak", 1))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := cands[best].Config.ZSource; got != 100 {
		t.Errorf("best z_source = %g, want 100 (scores %v)", got, scores(cands))
	}
}

func TestMetricUndefined(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	f, err := p.Simulate()
	if err != nil {
		t.Fatal(err)
	}
	if s := Metric("no_such_metric")(f, cfg); !math.IsInf(s, 1) {
		t.Errorf("score = %v, want +Inf", s)
	}
}

func TestGridSearchErrors(t *testing.T) {
	base := config.DefaultConfig()
	obj := Metric("load_peak")

	if _, _, err := NewGridSearch(nil, nil, 1).Search(context.Background(), base, obj); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("empty grid err = %v", err)
	}
	if _, _, err := NewGridSearch([]string{"bogus"}, [][]float64{{1}}, 1).Search(context.Background(), base, obj); !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("unknown param err = %v", err)
	}
	if _, _, err := NewGridSearch([]string{"length"}, [][]float64{{-1}}, 1).Search(context.Background(), base, obj); err == nil {
		t.Error("expected invalid length to fail")
	}
}

func scores(cs []Candidate) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Score
	}
	return out
}
