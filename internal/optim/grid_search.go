package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/tlinesim/internal/config"
	"github.com/san-kum/tlinesim/internal/storage"
	"github.com/san-kum/tlinesim/internal/tline"
)

var ErrNoCandidates = errors.New("optim: empty search grid")

// Objective scores a simulated line; lower is better.
type Objective func(f *tline.Field, cfg *config.Config) float64

// Metric minimizes one probe metric as named by storage.ProbeMetrics, for
// example "load_settling". Runs where the metric is undefined score +Inf.
func Metric(name string) Objective {
	return func(f *tline.Field, cfg *config.Config) float64 {
		v, ok := storage.ProbeMetrics(f, cfg.EndTime)[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

// Deviation minimizes how far a probe metric lands from target.
func Deviation(name string, target float64) Objective {
	m := Metric(name)
	return func(f *tline.Field, cfg *config.Config) float64 {
		return math.Abs(m(f, cfg) - target)
	}
}

type Candidate struct {
	Params map[string]float64
	Config *config.Config
	Score  float64
}

// GridSearch tries every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64, workers int) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: workers}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.paramNames) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search simulates every grid point layered over base and returns all
// candidates in grid order along with the index of the best one. Ties keep
// the earlier point.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, obj Objective) ([]Candidate, int, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, -1, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if g.Size() == 0 {
		return nil, -1, ErrNoCandidates
	}

	var cands []Candidate
	if err := g.expand(0, base, map[string]float64{}, &cands); err != nil {
		return nil, -1, err
	}

	sets := make([]tline.Params, len(cands))
	for i, c := range cands {
		p, err := c.Config.Params()
		if err != nil {
			return nil, -1, fmt.Errorf("%v: %w", c.Params, err)
		}
		sets[i] = p
	}

	fields, err := tline.Sweep(ctx, sets, g.workers)
	if err != nil {
		return nil, -1, err
	}

	best := -1
	for i, f := range fields {
		s := obj(f, cands[i].Config)
		if math.IsNaN(s) {
			s = math.Inf(1)
		}
		cands[i].Score = s
		if best < 0 || s < cands[best].Score {
			best = i
		}
	}
	return cands, best, nil
}

func (g *GridSearch) expand(depth int, cfg *config.Config, current map[string]float64, out *[]Candidate) error {
	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		c := cfg.Clone()
		c.Name = fmt.Sprintf("%s_%d", cfg.Name, len(*out))
		*out = append(*out, Candidate{Params: params, Config: c})
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next, err := cfg.With(name, val)
		if err != nil {
			return err
		}
		current[name] = val
		if err := g.expand(depth+1, next, current, out); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}
