package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/tlinesim/internal/analysis"
	"github.com/san-kum/tlinesim/internal/tline"
)

// Probe fractions reported alongside every export: source, quarter, load.
var ProbeFractions = []float64{0, 0.25, 1}

// ProbeName labels a probe by where it sits on the line.
func ProbeName(frac float64) string {
	switch frac {
	case 0:
		return "source"
	case 1:
		return "load"
	}
	return fmt.Sprintf("x=%gL", frac)
}

// ProbeMetrics summarizes every probe trace of f, keyed as
// "<probe>_<metric>", for example "load_peak". Undefined metrics are left out.
func ProbeMetrics(f *tline.Field, endT float64) map[string]float64 {
	out := map[string]float64{}
	dt := endT / float64(f.Steps())
	for _, frac := range ProbeFractions {
		for k, v := range analysis.Summarize(f.Probe(frac), dt).Metrics(ProbeName(frac) + "_") {
			out[k] = v
		}
	}
	return out
}

type ProbeTrace struct {
	Fraction float64   `json:"fraction"`
	Index    int       `json:"index"`
	Voltage  []float64 `json:"voltage"`
}

type ExportData struct {
	RunMetadata
	Times     []float64    `json:"times"`
	Positions []float64    `json:"positions"`
	Field     [][]float64  `json:"field"`
	Probes    []ProbeTrace `json:"probes"`
}

func NewExport(meta RunMetadata, f *tline.Field) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Times:       f.TimeAxis(meta.EndTime),
		Positions:   f.PositionAxis(meta.Length),
		Field:       f.Rows(),
	}
	data.Steps = f.Steps()
	data.Samples = f.Samples()

	for _, frac := range ProbeFractions {
		data.Probes = append(data.Probes, ProbeTrace{
			Fraction: frac,
			Index:    f.ProbeIndex(frac),
			Voltage:  f.Probe(frac),
		})
	}
	return data
}

func ExportJSON(w io.Writer, meta RunMetadata, f *tline.Field) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExport(meta, f))
}
