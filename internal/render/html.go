package render

import (
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders c as a standalone echarts page. Non-finite samples
// become gaps, and each guide is a dashed series that is only present
// over its span.
func WriteHTML(w io.Writer, c *Chart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Title}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel, Scale: opts.Bool(true)}),
	)

	xs := make([]string, len(c.X))
	for i, x := range c.X {
		xs[i] = strconv.FormatFloat(x, 'g', 4, 64)
	}
	line.SetXAxis(xs)

	for _, s := range c.Series {
		line.AddSeries(s.Name, lineData(s.Y),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
	}
	for _, g := range c.Guides {
		y := make([]float64, len(c.X))
		for i, x := range c.X {
			y[i] = math.NaN()
			if x >= g.From && x <= g.To {
				y[i] = g.Y
			}
		}
		line.AddSeries(g.Label, lineData(y),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Color: "#555"}),
		)
	}
	return line.Render(w)
}

func lineData(ys []float64) []opts.LineData {
	data := make([]opts.LineData, len(ys))
	for i, y := range ys {
		if finite(y) {
			data[i] = opts.LineData{Value: y}
		} else {
			data[i] = opts.LineData{Value: "-"}
		}
	}
	return data
}
