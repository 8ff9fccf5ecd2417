package render

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const DefaultDPI = 150

// WritePNG draws c as a line plot of widthIn x heightIn inches. Non-finite
// samples are left out of their series.
func WritePNG(w io.Writer, c *Chart, widthIn, heightIn float64) error {
	p, err := newPlot(c)
	if err != nil {
		return err
	}

	cv := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(DefaultDPI),
	)
	p.Draw(draw.New(cv))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: cv}).WriteTo(bw); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return bw.Flush()
}

func newPlot(c *Chart) (*plot.Plot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range c.Series {
		pts := make(plotter.XYs, 0, len(s.Y))
		for j, y := range s.Y {
			if finite(y) && finite(c.X[j]) {
				pts = append(pts, plotter.XY{X: c.X[j], Y: y})
			}
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	for _, g := range c.Guides {
		if !finite(g.Y) {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{{X: g.From, Y: g.Y}, {X: g.To, Y: g.Y}})
		if err != nil {
			return nil, fmt.Errorf("guide %q: %w", g.Label, err)
		}
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(line)
	}
	return p, nil
}
