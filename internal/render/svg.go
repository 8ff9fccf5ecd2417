package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var svgColors = []string{"#00ff88", "#ffcc00", "#44aaff", "#ff4444", "#cc88ff"}

// WriteSVG draws c as one path per series on a dark background, scaled to
// width x height pixels with 10% padding. Non-finite samples break the path.
func WriteSVG(w io.Writer, c *Chart, width, height int) error {
	if err := c.Validate(); err != nil {
		return err
	}

	minX, maxX := c.X[0], c.X[len(c.X)-1]
	for _, x := range c.X {
		minX, maxX = min(minX, x), max(maxX, x)
	}
	minY, maxY := c.bounds()

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
	if c.Title != "" {
		fmt.Fprintf(bw, "<title>%s</title>\n", escape(c.Title))
	}

	for _, g := range c.Guides {
		if !finite(g.Y) {
			continue
		}
		fmt.Fprintf(bw, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-dasharray="4 4"><title>%s</title></line>
`, px(g.From), py(g.Y), px(g.To), py(g.Y), escape(g.Label))
	}

	for i, s := range c.Series {
		var d strings.Builder
		pen := false
		for j, y := range s.Y {
			if !finite(y) || !finite(c.X[j]) {
				pen = false
				continue
			}
			cmd := " L"
			if !pen {
				cmd = " M"
			}
			fmt.Fprintf(&d, "%s%.1f,%.1f", cmd, px(c.X[j]), py(y))
			pen = true
		}
		if d.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"><title>%s</title></path>
`, svgColors[i%len(svgColors)], strings.TrimSpace(d.String()), escape(s.Name))
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
