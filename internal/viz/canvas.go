package viz

import (
	"image"
	"image/color"
	"math"
	"strings"
)

// Braille cells hold a 2x4 dot matrix:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Width x Height grid of braille cells, addressed in dots:
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set turns on the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// row maps a value in [lo, hi] to a dot row, hi at the top. Values outside
// the range are clamped and NaN maps to lo.
func (c *Canvas) row(v, lo, hi float64) int {
	_, h := c.Dots()
	if !(hi > lo) {
		hi = lo + 1
	}
	if math.IsNaN(v) {
		v = lo
	}
	f := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	return h - 1 - int(math.Round(f*float64(h-1)))
}

// Plot draws ys as a polyline spread evenly across the full canvas width.
func (c *Canvas) Plot(ys []float64, lo, hi float64) {
	w, _ := c.Dots()
	switch len(ys) {
	case 0:
		return
	case 1:
		y := c.row(ys[0], lo, hi)
		c.DrawLine(0, y, w-1, y)
		return
	}

	px, py := 0, c.row(ys[0], lo, hi)
	for i := 1; i < len(ys); i++ {
		x := int(math.Round(float64(i) * float64(w-1) / float64(len(ys)-1)))
		y := c.row(ys[i], lo, hi)
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// PlotXY draws the polyline through (xs[i], ys[i]) with x scaled from
// [xlo, xhi] onto the canvas width. Points beyond xhi are clipped at the edge.
func (c *Canvas) PlotXY(xs, ys []float64, xlo, xhi, lo, hi float64) {
	n := min(len(xs), len(ys))
	for i := 0; i < n; i++ {
		x, y := c.col(xs[i], xlo, xhi), c.row(ys[i], lo, hi)
		if i == 0 {
			c.Set(x, y)
		} else {
			px, py := c.col(xs[i-1], xlo, xhi), c.row(ys[i-1], lo, hi)
			c.DrawLine(px, py, x, y)
		}
	}
}

func (c *Canvas) col(v, lo, hi float64) int {
	w, _ := c.Dots()
	if !(hi > lo) {
		hi = lo + 1
	}
	f := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	return int(math.Round(f * float64(w-1)))
}

// HLine draws a dotted horizontal guide at v.
func (c *Canvas) HLine(v, lo, hi float64) {
	w, _ := c.Dots()
	y := c.row(v, lo, hi)
	for x := 0; x < w; x += 3 {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Image rasterizes the canvas, each cell becoming a charW x charH block of
// white dots on black.
func (c *Canvas) Image(charW, charH int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern <= 0 {
				continue
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
