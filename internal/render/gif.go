package render

import (
	"errors"
	"image"
	"image/color"
	"io"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/tlinesim/internal/tline"
	"github.com/san-kum/tlinesim/internal/viz"
)

var ErrNoFrames = errors.New("render: nothing to animate")

// Trace is one line drawn in every frame of an animation, shifted up by
// Offset volts so stacked lines do not overlap.
type Trace struct {
	Name      string
	Positions []float64
	Field     *tline.Field
	Offset    float64
}

type GIFOptions struct {
	Cols, Rows int // canvas size in braille cells
	Every      int // keep one frame in Every time steps
	Delay      int // hundredths of a second between frames
	Lo, Hi     float64
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Cols: 60, Rows: 20, Every: 1, Delay: 2}
}

var gifPalette = color.Palette{
	color.Black,
	color.Gray{Y: 0x60},
	color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff},
	color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff},
	color.RGBA{R: 0x44, G: 0xaa, B: 0xff, A: 0xff},
	color.White,
}

// AnimateGIF writes voltage against position for every trace, one frame
// per kept time step. Traces share the x axis, so shorter lines stop part
// way across. When o.Lo == o.Hi the voltage range is taken from the data.
func AnimateGIF(w io.Writer, traces []Trace, o GIFOptions) error {
	if len(traces) == 0 {
		return ErrNoFrames
	}
	if o.Cols <= 0 || o.Rows <= 0 {
		d := DefaultGIFOptions()
		o.Cols, o.Rows = d.Cols, d.Rows
	}
	o.Every = max(o.Every, 1)

	steps := traces[0].Field.Steps()
	xhi := 0.0
	lo, hi := o.Lo, o.Hi
	auto := lo == hi
	if auto {
		lo, hi = traces[0].Field.Bounds()
		lo, hi = lo+traces[0].Offset, hi+traces[0].Offset
	}
	for _, t := range traces {
		steps = min(steps, t.Field.Steps())
		if n := len(t.Positions); n > 0 {
			xhi = max(xhi, t.Positions[n-1])
		}
		if auto {
			l, h := t.Field.Bounds()
			lo, hi = min(lo, l+t.Offset), max(hi, h+t.Offset)
		}
	}
	if steps == 0 {
		return ErrNoFrames
	}
	if auto {
		pad := 0.1 * (hi - lo)
		if pad == 0 {
			pad = 0.5
		}
		lo, hi = lo-pad, hi+pad
	}

	c := viz.NewCanvas(o.Cols, o.Rows)
	var frames []*image.Paletted
	for step := 0; step < steps; step += o.Every {
		frame := image.NewPaletted(image.Rect(0, 0, o.Cols*8, o.Rows*16), gifPalette)

		c.Clear()
		c.HLine(0, lo, hi)
		overlay(frame, c.Image(8, 16), 1)

		for i, t := range traces {
			c.Clear()
			row := t.Field.Row(step)
			floats.AddConst(t.Offset, row)
			c.PlotXY(t.Positions, row, 0, xhi, lo, hi)
			overlay(frame, c.Image(8, 16), uint8(2+i%(len(gifPalette)-2)))
		}
		frames = append(frames, frame)
	}
	return viz.EncodeGIF(w, frames, o.Delay)
}

// overlay paints every lit pixel of src onto dst with palette index idx.
func overlay(dst, src *image.Paletted, idx uint8) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.ColorIndexAt(x, y) != 0 {
				dst.SetColorIndex(x, y, idx)
			}
		}
	}
}
