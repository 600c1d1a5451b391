// Package render rasterises sketch frames onto a persistent canvas.
//
// The canvas is never cleared between frames: each frame starts with a
// translucent background overlay, so markers leave fading trails in the same
// way as the interactive host.
package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/matt-g-everett/lerpease/stream"
	"golang.org/x/image/colornames"
)

// Rasterizer draws frames with gg.
type Rasterizer struct {
	dc *gg.Context
}

// NewRasterizer creates a canvas of the given size, initially opaque black.
func NewRasterizer(width, height int) *Rasterizer {
	r := new(Rasterizer)
	r.dc = gg.NewContext(width, height)
	r.dc.ClearWithColor(gg.Black)
	return r
}

// Draw renders every instruction in f on top of the current canvas.
func (r *Rasterizer) Draw(f *stream.Frame) error {
	for _, in := range f.Instructions {
		var err error
		switch in.Kind {
		case stream.KindBackground:
			err = r.drawBackground(in)
		case stream.KindMarker:
			err = r.drawMarker(in, f.Offset)
		default:
			err = fmt.Errorf("unknown instruction kind %d", in.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Rasterizer) drawBackground(in stream.Instruction) error {
	r.dc.SetColor(in.NRGBA())
	r.dc.DrawRectangle(in.X, in.Y, in.W, in.H)
	return r.dc.Fill()
}

func (r *Rasterizer) drawMarker(in stream.Instruction, offset stream.Point) error {
	r.dc.Push()
	defer r.dc.Pop()

	r.dc.Translate(offset.X, offset.Y)
	r.dc.DrawCircle(in.X, in.Y, in.W/2)
	r.dc.SetColor(in.NRGBA())
	if err := r.dc.FillPreserve(); err != nil {
		return err
	}

	if in.StrokeWeight <= 0 || math.IsNaN(in.StrokeWeight) {
		r.dc.ClearPath()
		return nil
	}
	r.dc.SetColor(colornames.Black)
	r.dc.SetLineWidth(in.StrokeWeight)
	return r.dc.Stroke()
}

// Width returns the canvas width in pixels.
func (r *Rasterizer) Width() int {
	return r.dc.Width()
}

// Height returns the canvas height in pixels.
func (r *Rasterizer) Height() int {
	return r.dc.Height()
}

// Image returns the current canvas.
func (r *Rasterizer) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (r *Rasterizer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the canvas to a PNG file.
func (r *Rasterizer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// Close releases the canvas.
func (r *Rasterizer) Close() error {
	return r.dc.Close()
}
