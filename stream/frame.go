package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/lerpease/util"
)

// Kind identifies what an Instruction draws.
type Kind uint8

const (
	// KindBackground fills the rectangle X, Y, W, H. It is drawn untranslated.
	KindBackground Kind = iota
	// KindMarker draws a circle centred on X, Y with diameter W, shifted by the
	// frame offset.
	KindMarker
)

const (
	headerSize      = 15
	instructionSize = 25
)

// ErrShortFrame is returned when binary frame data is truncated.
var ErrShortFrame = errors.New("frame data too short")

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Instruction is a single draw call.
type Instruction struct {
	Kind         Kind
	Colour       colorful.Color
	Alpha        float64
	X            float64
	Y            float64
	W            float64
	H            float64
	StrokeWeight float64
}

// NRGBA converts the instruction colour and alpha to a standard colour.
func (in Instruction) NRGBA() color.NRGBA {
	r, g, b := in.Colour.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha255(in.Alpha)}
}

// Frame is the list of instructions emitted for one tick, background first.
type Frame struct {
	Offset       Point
	Progress     float64
	Reset        bool
	Instructions []Instruction
}

// NewFrame creates a new Frame instance with room for n instructions.
func NewFrame(n int) *Frame {
	f := new(Frame)
	f.Instructions = make([]Instruction, 0, n)
	return f
}

// Markers returns the marker instructions in draw order.
func (f *Frame) Markers() []Instruction {
	markers := make([]Instruction, 0, len(f.Instructions))
	for _, in := range f.Instructions {
		if in.Kind == KindMarker {
			markers = append(markers, in)
		}
	}
	return markers
}

// InterpolateFrame blends f towards f2. Frames with different instruction
// counts cut over at the midpoint.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	if len(f.Instructions) != len(f2.Instructions) {
		if transitionPoint < 0.5 {
			return f
		}
		return f2
	}

	out := NewFrame(len(f.Instructions))
	out.Offset = Point{
		X: util.Lerp(f.Offset.X, f2.Offset.X, transitionPoint),
		Y: util.Lerp(f.Offset.Y, f2.Offset.Y, transitionPoint),
	}
	out.Progress = f2.Progress
	out.Reset = f2.Reset
	for i, a := range f.Instructions {
		b := f2.Instructions[i]
		out.Instructions = append(out.Instructions, Instruction{
			Kind:         b.Kind,
			Colour:       a.Colour.BlendHcl(b.Colour, transitionPoint).Clamped(),
			Alpha:        util.Lerp(a.Alpha, b.Alpha, transitionPoint),
			X:            util.Lerp(a.X, b.X, transitionPoint),
			Y:            util.Lerp(a.Y, b.Y, transitionPoint),
			W:            util.Lerp(a.W, b.W, transitionPoint),
			H:            util.Lerp(a.H, b.H, transitionPoint),
			StrokeWeight: util.Lerp(a.StrokeWeight, b.StrokeWeight, transitionPoint),
		})
	}

	return out
}

// MarshalBinary converts a Frame into little-endian binary data.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Instructions) > math.MaxUint16 {
		return nil, fmt.Errorf("too many instructions: %d", len(f.Instructions))
	}

	data = make([]byte, headerSize, headerSize+len(f.Instructions)*instructionSize)
	binary.LittleEndian.PutUint16(data[0:], uint16(len(f.Instructions)))
	putFloat(data[2:], f.Offset.X)
	putFloat(data[6:], f.Offset.Y)
	putFloat(data[10:], f.Progress)
	if f.Reset {
		data[14] = 1
	}

	for _, in := range f.Instructions {
		c := in.NRGBA()
		data = append(data, byte(in.Kind), c.R, c.G, c.B, c.A)
		for _, v := range []float64{in.X, in.Y, in.W, in.H, in.StrokeWeight} {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v)))
		}
	}

	return data, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary. Geometry is carried
// at float32 precision and colours at 8 bits per channel.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return ErrShortFrame
	}

	count := int(binary.LittleEndian.Uint16(data[0:]))
	if len(data) < headerSize+count*instructionSize {
		return fmt.Errorf("%w: %d instructions in %d bytes", ErrShortFrame, count, len(data))
	}

	f.Offset = Point{X: getFloat(data[2:]), Y: getFloat(data[6:])}
	f.Progress = getFloat(data[10:])
	f.Reset = data[14] != 0
	f.Instructions = make([]Instruction, count)
	for i := 0; i < count; i++ {
		b := data[headerSize+i*instructionSize:]
		f.Instructions[i] = Instruction{
			Kind:         Kind(b[0]),
			Colour:       colorful.Color{R: float64(b[1]) / 255, G: float64(b[2]) / 255, B: float64(b[3]) / 255},
			Alpha:        float64(b[4]) / 255,
			X:            getFloat(b[5:]),
			Y:            getFloat(b[9:]),
			W:            getFloat(b[13:]),
			H:            getFloat(b[17:]),
			StrokeWeight: getFloat(b[21:]),
		}
	}

	return nil
}

func putFloat(b []byte, v float64) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
}

func getFloat(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

func alpha255(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}
