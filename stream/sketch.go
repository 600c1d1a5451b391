package stream

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/lerpease/curve"
	"github.com/matt-g-everett/lerpease/util"
)

// Marker is a circle moved across the canvas by one easing curve.
type Marker struct {
	Name   string
	Curve  curve.Curve
	Y      float64
	Colour colorful.Color
}

// Position interpolates between start and end using the eased progress.
func (m Marker) Position(start, end, t float64) float64 {
	return util.Lerp(start, end, m.Curve(t))
}

// A Sketch is an Animation that moves one marker per easing curve across the
// canvas over a repeating cycle. All markers share the same progress.
type Sketch struct {
	timeline     *Timeline
	markers      []Marker
	width        int
	height       int
	startX       float64
	endX         float64
	diameter     float64
	strokeWeight float64
	offset       Point
	background   colorful.Color
	trailAlpha   float64
}

// NewSketch creates a Sketch, resolving marker curves from reg.
func NewSketch(cfg SketchConfig, reg *curve.Registry) (*Sketch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tl, err := NewTimeline(cfg.DurationSecs)
	if err != nil {
		return nil, err
	}

	s := new(Sketch)
	s.timeline = tl
	s.width = cfg.Width
	s.height = cfg.Height
	s.startX = cfg.Margin
	s.endX = float64(cfg.Width) - cfg.Margin
	s.diameter = cfg.Diameter
	s.strokeWeight = cfg.StrokeWeight
	s.offset = Point{X: 0, Y: cfg.OffsetY}
	s.background = colorful.Hsv(cfg.Background.Hue, cfg.Background.Saturation, cfg.Background.Brightness)
	s.trailAlpha = cfg.TrailAlpha

	s.markers = make([]Marker, 0, len(cfg.Markers))
	for i, mc := range cfg.Markers {
		c, err := reg.Lookup(mc.Curve)
		if err != nil {
			return nil, err
		}

		var colour colorful.Color
		if mc.Hue != nil {
			colour = colorful.Hsv(*mc.Hue, cfg.Saturation, cfg.Brightness)
		} else {
			pos := 0.0
			if len(cfg.Markers) > 1 {
				pos = float64(i) / float64(len(cfg.Markers)-1)
			}
			colour = cfg.Palette.GetColor(pos, cfg.Saturation, cfg.Brightness)
		}

		s.markers = append(s.markers, Marker{Name: mc.Curve, Curve: c, Y: mc.Y, Colour: colour})
	}

	return s, nil
}

// AdvanceFrame advances the timeline by deltaMs and returns the frame's draw
// instructions. The cycle resets only after the frame has been built, so the
// completing frame is drawn with progress at or beyond 1.
func (s *Sketch) AdvanceFrame(deltaMs float64) *Frame {
	s.timeline.Advance(deltaMs)
	t := s.timeline.Progress()

	f := NewFrame(len(s.markers) + 1)
	f.Offset = s.offset
	f.Progress = t

	// Translucent overlay instead of a clear leaves trails behind the markers.
	f.Instructions = append(f.Instructions, Instruction{
		Kind:   KindBackground,
		Colour: s.background,
		Alpha:  s.trailAlpha,
		W:      float64(s.width),
		H:      float64(s.height),
	})

	for _, m := range s.markers {
		f.Instructions = append(f.Instructions, Instruction{
			Kind:         KindMarker,
			Colour:       m.Colour,
			Alpha:        1,
			X:            m.Position(s.startX, s.endX, t),
			Y:            m.Y,
			W:            s.diameter,
			H:            s.diameter,
			StrokeWeight: s.strokeWeight,
		})
	}

	f.Reset = s.timeline.ResetIfComplete()
	return f
}

// Reset restarts the cycle.
func (s *Sketch) Reset() {
	s.timeline.Reset()
}

// Timeline returns the sketch's cycle timer.
func (s *Sketch) Timeline() *Timeline {
	return s.timeline
}

// Markers returns the markers in draw order.
func (s *Sketch) Markers() []Marker {
	return s.markers
}

// Size returns the canvas dimensions.
func (s *Sketch) Size() (int, int) {
	return s.width, s.height
}
