package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientTable stores a look-up table of hues keyed by position.
type GradientTable []struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GetColor gets an HSV colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, s, v float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Hsv(0, s, v)
	}
	if t <= g[0].Pos {
		return colorful.Hsv(g[0].Hue, s, v)
	}

	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hsv(c2.Hue, s, v)
			}
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hsv(h, s, v)
		}
	}

	// At or past the last keypoint.
	return colorful.Hsv(g[len(g)-1].Hue, s, v)
}
