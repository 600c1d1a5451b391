package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matt-g-everett/lerpease/curve"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// HSB is a colour in hue (degrees), saturation and brightness (0-1).
type HSB struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Brightness float64 `yaml:"brightness"`
}

// MarkerConfig places one eased marker. A marker without a hue takes its
// colour from the sketch palette.
type MarkerConfig struct {
	Curve string   `yaml:"curve"`
	Y     float64  `yaml:"y"`
	Hue   *float64 `yaml:"hue"`
}

// SketchConfig describes the canvas and the markers drawn on it.
type SketchConfig struct {
	Width        int            `yaml:"width"`
	Height       int            `yaml:"height"`
	DurationSecs float64        `yaml:"durationSecs"`
	Margin       float64        `yaml:"margin"`
	Diameter     float64        `yaml:"diameter"`
	StrokeWeight float64        `yaml:"strokeWeight"`
	OffsetY      float64        `yaml:"offsetY"`
	Saturation   float64        `yaml:"saturation"`
	Brightness   float64        `yaml:"brightness"`
	Palette      GradientTable  `yaml:"palette"`
	Background   HSB            `yaml:"background"`
	TrailAlpha   float64        `yaml:"trailAlpha"`
	Markers      []MarkerConfig `yaml:"markers"`
}

// Config is the full daemon configuration read from YAML.
type Config struct {
	FrameRate      float64           `yaml:"frameRate"`
	TransitionSecs float64           `yaml:"transitionSecs"`
	Sketch         SketchConfig      `yaml:"sketch"`
	Curves         map[string]string `yaml:"curves"`
	Mqtt           struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Api struct {
		Listen string `yaml:"listen"`
		Static string `yaml:"static"`
	} `yaml:"api"`
}

// DefaultSketchConfig reproduces the lerp/easing blog sketch.
func DefaultSketchConfig() SketchConfig {
	return SketchConfig{
		Width:        720,
		Height:       450,
		DurationSecs: 1.2,
		Margin:       50,
		Diameter:     60,
		StrokeWeight: 4,
		OffsetY:      -5,
		Saturation:   0.5,
		Brightness:   1.0,
		Palette: GradientTable{
			{0.0, 0.0},
			{160.0, 1.0},
		},
		Background: HSB{Hue: 0, Saturation: 0, Brightness: 0.3},
		TrailAlpha: 0.1,
		Markers: []MarkerConfig{
			{Curve: curve.NameLinear, Y: 50},
			{Curve: curve.NameOutSine, Y: 140},
			{Curve: curve.NameInOutSine, Y: 230},
			{Curve: curve.NameInOutCubic, Y: 320},
			{Curve: curve.NameOutBounce, Y: 410},
		},
	}
}

// DefaultConfig returns the configuration used when a field is not set.
func DefaultConfig() Config {
	var c Config
	c.FrameRate = 30
	c.TransitionSecs = 1
	c.Sketch = DefaultSketchConfig()
	c.Mqtt.ClientID = "lerpease"
	c.Mqtt.Topics.Stream = "lerpease/stream"
	c.Mqtt.Topics.Control = "lerpease/control"
	c.Api.Listen = ":3000"
	c.Api.Static = "client/dist"
	return c
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decode config: %w", err)
	}

	return c, c.Validate()
}

// ReadConfig reads and validates a YAML config file.
func ReadConfig(configPath string) (Config, error) {
	f, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return ParseConfig(f)
}

// Validate checks the values that would otherwise break the frame loop.
func (c Config) Validate() error {
	if !(c.FrameRate > 0) {
		return fmt.Errorf("%w: frameRate must be positive, got %v", ErrInvalidConfig, c.FrameRate)
	}
	if c.TransitionSecs < 0 {
		return fmt.Errorf("%w: transitionSecs must not be negative", ErrInvalidConfig)
	}
	return c.Sketch.Validate()
}

// Validate checks the sketch geometry and markers.
func (s SketchConfig) Validate() error {
	if !(s.DurationSecs > 0) || math.IsInf(s.DurationSecs, 0) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ErrInvalidDuration, s.DurationSecs)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: canvas must be non-empty, got %dx%d", ErrInvalidConfig, s.Width, s.Height)
	}
	if s.Diameter < 0 || s.StrokeWeight < 0 {
		return fmt.Errorf("%w: diameter and strokeWeight must not be negative", ErrInvalidConfig)
	}
	for i, m := range s.Markers {
		if m.Curve == "" {
			return fmt.Errorf("%w: marker %d has no curve", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Registry builds a curve registry including the scripted curves.
func (c Config) Registry() (*curve.Registry, error) {
	reg := curve.NewRegistry()
	for name, src := range c.Curves {
		if err := reg.RegisterScript(name, src); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ColdChanges names the settings that differ in next but only take effect on
// restart.
func (c Config) ColdChanges(next Config) []string {
	var changed []string
	if c.FrameRate != next.FrameRate {
		changed = append(changed, "frameRate")
	}
	if c.TransitionSecs != next.TransitionSecs {
		changed = append(changed, "transitionSecs")
	}
	if c.Mqtt != next.Mqtt {
		changed = append(changed, "mqtt")
	}
	if c.Api != next.Api {
		changed = append(changed, "api")
	}
	return changed
}
