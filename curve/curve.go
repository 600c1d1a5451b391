// Package curve provides easing curves that remap normalised time to eased
// progress. Curves are total over the reals and never clamp their input, so a
// progress value that overshoots 1 for a frame is extrapolated mechanically.
package curve

import "math"

// A Curve maps normalised progress t to an eased weight.
type Curve func(t float64) float64

// Bounce constants.
const (
	bounceN1 = 7.5625
	bounceD1 = 2.75
)

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// OutSine decelerates along a quarter sine wave.
func OutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// InOutSine accelerates then decelerates along a half cosine wave.
func InOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// InOutCubic is cubic acceleration up to the midpoint, mirrored after it.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// OutBounce decelerates in four parabolic segments. Boundary values belong to
// the following segment.
func OutBounce(t float64) float64 {
	if t < 1/bounceD1 {
		return bounceN1 * t * t
	} else if t < 2/bounceD1 {
		u := t - 1.5/bounceD1
		return bounceN1*u*u + 0.75
	} else if t < 2.5/bounceD1 {
		u := t - 2.25/bounceD1
		return bounceN1*u*u + 0.9375
	}
	u := t - 2.625/bounceD1
	return bounceN1*u*u + 0.984375
}
