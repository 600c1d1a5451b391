package stream

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDuration is returned for a cycle duration that is not a positive
// finite number of seconds.
var ErrInvalidDuration = errors.New("duration must be positive and finite")

// Timeline accumulates elapsed time over a fixed-length cycle.
type Timeline struct {
	elapsedSecs  float64
	durationSecs float64
}

// NewTimeline creates a Timeline starting at zero.
func NewTimeline(durationSecs float64) (*Timeline, error) {
	if !(durationSecs > 0) || math.IsInf(durationSecs, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, durationSecs)
	}

	tl := new(Timeline)
	tl.durationSecs = durationSecs
	return tl, nil
}

// Advance adds a frame delta given in milliseconds.
func (tl *Timeline) Advance(deltaMs float64) {
	tl.elapsedSecs += deltaMs / 1000
}

// Progress is the fraction of the cycle elapsed. It is not clamped and can
// exceed 1 on the frame that completes the cycle.
func (tl *Timeline) Progress() float64 {
	return tl.elapsedSecs / tl.durationSecs
}

// ResetIfComplete returns the timeline to zero once the cycle is complete and
// reports whether it did so.
func (tl *Timeline) ResetIfComplete() bool {
	if tl.elapsedSecs >= tl.durationSecs {
		tl.elapsedSecs = 0
		return true
	}
	return false
}

// Reset returns the timeline to zero.
func (tl *Timeline) Reset() {
	tl.elapsedSecs = 0
}

// Elapsed returns the seconds accumulated in the current cycle.
func (tl *Timeline) Elapsed() float64 {
	return tl.elapsedSecs
}

// Duration returns the cycle length in seconds.
func (tl *Timeline) Duration() float64 {
	return tl.durationSecs
}
