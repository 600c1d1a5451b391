package stream

// An Animation produces one Frame per call, driven by the caller's frame delta.
type Animation interface {
	AdvanceFrame(deltaMs float64) *Frame
	Reset()
}
