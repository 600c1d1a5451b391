package util

import (
	"sync"

	"github.com/matt-g-everett/lerpease/curve"
)

// Lerp interpolates between start and end by t. t is not clamped.
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// GenerateLut samples c at length evenly spaced points over [0, 1].
func GenerateLut(c curve.Curve, length int) []float64 {
	if length <= 0 {
		return nil
	}

	lut := make([]float64, length)
	if length == 1 {
		lut[0] = c(0)
		return lut
	}

	increment := 1.0 / float64(length-1)
	for i := 0; i < length; i++ {
		lut[i] = c(float64(i) * increment)
	}
	return lut
}

type lutKey struct {
	name   string
	length int
}

// Memoizer caches look-up tables by curve name and length.
type Memoizer struct {
	mu   sync.Mutex
	luts map[lutKey][]float64
}

// GenerateLutMemoized returns a cached LUT for name, generating it on first use.
// The returned slice is shared and must not be modified.
func GenerateLutMemoized(name string, c curve.Curve, length int, memoizer *Memoizer) []float64 {
	key := lutKey{name: name, length: length}

	memoizer.mu.Lock()
	defer memoizer.mu.Unlock()

	if memoizer.luts == nil {
		memoizer.luts = make(map[lutKey][]float64)
	}
	if lut, ok := memoizer.luts[key]; ok {
		return lut
	}

	lut := GenerateLut(c, length)
	memoizer.luts[key] = lut
	return lut
}
