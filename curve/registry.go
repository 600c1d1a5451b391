package curve

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fogleman/ease"
)

// Names of the curves drawn by the default sketch.
const (
	NameLinear     = "linear"
	NameOutSine    = "ease-out-sine"
	NameInOutSine  = "ease-in-out-sine"
	NameInOutCubic = "ease-in-out-cubic"
	NameOutBounce  = "ease-out-bounce"
)

var (
	// ErrUnknownCurve is returned when a name has no registered curve.
	ErrUnknownCurve  = errors.New("unknown curve")
	// ErrReservedCurve is returned when a scripted curve would replace one of
	// the exact sketch curves.
	ErrReservedCurve = errors.New("curve name is reserved")
)

// IsReserved reports whether name belongs to one of the exact sketch curves.
func IsReserved(name string) bool {
	switch name {
	case NameLinear, NameOutSine, NameInOutSine, NameInOutCubic, NameOutBounce:
		return true
	}
	return false
}

// Registry resolves curves by name. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	curves map[string]Curve
}

// NewRegistry creates a Registry holding the sketch curves plus the extra
// curves from the ease package.
func NewRegistry() *Registry {
	r := new(Registry)
	r.curves = map[string]Curve{
		NameLinear:     Linear,
		NameOutSine:    OutSine,
		NameInOutSine:  InOutSine,
		NameInOutCubic: InOutCubic,
		NameOutBounce:  OutBounce,

		"ease-in-quad":     ease.InQuad,
		"ease-out-quad":    ease.OutQuad,
		"ease-in-out-quad": ease.InOutQuad,
		"ease-in-cubic":    ease.InCubic,
		"ease-out-cubic":   ease.OutCubic,
		"ease-in-sine":     ease.InSine,
		"ease-in-expo":     ease.InExpo,
		"ease-out-expo":    ease.OutExpo,
		"ease-in-out-expo": ease.InOutExpo,
		"ease-in-circ":     ease.InCirc,
		"ease-out-circ":    ease.OutCirc,
		"ease-out-back":    ease.OutBack,
		"ease-out-elastic": ease.OutElastic,
		"ease-in-bounce":   ease.InBounce,
	}
	return r
}

// Lookup returns the curve registered under name.
func (r *Registry) Lookup(name string) (Curve, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.curves[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return c, nil
}

// Register adds or replaces a named curve.
func (r *Registry) Register(name string, c Curve) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.curves[name] = c
}

// Names lists the registered curve names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.curves))
	for name := range r.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
