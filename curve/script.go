package curve

import (
	"fmt"
	"log"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptCurve evaluates a compiled tengo script. The script reads the global
// t and assigns the eased value to out.
type scriptCurve struct {
	name     string
	mu       sync.Mutex
	compiled *tengo.Compiled
	failed   bool
}

// CompileScript compiles src into a Curve. The script is evaluated at t=0 and t=1
// so that syntax and runtime errors surface at load time.
func CompileScript(name, src string) (Curve, error) {
	script := tengo.NewScript([]byte(src))
	if err := script.Add("t", 0.0); err != nil {
		return nil, err
	}
	if err := script.Add("out", 0.0); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile curve %q: %w", name, err)
	}

	s := &scriptCurve{name: name, compiled: compiled}
	for _, v := range []float64{0, 1} {
		if _, err := s.eval(v); err != nil {
			return nil, fmt.Errorf("evaluate curve %q at t=%v: %w", name, v, err)
		}
	}
	return s.Evaluate, nil
}

func (s *scriptCurve) eval(t float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compiled.Set("t", t); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	return s.compiled.Get("out").Float(), nil
}

// Evaluate runs the script for t. A script that fails at runtime yields the
// linear value so the frame can still be drawn.
func (s *scriptCurve) Evaluate(t float64) float64 {
	v, err := s.eval(t)
	if err != nil {
		s.mu.Lock()
		if !s.failed {
			log.Printf("curve %s: %v", s.name, err)
			s.failed = true
		}
		s.mu.Unlock()
		return t
	}
	return v
}

// RegisterScript compiles src and registers it under name. The exact sketch
// curves cannot be replaced.
func (r *Registry) RegisterScript(name, src string) error {
	if IsReserved(name) {
		return fmt.Errorf("%w: %q", ErrReservedCurve, name)
	}
	c, err := CompileScript(name, src)
	if err != nil {
		return err
	}
	r.Register(name, c)
	return nil
}
