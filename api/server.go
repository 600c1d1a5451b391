package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/matt-g-everett/lerpease/curve"
	"github.com/matt-g-everett/lerpease/render"
	"github.com/matt-g-everett/lerpease/stream"
	"github.com/matt-g-everett/lerpease/util"
)

const (
	defaultSamples = 64
	maxSamples     = 4096
	maxElapsedMs   = 3600 * 1000
)

// Api serves curve previews and single rendered frames.
type Api struct {
	mu       sync.RWMutex
	sketch   stream.SketchConfig
	registry *curve.Registry
	memoizer *util.Memoizer
	static   string
}

// CurveSamples is the response body for a sampled curve.
type CurveSamples struct {
	Name    string    `json:"name"`
	Samples []float64 `json:"samples"`
}

// NewApi creates an Api. An empty static directory disables file serving.
func NewApi(sketch stream.SketchConfig, registry *curve.Registry, static string) *Api {
	a := new(Api)
	a.sketch = sketch
	a.registry = registry
	a.memoizer = &util.Memoizer{}
	a.static = static
	return a
}

// Update replaces the sketch and curves served after a config reload. Cached
// curve samples are discarded because any scripted curve may have changed.
func (a *Api) Update(sketch stream.SketchConfig, registry *curve.Registry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sketch = sketch
	a.registry = registry
	a.memoizer = &util.Memoizer{}
}

func (a *Api) current() (stream.SketchConfig, *curve.Registry, *util.Memoizer) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sketch, a.registry, a.memoizer
}

// Handler returns the routes served by the Api.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /curves", a.handleCurves)
	mux.HandleFunc("GET /curves/{name}", a.handleCurve)
	mux.HandleFunc("GET /frame.png", a.handleFrame)
	if a.static != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.static)))
	}
	return mux
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a.Handler())
}

func (a *Api) handleCurves(w http.ResponseWriter, r *http.Request) {
	_, registry, _ := a.current()
	writeJSON(w, registry.Names())
}

func (a *Api) handleCurve(w http.ResponseWriter, r *http.Request) {
	_, registry, memoizer := a.current()
	name := r.PathValue("name")
	c, err := registry.Lookup(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	samples := defaultSamples
	if v := r.URL.Query().Get("samples"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSamples {
			http.Error(w, "samples must be between 1 and 4096", http.StatusBadRequest)
			return
		}
		samples = n
	}

	lut := util.GenerateLutMemoized(name, c, samples, memoizer)
	writeJSON(w, CurveSamples{Name: name, Samples: lut})
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	elapsedMs := 0.0
	if v := r.URL.Query().Get("elapsed"); v != "" {
		ms, err := strconv.ParseFloat(v, 64)
		if err != nil || !(ms >= 0) || ms > maxElapsedMs {
			http.Error(w, "elapsed must be a non-negative number of milliseconds", http.StatusBadRequest)
			return
		}
		elapsedMs = ms
	}

	sketchConfig, registry, _ := a.current()
	sketch, err := stream.NewSketch(sketchConfig, registry)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, curve.ErrUnknownCurve) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	width, height := sketch.Size()
	rast := render.NewRasterizer(width, height)
	defer rast.Close()

	if err := rast.Draw(sketch.AdvanceFrame(elapsedMs)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := rast.EncodePNG(w); err != nil {
		log.Printf("Failed to encode frame: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
