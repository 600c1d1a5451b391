package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matt-g-everett/lerpease/curve"
	"github.com/matt-g-everett/lerpease/stream"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	a := NewApi(stream.DefaultSketchConfig(), curve.NewRegistry(), "")
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestCurvesList(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/curves")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range names {
		if n == curve.NameOutBounce {
			found = true
		}
	}
	if !found {
		t.Fatalf("%s missing from %v", curve.NameOutBounce, names)
	}
}

func TestCurveSamples(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		path   string
		status int
		length int
	}{
		{"default_samples", "/curves/linear", http.StatusOK, defaultSamples},
		{"explicit_samples", "/curves/ease-out-bounce?samples=3", http.StatusOK, 3},
		{"unknown_curve", "/curves/ease-sideways", http.StatusNotFound, 0},
		{"bad_samples", "/curves/linear?samples=0", http.StatusBadRequest, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + c.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != c.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, c.status)
			}
			if c.status != http.StatusOK {
				return
			}

			var body CurveSamples
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if len(body.Samples) != c.length {
				t.Fatalf("got %d samples, want %d", len(body.Samples), c.length)
			}
			if body.Samples[0] != 0 || body.Samples[len(body.Samples)-1] < 0.999 {
				t.Fatalf("unexpected endpoints %v", body.Samples)
			}
		})
	}
}

func TestFramePNG(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/frame.png?elapsed=600")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 720 || img.Bounds().Dy() != 450 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestFrameRejectsNegativeElapsed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/frame.png?elapsed=-1")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestUpdateReplacesSketchAndCurves(t *testing.T) {
	a := NewApi(stream.DefaultSketchConfig(), curve.NewRegistry(), "")
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	// Warm the sample cache with the built-in linear curve.
	resp, err := http.Get(srv.URL + "/curves/linear?samples=3")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	reg := curve.NewRegistry()
	if err := reg.RegisterScript("half", "out = t / 2"); err != nil {
		t.Fatal(err)
	}
	sketch := stream.DefaultSketchConfig()
	sketch.Width = 320
	sketch.Height = 200
	sketch.Markers = []stream.MarkerConfig{{Curve: "half", Y: 100}}
	a.Update(sketch, reg)

	resp, err = http.Get(srv.URL + "/curves")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	err = json.NewDecoder(resp.Body).Decode(&names)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range names {
		if n == "half" {
			found = true
		}
	}
	if !found {
		t.Fatalf("scripted curve missing after update: %v", names)
	}

	resp, err = http.Get(srv.URL + "/curves/half?samples=3")
	if err != nil {
		t.Fatal(err)
	}
	var body CurveSamples
	err = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(body.Samples) != 3 || body.Samples[2] != 0.5 {
		t.Fatalf("half samples = %v", body.Samples)
	}

	resp, err = http.Get(srv.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 200 {
		t.Fatalf("frame still uses the old canvas: %v", img.Bounds())
	}
}
