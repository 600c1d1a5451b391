package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matt-g-everett/lerpease/curve"
	"github.com/matt-g-everett/lerpease/stream"
)

func newSketch(t *testing.T) *stream.Sketch {
	t.Helper()
	s, err := stream.NewSketch(stream.DefaultSketchConfig(), curve.NewRegistry())
	if err != nil {
		t.Fatalf("NewSketch: %v", err)
	}
	return s
}

func TestRasterizerDrawsMarkers(t *testing.T) {
	s := newSketch(t)
	w, h := s.Size()
	r := NewRasterizer(w, h)
	defer r.Close()

	if err := r.Draw(s.AdvanceFrame(0)); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := r.Image()
	if img.Bounds().Dx() != 720 || img.Bounds().Dy() != 450 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	// The linear marker starts at (50, 50) shifted up by 5.
	cr, cg, cb, _ := img.At(50, 45).RGBA()
	br, bg, bb, _ := img.At(360, 100).RGBA()
	if cr == br && cg == bg && cb == bb {
		t.Fatal("marker centre has the background colour")
	}
	if cr <= cg {
		t.Fatalf("expected a red-dominant marker, got r=%d g=%d", cr, cg)
	}
}

func TestRasterizerEncodePNG(t *testing.T) {
	s := newSketch(t)
	w, h := s.Size()
	r := NewRasterizer(w, h)
	defer r.Close()

	for i := 0; i < 3; i++ {
		if err := r.Draw(s.AdvanceFrame(16)); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != w {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), w)
	}
}

func TestRasterizerRejectsUnknownKind(t *testing.T) {
	r := NewRasterizer(10, 10)
	defer r.Close()

	f := stream.NewFrame(1)
	f.Instructions = append(f.Instructions, stream.Instruction{Kind: stream.Kind(9)})
	if err := r.Draw(f); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func rgb8(r *Rasterizer, x, y int) [3]uint32 {
	cr, cg, cb, _ := r.Image().At(x, y).RGBA()
	return [3]uint32{cr >> 8, cg >> 8, cb >> 8}
}

func TestRasterizerLeavesFadingTrail(t *testing.T) {
	s := newSketch(t)
	w, h := s.Size()
	r := NewRasterizer(w, h)
	defer r.Close()

	if err := r.Draw(s.AdvanceFrame(0)); err != nil {
		t.Fatal(err)
	}
	marker := rgb8(r, 50, 45)

	// The linear marker moves to x = 205, 360, 515; nothing redraws (50, 45).
	for i := 0; i < 3; i++ {
		if err := r.Draw(s.AdvanceFrame(300)); err != nil {
			t.Fatal(err)
		}
	}

	trail := rgb8(r, 50, 45)
	untouched := rgb8(r, 715, 445)

	if trail == marker {
		t.Fatalf("trail pixel %v still has the marker colour", trail)
	}
	if trail == untouched {
		t.Fatalf("trail pixel %v was cleared to the background", trail)
	}
	if !(trail[0] < marker[0] && trail[0] > untouched[0]+50) {
		t.Fatalf("expected a fading red trail: marker %v, trail %v, background %v", marker, trail, untouched)
	}
}
