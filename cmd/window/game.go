package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/matt-g-everett/lerpease/stream"
	"golang.org/x/image/colornames"
)

type Game struct {
	sketch *stream.Sketch
	last   time.Time
	paused bool
	queue  *stream.FrameQueue
}

// Enough for a few seconds without a draw, e.g. while minimised.
const maxQueuedFrames = 240

func NewGame(sketch *stream.Sketch) *Game {
	return &Game{sketch: sketch, queue: stream.NewFrameQueue(maxQueuedFrames)}
}

// Update feeds the wall-clock delta since the previous tick into the sketch.
// Space pauses, R restarts the cycle.
func (g *Game) Update() error {
	now := time.Now()
	deltaMs := 0.0
	if !g.last.IsZero() && !g.paused {
		deltaMs = float64(now.Sub(g.last).Microseconds()) / 1000
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sketch.Reset()
	}

	g.queue.Push(g.sketch.AdvanceFrame(deltaMs))
	return nil
}

// Draw paints every frame produced since the previous draw, oldest first. The
// screen is not cleared, so a draw with nothing queued leaves it untouched.
func (g *Game) Draw(screen *ebiten.Image) {
	for _, f := range g.queue.Drain() {
		drawFrame(screen, f)
	}
}

func drawFrame(screen *ebiten.Image, f *stream.Frame) {
	for _, in := range f.Instructions {
		switch in.Kind {
		case stream.KindBackground:
			vector.FillRect(screen, float32(in.X), float32(in.Y), float32(in.W), float32(in.H), in.NRGBA(), false)
		case stream.KindMarker:
			cx := float32(in.X + f.Offset.X)
			cy := float32(in.Y + f.Offset.Y)
			r := float32(in.W / 2)
			vector.FillCircle(screen, cx, cy, r, in.NRGBA(), true)
			if in.StrokeWeight > 0 {
				vector.StrokeCircle(screen, cx, cy, r, float32(in.StrokeWeight), colornames.Black, true)
			}
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sketch.Size()
}
