package stream

import (
	"errors"
	"math"
	"testing"
)

func TestNewTimelineRejectsInvalidDuration(t *testing.T) {
	for _, d := range []float64{0, -1.2, math.NaN(), math.Inf(1)} {
		if _, err := NewTimeline(d); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("NewTimeline(%v) error = %v", d, err)
		}
	}
}

func TestTimelineAdvance(t *testing.T) {
	tl, err := NewTimeline(1.2)
	if err != nil {
		t.Fatal(err)
	}

	tl.Advance(600)
	if math.Abs(tl.Elapsed()-0.6) > 1e-12 {
		t.Fatalf("elapsed = %v", tl.Elapsed())
	}
	if math.Abs(tl.Progress()-0.5) > 1e-12 {
		t.Fatalf("progress = %v", tl.Progress())
	}
	if tl.ResetIfComplete() {
		t.Fatal("reset before the cycle completed")
	}
}

func TestTimelineTrailingReset(t *testing.T) {
	tl, _ := NewTimeline(1.2)

	tl.Advance(1200)
	if p := tl.Progress(); math.Abs(p-1) > 1e-12 {
		t.Fatalf("progress at completion = %v", p)
	}
	if !tl.ResetIfComplete() {
		t.Fatal("expected reset at elapsed == duration")
	}
	if tl.Elapsed() != 0 {
		t.Fatalf("elapsed after reset = %v", tl.Elapsed())
	}
}

func TestTimelineProgressUnclamped(t *testing.T) {
	tl, _ := NewTimeline(1.2)
	tl.Advance(1250)
	if p := tl.Progress(); p <= 1 {
		t.Fatalf("progress clamped to %v", p)
	}
}

func TestTimelineZeroDelta(t *testing.T) {
	tl, _ := NewTimeline(1.2)
	tl.Advance(0)
	if tl.Elapsed() != 0 || tl.Progress() != 0 {
		t.Fatalf("zero delta moved the timeline: %v", tl.Elapsed())
	}
}
