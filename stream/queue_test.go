package stream

import "testing"

func TestFrameQueueKeepsEveryFrameInOrder(t *testing.T) {
	s := newDefaultSketch(t)
	q := NewFrameQueue(8)

	// Two updates before a draw: both frames must be painted.
	first := s.AdvanceFrame(16)
	second := s.AdvanceFrame(16)
	q.Push(first)
	q.Push(second)

	frames := q.Drain()
	if len(frames) != 2 || frames[0] != first || frames[1] != second {
		t.Fatalf("drained %d frames out of order", len(frames))
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty after drain: %d", q.Len())
	}
	if len(q.Drain()) != 0 {
		t.Fatal("second drain should be empty")
	}
}

func TestFrameQueueDropsOldestWhenFull(t *testing.T) {
	q := NewFrameQueue(2)
	a, b, c := NewFrame(0), NewFrame(0), NewFrame(0)
	q.Push(a)
	q.Push(b)
	q.Push(c)

	frames := q.Drain()
	if len(frames) != 2 || frames[0] != b || frames[1] != c {
		t.Fatal("expected the two newest frames")
	}
}
