package stream

// FrameQueue holds frames produced faster than they are painted. Once full,
// the oldest frame is dropped.
type FrameQueue struct {
	frames []*Frame
	limit  int
}

// NewFrameQueue creates a queue holding at most limit frames.
func NewFrameQueue(limit int) *FrameQueue {
	q := new(FrameQueue)
	if limit < 1 {
		limit = 1
	}
	q.limit = limit
	q.frames = make([]*Frame, 0, limit)
	return q
}

// Push appends f.
func (q *FrameQueue) Push(f *Frame) {
	if len(q.frames) == q.limit {
		copy(q.frames, q.frames[1:])
		q.frames = q.frames[:len(q.frames)-1]
	}
	q.frames = append(q.frames, f)
}

// Drain returns the queued frames in order and empties the queue.
func (q *FrameQueue) Drain() []*Frame {
	frames := q.frames
	q.frames = make([]*Frame, 0, q.limit)
	return frames
}

func (q *FrameQueue) Len() int {
	return len(q.frames)
}
