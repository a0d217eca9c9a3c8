package frameloop

import (
	"time"

	"ribbons/misc"
)

// FrameScheduler holds the frame requested by the Loop until the host
// pumps it from its "before next repaint" hook.
type FrameScheduler struct {
	Start   time.Time
	pending func(now time.Duration)
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		Start: time.Now(),
	}
}

func (s *FrameScheduler) RequestFrame(fn func(now time.Duration)) {
	s.pending = fn
}

func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Pump runs the pending frame at the time elapsed since Start.
func (s *FrameScheduler) Pump() bool {
	return s.PumpAt(time.Since(s.Start))
}

// PumpAt runs the pending frame, if any, and reports whether one ran.
// A frame runs once. Requests made while it runs wait for the next pump.
func (s *FrameScheduler) PumpAt(now time.Duration) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)

	return true
}

// FrameTimes keeps the duration of recent frames.
type FrameTimes struct {
	queue misc.CircularQueue[time.Duration]
	last  time.Time
}

func NewFrameTimes(size int) FrameTimes {
	return FrameTimes{
		queue: misc.NewCircularQueue[time.Duration](size),
	}
}

func (f *FrameTimes) Mark(now time.Time) {
	if !f.last.IsZero() {
		f.queue.Enqueue(now.Sub(f.last))
	}
	f.last = now
}

func (f *FrameTimes) Last() time.Duration {
	if f.queue.IsEmpty() {
		return 0
	}
	return f.queue.PeekLast()
}

func (f *FrameTimes) Average() time.Duration {
	if f.queue.IsEmpty() {
		return 0
	}

	var sum time.Duration
	for i := range f.queue.Length {
		sum += f.queue.At(i)
	}

	return sum / time.Duration(f.queue.Length)
}
