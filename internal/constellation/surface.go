package constellation

import (
	"errors"
	"image/color"
)

var (
	// ErrNoSurface is returned when the simulation has nothing to draw on.
	ErrNoSurface = errors.New("constellation: no drawing surface")
	// ErrNoScheduler is returned when no host offers a frame scheduling primitive.
	ErrNoScheduler = errors.New("constellation: no frame scheduler available")
)

// Surface is the immediate-mode drawing context a host hands to the simulation.
// Coordinates are pixels.
type Surface interface {
	// Clear resets the whole surface to fully transparent.
	Clear()
	FillCircle(cx, cy, radius float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
}

// Scheduler runs a callback before the host paints its next frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// SchedulerFunc adapts a function to Scheduler. A nil SchedulerFunc stands for
// a primitive the host does not provide.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) RequestFrame(fn func()) { f(fn) }

// SelectScheduler returns the first available candidate, in order of preference.
func SelectScheduler(candidates ...Scheduler) (Scheduler, error) {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if f, ok := c.(SchedulerFunc); ok && f == nil {
			continue
		}
		return c, nil
	}
	return nil, ErrNoScheduler
}

// FrameQueue is a Scheduler that holds at most one pending callback until the
// host runs it. It is not safe for concurrent use; hosts drive it from their
// frame loop.
type FrameQueue struct {
	pending func()
}

// RequestFrame replaces any callback still waiting for the next frame.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = fn
}

// Pending reports whether a callback is waiting.
func (q *FrameQueue) Pending() bool {
	return q.pending != nil
}

// RunPending runs the waiting callback, if any. The callback may request the
// next frame; that request waits for the following RunPending.
func (q *FrameQueue) RunPending() bool {
	fn := q.pending
	if fn == nil {
		return false
	}
	q.pending = nil
	fn()
	return true
}
