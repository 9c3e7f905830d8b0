package game

import "image"

type sizeEvent int

const (
	sizeNone sizeEvent = iota
	sizeReady
	sizeChanged
)

// sizeTracker turns the sizes reported by Layout into one start event and
// then a change event per distinct size. Layout runs before every Update, so
// the latest observation is applied at the start of the next Update.
type sizeTracker struct {
	applied  image.Point
	observed image.Point
	seen     bool
	ready    bool
}

func (s *sizeTracker) Observe(width, height int) {
	s.observed = image.Pt(max(width, 0), max(height, 0))
	s.seen = true
}

// Next applies the latest observation.
func (s *sizeTracker) Next() (image.Point, sizeEvent) {
	switch {
	case !s.seen:
		return s.applied, sizeNone
	case !s.ready:
		s.ready = true
		s.applied = s.observed
		return s.applied, sizeReady
	case s.observed != s.applied:
		s.applied = s.observed
		return s.applied, sizeChanged
	}
	return s.applied, sizeNone
}
