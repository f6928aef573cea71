package lasso

import "time"

// Tracker follows the pointer position and derives its instantaneous speed.
// The position is refreshed on every pointer move, but the speed is sampled
// only when the relaxation tick fires: SampleSpeed measures the displacement
// accumulated since the previous sample and resets the sample point, so the
// reported speed always spans two successive ticks, not two pointer moves.
type Tracker struct {
	pos        Point
	lastPos    Point
	lastSample time.Time
}

// NewTracker returns a tracker anchored at the start position.
func NewTracker(start Point, now time.Time) *Tracker {
	return &Tracker{
		pos:        start,
		lastPos:    start,
		lastSample: now,
	}
}

// SetPosition records the current pointer position.
func (t *Tracker) SetPosition(p Point) {
	t.pos = p
}

// Position returns the last recorded pointer position.
func (t *Tracker) Position() Point {
	return t.pos
}

// SampleSpeed returns the pointer speed in pixels per millisecond measured
// since the previous sample, then resets the sample point to the current
// position and time. The elapsed time is floored to one millisecond.
func (t *Tracker) SampleSpeed(now time.Time) float64 {
	elapsed := now.Sub(t.lastSample).Milliseconds()
	if elapsed < 1 {
		elapsed = 1
	}
	speed := t.lastPos.Dist(t.pos) / float64(elapsed)

	t.lastPos = t.pos
	t.lastSample = now

	return speed
}
