package lasso

import (
	"testing"
	"time"
)

func TestTracker_SampleSpeed(t *testing.T) {
	start := time.Now()
	tr := NewTracker(Point{X: 0, Y: 0}, start)

	tr.SetPosition(Point{X: 30, Y: 40})
	speed := tr.SampleSpeed(start.Add(10 * time.Millisecond))

	// 50 pixels of displacement over 10 milliseconds.
	if speed != 5 {
		t.Errorf("Speed expected to be 5 px/ms, got %v", speed)
	}
}

func TestTracker_SampleResets(t *testing.T) {
	start := time.Now()
	tr := NewTracker(Point{X: 0, Y: 0}, start)

	tr.SetPosition(Point{X: 100, Y: 0})
	tr.SampleSpeed(start.Add(10 * time.Millisecond))

	// The cursor stayed still since the previous sample,
	// so the next sample reads zero regardless of the past movement.
	speed := tr.SampleSpeed(start.Add(20 * time.Millisecond))
	if speed != 0 {
		t.Errorf("Speed of a still cursor expected to be 0, got %v", speed)
	}
}

func TestTracker_ElapsedTimeIsFloored(t *testing.T) {
	start := time.Now()
	tr := NewTracker(Point{X: 0, Y: 0}, start)

	tr.SetPosition(Point{X: 10, Y: 0})

	// A zero elapsed time is clamped to one millisecond
	// instead of dividing by zero.
	speed := tr.SampleSpeed(start)
	if speed != 10 {
		t.Errorf("Speed with zero elapsed time expected to be 10 px/ms, got %v", speed)
	}
}
