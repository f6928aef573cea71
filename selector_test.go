package lasso

import (
	"testing"
	"time"
)

// testConfig returns the default parameters with a close delay
// short enough for the tests to wait on.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CloseDelay = 20 * time.Millisecond
	return cfg
}

// waitEditing blocks until the selector reaches the editing mode.
func waitEditing(t *testing.T, sel *Selector) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for sel.Mode() != ModeEditing {
		if time.Now().After(deadline) {
			t.Fatalf("Selector expected to reach the editing mode, got %v", sel.Mode())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSelector_CapturesEveryMoveSample(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	sel.PointerDown(Point{X: 10, Y: 10})
	moves := []Point{{X: 20, Y: 10}, {X: 30, Y: 15}, {X: 40, Y: 25}, {X: 35, Y: 40}}
	for _, m := range moves {
		sel.PointerMove(m)
	}

	if got := len(sel.Path()); got != len(moves)+1 {
		t.Errorf("Path length expected to be %v, got %v", len(moves)+1, got)
	}

	sel.PointerUp()
	defer sel.Stop()

	if got := len(sel.Path()); got != len(moves)+2 {
		t.Errorf("Path length after closure expected to be %v, got %v", len(moves)+2, got)
	}
}

func TestSelector_ClosureInvariant(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	sel.PointerDown(Point{X: 100, Y: 100})
	sel.PointerMove(Point{X: 200, Y: 100})
	sel.PointerMove(Point{X: 200, Y: 200})
	sel.PointerMove(Point{X: 100, Y: 200})
	sel.PointerUp()
	defer sel.Stop()

	pts := sel.Path()
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("First and last point expected to be equal after closure, got %v and %v", pts[0], pts[len(pts)-1])
	}

	waitEditing(t, sel)
	if sel.Mode() != ModeEditing {
		t.Errorf("Selector expected to switch to the editing mode after the close delay")
	}
}

func TestSelector_DegeneratePathStaysUnclosed(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	sel.PointerDown(Point{X: 10, Y: 10})
	sel.PointerMove(Point{X: 20, Y: 20})
	sel.PointerUp()
	defer sel.Stop()

	// Two points only: no closing duplicate gets appended,
	// but the delayed editing switch still fires.
	if got := len(sel.Path()); got != 2 {
		t.Errorf("Degenerate path length expected to be 2, got %v", got)
	}
	waitEditing(t, sel)
}

func TestSelector_PointerDownIgnoredWhileEditing(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	sel.PointerDown(Point{X: 100, Y: 100})
	sel.PointerMove(Point{X: 200, Y: 100})
	sel.PointerMove(Point{X: 150, Y: 200})
	sel.PointerUp()
	defer sel.Stop()

	waitEditing(t, sel)
	pts := sel.Path()

	sel.PointerDown(Point{X: 5, Y: 5})

	if sel.Mode() != ModeEditing {
		t.Errorf("Mode expected to stay editing after an ignored pointer down, got %v", sel.Mode())
	}
	if got := len(sel.Path()); got != len(pts) {
		t.Errorf("Path expected to stay untouched after an ignored pointer down")
	}
}

func TestSelector_ModeIsMonotonic(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	if sel.Mode() != ModeIdle {
		t.Errorf("Initial mode expected to be idle, got %v", sel.Mode())
	}

	sel.PointerDown(Point{X: 10, Y: 10})
	if sel.Mode() != ModeDrawing {
		t.Errorf("Mode expected to be drawing after pointer down, got %v", sel.Mode())
	}

	sel.PointerMove(Point{X: 50, Y: 10})
	sel.PointerMove(Point{X: 50, Y: 50})
	sel.PointerUp()
	defer sel.Stop()

	waitEditing(t, sel)

	// Neither pointer events nor relaxation ticks may regress the mode.
	sel.PointerDown(Point{X: 1, Y: 1})
	sel.PointerMove(Point{X: 2, Y: 2})
	sel.PointerUp()
	sel.Relax(time.Now())

	if sel.Mode() != ModeEditing {
		t.Errorf("Mode expected to never regress from editing, got %v", sel.Mode())
	}
}

func TestSelector_StopCancelsPendingTransition(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	sel.PointerDown(Point{X: 10, Y: 10})
	sel.PointerMove(Point{X: 50, Y: 10})
	sel.PointerMove(Point{X: 50, Y: 50})
	sel.PointerUp()
	sel.Stop()

	time.Sleep(60 * time.Millisecond)
	if sel.Mode() == ModeEditing {
		t.Errorf("Stopped selector expected to never switch to the editing mode")
	}
}

func TestSelector_RetraceCancelsPendingTransition(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	sel.PointerDown(Point{X: 10, Y: 10})
	sel.PointerMove(Point{X: 50, Y: 10})
	sel.PointerMove(Point{X: 50, Y: 50})
	sel.PointerUp()
	defer sel.Stop()

	// Restart the trace while the close delay of the previous one is
	// still pending: the stale timer must not switch the mode mid-draw.
	sel.PointerDown(Point{X: 100, Y: 100})
	sel.PointerMove(Point{X: 120, Y: 100})

	time.Sleep(60 * time.Millisecond)
	if sel.Mode() != ModeDrawing {
		t.Fatalf("Mode expected to stay drawing after a retrace, got %v", sel.Mode())
	}

	// The new trace is still live and keeps capturing points.
	sel.PointerMove(Point{X: 120, Y: 120})
	if got := len(sel.Path()); got != 3 {
		t.Errorf("Retraced path expected to hold 3 points, got %v", got)
	}

	sel.PointerUp()
	waitEditing(t, sel)
	pts := sel.Path()
	if pts[0] != (Point{X: 100, Y: 100}) || pts[0] != pts[len(pts)-1] {
		t.Errorf("Retraced path expected to close onto its own origin, got %v and %v", pts[0], pts[len(pts)-1])
	}
}

func TestSelector_SeedAdoptsClosedPath(t *testing.T) {
	sel := NewSelector(testConfig(), 300, 300)

	seed := ellipsePath(Point{X: 150, Y: 150}, 40)
	sel.Seed(seed)

	if sel.Mode() != ModeEditing {
		t.Errorf("Seeded selector expected to be in editing mode, got %v", sel.Mode())
	}
	pts := sel.Path()
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("Seeded path expected to be closed")
	}
}
