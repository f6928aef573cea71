package lasso

import "testing"

func TestPath_CloseAppendsFirstPoint(t *testing.T) {
	path := NewPath(Point{X: 1, Y: 2})
	path.Append(Point{X: 5, Y: 2})
	path.Append(Point{X: 3, Y: 8})
	path.Close()

	if !path.Closed() {
		t.Errorf("Path expected to be closed")
	}
	pts := path.Points()
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("Closed path expected to end with a copy of its first point")
	}

	// Closing is established exactly once.
	path.Close()
	if path.Len() != 4 {
		t.Errorf("Repeated close expected to be a no-op, got %v points", path.Len())
	}

	// A closed path is never extended.
	path.Append(Point{X: 9, Y: 9})
	if path.Len() != 4 {
		t.Errorf("Closed path expected to reject new points, got %v", path.Len())
	}
}

func TestPath_DegenerateStaysOpen(t *testing.T) {
	path := NewPath(Point{X: 1, Y: 1})
	path.Append(Point{X: 2, Y: 2})
	path.Close()

	if path.Closed() || path.Len() != 2 {
		t.Errorf("A two point path expected to stay unclosed, got %v points", path.Len())
	}
}

func TestPath_BoundingBox(t *testing.T) {
	path := NewPath(Point{X: 120, Y: 40})
	path.Append(Point{X: 80, Y: 90})
	path.Append(Point{X: 150, Y: 70})

	minX, minY, maxX, maxY := path.BoundingBox()
	if minX != 80 || minY != 40 || maxX != 150 || maxY != 90 {
		t.Errorf("Bounding box expected to be (80,40)-(150,90), got (%v,%v)-(%v,%v)", minX, minY, maxX, maxY)
	}
}

func TestPath_PointsReturnsACopy(t *testing.T) {
	path := NewPath(Point{X: 1, Y: 1})
	path.Append(Point{X: 2, Y: 2})

	pts := path.Points()
	pts[0] = Point{X: 99, Y: 99}

	if path.Points()[0] != (Point{X: 1, Y: 1}) {
		t.Errorf("Mutating the snapshot expected to leave the path untouched")
	}
}
