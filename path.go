package lasso

import "math"

// MinPathPoints is the minimum number of points a traced path must hold
// before it describes a clippable region (a closed triangle).
const MinPathPoints = 3

// Point is a 2D coordinate in display space.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Path is the ordered sequence of points outlining the traced region.
// The insertion order is significant: it defines the polygon edges.
// While the selection is being drawn the path is open; once the drawing
// ends the path gets closed by appending a copy of its first point.
type Path struct {
	pts    []Point
	closed bool
}

// NewPath creates a new path starting at the origin point.
func NewPath(origin Point) *Path {
	return &Path{pts: []Point{origin}}
}

// Append adds a new point to the end of the path.
// Closed paths are never extended.
func (p *Path) Append(pt Point) {
	if p.closed {
		return
	}
	p.pts = append(p.pts, pt)
}

// Close appends a copy of the first point to the end of the path,
// turning the traced polyline into a closed polygon. Paths holding
// less than three points stay degenerate and unclosed.
func (p *Path) Close() {
	if p.closed || len(p.pts) <= 2 {
		return
	}
	p.pts = append(p.pts, p.pts[0])
	p.closed = true
}

// Closed reports whether the path has been closed.
func (p *Path) Closed() bool {
	return p.closed
}

// Len returns the number of points the path is made of,
// the closing duplicate included.
func (p *Path) Len() int {
	return len(p.pts)
}

// Points returns a copy of the path points.
func (p *Path) Points() []Point {
	pts := make([]Point, len(p.pts))
	copy(pts, p.pts)
	return pts
}

// BoundingBox returns the smallest axis-aligned rectangle
// containing every point of the path.
func (p *Path) BoundingBox() (minX, minY, maxX, maxY float64) {
	if len(p.pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = p.pts[0].X, p.pts[0].Y
	maxX, maxY = minX, minY

	for _, pt := range p.pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}
