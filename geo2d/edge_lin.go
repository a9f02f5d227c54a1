package geo2d

import "math"

// Zero length segments are rejected.
func NewEdgeLin(start, end *Node) *Edge {
	if start == end || (start.X == end.X && start.Y == end.Y) {
		fatalf(DegenerateGeometry, "zero length segment at %s", start)
	}
	e := &Edge{kind: KindLin, start: start, end: end}
	e.updateBoundsLin()
	return e
}

// No precision here. Just think as if precision was perfect.
func (e *Edge) updateBoundsLin() {
	e.bounds = NewBounds(
		math.Min(e.start.X, e.end.X), math.Max(e.start.X, e.end.X),
		math.Min(e.start.Y, e.end.Y), math.Max(e.start.Y, e.end.Y),
	)
}

func (e *Edge) charactValueLin(x, y float64) float64 {
	dx, dy := e.end.X-e.start.X, e.end.Y-e.start.Y
	return ((x-e.start.X)*dx + (y-e.start.Y)*dy) / (dx*dx + dy*dy)
}

func (e *Edge) curveLengthLin() float64 {
	return DistanceBtw2Pt(e.start.X, e.start.Y, e.end.X, e.end.Y)
}

func (e *Edge) areaOfZoneLin() float64 {
	return (e.start.X - e.end.X) * (e.start.Y + e.end.Y) / 2
}

// With y = y1 + (y2-y1)/(x2-x1) (x-x1) along the segment.
func (e *Edge) barycenterOfZoneLin() (float64, float64) {
	x1, y1 := e.start.X, e.start.Y
	x2, y2 := e.end.X, e.end.Y
	bx := (x1 - x2) * (y1*(2*x1+x2) + y2*(2*x2+x1)) / 6
	by := (x1 - x2) * (y1*(y1+y2) + y2*y2) / 6
	return bx, by
}

// Distance from (x, y) to the segment.
func (e *Edge) distanceToPointLin(x, y float64) float64 {
	t := e.charactValueLin(x, y)
	if t > 0 && t < 1 {
		px := e.start.X*(1-t) + t*e.end.X
		py := e.start.Y*(1-t) + t*e.end.Y
		return DistanceBtw2Pt(x, y, px, py)
	}
	return math.Min(DistanceBtw2Pt(x, y, e.start.X, e.start.Y), DistanceBtw2Pt(x, y, e.end.X, e.end.Y))
}
