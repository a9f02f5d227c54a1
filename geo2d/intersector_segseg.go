package geo2d

import "math"

// Two segments. The carriers are
//
//	d1.y x - d1.x y = d1.y s1.x - d1.x s1.y
//	d2.y x - d2.x y = d2.y s2.x - d2.x s2.y
//
// solved by Cramer's rule. Tests are made on the unit directions so they do
// not depend on the size of the edges.
type segSegAlgebra struct {
	c      *Config
	e1, e2 *Edge
	// Unit directions
	u1x, u1y float64
	u2x, u2y float64
	det      float64
}

func newSegSegAlgebra(c *Config, e1, e2 *Edge) *segSegAlgebra {
	a := &segSegAlgebra{c: c, e1: e1, e2: e2}
	a.u1x, a.u1y = unitDirection(e1)
	a.u2x, a.u2y = unitDirection(e2)
	a.det = a.u1x*a.u2y - a.u1y*a.u2x
	return a
}

func unitDirection(e *Edge) (float64, float64) {
	dx, dy := e.end.X-e.start.X, e.end.Y-e.start.Y
	l := math.Hypot(dx, dy)
	return dx / l, dy / l
}

// The factor 2 accounts for the offsets of the two independent end points.
func (a *segSegAlgebra) areOverlappedOrOnlyColinears() (obviousNoIntersection, areOverlapped bool) {
	if math.Abs(a.det) > 2*a.c.Precision {
		return false, false
	}
	// Parallel: the carriers coincide when e2 starts on the carrier of e1
	distance := math.Abs(a.u1x*(a.e2.start.Y-a.e1.start.Y) - a.u1y*(a.e2.start.X-a.e1.start.X))
	if distance < a.c.Precision {
		return false, true
	}
	return true, false
}

func (a *segSegAlgebra) intersectionPoints() []intersectPoint {
	s1, s2 := a.e1.start, a.e2.start
	c1 := a.u1y*s1.X - a.u1x*s1.Y
	c2 := a.u2y*s2.X - a.u2x*s2.Y
	// Rows (u1y, -u1x) and (u2y, -u2x), whose determinant is det
	x := (-c1*a.u2x + a.u1x*c2) / a.det
	y := (a.u1y*c2 - a.u2y*c1) / a.det
	if !isFinite(x) || !isFinite(y) {
		return nil
	}
	return []intersectPoint{{x: x, y: y}}
}

func (a *segSegAlgebra) haveTheySameDirection() bool {
	return a.u1x*a.u2x+a.u1y*a.u2y > 0
}

// Colinearity of two consecutive directions, with the coarse tolerance.
func segSegColinears(c *Config, d1x, d1y, d2x, d2y float64) bool {
	l1, l2 := math.Hypot(d1x, d1y), math.Hypot(d2x, d2y)
	if l1 == 0 || l2 == 0 {
		return true
	}
	return math.Abs(d1x*d2y-d1y*d2x)/(l1*l2) < c.ArcDetectionPrecision
}
