package geo2d

import "math"

// Two arcs. Points are found on the radical line of both circles.
type arcArcAlgebra struct {
	c      *Config
	e1, e2 *Edge
	dist   float64
}

func newArcArcAlgebra(c *Config, e1, e2 *Edge) *arcArcAlgebra {
	return &arcArcAlgebra{
		c: c, e1: e1, e2: e2,
		dist: DistanceBtw2Pt(e1.arc.cx, e1.arc.cy, e2.arc.cx, e2.arc.cy),
	}
}

func (a *arcArcAlgebra) areOverlappedOrOnlyColinears() (obviousNoIntersection, areOverlapped bool) {
	r1, r2 := a.e1.arc.radius, a.e2.arc.radius
	if a.c.Equal(a.dist, 0) && a.c.Equal(r1, r2) {
		return false, true
	}
	// Concentric circles with distinct radii never meet. The coarse tolerance
	// keeps the radical line away from ill-conditioned cases.
	if a.dist < a.c.ArcDetectionPrecision {
		return true, false
	}
	if a.dist > r1+r2+a.c.Precision || a.dist < math.Abs(r1-r2)-a.c.Precision {
		return true, false
	}
	return false, false
}

func (a *arcArcAlgebra) intersectionPoints() []intersectPoint {
	c1x, c1y, r1 := a.e1.arc.cx, a.e1.arc.cy, a.e1.arc.radius
	c2x, c2y, r2 := a.e2.arc.cx, a.e2.arc.cy, a.e2.arc.radius
	d := a.dist
	ux, uy := (c2x-c1x)/d, (c2y-c1y)/d
	along := (d*d + r1*r1 - r2*r2) / (2 * d)
	px, py := c1x+along*ux, c1y+along*uy
	if a.c.Equal(d, r1+r2) || a.c.Equal(d, math.Abs(r1-r2)) {
		return []intersectPoint{{x: px, y: py, tangent: true}}
	}
	h2 := r1*r1 - along*along
	if h2 <= 0 {
		return []intersectPoint{{x: px, y: py, tangent: true}}
	}
	h := math.Sqrt(h2)
	return []intersectPoint{
		{x: px - h*uy, y: py + h*ux},
		{x: px + h*uy, y: py - h*ux},
	}
}

func (a *arcArcAlgebra) haveTheySameDirection() bool {
	return (a.e1.arc.sweep > 0) == (a.e2.arc.sweep > 0)
}
