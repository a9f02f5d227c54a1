package geo2d

import "math"

// A segment and an arc, in that order whatever the order of the intersector.
// The carriers can never coincide.
type segArcAlgebra struct {
	c   *Config
	seg *Edge
	arc *Edge
	// Foot of the perpendicular from the center to the segment carrier, and
	// its distance to the center.
	footX, footY float64
	ux, uy       float64
	h            float64
}

func newSegArcAlgebra(c *Config, seg, arc *Edge) *segArcAlgebra {
	a := &segArcAlgebra{c: c, seg: seg, arc: arc}
	a.ux, a.uy = unitDirection(seg)
	t := (arc.arc.cx-seg.start.X)*a.ux + (arc.arc.cy-seg.start.Y)*a.uy
	a.footX = seg.start.X + t*a.ux
	a.footY = seg.start.Y + t*a.uy
	a.h = DistanceBtw2Pt(a.footX, a.footY, arc.arc.cx, arc.arc.cy)
	return a
}

func (a *segArcAlgebra) areOverlappedOrOnlyColinears() (obviousNoIntersection, areOverlapped bool) {
	return a.h > a.arc.arc.radius+a.c.Precision, false
}

func (a *segArcAlgebra) intersectionPoints() []intersectPoint {
	r := a.arc.arc.radius
	if a.c.Equal(a.h, r) {
		return []intersectPoint{{x: a.footX, y: a.footY, tangent: true}}
	}
	if a.h > r {
		return nil
	}
	half := math.Sqrt(r*r - a.h*a.h)
	return []intersectPoint{
		{x: a.footX - half*a.ux, y: a.footY - half*a.uy},
		{x: a.footX + half*a.ux, y: a.footY + half*a.uy},
	}
}

func (a *segArcAlgebra) haveTheySameDirection() bool {
	return false
}
