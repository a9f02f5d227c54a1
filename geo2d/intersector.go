package geo2d

import "math"

// The algebra specific to a pair of edge kinds. Points found are on the
// carriers; whether they fall inside the finite edges is decided afterwards
// from their characteristic values.
type intersectAlgebra interface {
	// The coarse pre-test. Overlapped means both carriers coincide.
	areOverlappedOrOnlyColinears() (obviousNoIntersection, areOverlapped bool)
	intersectionPoints() []intersectPoint
	// Only meaningful for overlapped carriers.
	haveTheySameDirection() bool
}

type intersectPoint struct {
	x, y    float64
	tangent bool
}

// intersector pairs two edges with the algebra matching their kinds. The
// order matters: values and placements are relative to e1 first.
type intersector struct {
	c       *Config
	e1, e2  *Edge
	algebra intersectAlgebra
}

func newIntersector(c *Config, e1, e2 *Edge) *intersector {
	r := &intersector{c: c, e1: e1, e2: e2}
	switch {
	case e1.kind == KindLin && e2.kind == KindLin:
		r.algebra = newSegSegAlgebra(c, e1, e2)
	case e1.kind == KindArcCircle && e2.kind == KindArcCircle:
		r.algebra = newArcArcAlgebra(c, e1, e2)
	case e1.kind == KindLin:
		r.algebra = newSegArcAlgebra(c, e1, e2)
	default:
		r.algebra = newSegArcAlgebra(c, e2, e1)
	}
	return r
}

func (it *intersector) areOverlappedOrOnlyColinears() (obviousNoIntersection, areOverlapped bool) {
	return it.algebra.areOverlappedOrOnlyColinears()
}

func (it *intersector) haveTheySameDirection() bool {
	return it.algebra.haveTheySameDirection()
}

// One intersection point, with its characteristic values on both edges and
// whether it coincides with an extremity of either.
type intersectElement struct {
	val1, val2   float64
	node         *Node
	start1, end1 bool
	start2, end2 bool
	tangent      bool
}

func (el *intersectElement) onExtremity1() bool { return el.start1 || el.end1 }
func (el *intersectElement) onExtremity2() bool { return el.start2 || el.end2 }

func (el *intersectElement) extremity1(e *Edge) *Node {
	if el.start1 {
		return e.start
	}
	return e.end
}

func (el *intersectElement) extremity2(other *Edge) *Node {
	if el.start2 {
		return other.start
	}
	return other.end
}

func (it *intersector) intersectionsCharacteristicVal() []*intersectElement {
	points := it.algebra.intersectionPoints()
	result := make([]*intersectElement, 0, len(points))
	for _, p := range points {
		n := NewNode(p.x, p.y)
		el := &intersectElement{node: n, tangent: p.tangent}
		el.start1 = n.IsEqual(it.c, it.e1.start)
		el.end1 = !el.start1 && n.IsEqual(it.c, it.e1.end)
		el.start2 = n.IsEqual(it.c, it.e2.start)
		el.end2 = !el.start2 && n.IsEqual(it.c, it.e2.end)
		// Values are taken on the existing node when there is one
		at1, at2 := n, n
		if el.onExtremity2() {
			at1 = el.extremity2(it.e2)
		}
		if el.onExtremity1() {
			at2 = el.extremity1(it.e1)
		}
		el.val1 = it.e1.CharactValue(at1)
		el.val2 = it.e2.CharactValue(at2)
		result = append(result, el)
	}
	return result
}

// Placement of a node lying on the carrier of e1.
func (it *intersector) curveAbscisse(n *Node) Position {
	if n.IsEqual(it.c, it.e1.start) {
		return PlacementStart
	}
	if n.IsEqual(it.c, it.e1.end) {
		return PlacementEnd
	}
	v := it.e1.CharactValue(n)
	switch {
	case v < 0:
		return PlacementOutBefore
	case v > 1:
		return PlacementOutAfter
	}
	return PlacementInside
}

// AreColinearOverlapped reports whether the two edges lie on the same carrier
// and share a part of positive length.
func AreColinearOverlapped(c *Config, e1, e2 *Edge) bool {
	if !e1.bounds.Overlaps(e2.bounds, c.Precision) {
		return false
	}
	it := newIntersector(c, e1, e2)
	if _, overlapped := it.areOverlappedOrOnlyColinears(); !overlapped {
		return false
	}
	reverse := newIntersector(c, e2, e1)
	for _, n := range []*Node{e2.start, e2.end} {
		if it.curveAbscisse(n) == PlacementInside {
			return true
		}
	}
	for _, n := range []*Node{e1.start, e1.end} {
		if reverse.curveAbscisse(n) == PlacementInside {
			return true
		}
	}
	// Same extremities, or one of the edges is a full circle.
	repr := e1.BuildRepresentantOfMySelf()
	return reverse.curveAbscisse(repr) == PlacementInside
}

// Are the three points on one line, within the arc detection tolerance?
func areColinearPoints(c *Config, a, b, d *Node) bool {
	return segSegColinears(c, b.X-a.X, b.Y-a.Y, d.X-b.X, d.Y-b.Y)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
