package geo2d

import (
	"fmt"
	"math"
	"sort"

	"github.com/osuushi/quadpoly/dbg"
	"github.com/sirupsen/logrus"
)

type EdgeKind int

const (
	KindLin EdgeKind = iota
	KindArcCircle
)

func (k EdgeKind) String() string {
	if k == KindArcCircle {
		return "arc"
	}
	return "lin"
}

// Edge is either a straight segment or an arc of circle between two shared
// nodes. The set of kinds is closed, so behavior is dispatched with a switch on
// kind rather than through an interface.
//
// Note that edges hold pointers to their nodes, and adjacent edges of a
// polygon hold the same pointer. Replacing an end point therefore only ever
// happens through ChangeStartNodeWith and ChangeEndNodeWith, which refuse
// nodes that are not geometrically equal to the current one.
type Edge struct {
	kind       EdgeKind
	start, end *Node
	bounds     Bounds
	loc        TypeOfEdgeLocInPolygon
	arc        arcData // Only meaningful for KindArcCircle
}

// Carrier of an arc. The arc starts at angle0 and turns by sweep radians,
// anticlockwise when sweep is positive. A full circle has |sweep| == 2pi and
// start == end.
type arcData struct {
	cx, cy, radius float64
	angle0, sweep  float64
}

func (e *Edge) Kind() EdgeKind     { return e.kind }
func (e *Edge) StartNode() *Node   { return e.start }
func (e *Edge) EndNode() *Node     { return e.end }
func (e *Edge) Bounds() Bounds     { return e.bounds }
func (e *Edge) IsArc() bool        { return e.kind == KindArcCircle }
func (e *Edge) IsFullCircle() bool { return e.kind == KindArcCircle && e.start == e.end }

func (e *Edge) Loc() TypeOfEdgeLocInPolygon { return e.loc }

// Declaring an edge also declares its unknown end points.
func (e *Edge) DeclareOn() {
	if e.loc == FullUnknown {
		e.loc = FullOnOne
		e.start.DeclareOn()
		e.end.DeclareOn()
	}
}

func (e *Edge) InitLocs() {
	e.loc = FullUnknown
	e.start.InitLocs()
	e.end.InitLocs()
}

func (e *Edge) ChangeStartNodeWith(c *Config, n *Node) bool {
	if n == e.start {
		return true
	}
	if !e.start.IsEqual(c, n) {
		return false
	}
	full := e.IsFullCircle()
	e.start = n
	if full {
		e.end = n
	}
	e.update()
	return true
}

func (e *Edge) ChangeEndNodeWith(c *Config, n *Node) bool {
	if n == e.end {
		return true
	}
	if !e.end.IsEqual(c, n) {
		return false
	}
	full := e.IsFullCircle()
	e.end = n
	if full {
		e.start = n
	}
	e.update()
	return true
}

// Replace every occurrence of old by n. Returns whether anything changed.
func (e *Edge) replaceNode(c *Config, old, n *Node) bool {
	changed := false
	if e.start == old {
		changed = e.ChangeStartNodeWith(c, n) || changed
	}
	if e.end == old {
		changed = e.ChangeEndNodeWith(c, n) || changed
	}
	return changed
}

// Recompute the cached data depending on the end points.
func (e *Edge) update() {
	switch e.kind {
	case KindLin:
		e.updateBoundsLin()
	case KindArcCircle:
		e.updateArcAngles()
		e.updateBoundsArc()
	}
}

// Position of a node assumed to lie on the edge: 0 at start, 1 at end,
// extrapolated outside.
func (e *Edge) CharactValue(n *Node) float64 {
	if e.kind == KindArcCircle {
		return e.charactValueArc(n.X, n.Y)
	}
	return e.charactValueLin(n.X, n.Y)
}

// Is the characteristic value strictly inside the edge?
func (e *Edge) IsIn(charact float64) bool {
	return charact > 0 && charact < 1
}

func (e *Edge) CurveLength() float64 {
	if e.kind == KindArcCircle {
		return e.curveLengthArc()
	}
	return e.curveLengthLin()
}

// Green's theorem term: integral of -y dx along the edge.
func (e *Edge) AreaOfZone() float64 {
	if e.kind == KindArcCircle {
		return e.areaOfZoneArc()
	}
	return e.areaOfZoneLin()
}

// Centroid of the edge seen as a wire.
func (e *Edge) Barycenter() (float64, float64) {
	if e.kind == KindArcCircle {
		return e.barycenterArc()
	}
	return (e.start.X + e.end.X) / 2, (e.start.Y + e.end.Y) / 2
}

// First moment terms: integrals of -xy dx and -y^2/2 dx along the edge.
func (e *Edge) BarycenterOfZone() (float64, float64) {
	if e.kind == KindArcCircle {
		return e.barycenterOfZoneArc()
	}
	return e.barycenterOfZoneLin()
}

// A point strictly inside the edge, used as a cheap probe for point in
// polygon tests.
func (e *Edge) BuildRepresentantOfMySelf() *Node {
	if e.kind == KindArcCircle {
		return e.representantArc()
	}
	return NewNode((e.start.X+e.end.X)/2, (e.start.Y+e.end.Y)/2)
}

// Angle swept by the edge as seen from (x, y), for winding numbers.
func (e *Edge) windingAngle(x, y float64) float64 {
	if e.kind == KindArcCircle {
		return e.arcWinding(x, y, e.start.X, e.start.Y, e.end.X, e.end.Y, e.arc.angle0, e.arc.sweep)
	}
	return chordAngle(e.start.X-x, e.start.Y-y, e.end.X-x, e.end.Y-y)
}

// Signed angle from vector s to vector e, in [-pi, pi].
func chordAngle(sx, sy, ex, ey float64) float64 {
	return math.Atan2(sx*ey-sy*ex, sx*ex+sy*ey)
}

// Build an edge on the same carrier spanning start to end. With direction
// false the new edge runs against this one.
func (e *Edge) BuildEdgeLyingOnMe(start, end *Node, direction bool) *Edge {
	if e.kind == KindArcCircle {
		return e.buildArcLyingOnMe(start, end, direction)
	}
	return NewEdgeLin(start, end)
}

// Same carrier, swapped end points.
func (e *Edge) Reverse() *Edge {
	return e.BuildEdgeLyingOnMe(e.end, e.start, false)
}

// Nodes are moved by the owning polygon, since they are shared. This only
// updates the carrier and the cached bounds.
func (e *Edge) applySimilarity(xBary, yBary, dimChar float64) {
	if e.kind == KindArcCircle {
		e.arc.cx = (e.arc.cx - xBary) / dimChar
		e.arc.cy = (e.arc.cy - yBary) / dimChar
		e.arc.radius /= dimChar
	}
	e.update()
}

func (e *Edge) unApplySimilarity(xBary, yBary, dimChar float64) {
	if e.kind == KindArcCircle {
		e.arc.cx = e.arc.cx*dimChar + xBary
		e.arc.cy = e.arc.cy*dimChar + yBary
		e.arc.radius *= dimChar
	}
	e.update()
}

// Copy on the given nodes, keeping the carrier.
func (e *Edge) cloneOn(start, end *Node) *Edge {
	r := &Edge{kind: e.kind, start: start, end: end, arc: e.arc}
	r.update()
	return r
}

// MergePoints records nodes of a second edge that were replaced by the
// geometrically equal node of a first edge.
type MergePoints struct {
	pairs []mergePair
}

type mergePair struct {
	old, replacement *Node
}

func (m *MergePoints) Clear() {
	m.pairs = m.pairs[:0]
}

func (m *MergePoints) add(old, replacement *Node) {
	m.pairs = append(m.pairs, mergePair{old: old, replacement: replacement})
}

func (m *MergePoints) Len() int {
	return len(m.pairs)
}

// The node that replaced old, or nil.
func (m *MergePoints) Replacement(old *Node) *Node {
	for _, p := range m.pairs {
		if p.old == old {
			return p.replacement
		}
	}
	return nil
}

// A cut of an edge at a node, ordered by characteristic value.
type cut struct {
	val  float64
	node *Node
}

// IntersectWith splits e and other at every mutual intersection point. When
// extremities coincide, the node of other is replaced by the node of e and
// recorded in merge. It reports whether a subdivision is needed, in which case
// sub1 and sub2 hold the ordered sub edges replacing e and other, both
// running in the direction of the edge they replace.
func (e *Edge) IntersectWith(c *Config, other *Edge, merge *MergePoints) (sub1, sub2 []*ElementaryEdge, ok bool) {
	if e == other {
		return nil, nil, false
	}
	if !e.bounds.Overlaps(other.bounds, c.Precision) {
		return nil, nil, false
	}
	inter := newIntersector(c, e, other)
	obviousNoIntersection, areOverlapped := inter.areOverlappedOrOnlyColinears()
	if areOverlapped {
		return e.intersectOverlapped(c, other, inter, merge)
	}
	if obviousNoIntersection {
		return nil, nil, false
	}
	var cuts1, cuts2 []cut
	for _, el := range inter.intersectionsCharacteristicVal() {
		switch {
		case el.onExtremity1() && el.onExtremity2():
			n1 := el.extremity1(e)
			n2 := el.extremity2(other)
			if n1 != n2 && other.replaceNode(c, n2, n1) {
				merge.add(n2, n1)
			}
			n1.DeclareOn()
		case el.onExtremity1() && other.IsIn(el.val2):
			n1 := el.extremity1(e)
			n1.DeclareOn()
			cuts2 = append(cuts2, cut{val: el.val2, node: n1})
		case el.onExtremity2() && e.IsIn(el.val1):
			n2 := el.extremity2(other)
			n2.DeclareOn()
			cuts1 = append(cuts1, cut{val: el.val1, node: n2})
		case e.IsIn(el.val1) && other.IsIn(el.val2):
			n := el.node
			n.MarkNew()
			if el.tangent {
				n.DeclareOnTangent()
			} else {
				n.DeclareOn()
			}
			cuts1 = append(cuts1, cut{val: el.val1, node: n})
			cuts2 = append(cuts2, cut{val: el.val2, node: n})
		}
	}
	if len(cuts1) == 0 && len(cuts2) == 0 {
		return nil, nil, false
	}
	if log := c.Log(); log.IsLevelEnabled(logrus.TraceLevel) {
		log.WithFields(logrus.Fields{
			"edge":  e.DbgName(),
			"other": other.DbgName(),
			"cuts1": len(cuts1),
			"cuts2": len(cuts2),
		}).Trace("edges intersect")
	}
	return e.splitAt(c, cuts1), other.splitAt(c, cuts2), true
}

// Both edges lie on the same carrier and may share a part.
func (e *Edge) intersectOverlapped(c *Config, other *Edge, inter *intersector, merge *MergePoints) (sub1, sub2 []*ElementaryEdge, ok bool) {
	for _, n1 := range []*Node{e.start, e.end} {
		for _, n2 := range []*Node{other.start, other.end} {
			if n1 != n2 && n1.IsEqual(c, n2) && other.replaceNode(c, n2, n1) {
				merge.add(n2, n1)
				n1.DeclareOn()
			}
		}
	}
	var cuts1, cuts2 []cut
	for _, n := range distinctNodes(other.start, other.end) {
		if inter.curveAbscisse(n) == PlacementInside {
			n.DeclareOn()
			cuts1 = append(cuts1, cut{val: e.CharactValue(n), node: n})
		}
	}
	reverse := newIntersector(c, other, e)
	for _, n := range distinctNodes(e.start, e.end) {
		if reverse.curveAbscisse(n) == PlacementInside {
			n.DeclareOn()
			cuts2 = append(cuts2, cut{val: other.CharactValue(n), node: n})
		}
	}
	sub1 = e.splitAt(c, cuts1)
	sub2 = other.splitAt(c, cuts2)
	sameDirection := inter.haveTheySameDirection()
	commons := 0
	for _, s1 := range sub1 {
		repr := s1.edge.BuildRepresentantOfMySelf()
		if reverse.curveAbscisse(repr) != PlacementInside {
			continue
		}
		for k, s2 := range sub2 {
			if sameNodeSet(s1.edge, s2.edge) {
				s1.edge.DeclareOn()
				sub2[k] = &ElementaryEdge{edge: s1.edge, direction: sameDirection}
				commons++
				break
			}
		}
	}
	if len(cuts1) == 0 && len(cuts2) == 0 && commons == 0 {
		return nil, nil, false
	}
	if log := c.Log(); log.IsLevelEnabled(logrus.TraceLevel) {
		log.WithFields(logrus.Fields{
			"edge":    e.DbgName(),
			"other":   other.DbgName(),
			"commons": commons,
		}).Trace("edges overlap")
	}
	return sub1, sub2, true
}

func distinctNodes(a, b *Node) []*Node {
	if a == b {
		return []*Node{a}
	}
	return []*Node{a, b}
}

func sameNodeSet(a, b *Edge) bool {
	return (a.start == b.start && a.end == b.end) || (a.start == b.end && a.end == b.start)
}

// Sub edges of e, in order, cut at the given nodes. With no cuts the single
// sub edge wraps e itself.
func (e *Edge) splitAt(c *Config, cuts []cut) []*ElementaryEdge {
	if len(cuts) == 0 {
		return []*ElementaryEdge{NewElementaryEdge(e, true)}
	}
	sort.SliceStable(cuts, func(i, j int) bool { return cuts[i].val < cuts[j].val })
	nodes := []*Node{e.start}
	for _, ct := range cuts {
		last := nodes[len(nodes)-1]
		if ct.node == last || ct.node.IsEqual(c, last) {
			continue
		}
		nodes = append(nodes, ct.node)
	}
	if last := nodes[len(nodes)-1]; last != e.end && last.IsEqual(c, e.end) {
		nodes = nodes[:len(nodes)-1]
	}
	nodes = append(nodes, e.end)
	if len(nodes) == 2 {
		return []*ElementaryEdge{NewElementaryEdge(e, true)}
	}
	result := make([]*ElementaryEdge, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		result = append(result, NewElementaryEdge(e.BuildEdgeLyingOnMe(nodes[i], nodes[i+1], true), true))
	}
	return result
}

// SortIdsAbs orders the ids of nodes lying on the edge by characteristic
// value and returns the consecutive id pairs of the resulting sub edges.
// Nodes within precision of an extremity replace its id.
func (e *Edge) SortIdsAbs(c *Config, addNodes []*Node, ids map[*Node]int) []int {
	startID, ok := ids[e.start]
	if !ok {
		fatalf(InvalidInput, "start node %s of edge has no id", e.start)
	}
	endID, ok := ids[e.end]
	if !ok {
		fatalf(InvalidInput, "end node %s of edge has no id", e.end)
	}
	type charactNode struct {
		val float64
		id  int
	}
	sorted := make([]charactNode, 0, len(addNodes))
	for _, n := range addNodes {
		id, ok := ids[n]
		if !ok {
			fatalf(InvalidInput, "node %s lying on edge has no id", n)
		}
		sorted = append(sorted, charactNode{val: e.CharactValue(n), id: id})
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].val < sorted[j].val })
	inner := []int{}
	for i, cn := range sorted {
		if i > 0 && cn.val-sorted[i-1].val < c.Precision {
			continue
		}
		if cn.val < c.Precision {
			startID = cn.id
			continue
		}
		if cn.val > 1-c.Precision {
			endID = cn.id
			continue
		}
		inner = append(inner, cn.id)
	}
	chain := append([]int{startID}, inner...)
	chain = append(chain, endID)
	// Drop consecutive duplicates
	unique := chain[:1]
	for _, id := range chain[1:] {
		if id != unique[len(unique)-1] {
			unique = append(unique, id)
		}
	}
	result := make([]int, 0, 2*(len(unique)-1))
	for i := 0; i+1 < len(unique); i++ {
		result = append(result, unique[i], unique[i+1])
	}
	return result
}

func (e *Edge) DbgName() string {
	return dbg.Name(e)
}

func (e *Edge) String() string {
	switch e.kind {
	case KindArcCircle:
		return fmt.Sprintf("Arc %s %s -> %s c=(%g, %g) r=%g sweep=%g [%s]",
			e.DbgName(), e.start, e.end, e.arc.cx, e.arc.cy, e.arc.radius, e.arc.sweep, e.loc)
	default:
		return fmt.Sprintf("Lin %s %s -> %s [%s]", e.DbgName(), e.start, e.end, e.loc)
	}
}
