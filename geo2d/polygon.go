package geo2d

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// QuadraticPolygon is a closed chain of segments and arcs of circle. During a
// binary operation it may also hold an open run of edges waiting to be closed.
type QuadraticPolygon struct {
	ComposedEdge
}

func NewQuadraticPolygon() *QuadraticPolygon {
	return &QuadraticPolygon{ComposedEdge: *NewComposedEdge()}
}

// Polygon of the given elementary edges, in order.
func QuadraticPolygonOf(elems ...*ElementaryEdge) *QuadraticPolygon {
	p := NewQuadraticPolygon()
	for _, ee := range elems {
		p.PushBack(ee)
	}
	return p
}

// BuildLinearPolygon joins consecutive nodes, and the last to the first, with
// segments.
func BuildLinearPolygon(nodes []*Node) *QuadraticPolygon {
	if len(nodes) < 3 {
		fatalf(InvalidInput, "a polygon needs at least 3 nodes, got %d", len(nodes))
	}
	p := NewQuadraticPolygon()
	for i, n := range nodes {
		p.PushBack(NewElementaryEdge(NewEdgeLin(n, nodes[(i+1)%len(nodes)]), true))
	}
	return p
}

// BuildPolyline joins consecutive nodes with segments, leaving the chain
// open.
func BuildPolyline(nodes []*Node) *QuadraticPolygon {
	if len(nodes) < 2 {
		fatalf(InvalidInput, "a polyline needs at least 2 nodes, got %d", len(nodes))
	}
	p := NewQuadraticPolygon()
	for i := 0; i+1 < len(nodes); i++ {
		p.PushBack(NewElementaryEdge(NewEdgeLin(nodes[i], nodes[i+1]), true))
	}
	return p
}

// BuildArcCirclePolygon takes N corners followed by N middle nodes, the i-th
// middle lying on the edge from corner i to corner i+1. An edge whose three
// points are colinear becomes a segment. A single corner with its middle
// gives a full circle.
func BuildArcCirclePolygon(c *Config, nodes []*Node) *QuadraticPolygon {
	if len(nodes) < 2 || len(nodes)%2 != 0 {
		fatalf(InvalidInput, "an arc polygon needs 2N nodes, got %d", len(nodes))
	}
	n := len(nodes) / 2
	p := NewQuadraticPolygon()
	for i := 0; i < n; i++ {
		start, middle, end := nodes[i], nodes[i+n], nodes[(i+1)%n]
		e := NewEdgeFrom3Points(c, start, middle, end)
		p.PushBack(NewElementaryEdge(e, true))
	}
	return p
}

func (p *QuadraticPolygon) Perimeter() float64 {
	return p.CurveLength()
}

// Does the polygon hold at least one arc?
func (p *QuadraticPolygon) PresenceOfQuadraticEdge() bool {
	for _, ee := range p.Elements() {
		if ee.edge.IsArc() {
			return true
		}
	}
	return false
}

// IsInOrOut tells whether n is strictly inside the polygon, by winding
// number. Points on the boundary have no defined answer.
func (p *QuadraticPolygon) IsInOrOut(c *Config, n *Node) bool {
	if !p.Bounds().Contains(n.X, n.Y, c.Precision) {
		return false
	}
	terms := make([]float64, 0, p.Size())
	for _, ee := range p.Elements() {
		w := ee.edge.windingAngle(n.X, n.Y)
		if !ee.direction {
			w = -w
		}
		terms = append(terms, w)
	}
	return math.Round(floats.Sum(terms)/(2*math.Pi)) != 0
}

// CloseMe makes the start of the front the same node as the end of the back.
func (p *QuadraticPolygon) CloseMe(c *Config) {
	if p.Empty() || !p.Front().ChangeStartNodeWith(c, p.Back().EndNode()) {
		fatalf(NotClosed, "polygon from %s to %s is not closed", p.StartNode(), p.EndNode())
	}
}

// Move the front element to the back.
func (p *QuadraticPolygon) CircularPermute() {
	if p.Size() > 1 {
		elems := p.Elements()
		p.ClearAll()
		for _, ee := range elems[1:] {
			p.PushBack(ee)
		}
		p.PushBack(elems[0])
	}
}

// Clone is a deep copy: new nodes and edges, with the same sharing as p.
func (p *QuadraticPolygon) Clone() *QuadraticPolygon {
	return &QuadraticPolygon{ComposedEdge: *p.deepCopy(map[*Node]*Node{}, map[*Edge]*Edge{})}
}

// Deep copies of a and b sharing the copies of what a and b share. A polygon
// paired with itself gets two independent copies, since an edge is never
// intersected with itself.
func clonePair(a, b *QuadraticPolygon) (*QuadraticPolygon, *QuadraticPolygon) {
	nodes := map[*Node]*Node{}
	edges := map[*Edge]*Edge{}
	ca := &QuadraticPolygon{ComposedEdge: *a.deepCopy(nodes, edges)}
	if a == b {
		return ca, b.Clone()
	}
	cb := &QuadraticPolygon{ComposedEdge: *b.deepCopy(nodes, edges)}
	return ca, cb
}

// New elementary edges on the same Edges.
func (p *QuadraticPolygon) shallowClone() *QuadraticPolygon {
	return &QuadraticPolygon{ComposedEdge: *p.shallowCopy()}
}

// Normalize moves p and other into the frame where their common bounding box
// is centered on the origin with a unit largest extent. Nodes and edges shared
// by both polygons are moved once. It returns the frame so that results can
// be mapped back: x = xNorm*fact + xBary.
func (p *QuadraticPolygon) Normalize(other *QuadraticPolygon) (xBary, yBary, fact float64) {
	b := p.Bounds()
	b.Aggregate(other.Bounds())
	fact = b.CaracteristicDim()
	if !(fact > 0) || !isFinite(fact) {
		fatalf(DegenerateGeometry, "cannot normalize polygons with bounds %s", b)
	}
	xBary, yBary = b.Center()
	ApplyGlobalSimilarity(xBary, yBary, fact, p, other)
	return xBary, yBary, fact
}

// ApplyGlobalSimilarity moves every node and carrier of the polygons once.
func ApplyGlobalSimilarity(xBary, yBary, fact float64, polys ...*QuadraticPolygon) {
	nodes, edges := sharedContent(polys)
	for _, n := range nodes {
		n.ApplySimilarity(xBary, yBary, fact)
	}
	for _, e := range edges {
		e.applySimilarity(xBary, yBary, fact)
	}
}

func UnApplyGlobalSimilarity(xBary, yBary, fact float64, polys ...*QuadraticPolygon) {
	nodes, edges := sharedContent(polys)
	for _, n := range nodes {
		n.UnApplySimilarity(xBary, yBary, fact)
	}
	for _, e := range edges {
		e.unApplySimilarity(xBary, yBary, fact)
	}
}

func sharedContent(polys []*QuadraticPolygon) ([]*Node, []*Edge) {
	seenNodes := map[*Node]bool{}
	seenEdges := map[*Edge]bool{}
	var nodes []*Node
	var edges []*Edge
	for _, p := range polys {
		for _, n := range p.Nodes() {
			if !seenNodes[n] {
				seenNodes[n] = true
				nodes = append(nodes, n)
			}
		}
		for _, e := range p.Edges() {
			if !seenEdges[e] {
				seenEdges[e] = true
				edges = append(edges, e)
			}
		}
	}
	return nodes, edges
}

// ClassificationScope holds the polygons whose location tags belong to one
// binary operation. Creating a scope resets the tags of its polygons. The
// operations reading or writing tags refuse polygons outside of it, so stale
// tags from a previous operation can never be read.
type ClassificationScope struct {
	polys map[*QuadraticPolygon]bool
}

func NewClassificationScope(polys ...*QuadraticPolygon) *ClassificationScope {
	s := &ClassificationScope{polys: map[*QuadraticPolygon]bool{}}
	for _, p := range polys {
		p.InitLocations()
		s.polys[p] = true
	}
	return s
}

func (s *ClassificationScope) covers(p *QuadraticPolygon) bool {
	return s != nil && s.polys[p]
}

// Polygons built during the operation from polygons of the scope.
func (s *ClassificationScope) adopt(p *QuadraticPolygon) {
	s.polys[p] = true
}

func (s *ClassificationScope) require(polys ...*QuadraticPolygon) {
	for _, p := range polys {
		if !s.covers(p) {
			fatalf(InvalidInput, "polygon used outside of its classification scope")
		}
	}
}
