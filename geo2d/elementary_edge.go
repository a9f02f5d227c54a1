package geo2d

import (
	"fmt"

	"github.com/osuushi/quadpoly/dbg"
)

// ElementaryEdge is a directed view on a shared Edge. With direction false it
// runs from the end of the edge to its start. Several elementary edges, in
// different polygons, may wrap the same Edge.
type ElementaryEdge struct {
	edge      *Edge
	direction bool
	loc       TypeOfEdgeLocInPolygon
	// Where the splitting pass resumes scanning the first polygon after this
	// edge was inserted.
	resume *Iterator
}

func NewElementaryEdge(edge *Edge, direction bool) *ElementaryEdge {
	return &ElementaryEdge{edge: edge, direction: direction}
}

func (ee *ElementaryEdge) Edge() *Edge          { return ee.edge }
func (ee *ElementaryEdge) Direction() bool      { return ee.direction }
func (ee *ElementaryEdge) Bounds() Bounds       { return ee.edge.bounds }
func (ee *ElementaryEdge) CurveLength() float64 { return ee.edge.CurveLength() }

func (ee *ElementaryEdge) StartNode() *Node {
	if ee.direction {
		return ee.edge.start
	}
	return ee.edge.end
}

func (ee *ElementaryEdge) EndNode() *Node {
	if ee.direction {
		return ee.edge.end
	}
	return ee.edge.start
}

// Pointer identity with either logical end point.
func (ee *ElementaryEdge) IsNodeIn(n *Node) bool {
	return ee.edge.start == n || ee.edge.end == n
}

// The classification of the elementary edge if known, else the one shared
// through its Edge.
func (ee *ElementaryEdge) Loc() TypeOfEdgeLocInPolygon {
	if ee.loc != FullUnknown {
		return ee.loc
	}
	return ee.edge.loc
}

func (ee *ElementaryEdge) InitLocations() {
	ee.loc = FullUnknown
	ee.edge.InitLocs()
}

func (ee *ElementaryEdge) declareIn() {
	ee.loc = FullInOne
	ee.edge.start.DeclareIn()
	ee.edge.end.DeclareIn()
}

func (ee *ElementaryEdge) declareOut() {
	ee.loc = FullOutOne
	ee.edge.start.DeclareOut()
	ee.edge.end.DeclareOut()
}

func (ee *ElementaryEdge) AreaOfZone() float64 {
	if ee.direction {
		return ee.edge.AreaOfZone()
	}
	return -ee.edge.AreaOfZone()
}

func (ee *ElementaryEdge) BarycenterOfZone() (float64, float64) {
	x, y := ee.edge.BarycenterOfZone()
	if ee.direction {
		return x, y
	}
	return -x, -y
}

// Classify the whole elementary edge relative to pol, given the class of the
// edge preceding it on its own boundary. See the package documentation for
// the order of the rules.
func (ee *ElementaryEdge) LocateFullyMySelf(c *Config, pol *QuadraticPolygon, prec TypeOfEdgeLocInPolygon) TypeOfEdgeLocInPolygon {
	if loc := ee.Loc(); loc != FullUnknown {
		return loc
	}
	start := ee.StartNode()
	// A start node on the boundary only flips the state when it is a true
	// crossing. Merged vertices and T junctions fall through to the end point
	// and absolute tests.
	switch prec {
	case FullInOne:
		switch {
		case start.Loc() == OnBoundary && start.IsNew():
			ee.declareOut()
			return ee.loc
		case start.Loc() == InsideStrictly || start.Loc() == OnTangent:
			ee.declareIn()
			return ee.loc
		}
	case FullOutOne:
		switch {
		case start.Loc() == OnBoundary && start.IsNew():
			ee.declareIn()
			return ee.loc
		case start.Loc() == InsideStrictly || start.Loc() == OnTangent:
			ee.declareOut()
			return ee.loc
		}
	}
	for _, n := range []*Node{start, ee.EndNode()} {
		switch n.Loc() {
		case InsideStrictly:
			ee.declareIn()
			return ee.loc
		case OutsideStrictly:
			ee.declareOut()
			return ee.loc
		}
	}
	return ee.LocateFullyMySelfAbsolute(c, pol)
}

// Point in polygon test of a point inside the edge.
func (ee *ElementaryEdge) LocateFullyMySelfAbsolute(c *Config, pol *QuadraticPolygon) TypeOfEdgeLocInPolygon {
	if pol.IsInOrOut(c, ee.edge.BuildRepresentantOfMySelf()) {
		ee.declareIn()
	} else {
		ee.declareOut()
	}
	return ee.loc
}

// Same underlying curve whatever the direction.
func (ee *ElementaryEdge) IntrinsicEqual(other *ElementaryEdge) bool {
	return ee.edge == other.edge
}

func (ee *ElementaryEdge) IntrinsicEqualDirSensitive(other *ElementaryEdge) bool {
	return ee.edge == other.edge && ee.direction == other.direction
}

func (ee *ElementaryEdge) IntrinsicEqCoarse(edge *Edge) bool {
	return ee.edge == edge
}

// A new elementary edge on the same Edge.
func (ee *ElementaryEdge) Clone() *ElementaryEdge {
	return &ElementaryEdge{edge: ee.edge, direction: ee.direction, loc: ee.loc}
}

// Flip the direction in place.
func (ee *ElementaryEdge) Reverse() {
	ee.direction = !ee.direction
}

func (ee *ElementaryEdge) ChangeStartNodeWith(c *Config, n *Node) bool {
	if ee.direction {
		return ee.edge.ChangeStartNodeWith(c, n)
	}
	return ee.edge.ChangeEndNodeWith(c, n)
}

func (ee *ElementaryEdge) ChangeEndNodeWith(c *Config, n *Node) bool {
	if ee.direction {
		return ee.edge.ChangeEndNodeWith(c, n)
	}
	return ee.edge.ChangeStartNodeWith(c, n)
}

func (ee *ElementaryEdge) DbgName() string {
	return dbg.Name(ee)
}

func (ee *ElementaryEdge) String() string {
	arrow := "->"
	if !ee.direction {
		arrow = "<-"
	}
	return fmt.Sprintf("%s %s %s %s", ee.DbgName(), arrow, ee.edge, ee.Loc().DbgName())
}
