package geo2d

import (
	"fmt"
	"math"

	"github.com/osuushi/quadpoly/dbg"
)

// Node is a 2D point shared by pointer between adjacent edges. Identity
// matters: two edges are connected iff they hold the same *Node. Geometric
// equality is tolerance based and only used to decide merges.
type Node struct {
	X, Y  float64
	loc   TypeOfLocInPolygon
	isNew bool
}

func NewNode(x, y float64) *Node {
	return &Node{X: x, Y: y}
}

// Coordinate access, 0 for x and 1 for y.
func (n *Node) Coord(i int) float64 {
	if i == 0 {
		return n.X
	}
	return n.Y
}

func (n *Node) Copy() *Node {
	return &Node{X: n.X, Y: n.Y, loc: n.loc}
}

func (n *Node) DistanceWithSq(other *Node) float64 {
	return DistanceBtw2PtSq(n.X, n.Y, other.X, other.Y)
}

func DistanceBtw2PtSq(x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	return dx*dx + dy*dy
}

func DistanceBtw2Pt(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

func (n *Node) IsEqual(c *Config, other *Node) bool {
	return c.Equal(DistanceBtw2Pt(n.X, n.Y, other.X, other.Y), 0)
}

// Angle of the vector from n to other, in (-pi, pi].
func (n *Node) AngleTo(other *Node) float64 {
	return math.Atan2(other.Y-n.Y, other.X-n.X)
}

func (n *Node) Loc() TypeOfLocInPolygon { return n.loc }

// The first declaration wins, except a tangency which always overrides.
func (n *Node) DeclareIn()        { n.declare(InsideStrictly) }
func (n *Node) DeclareOut()       { n.declare(OutsideStrictly) }
func (n *Node) DeclareOn()        { n.declare(OnBoundary) }
func (n *Node) DeclareOnTangent() { n.loc = OnTangent }
func (n *Node) InitLocs()         { n.loc = Unknown; n.isNew = false }

func (n *Node) declare(loc TypeOfLocInPolygon) {
	if n.loc == Unknown {
		n.loc = loc
	}
}

// Nodes created while splitting two polygons against each other.
func (n *Node) IsNew() bool { return n.isNew }
func (n *Node) MarkNew()    { n.isNew = true }

// Move into the frame centered on (xBary, yBary) with unit characteristic
// dimension dimChar.
func (n *Node) ApplySimilarity(xBary, yBary, dimChar float64) {
	n.X = (n.X - xBary) / dimChar
	n.Y = (n.Y - yBary) / dimChar
}

func (n *Node) UnApplySimilarity(xBary, yBary, dimChar float64) {
	n.X = n.X*dimChar + xBary
	n.Y = n.Y*dimChar + yBary
}

func (n *Node) String() string {
	if n == nil {
		return "Ø"
	}
	return fmt.Sprintf("%s(%g, %g)[%s]", dbg.Name(n), n.X, n.Y, n.loc)
}
