package geo2d

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// The Abs operations work in the frame where both operands fit a unit box
// centered on the origin, so that the absolute tolerances make sense whatever
// the scale of the input. Results are mapped back to the input frame.

// IntersectWithAbs is IntersectWith computed in the normalized frame.
func (p *QuadraticPolygon) IntersectWithAbs(c *Config, other *QuadraticPolygon) float64 {
	area, _, _ := p.IntersectWithAbsBarycenter(c, other)
	return area
}

func (p *QuadraticPolygon) IntersectWithAbsBarycenter(c *Config, other *QuadraticPolygon) (area, x, y float64) {
	c.validate()
	cpyThis, cpyOther := clonePair(p, other)
	xBary, yBary, fact := cpyThis.Normalize(cpyOther)
	area, x, y = sumAreasAndBarycenters(cpyThis.intersectMySelfWith(c, cpyOther))
	if area > 0 {
		x = x*fact + xBary
		y = y*fact + yBary
	}
	return area * fact * fact, x, y
}

// IntersectWithAbs1D is for an open chain other: it returns the length of
// other lying in or on p, and whether some of it lies on the boundary of p.
func (p *QuadraticPolygon) IntersectWithAbs1D(c *Config, other *QuadraticPolygon) (length float64, isColinear bool) {
	c.validate()
	cpyThis, cpyOther := clonePair(p, other)
	_, _, fact := cpyThis.Normalize(cpyOther)
	scope := NewClassificationScope(cpyThis, cpyOther)
	SplitPolygonsEachOther(c, cpyThis, cpyOther)
	cpyThis.PerformLocatingOperation(c, scope, cpyOther)
	var lengths []float64
	for _, ee := range cpyOther.Elements() {
		switch ee.Loc() {
		case FullOnOne:
			isColinear = true
			fallthrough
		case FullInOne:
			lengths = append(lengths, math.Abs(ee.CurveLength()))
		}
	}
	return floats.Sum(lengths) * fact, isColinear
}

// SplitAbsInput gives the global ids of the nodes of both polygons. Nodes of
// other are numbered after the Offset1 nodes of the mesh of p. New nodes get
// ids from Offset2 on. OtherEdgeIds holds the global id of every edge of
// other, in order.
type SplitAbsInput struct {
	MapThis      map[*Node]int
	MapOther     map[*Node]int
	Offset1      int
	Offset2      int
	OtherEdgeIds []int
	CellIdThis   int
}

// SplitAbsOutput accumulates the results of successive SplitAbs calls.
type SplitAbsOutput struct {
	// Id pairs of the split edges of p, in order.
	EdgesThis []int
	// Edge of other to the cells of p having a part on it.
	EdgesInOtherColinearWithThis map[int][]int
	// Edge of other to the id pairs of its pieces, when it was split.
	SubDivOther map[int][]int
	// Coordinates of the new nodes, in the input frame.
	AddCoords []float64
}

func NewSplitAbsOutput() *SplitAbsOutput {
	return &SplitAbsOutput{
		EdgesInOtherColinearWithThis: map[int][]int{},
		SubDivOther:                  map[int][]int{},
	}
}

// SplitAbs splits p against every edge of other and expresses the result
// with global node ids. p is split in place. Edges of other are split one at
// a time, so other keeps its elements while their nodes may be merged into
// nodes of p.
func (p *QuadraticPolygon) SplitAbs(c *Config, other *QuadraticPolygon, in SplitAbsInput, out *SplitAbsOutput) {
	c.validate()
	if len(in.OtherEdgeIds) != other.Size() {
		fatalf(InvalidInput, "%d edge ids for %d edges", len(in.OtherEdgeIds), other.Size())
	}
	xBary, yBary, fact := p.Normalize(other)
	ids := &globalIds{in: in, out: out, added: map[*Node]int{}, xBary: xBary, yBary: yBary, fact: fact}
	for i, curE3 := range other.Elements() {
		otherTmp := QuadraticPolygonOf(NewElementaryEdge(curE3.edge, curE3.direction))
		SplitPolygonsEachOther(c, p, otherTmp)
		edgeID := in.OtherEdgeIds[i]
		if otherTmp.PresenceOfOn() {
			out.EdgesInOtherColinearWithThis[edgeID] = append(out.EdgesInOtherColinearWithThis[edgeID], in.CellIdThis)
		}
		if otherTmp.Size() > 1 {
			for _, ee := range otherTmp.Elements() {
				out.SubDivOther[edgeID] = append(out.SubDivOther[edgeID], ids.of(ee.edge.start), ids.of(ee.edge.end))
			}
		}
	}
	for _, ee := range p.Elements() {
		out.EdgesThis = append(out.EdgesThis, ids.of(ee.StartNode()), ids.of(ee.EndNode()))
	}
	UnApplyGlobalSimilarity(xBary, yBary, fact, p, other)
	c.Log().WithFields(logrus.Fields{
		"cell":  in.CellIdThis,
		"edges": p.Size(),
		"added": len(ids.added),
	}).Debug("split cell")
}

type globalIds struct {
	in                 SplitAbsInput
	out                *SplitAbsOutput
	added              map[*Node]int
	xBary, yBary, fact float64
}

// Id of a node of p, then of other, then of a node already added, else a new
// id whose coordinates are appended.
func (g *globalIds) of(n *Node) int {
	if id, ok := g.in.MapThis[n]; ok {
		return id
	}
	if id, ok := g.in.MapOther[n]; ok {
		return id + g.in.Offset1
	}
	if id, ok := g.added[n]; ok {
		return id
	}
	id := g.in.Offset2 + len(g.out.AddCoords)/2
	g.out.AddCoords = append(g.out.AddCoords, n.X*g.fact+g.xBary, n.Y*g.fact+g.yBary)
	g.added[n] = id
	return id
}

// BuildPartitionsAbs builds the intersection of p and other, both built from
// crude data against each other so that they are already split, and appends
// the result cells to out. nbThis and nbOther receive idThis and idOther for
// every cell appended.
func (p *QuadraticPolygon) BuildPartitionsAbs(c *Config, scope *ClassificationScope, other *QuadraticPolygon, mapp map[*Node]int, idThis, idOther, offset int, out *CrudeData, nbThis, nbOther *[]int) {
	c.validate()
	scope.require(p, other)
	xBary, yBary, fact := p.Normalize(other)
	other.PerformLocatingOperation(c, scope, p)
	res := BuildIntersectionPolygons(c, other, p)
	for _, r := range res {
		r.AppendCrudeData(mapp, xBary, yBary, fact, offset, out)
		*nbThis = append(*nbThis, idThis)
		*nbOther = append(*nbOther, idOther)
	}
	UnApplyGlobalSimilarity(xBary, yBary, fact, p, other)
}
