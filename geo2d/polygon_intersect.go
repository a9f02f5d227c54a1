package geo2d

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Intersect returns the closed polygons of the intersection of p and other.
// Neither operand is modified: the work is done on deep copies.
func (p *QuadraticPolygon) Intersect(c *Config, other *QuadraticPolygon) []*QuadraticPolygon {
	c.validate()
	return p.intersectMySelfWith(c, other)
}

// Area of the intersection.
func (p *QuadraticPolygon) IntersectWith(c *Config, other *QuadraticPolygon) float64 {
	area, _, _ := p.IntersectWithBarycenter(c, other)
	return area
}

// Area of the intersection and its barycenter. An empty intersection has its
// barycenter at the origin.
func (p *QuadraticPolygon) IntersectWithBarycenter(c *Config, other *QuadraticPolygon) (area, x, y float64) {
	return sumAreasAndBarycenters(p.Intersect(c, other))
}

func sumAreasAndBarycenters(polys []*QuadraticPolygon) (area, x, y float64) {
	areas := make([]float64, 0, len(polys))
	xs := make([]float64, 0, len(polys))
	ys := make([]float64, 0, len(polys))
	for _, pol := range polys {
		a := math.Abs(pol.Area())
		bx, by := pol.Barycenter()
		areas = append(areas, a)
		xs = append(xs, bx*a)
		ys = append(ys, by*a)
	}
	area = floats.Sum(areas)
	if area > 0 {
		x = floats.Sum(xs) / area
		y = floats.Sum(ys) / area
	}
	return area, x, y
}

func (p *QuadraticPolygon) intersectMySelfWith(c *Config, other *QuadraticPolygon) []*QuadraticPolygon {
	cpyThis, cpyOther := clonePair(p, other)
	scope := NewClassificationScope(cpyThis, cpyOther)
	nbOfSplits := SplitPolygonsEachOther(c, cpyThis, cpyOther)
	cpyThis.PerformLocatingOperation(c, scope, cpyOther)
	result := BuildIntersectionPolygons(c, cpyThis, cpyOther)
	c.Log().WithFields(logrus.Fields{
		"splits":   nbOfSplits,
		"this":     cpyThis.Size(),
		"other":    cpyOther.Size(),
		"polygons": len(result),
	}).Debug("intersected polygons")
	return result
}

// SplitPolygonsEachOther cuts both polygons at every mutual intersection, so
// that afterwards every such point is a node shared by both, and parts lying
// on both boundaries are the same Edge. It returns the number of edge pairs
// tested.
func SplitPolygonsEachOther(c *Config, pol1, pol2 *QuadraticPolygon) int {
	var merge MergePoints
	nbOfSplits := 0
	for it2 := pol2.Iterator(); !it2.Finished(); it2.Next() {
		curE2 := it2.Current()
		var it1 *Iterator
		if curE2.resume != nil && curE2.resume.ce == &pol1.ComposedEdge {
			it1 = curE2.resume.Copy()
		} else {
			it1 = pol1.Iterator()
		}
		for !it1.Finished() {
			curE1 := it1.Current()
			merge.Clear()
			nbOfSplits++
			sub1, sub2, ok := curE1.edge.IntersectWith(c, curE2.edge, &merge)
			if !ok {
				updateNeighbours(c, &merge, it1, it2)
				it1.Next()
				continue
			}
			c1 := ComposedEdgeOf(sub1...)
			c2 := ComposedEdgeOf(sub2...)
			if !curE1.direction {
				c1.Reverse()
			}
			if !curE2.direction {
				c2.Reverse()
			}
			updateNeighbours(c, &merge, it1, it2)
			it1.InsertElemEdges(c1, true)
			// Pieces of curE2 need no scan of the edges before it1
			it1.AssignMySelfToAllElems(c2)
			it2.InsertElemEdges(c2, false)
			curE2 = it2.Current()
		}
	}
	return nbOfSplits
}

// Nodes of the second polygon merged into nodes of the first must also be
// replaced on the edges around the current ones.
func updateNeighbours(c *Config, merge *MergePoints, it1, it2 *Iterator) {
	if merge.Len() == 0 {
		return
	}
	neighbours := []*ElementaryEdge{it1.previousElem(), it1.nextElem(), it2.previousElem(), it2.nextElem()}
	for _, pair := range merge.pairs {
		for _, ee := range neighbours {
			ee.edge.replaceNode(c, pair.old, pair.replacement)
		}
	}
}

// PerformLocatingOperation classifies every elementary edge of pol2 against
// p, each one helped by the class of its predecessor.
func (p *QuadraticPolygon) PerformLocatingOperation(c *Config, scope *ClassificationScope, pol2 *QuadraticPolygon) {
	scope.require(p, pol2)
	loc := FullOnOne
	for _, ee := range pol2.Elements() {
		loc = ee.LocateFullyMySelf(c, p, loc)
	}
}

// BuildIntersectionPolygons stitches the kept runs of the located pol2 with
// the parts of pol1 closing them. Both polygons must have been split against
// each other.
func BuildIntersectionPolygons(c *Config, pol1, pol2 *QuadraticPolygon) []*QuadraticPolygon {
	zip := pol2.ZipConsecutiveInSegments()
	if len(zip) > 0 {
		return closePolygons(c, zip, pol1, pol2)
	}
	// The boundary of pol2 never enters pol1: either they are disjoint or pol1
	// lies inside pol2.
	if pol1.Empty() {
		return nil
	}
	if pol1.Front().LocateFullyMySelf(c, pol2, FullOnOne) == FullInOne {
		return []*QuadraticPolygon{pol1.shallowClone()}
	}
	return nil
}

// ZipConsecutiveInSegments returns every maximal run of elements that are not
// OUT, as open polygons of cloned elements.
func (p *QuadraticPolygon) ZipConsecutiveInSegments() []*QuadraticPolygon {
	if p.Empty() {
		return nil
	}
	it := p.Iterator()
	nbOfTurns := p.RecursiveSize()
	i := 0
	if !it.GoToNextInOn(false, &i, nbOfTurns) {
		return nil
	}
	i = 0
	var result []*QuadraticPolygon
	for i < nbOfTurns {
		run := NewQuadraticPolygon()
		for it.Current().Loc() != FullOutOne && i < nbOfTurns {
			run.PushBack(it.Current().Clone())
			it.NextLoop()
			i++
		}
		if !run.Empty() {
			result = append(result, run)
		}
		it.GoToNextInOn(true, &i, nbOfTurns)
	}
	return result
}

func closePolygons(c *Config, zip []*QuadraticPolygon, pol1, pol2 *QuadraticPolygon) []*QuadraticPolygon {
	var results []*QuadraticPolygon
	directionKnown := false
	var direction bool
	for len(zip) > 0 {
		run := zip[0]
		if run.Completed() {
			results = append(results, run)
			directionKnown = false
			zip = zip[1:]
			continue
		}
		if !directionKnown {
			var ok bool
			direction, ok = run.AmIAChanceToBeCompletedBy(c, pol1, pol2)
			if !ok {
				zip = zip[1:]
				continue
			}
			directionKnown = true
		}
		if k := run.FillAsMuchAsPossibleWith(c, pol1, zip[1:], direction); k >= 0 {
			run.PushBackAll(&zip[k+1].ComposedEdge)
			zip = append(zip[:k+1], zip[k+2:]...)
		}
	}
	return results
}

// AmIAChanceToBeCompletedBy finds in which direction pol1 must be walked from
// the end of the open run p to close it. ok is false when the part of pol1
// leaving that point is not in pol2, in which case the run is dropped.
func (p *QuadraticPolygon) AmIAChanceToBeCompletedBy(c *Config, pol1, pol2 *QuadraticPolygon) (direction, ok bool) {
	it := pol1.findStartingAt(p.EndNode())
	cur := it.Current()
	back := p.Back()
	if back.Loc() == FullOnOne {
		if back.IntrinsicEqual(cur) {
			it.PreviousLoop()
			cur = it.Current()
			return false, pol2.IsInOrOut(c, cur.edge.BuildRepresentantOfMySelf())
		}
		return true, pol2.IsInOrOut(c, cur.edge.BuildRepresentantOfMySelf())
	}
	return cur.LocateFullyMySelfAbsolute(c, pol2) == FullInOne, true
}

// FillAsMuchAsPossibleWith appends elements of pol1 to the open run p, from
// its end and in the given direction, until p is closed or its end is the
// start of one of rest. It returns the index in rest of that run, or -1.
func (p *QuadraticPolygon) FillAsMuchAsPossibleWith(c *Config, pol1 *QuadraticPolygon, rest []*QuadraticPolygon, direction bool) int {
	it := pol1.findStartingAt(p.EndNode())
	if !direction {
		it.PreviousLoop()
	}
	for steps := 0; steps < pol1.Size(); steps++ {
		tmp := it.Current().Clone()
		if !direction {
			tmp.Reverse()
		}
		p.PushBack(tmp)
		nodeToTest := tmp.EndNode()
		if direction {
			it.NextLoop()
		} else {
			it.PreviousLoop()
		}
		if p.Completed() {
			return -1
		}
		for k, r := range rest {
			if r.StartNode() == nodeToTest {
				return k
			}
		}
	}
	fatalf(Incompatible, "walked around %d edges without closing the run ending at %s", pol1.Size(), p.EndNode())
	return -1
}

// Iterator on the element of p starting at n.
func (p *QuadraticPolygon) findStartingAt(n *Node) *Iterator {
	for it := p.Iterator(); !it.Finished(); it.Next() {
		if it.Current().StartNode() == n {
			return it
		}
	}
	fatalf(Incompatible, "no edge starts at %s", n)
	return nil
}
