package geo2d

import "gonum.org/v1/gonum/floats"

// PerimeterSplit dispatches the boundary lengths of two polygons by location
// relative to each other. Common is the length of the boundary parts shared
// by both, counted once.
type PerimeterSplit struct {
	ThisInside   float64
	ThisOutside  float64
	OtherInside  float64
	OtherOutside float64
	Common       float64
}

// IntersectForPerimeter returns the length of the boundary of p inside
// other, the length of the boundary of other inside p, and the length they
// share.
func (p *QuadraticPolygon) IntersectForPerimeter(c *Config, other *QuadraticPolygon) (thisPart, otherPart, commonPart float64) {
	split := p.IntersectForPerimeterSplit(c, other)
	return split.ThisInside, split.OtherInside, split.Common
}

func (p *QuadraticPolygon) IntersectForPerimeterSplit(c *Config, other *QuadraticPolygon) PerimeterSplit {
	c.validate()
	cpyThis, cpyOther := clonePair(p, other)
	scope := NewClassificationScope(cpyThis, cpyOther)
	SplitPolygonsEachOther(c, cpyThis, cpyOther)
	cpyThis.PerformLocatingOperation(c, scope, cpyOther)
	cpyOther.PerformLocatingOperation(c, scope, cpyThis)
	var split PerimeterSplit
	var common1, common2 float64
	split.ThisInside, split.ThisOutside, common1 = cpyThis.dispatchPerimeterExcl()
	split.OtherInside, split.OtherOutside, common2 = cpyOther.dispatchPerimeterExcl()
	split.Common = (common1 + common2) / 2
	return split
}

// Lengths by location of the elements.
func (ce *ComposedEdge) dispatchPerimeterExcl() (in, out, on float64) {
	var ins, outs, ons []float64
	for _, ee := range ce.Elements() {
		switch ee.Loc() {
		case FullInOne:
			ins = append(ins, ee.CurveLength())
		case FullOutOne:
			outs = append(outs, ee.CurveLength())
		case FullOnOne:
			ons = append(ons, ee.CurveLength())
		}
	}
	return floats.Sum(ins), floats.Sum(outs), floats.Sum(ons)
}

// Length of the elements in or on the other polygon.
func (ce *ComposedEdge) dispatchPerimeter() float64 {
	in, _, on := ce.dispatchPerimeterExcl()
	return in + on
}

// IntersectForPerimeterAdvanced gives, for every edge of p and then of
// other, the length of that edge lying in or on the other polygon. Common
// parts are therefore counted in both.
func (p *QuadraticPolygon) IntersectForPerimeterAdvanced(c *Config, other *QuadraticPolygon) (thisLens, otherLens []float64) {
	c.validate()
	return perEdgeInLength(c, p, other), perEdgeInLength(c, other, p)
}

func perEdgeInLength(c *Config, p, other *QuadraticPolygon) []float64 {
	result := make([]float64, 0, p.Size())
	for _, ee := range p.Elements() {
		tmp, cpyOther := singleEdgeWith(ee, other)
		scope := NewClassificationScope(tmp, cpyOther)
		SplitPolygonsEachOther(c, tmp, cpyOther)
		cpyOther.PerformLocatingOperation(c, scope, tmp)
		result = append(result, tmp.dispatchPerimeter())
	}
	return result
}

// IntersectForPoint counts, for every edge of p, the nodes that splitting it
// against other adds to it.
func (p *QuadraticPolygon) IntersectForPoint(c *Config, other *QuadraticPolygon) []int {
	c.validate()
	result := make([]int, 0, p.Size())
	for _, ee := range p.Elements() {
		tmp, cpyOther := singleEdgeWith(ee, other)
		SplitPolygonsEachOther(c, tmp, cpyOther)
		result = append(result, tmp.RecursiveSize()-1)
	}
	return result
}

// Deep copies of the single elementary edge ee, as an open polygon, and of
// other.
func singleEdgeWith(ee *ElementaryEdge, other *QuadraticPolygon) (*QuadraticPolygon, *QuadraticPolygon) {
	return clonePair(QuadraticPolygonOf(ee.Clone()), other)
}
