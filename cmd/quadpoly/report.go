package main

import (
	"io"

	"github.com/osuushi/quadpoly/geo2d"
)

type report struct {
	Command    string           `yaml:"command"`
	Area       *float64         `yaml:"area,omitempty"`
	Barycenter []float64        `yaml:"barycenter,omitempty,flow"`
	Perimeter  *perimeterReport `yaml:"perimeter,omitempty"`
	Polygons   []polygonReport  `yaml:"polygons,omitempty"`
	Butterfly  []bool           `yaml:"butterfly,omitempty,flow"`
}

type perimeterReport struct {
	FirstInside   float64 `yaml:"first_inside"`
	FirstOutside  float64 `yaml:"first_outside"`
	SecondInside  float64 `yaml:"second_inside"`
	SecondOutside float64 `yaml:"second_outside"`
	Common        float64 `yaml:"common"`
}

func perimeterReportOf(split geo2d.PerimeterSplit) *perimeterReport {
	return &perimeterReport{
		FirstInside:   split.ThisInside,
		FirstOutside:  split.ThisOutside,
		SecondInside:  split.OtherInside,
		SecondOutside: split.OtherOutside,
		Common:        split.Common,
	}
}

// Corners as "x y" or "x y mx my" rows, the input format.
type polygonReport struct {
	Area    float64     `yaml:"area"`
	Corners [][]float64 `yaml:"corners,flow"`
}

func polygonReportOf(p *geo2d.QuadraticPolygon) polygonReport {
	r := polygonReport{Area: p.Area()}
	for _, ee := range p.Elements() {
		start := ee.StartNode()
		row := []float64{start.X, start.Y}
		if ee.Edge().IsArc() {
			middle := ee.Edge().BuildRepresentantOfMySelf()
			row = append(row, middle.X, middle.Y)
		}
		r.Corners = append(r.Corners, row)
	}
	return r
}

// dumpSplitPair writes copies of p1 and p2 split against each other, their
// edges colored by location.
func dumpSplitPair(w io.Writer, c *geo2d.Config, p1, p2 *geo2d.QuadraticPolygon) (err error) {
	var cpy1, cpy2 *geo2d.QuadraticPolygon
	err = geo2d.Guard(func() {
		cpy1, cpy2 = p1.Clone(), p2.Clone()
		scope := geo2d.NewClassificationScope(cpy1, cpy2)
		geo2d.SplitPolygonsEachOther(c, cpy1, cpy2)
		cpy1.PerformLocatingOperation(c, scope, cpy2)
		cpy2.PerformLocatingOperation(c, scope, cpy1)
	})
	if err != nil {
		return err
	}
	return cpy1.DumpInXfigFileWithOther(w, &cpy2.ComposedEdge)
}
