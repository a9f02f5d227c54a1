package geo2d

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures into polygons. It is not a real svg
// parser. Every <polygon> becomes a linear polygon and every <circle> a full
// circle, in document order. Polygons are made anticlockwise. If anything
// goes wrong, it panics.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []*QuadraticPolygon {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	var result []*QuadraticPolygon
	for _, el := range rootEl.Children {
		switch el.Name {
		case "polygon":
			result = append(result, polygonFromPoints(el.Attributes["points"]))
		case "circle":
			cx, cy, r := parseFloat(el.Attributes["cx"]), parseFloat(el.Attributes["cy"]), parseFloat(el.Attributes["r"])
			start := NewNode(cx+r, cy)
			result = append(result, BuildArcCirclePolygon(DefaultConfig(), []*Node{start, NewNode(cx-r, cy)}))
		}
	}
	if len(result) == 0 {
		log.Fatalf("No shapes found in fixture %q", name)
	}
	return result
}

func polygonFromPoints(pointString string) *QuadraticPolygon {
	pointStrings := strings.Split(pointString, " ")
	nodes := make([]*Node, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		if pointString == "" {
			continue
		}

		pointStrings := strings.Split(pointString, ",")
		if len(pointStrings) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		nodes = append(nodes, NewNode(parseFloat(pointStrings[0]), parseFloat(pointStrings[1])))
	}
	p := BuildLinearPolygon(nodes)

	// Ensure that the polygon is CCW
	if p.Area() < 0 {
		for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
			nodes[i], nodes[j] = nodes[j], nodes[i]
		}
		p = BuildLinearPolygon(nodes)
	}
	return p
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("Invalid number %q: %v", s, err)
	}
	return v
}

// Helpers shared by the tests of this package.

func square(x, y, side float64) *QuadraticPolygon {
	return BuildLinearPolygon([]*Node{
		NewNode(x, y),
		NewNode(x+side, y),
		NewNode(x+side, y+side),
		NewNode(x, y+side),
	})
}

func circle(cx, cy, r float64) *QuadraticPolygon {
	return BuildArcCirclePolygon(DefaultConfig(), []*Node{NewNode(cx+r, cy), NewNode(cx-r, cy)})
}

func rect(x0, y0, x1, y1 float64) *QuadraticPolygon {
	return BuildLinearPolygon([]*Node{NewNode(x0, y0), NewNode(x1, y0), NewNode(x1, y1), NewNode(x0, y1)})
}

// A circle made of its upper and lower half arcs.
func twoArcCircle(cx, cy, r float64) *QuadraticPolygon {
	return BuildArcCirclePolygon(DefaultConfig(), []*Node{
		NewNode(cx+r, cy), NewNode(cx-r, cy),
		NewNode(cx, cy+r), NewNode(cx, cy-r),
	})
}

// Quarter disc of radius r on the first quadrant.
func quarterPie(r float64) *QuadraticPolygon {
	h := r / math.Sqrt2
	return BuildArcCirclePolygon(DefaultConfig(), []*Node{
		NewNode(0, 0), NewNode(r, 0), NewNode(0, r),
		NewNode(r/2, 0), NewNode(h, h), NewNode(0, r/2),
	})
}
