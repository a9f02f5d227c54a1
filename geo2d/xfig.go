package geo2d

import (
	"fmt"
	"io"
	"math"
)

// Xfig 3.2 dumps, to look at polygons with xfig or convert them with fig2dev.

const xfigResolution = 1200

// Errors of fmt.Fprintf are kept until the end of the dump.
type xfigWriter struct {
	w   io.Writer
	err error
}

func (x *xfigWriter) printf(format string, args ...interface{}) {
	if x.err == nil {
		_, x.err = fmt.Fprintf(x.w, format, args...)
	}
}

// DumpInXfigFile writes p, fitted in its own bounds.
func (p *QuadraticPolygon) DumpInXfigFile(w io.Writer) error {
	return p.DumpInXfigFileIn(w, xfigResolution, p.Bounds())
}

// Like DumpInXfigFile, with other in the same picture.
func (p *QuadraticPolygon) DumpInXfigFileWithOther(w io.Writer, other *ComposedEdge) error {
	box := p.Bounds()
	box.Aggregate(other.Bounds())
	x := &xfigWriter{w: w}
	writeXfigHeader(x, xfigResolution)
	p.ComposedEdge.dumpInXfig(x, xfigResolution, box)
	other.dumpInXfig(x, xfigResolution, box)
	return x.err
}

func (p *QuadraticPolygon) DumpInXfigFileIn(w io.Writer, resolution int, box Bounds) error {
	x := &xfigWriter{w: w}
	writeXfigHeader(x, resolution)
	p.ComposedEdge.dumpInXfig(x, resolution, box)
	return x.err
}

func writeXfigHeader(x *xfigWriter, resolution int) {
	x.printf("#FIG 3.2  Produced by xfig version 3.2.5-alpha5\n")
	x.printf("Landscape\nCenter\nMetric\nLetter\n100.00\nSingle\n-2\n")
	x.printf("%d 2\n", resolution)
}

func (ce *ComposedEdge) dumpInXfig(x *xfigWriter, resolution int, box Bounds) {
	for _, ee := range ce.Elements() {
		ee.dumpInXfig(x, resolution, box)
	}
}

func (ee *ElementaryEdge) dumpInXfig(x *xfigWriter, resolution int, box Bounds) {
	e := ee.edge
	color := xfigColor(ee.Loc())
	start, end := ee.StartNode(), ee.EndNode()
	if e.kind != KindArcCircle {
		x.printf("2 1 0 1 %d 7 50 -1 -1 0.000 0 0 -1 1 0 2\n1 1 1.00 60.00 120.00\n", color)
		x.printf("%s %s\n", xfigPoint(box, resolution, start.X, start.Y), xfigPoint(box, resolution, end.X, end.Y))
		return
	}
	// The y axis of Xfig points down, which turns anticlockwise arcs clockwise
	anticlockwise := (e.arc.sweep > 0) == ee.direction
	direction := 0
	if !anticlockwise {
		direction = 1
	}
	mid := e.representantArc()
	x.printf("5 1 0 1 %d 7 50 -1 -1 0.000 0 %d 1 0 %s %s %s %s\n1 1 1.00 60.00 120.00\n",
		color, direction,
		xfigPoint(box, resolution, e.arc.cx, e.arc.cy),
		xfigPoint(box, resolution, start.X, start.Y),
		xfigPoint(box, resolution, mid.X, mid.Y),
		xfigPoint(box, resolution, end.X, end.Y),
	)
}

func xfigColor(loc TypeOfEdgeLocInPolygon) int {
	switch loc {
	case FullInOne:
		return 2
	case FullOutOne:
		return 4
	case FullOnOne:
		return 1
	}
	return 0
}

// Fit the box in a sheet of 11.1375 inches, y going down.
func xfigPoint(box Bounds, resolution int, px, py float64) string {
	delta := math.Max(box.XMax-box.XMin, box.YMax-box.YMin) / 2
	if delta == 0 {
		delta = 1
	}
	k := 11.1375 * float64(resolution) / (2 * delta)
	fx := (px - (box.XMax+box.XMin)/2 + delta) * k
	fy := ((box.YMax+box.YMin)/2 - py + delta) * k
	return fmt.Sprintf("%d %d", int(fx), int(fy))
}
