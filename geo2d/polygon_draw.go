package geo2d

import (
	"io"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// This is for debugging purposes only

// Padding around the drawing, in pixels
const dbgDrawPadding = 20

// Helper to draw polygons and print them in the terminal (iTerm only).
func DbgDraw(scale float64, polys ...*QuadraticPolygon) {
	c := drawPolygons(scale, polys)
	c.SavePNG("/tmp/quadpoly.png")
	imgcat.CatFile("/tmp/quadpoly.png", os.Stdout)
}

// WritePNG renders the polygons, with scale pixels per unit. Edges are
// colored by location: IN green, OUT red, ON cyan, unknown white.
func WritePNG(w io.Writer, scale float64, polys ...*QuadraticPolygon) error {
	return drawPolygons(scale, polys).EncodePNG(w)
}

func SavePNG(path string, scale float64, polys ...*QuadraticPolygon) error {
	return drawPolygons(scale, polys).SavePNG(path)
}

func drawPolygons(scale float64, polys []*QuadraticPolygon) *gg.Context {
	b := EmptyBounds()
	for _, p := range polys {
		b.Aggregate(p.Bounds())
	}
	if b.IsEmpty() {
		b = NewBounds(0, 1, 0, 1)
	}

	// Set up the context
	width := int(scale*(b.XMax-b.XMin)) + dbgDrawPadding*2
	height := int(scale*(b.YMax-b.YMin)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.SetFillRuleEvenOdd()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-b.XMin, -b.YMin)

	for _, p := range polys {
		if p.Empty() {
			continue
		}
		c.NewSubPath()
		c.MoveTo(p.StartNode().X, p.StartNode().Y)
		for _, ee := range p.Elements() {
			traceElementaryEdge(c, ee)
		}
		c.ClosePath()
		c.SetRGBA(0, 0.5, 0, 0.3)
		c.Fill()
	}

	c.SetLineWidth(2 / scale)
	for _, p := range polys {
		for _, ee := range p.Elements() {
			c.NewSubPath()
			c.MoveTo(ee.StartNode().X, ee.StartNode().Y)
			traceElementaryEdge(c, ee)
			setLocColor(c, ee.Loc())
			c.Stroke()
		}
		for _, n := range p.Nodes() {
			c.DrawCircle(n.X, n.Y, 3/scale)
			setNodeLocColor(c, n.Loc())
			c.Fill()
		}
	}
	return c
}

// Continue the current path along ee, which starts at the current point.
func traceElementaryEdge(c *gg.Context, ee *ElementaryEdge) {
	e := ee.edge
	if e.kind != KindArcCircle {
		end := ee.EndNode()
		c.LineTo(end.X, end.Y)
		return
	}
	a0, a1 := e.arc.angle0, e.arc.angle0+e.arc.sweep
	if !ee.direction {
		a0, a1 = a1, a0
	}
	// gg interpolates linearly between both angles, in either order
	c.DrawArc(e.arc.cx, e.arc.cy, e.arc.radius, a0, a1)
}

func setLocColor(c *gg.Context, loc TypeOfEdgeLocInPolygon) {
	switch loc {
	case FullInOne:
		c.SetRGB(0, 1, 0)
	case FullOutOne:
		c.SetRGB(1, 0, 0)
	case FullOnOne:
		c.SetRGB(0, 1, 1)
	default:
		c.SetRGB(1, 1, 1)
	}
}

func setNodeLocColor(c *gg.Context, loc TypeOfLocInPolygon) {
	switch loc {
	case InsideStrictly:
		c.SetRGB(0, 1, 0)
	case OutsideStrictly:
		c.SetRGB(1, 0, 0)
	case OnBoundary, OnTangent:
		c.SetRGB(0, 1, 1)
	default:
		c.SetRGB(1, 1, 1)
	}
}
