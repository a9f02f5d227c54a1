package geo2d

import (
	"math"

	"github.com/sirupsen/logrus"
)

// NewEdgeArcCircle builds the arc of circle going from start through middle to
// end. When start and end are the same node the result is the full circle of
// diameter [start, middle], turning anticlockwise. Colinear points have no
// circle and are rejected; callers that may see them test colinearity first
// and fall back to a segment.
func NewEdgeArcCircle(start, middle, end *Node) *Edge {
	e := &Edge{kind: KindArcCircle, start: start, end: end}
	if start == end {
		e.arc.cx = (start.X + middle.X) / 2
		e.arc.cy = (start.Y + middle.Y) / 2
		e.arc.radius = DistanceBtw2Pt(start.X, start.Y, middle.X, middle.Y) / 2
		if e.arc.radius == 0 {
			fatalf(DegenerateGeometry, "full circle through %s and %s has no radius", start, middle)
		}
		e.arc.angle0 = math.Atan2(start.Y-e.arc.cy, start.X-e.arc.cx)
		e.arc.sweep = 2 * math.Pi
		e.updateBoundsArc()
		return e
	}
	bx, by := middle.X-start.X, middle.Y-start.Y
	ex, ey := end.X-start.X, end.Y-start.Y
	d := 2 * (bx*ey - by*ex)
	if d == 0 {
		fatalf(DegenerateGeometry, "colinear points %s %s %s define no arc", start, middle, end)
	}
	b2 := bx*bx + by*by
	e2 := ex*ex + ey*ey
	ux := (ey*b2 - by*e2) / d
	uy := (bx*e2 - ex*b2) / d
	e.arc.cx = start.X + ux
	e.arc.cy = start.Y + uy
	e.arc.radius = math.Hypot(ux, uy)
	if !isFinite(e.arc.radius) {
		fatalf(DegenerateGeometry, "points %s %s %s are too close to colinear", start, middle, end)
	}
	a0 := math.Atan2(start.Y-e.arc.cy, start.X-e.arc.cx)
	a1 := math.Atan2(end.Y-e.arc.cy, end.X-e.arc.cx)
	e.arc.angle0 = a0
	if d > 0 {
		e.arc.sweep = ccwDiff(a0, a1)
	} else {
		e.arc.sweep = -ccwDiff(a1, a0)
	}
	e.updateBoundsArc()
	return e
}

// NewEdgeFrom3Points is the arc through start, middle and end, or the segment
// from start to end when the three points are colinear.
func NewEdgeFrom3Points(c *Config, start, middle, end *Node) *Edge {
	if start != end && areColinearPoints(c, start, middle, end) {
		c.Log().WithFields(logrus.Fields{
			"start":  start,
			"middle": middle,
			"end":    end,
		}).Debug("colinear arc built as a segment")
		return NewEdgeLin(start, end)
	}
	return NewEdgeArcCircle(start, middle, end)
}

// Arc on the circle (cx, cy, radius) from start to end, anticlockwise or not.
func NewEdgeArcCircleOnCarrier(start, end *Node, cx, cy, radius float64, anticlockwise bool) *Edge {
	e := &Edge{kind: KindArcCircle, start: start, end: end}
	e.arc.cx, e.arc.cy, e.arc.radius = cx, cy, radius
	e.arc.angle0 = math.Atan2(start.Y-cy, start.X-cx)
	a1 := math.Atan2(end.Y-cy, end.X-cx)
	switch {
	case start == end && anticlockwise:
		e.arc.sweep = 2 * math.Pi
	case start == end:
		e.arc.sweep = -2 * math.Pi
	case anticlockwise:
		e.arc.sweep = ccwDiff(e.arc.angle0, a1)
	default:
		e.arc.sweep = -ccwDiff(a1, e.arc.angle0)
	}
	e.updateBoundsArc()
	return e
}

func (e *Edge) Center() (float64, float64) { return e.arc.cx, e.arc.cy }
func (e *Edge) Radius() float64            { return e.arc.radius }
func (e *Edge) Angle0() float64            { return e.arc.angle0 }
func (e *Edge) Sweep() float64             { return e.arc.sweep }
func (e *Edge) IsAnticlockwise() bool      { return e.arc.sweep > 0 }

// Angle turned anticlockwise from a to b, in [0, 2pi).
func ccwDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// Angle in (-pi, pi].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func (e *Edge) updateBoundsArc() {
	e.bounds = GetInterceptedArc(e.arc.cx, e.arc.cy, e.arc.radius, e.arc.angle0, e.arc.sweep)
}

// The carrier is kept. End points moved within precision shift the angles by
// the smallest amount, so an arc never jumps to its complement.
func (e *Edge) updateArcAngles() {
	a0 := math.Atan2(e.start.Y-e.arc.cy, e.start.X-e.arc.cx)
	if e.start == e.end {
		e.arc.angle0 = a0
		return
	}
	a1 := math.Atan2(e.end.Y-e.arc.cy, e.end.X-e.arc.cx)
	oldEnd := e.arc.angle0 + e.arc.sweep
	e.arc.sweep += normalizeAngle(a1-oldEnd) - normalizeAngle(a0-e.arc.angle0)
	e.arc.angle0 = a0
}

// Angular fraction of the sweep. Points off the span extrapolate to the
// nearer side.
func (e *Edge) charactValueArc(x, y float64) float64 {
	a := math.Atan2(y-e.arc.cy, x-e.arc.cx)
	span := math.Abs(e.arc.sweep)
	var d float64
	if e.arc.sweep > 0 {
		d = ccwDiff(e.arc.angle0, a)
	} else {
		d = ccwDiff(a, e.arc.angle0)
	}
	if d <= span {
		return d / span
	}
	after := d - span
	before := 2*math.Pi - d
	if after < before {
		return d / span
	}
	return -before / span
}

func (e *Edge) curveLengthArc() float64 {
	return e.arc.radius * math.Abs(e.arc.sweep)
}

func (e *Edge) areaOfZoneArc() float64 {
	r, cy := e.arc.radius, e.arc.cy
	a0 := e.arc.angle0
	a1 := a0 + e.arc.sweep
	return cy*r*(math.Cos(a0)-math.Cos(a1)) + r*r*((a1-a0)/2-(math.Sin(2*a1)-math.Sin(2*a0))/4)
}

func (e *Edge) barycenterArc() (float64, float64) {
	r, cx, cy := e.arc.radius, e.arc.cx, e.arc.cy
	a0 := e.arc.angle0
	a1 := a0 + e.arc.sweep
	return cx + r*(math.Sin(a1)-math.Sin(a0))/e.arc.sweep, cy + r*(math.Cos(a0)-math.Cos(a1))/e.arc.sweep
}

// Primitives of -xy dx and -y^2/2 dx with x = cx + r cos, y = cy + r sin.
func (e *Edge) barycenterOfZoneArc() (float64, float64) {
	r, cx, cy := e.arc.radius, e.arc.cx, e.arc.cy
	f := func(t float64) float64 {
		s := math.Sin(t)
		return -cx*cy*r*math.Cos(t) + cx*r*r*(t/2-math.Sin(2*t)/4) + cy*r*r*s*s/2 + r*r*r*s*s*s/3
	}
	g := func(t float64) float64 {
		co := math.Cos(t)
		return r / 2 * (-cy*cy*co + 2*cy*r*(t/2-math.Sin(2*t)/4) + r*r*(-co+co*co*co/3))
	}
	a0 := e.arc.angle0
	a1 := a0 + e.arc.sweep
	return f(a1) - f(a0), g(a1) - g(a0)
}

func (e *Edge) representantArc() *Node {
	mid := e.arc.angle0 + e.arc.sweep/2
	return NewNode(e.arc.cx+e.arc.radius*math.Cos(mid), e.arc.cy+e.arc.radius*math.Sin(mid))
}

func (e *Edge) buildArcLyingOnMe(start, end *Node, direction bool) *Edge {
	return NewEdgeArcCircleOnCarrier(start, end, e.arc.cx, e.arc.cy, e.arc.radius, (e.arc.sweep > 0) == direction)
}

// Winding of the part of the carrier from (sx, sy) at angle a0 to (ex, ey),
// sweeping sweep. Parts wider than a half circle are halved. Seen from outside
// the circle a part spans less than pi, so the chord angle is exact. From
// inside, the direction to the arc turns with the arc, so the angle has the
// sign of the sweep; this also settles points lying on the chord.
func (e *Edge) arcWinding(x, y, sx, sy, ex, ey, a0, sweep float64) float64 {
	cx, cy, r := e.arc.cx, e.arc.cy, e.arc.radius
	if math.Abs(sweep) > math.Pi {
		half := sweep / 2
		mx, my := cx+r*math.Cos(a0+half), cy+r*math.Sin(a0+half)
		return e.arcWinding(x, y, sx, sy, mx, my, a0, half) + e.arcWinding(x, y, mx, my, ex, ey, a0+half, half)
	}
	w := chordAngle(sx-x, sy-y, ex-x, ey-y)
	if DistanceBtw2PtSq(x, y, cx, cy) >= r*r {
		return w
	}
	switch {
	case sweep > 0 && w < 0:
		w += 2 * math.Pi
	case sweep < 0 && w > 0:
		w -= 2 * math.Pi
	}
	return w
}
