package geo2d

import (
	"fmt"
	"math"
)

// Axis aligned bounding box used to prune exact tests. The zero value is not
// empty; use EmptyBounds to start an aggregation.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

func NewBounds(xMin, xMax, yMin, yMax float64) Bounds {
	return Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

func EmptyBounds() Bounds {
	return Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
}

func BoundsOfNodes(nodes ...*Node) Bounds {
	b := EmptyBounds()
	for _, n := range nodes {
		b.AggregateNode(n)
	}
	return b
}

func (b Bounds) IsEmpty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax
}

func (b *Bounds) Aggregate(other Bounds) {
	b.XMin = math.Min(b.XMin, other.XMin)
	b.XMax = math.Max(b.XMax, other.XMax)
	b.YMin = math.Min(b.YMin, other.YMin)
	b.YMax = math.Max(b.YMax, other.YMax)
}

func (b *Bounds) AggregatePoint(x, y float64) {
	b.XMin = math.Min(b.XMin, x)
	b.XMax = math.Max(b.XMax, x)
	b.YMin = math.Min(b.YMin, y)
	b.YMax = math.Max(b.YMax, y)
}

func (b *Bounds) AggregateNode(n *Node) {
	b.AggregatePoint(n.X, n.Y)
}

// Intersection of two boxes, nil when they are disjoint by more than eps.
func (b Bounds) Intersection(other Bounds, eps float64) *Bounds {
	if !b.Overlaps(other, eps) {
		return nil
	}
	r := Bounds{
		XMin: math.Max(b.XMin, other.XMin),
		XMax: math.Min(b.XMax, other.XMax),
		YMin: math.Max(b.YMin, other.YMin),
		YMax: math.Min(b.YMax, other.YMax),
	}
	// Boxes touching within eps give a flat but valid box.
	r.XMax = math.Max(r.XMax, r.XMin)
	r.YMax = math.Max(r.YMax, r.YMin)
	return &r
}

func (b Bounds) Overlaps(other Bounds, eps float64) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.XMin <= other.XMax+eps && other.XMin <= b.XMax+eps &&
		b.YMin <= other.YMax+eps && other.YMin <= b.YMax+eps
}

// Fast point test. Points outside the box by more than eps are certainly out.
func (b Bounds) Contains(x, y, eps float64) bool {
	return x >= b.XMin-eps && x <= b.XMax+eps && y >= b.YMin-eps && y <= b.YMax+eps
}

func (b Bounds) CaracteristicDim() float64 {
	return math.Max(b.XMax-b.XMin, b.YMax-b.YMin)
}

func (b Bounds) Center() (float64, float64) {
	return (b.XMin + b.XMax) / 2, (b.YMin + b.YMax) / 2
}

func (b *Bounds) ApplySimilarity(xBary, yBary, dimChar float64) {
	b.XMin = (b.XMin - xBary) / dimChar
	b.XMax = (b.XMax - xBary) / dimChar
	b.YMin = (b.YMin - yBary) / dimChar
	b.YMax = (b.YMax - yBary) / dimChar
}

func (b *Bounds) UnApplySimilarity(xBary, yBary, dimChar float64) {
	b.XMin = b.XMin*dimChar + xBary
	b.XMax = b.XMax*dimChar + xBary
	b.YMin = b.YMin*dimChar + yBary
	b.YMax = b.YMax*dimChar + yBary
}

// Bounds of the arc of circle (center, radius) starting at angle0 and sweeping
// sweep radians (negative is clockwise). The box holds both end points plus
// every axis extreme the sweep passes through.
func GetInterceptedArc(cx, cy, radius, angle0, sweep float64) Bounds {
	b := EmptyBounds()
	b.AggregatePoint(cx+radius*math.Cos(angle0), cy+radius*math.Sin(angle0))
	end := angle0 + sweep
	b.AggregatePoint(cx+radius*math.Cos(end), cy+radius*math.Sin(end))
	lo, hi := angle0, end
	if lo > hi {
		lo, hi = hi, lo
	}
	// First multiple of pi/2 not below lo.
	k := math.Ceil(lo / (math.Pi / 2))
	for a := k * math.Pi / 2; a <= hi; a += math.Pi / 2 {
		b.AggregatePoint(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}
	return b
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", b.XMin, b.XMax, b.YMin, b.YMax)
}
