package geo2d

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectSquares(t *testing.T) {
	c := DefaultConfig()

	t.Run("shifted", func(t *testing.T) {
		polys := LoadFixture("shifted_squares")
		require.Len(t, polys, 2)
		area, x, y := polys[0].IntersectWithBarycenter(c, polys[1])
		assert.InDelta(t, 0.5625, area, 1e-12)
		assert.InDelta(t, 0.625, x, 1e-12)
		assert.InDelta(t, 0.625, y, 1e-12)

		// Symmetric
		assert.InDelta(t, 0.5625, polys[1].IntersectWith(c, polys[0]), 1e-12)

		result := polys[0].Intersect(c, polys[1])
		require.Len(t, result, 1, pretty.Sprint(result))
		assert.True(t, result[0].Completed())
		assert.Equal(t, 4, result[0].Size())
		assert.InDelta(t, 3, result[0].Perimeter(), 1e-12)
	})

	t.Run("operands are untouched", func(t *testing.T) {
		polys := LoadFixture("shifted_squares")
		polys[0].Intersect(c, polys[1])
		assert.Equal(t, 4, polys[0].Size())
		assert.Equal(t, 4, polys[1].Size())
		for _, n := range polys[0].Nodes() {
			assert.Equal(t, Unknown, n.Loc())
		}
	})

	t.Run("nested", func(t *testing.T) {
		polys := LoadFixture("nested_squares")
		assert.InDelta(t, 1, polys[0].IntersectWith(c, polys[1]), 1e-12)
		assert.InDelta(t, 1, polys[1].IntersectWith(c, polys[0]), 1e-12)
	})

	t.Run("disjoint", func(t *testing.T) {
		area, x, y := square(0, 0, 1).IntersectWithBarycenter(c, square(3, 0, 1))
		assert.Equal(t, 0.0, area)
		assert.Equal(t, 0.0, x)
		assert.Equal(t, 0.0, y)
	})

	t.Run("identical", func(t *testing.T) {
		assert.InDelta(t, 1, square(0, 0, 1).IntersectWith(c, square(0, 0, 1)), 1e-12)
	})

	t.Run("sharing an edge", func(t *testing.T) {
		assert.InDelta(t, 0, square(0, 0, 1).IntersectWith(c, square(1, 0, 1)), 1e-12)
	})

	t.Run("touching at a corner", func(t *testing.T) {
		assert.InDelta(t, 0, square(0, 0, 1).IntersectWith(c, square(1, 1, 1)), 1e-12)
	})
}

func TestIntersectCircles(t *testing.T) {
	c := DefaultConfig()

	t.Run("lens", func(t *testing.T) {
		polys := LoadFixture("lens")
		require.Len(t, polys, 2)
		area, x, y := polys[0].IntersectWithBarycenter(c, polys[1])
		assert.InDelta(t, 2*math.Pi/3-math.Sqrt(3)/2, area, 1e-12)
		assert.InDelta(t, 0.5, x, 1e-12)
		assert.InDelta(t, 0, y, 1e-12)

		result := polys[0].Intersect(c, polys[1])
		require.Len(t, result, 1)
		assert.Equal(t, 3, result[0].Size())
	})

	t.Run("circle inside square", func(t *testing.T) {
		assert.InDelta(t, math.Pi, circle(0, 0, 1).IntersectWith(c, square(-2, -2, 4)), 1e-12)
		assert.InDelta(t, math.Pi, square(-2, -2, 4).IntersectWith(c, circle(0, 0, 1)), 1e-12)
	})

	t.Run("square inside circle", func(t *testing.T) {
		assert.InDelta(t, 1, circle(0, 0, 1).IntersectWith(c, square(-0.5, -0.5, 1)), 1e-12)
		assert.InDelta(t, 1, square(-0.5, -0.5, 1).IntersectWith(c, circle(0, 0, 1)), 1e-12)
	})

	t.Run("far apart", func(t *testing.T) {
		assert.Equal(t, 0.0, circle(0, 0, 1).IntersectWith(c, circle(5, 0, 1)))
	})
}

func TestIsInOrOut(t *testing.T) {
	c := DefaultConfig()
	p := square(0, 0, 1)
	assert.True(t, p.IsInOrOut(c, NewNode(0.5, 0.5)))
	assert.False(t, p.IsInOrOut(c, NewNode(2, 0.5)))
	assert.False(t, p.IsInOrOut(c, NewNode(0.5, -0.5)))

	halfDisc := BuildArcCirclePolygon(c, []*Node{NewNode(1, 0), NewNode(-1, 0), NewNode(0, 1), NewNode(0, 0)})
	assert.True(t, halfDisc.IsInOrOut(c, NewNode(0, 0.5)))
	assert.True(t, halfDisc.IsInOrOut(c, NewNode(0.9, 0.1)))
	assert.False(t, halfDisc.IsInOrOut(c, NewNode(0.9, 0.9)))
	assert.False(t, halfDisc.IsInOrOut(c, NewNode(0, -0.5)))

	// Points on the common chord of both half arcs
	vertical := BuildArcCirclePolygon(c, []*Node{NewNode(0, -1), NewNode(0, 1), NewNode(1, 0), NewNode(-1, 0)})
	for _, y := range []float64{0, 0.3, -0.7, 1e-17} {
		assert.True(t, vertical.IsInOrOut(c, NewNode(0, y)), "y=%g", y)
		assert.True(t, vertical.IsInOrOut(c, NewNode(1e-15, y)), "y=%g", y)
	}
	assert.False(t, vertical.IsInOrOut(c, NewNode(0, 1.5)))
	assert.False(t, vertical.IsInOrOut(c, NewNode(0.9, 0.9)))
}

func TestIntersectErrors(t *testing.T) {
	t.Run("bad config", func(t *testing.T) {
		err := Guard(func() {
			square(0, 0, 1).Intersect(DefaultConfig().WithPrecision(0, 1e-9), square(0, 0, 1))
		})
		assert.True(t, IsKind(err, InvalidInput))
	})

	t.Run("close an open chain", func(t *testing.T) {
		p := BuildPolyline([]*Node{NewNode(0, 0), NewNode(1, 0), NewNode(1, 1)})
		err := Guard(func() { p.CloseMe(DefaultConfig()) })
		assert.True(t, IsKind(err, NotClosed))
	})

	t.Run("too few nodes", func(t *testing.T) {
		err := Guard(func() { BuildLinearPolygon([]*Node{NewNode(0, 0), NewNode(1, 0)}) })
		assert.True(t, IsKind(err, InvalidInput))
	})
}

func TestClassificationScope(t *testing.T) {
	c := DefaultConfig()
	a, b := square(0, 0, 1), square(0.5, 0.5, 1)
	scope := NewClassificationScope(a)
	err := Guard(func() { a.PerformLocatingOperation(c, scope, b) })
	assert.True(t, IsKind(err, InvalidInput))

	a.Front().declareIn()
	NewClassificationScope(a, b)
	assert.Equal(t, FullUnknown, a.Front().Loc())
	assert.Equal(t, Unknown, a.Front().StartNode().Loc())
}

func TestCloseMe(t *testing.T) {
	c := DefaultConfig()
	a, b := NewNode(0, 0), NewNode(1, 0)
	almostA := NewNode(1e-14, 0)
	p := QuadraticPolygonOf(
		NewElementaryEdge(NewEdgeLin(almostA, b), true),
		NewElementaryEdge(NewEdgeLin(b, NewNode(0, 1)), true),
	)
	last := NewElementaryEdge(NewEdgeLin(p.EndNode(), a), true)
	p.PushBack(last)
	assert.False(t, p.Completed())
	p.CloseMe(c)
	assert.True(t, p.Completed())
	assert.Same(t, a, p.StartNode())

	p.CircularPermute()
	assert.Same(t, b, p.StartNode())
}

// Arcs cut by straight edges, where pieces of the segments are chords of the
// cut arcs. Both operand orders must agree.
func TestIntersectArcsCutBySegments(t *testing.T) {
	c := DefaultConfig()
	// Area of the unit disc beyond the line x = d
	segment := func(d float64) float64 { return math.Acos(d) - d*math.Sqrt(1-d*d) }
	halfDisc := func() *QuadraticPolygon {
		return BuildArcCirclePolygon(c, []*Node{NewNode(1, 0), NewNode(-1, 0), NewNode(0, 1), NewNode(0, 0)})
	}

	cases := []struct {
		name     string
		a, b     func() *QuadraticPolygon
		expected float64
	}{
		{"right half of a circle", func() *QuadraticPolygon { return rect(0, -2, 2, 2) }, func() *QuadraticPolygon { return circle(0, 0, 1) }, math.Pi / 2},
		{"thin circular segment", func() *QuadraticPolygon { return rect(0.5, -2, 2, 2) }, func() *QuadraticPolygon { return circle(0, 0, 1) }, segment(0.5)},
		{"wide circular segment", func() *QuadraticPolygon { return rect(-0.5, -2, 2, 2) }, func() *QuadraticPolygon { return circle(0, 0, 1) }, math.Pi - segment(0.5)},
		{"horizontal cut", func() *QuadraticPolygon { return rect(-2, 0.5, 2, 2) }, func() *QuadraticPolygon { return circle(0, 0, 1) }, segment(0.5)},
		{"cut of a two arc circle", func() *QuadraticPolygon { return rect(0.5, -2, 2, 2) }, func() *QuadraticPolygon { return twoArcCircle(0, 0, 1) }, segment(0.5)},
		{"quarter pie in a two arc circle", func() *QuadraticPolygon { return quarterPie(1) }, func() *QuadraticPolygon { return twoArcCircle(0, 0, 1) }, math.Pi / 4},
		{"quarter pie in a circle", func() *QuadraticPolygon { return quarterPie(1) }, func() *QuadraticPolygon { return circle(0, 0, 1) }, math.Pi / 4},
		{"half disc cut by a band", func() *QuadraticPolygon { return square(-0.5, 0, 1) }, halfDisc, math.Sqrt(0.75)/2 + math.Pi/6},
		{"half disc cut at its diameter", func() *QuadraticPolygon { return rect(-2, -1, 2, 0.5) }, halfDisc, math.Pi/2 - segment(0.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, tc.a().IntersectWith(c, tc.b()), 1e-12)
			assert.InDelta(t, tc.expected, tc.b().IntersectWith(c, tc.a()), 1e-12)
		})
	}
}

func TestIntersectWithItself(t *testing.T) {
	c := DefaultConfig()
	cases := []struct {
		name     string
		p        *QuadraticPolygon
		expected float64
	}{
		{"square", square(0, 0, 1), 1},
		{"circle", circle(0, 0, 1), math.Pi},
		{"two arc circle", twoArcCircle(0, 0, 1), math.Pi},
		{"quarter pie", quarterPie(2), math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, tc.p.IntersectWith(c, tc.p), 1e-12)
			assert.InDelta(t, tc.expected, tc.p.Area(), 1e-12)
		})
	}
}

// Convex polygon with n corners on the circle (cx, cy, r).
func randomConvex(rnd *rand.Rand, n int) *QuadraticPolygon {
	cx, cy := rnd.Float64()*2-1, rnd.Float64()*2-1
	r := 0.3 + rnd.Float64()*1.2
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = rnd.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)
	nodes := make([]*Node, n)
	for i, a := range angles {
		nodes[i] = NewNode(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return BuildLinearPolygon(nodes)
}

func randomCircle(rnd *rand.Rand) *QuadraticPolygon {
	return twoArcCircle(rnd.Float64()*2-1, rnd.Float64()*2-1, 0.3+rnd.Float64()*1.2)
}

func TestIntersectRandomSymmetry(t *testing.T) {
	c := DefaultConfig()
	rnd := rand.New(rand.NewSource(42))

	check := func(t *testing.T, a, b *QuadraticPolygon) {
		ab, ba := a.IntersectWith(c, b), b.IntersectWith(c, a)
		require.InDelta(t, ab, ba, 1e-9, "%# v\n%# v", pretty.Formatter(a), pretty.Formatter(b))
		assert.LessOrEqual(t, ab, math.Min(a.Area(), b.Area())+1e-9)
		assert.GreaterOrEqual(t, ab, 0.0)
	}

	t.Run("segments", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			check(t, randomConvex(rnd, 3+rnd.Intn(6)), randomConvex(rnd, 3+rnd.Intn(6)))
		}
	})

	t.Run("arcs and segments", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			check(t, randomCircle(rnd), randomConvex(rnd, 3+rnd.Intn(6)))
		}
	})
}

// Locating after resetting the tags gives the same classes and result.
func TestRelocateAfterInitLocations(t *testing.T) {
	c := DefaultConfig()
	a, b := square(0, 0, 1), square(0.5, 0.5, 1)
	scope := NewClassificationScope(a, b)
	SplitPolygonsEachOther(c, a, b)

	locate := func() ([]TypeOfEdgeLocInPolygon, float64) {
		a.PerformLocatingOperation(c, scope, b)
		var locs []TypeOfEdgeLocInPolygon
		for _, ee := range b.Elements() {
			locs = append(locs, ee.Loc())
		}
		area := 0.0
		for _, p := range BuildIntersectionPolygons(c, a, b) {
			area += p.Area()
		}
		return locs, area
	}

	locs, area := locate()
	assert.InDelta(t, 0.25, area, 1e-12)

	scope = NewClassificationScope(a, b)
	for _, ee := range b.Elements() {
		assert.Equal(t, FullUnknown, ee.Loc())
		assert.Equal(t, Unknown, ee.StartNode().Loc())
	}
	relocs, rearea := locate()
	assert.Equal(t, locs, relocs)
	assert.InDelta(t, area, rearea, 1e-12)
}
