package geo2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A chain of n unit segments along the x axis.
func chainAlongX(n int) (*ComposedEdge, []*Node) {
	nodes := make([]*Node, n+1)
	for i := range nodes {
		nodes[i] = NewNode(float64(i), 0)
	}
	ce := NewComposedEdge()
	for i := 0; i < n; i++ {
		ce.PushBack(NewElementaryEdge(NewEdgeLin(nodes[i], nodes[i+1]), true))
	}
	return ce, nodes
}

func startXs(ce *ComposedEdge) []float64 {
	var xs []float64
	for _, ee := range ce.Elements() {
		xs = append(xs, ee.StartNode().X)
	}
	return xs
}

func TestComposedEdgeBasics(t *testing.T) {
	ce, nodes := chainAlongX(3)
	assert.Equal(t, 3, ce.Size())
	assert.Same(t, nodes[0], ce.StartNode())
	assert.Same(t, nodes[3], ce.EndNode())
	assert.False(t, ce.Completed())
	assert.Equal(t, 3.0, ce.CurveLength())
	assert.True(t, ce.IsNodeIn(nodes[2]))
	assert.False(t, ce.IsNodeIn(NewNode(2, 0)))
	assert.Len(t, ce.Nodes(), 4)
	assert.Len(t, ce.Edges(), 3)
	assert.Equal(t, 2.0, ce.At(-1).StartNode().X)

	ce.PushFront(NewElementaryEdge(NewEdgeLin(NewNode(-1, 0), nodes[0]), true))
	assert.Equal(t, []float64{-1, 0, 1, 2}, startXs(ce))

	ce.Reverse()
	assert.Equal(t, []float64{3, 2, 1, 0}, startXs(ce))
	assert.False(t, ce.Front().Direction())
}

func TestIteratorLoops(t *testing.T) {
	ce, _ := chainAlongX(3)
	it := ce.Iterator()
	var xs []float64
	for ; !it.Finished(); it.Next() {
		xs = append(xs, it.Current().StartNode().X)
	}
	assert.Equal(t, []float64{0, 1, 2}, xs)
	assert.Nil(t, it.Current())

	it.First()
	it.PreviousLoop()
	assert.Equal(t, 2.0, it.Current().StartNode().X)
	it.NextLoop()
	assert.Equal(t, 0.0, it.Current().StartNode().X)

	assert.True(t, it.SetPosition(ce.At(1)))
	assert.Equal(t, 1.0, it.Current().StartNode().X)
	assert.False(t, it.SetPosition(NewElementaryEdge(NewEdgeLin(NewNode(0, 0), NewNode(0, 1)), true)))
}

func TestInsertElemEdges(t *testing.T) {
	c := DefaultConfig()
	splitMiddle := func(ce *ComposedEdge, it *Iterator) *ComposedEdge {
		var merge MergePoints
		cutter := NewEdgeLin(NewNode(1.5, -1), NewNode(1.5, 1))
		sub, _, ok := it.Current().Edge().IntersectWith(c, cutter, &merge)
		require.True(t, ok)
		return ComposedEdgeOf(sub...)
	}

	t.Run("stay on the run", func(t *testing.T) {
		ce, _ := chainAlongX(3)
		it := ce.Iterator()
		it.Next()
		stale := it.Copy()
		run := splitMiddle(ce, it)
		it.InsertElemEdges(run, false)
		assert.True(t, run.Empty())
		assert.Equal(t, 4, ce.Size())
		assert.Equal(t, []float64{0, 1, 1.5, 2}, startXs(ce))
		assert.Equal(t, 1.0, it.Current().StartNode().X)
		// Iterators on the replaced element follow to the run
		assert.Equal(t, 1.0, stale.Current().StartNode().X)
	})

	t.Run("go past the run", func(t *testing.T) {
		ce, _ := chainAlongX(3)
		it := ce.Iterator()
		it.Next()
		it.InsertElemEdges(splitMiddle(ce, it), true)
		assert.Equal(t, 2.0, it.Current().StartNode().X)
	})

	t.Run("replace the tail", func(t *testing.T) {
		ce, _ := chainAlongX(2)
		it := ce.Iterator()
		it.Next()
		var merge MergePoints
		cutter := NewEdgeLin(NewNode(1.5, -1), NewNode(1.5, 1))
		sub, _, ok := it.Current().Edge().IntersectWith(c, cutter, &merge)
		require.True(t, ok)
		it.InsertElemEdges(ComposedEdgeOf(sub...), true)
		assert.True(t, it.Finished())
		assert.Equal(t, []float64{0, 1, 1.5}, startXs(ce))
	})

	t.Run("replace the only element", func(t *testing.T) {
		ce, _ := chainAlongX(1)
		it := ce.Iterator()
		var merge MergePoints
		cutter := NewEdgeLin(NewNode(0.5, -1), NewNode(0.5, 1))
		sub, _, ok := it.Current().Edge().IntersectWith(c, cutter, &merge)
		require.True(t, ok)
		it.InsertElemEdges(ComposedEdgeOf(sub...), false)
		assert.Equal(t, []float64{0, 0.5}, startXs(ce))
		assert.Same(t, ce.Front(), it.Current())
		it.NextLoop()
		it.NextLoop()
		assert.Same(t, ce.Front(), it.Current())
	})
}

func TestGoToNextInOn(t *testing.T) {
	ce, _ := chainAlongX(4)
	locs := []TypeOfEdgeLocInPolygon{FullOutOne, FullInOne, FullOnOne, FullOutOne}
	for i, ee := range ce.Elements() {
		ee.loc = locs[i]
	}
	it := ce.Iterator()
	i := 0
	require.True(t, it.GoToNextInOn(false, &i, ce.Size()))
	assert.Equal(t, 1.0, it.Current().StartNode().X)

	t.Run("all out", func(t *testing.T) {
		for _, ee := range ce.Elements() {
			ee.loc = FullOutOne
		}
		it := ce.Iterator()
		i := 0
		assert.False(t, it.GoToNextInOn(false, &i, ce.Size()))
	})

	t.Run("none out", func(t *testing.T) {
		for _, ee := range ce.Elements() {
			ee.loc = FullInOne
		}
		it := ce.Iterator()
		i := 0
		assert.True(t, it.GoToNextInOn(false, &i, ce.Size()))
	})
}

func TestComposedEdgeMeasures(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		p := square(1, 1, 2)
		assert.InDelta(t, 4, p.Area(), 1e-15)
		assert.InDelta(t, 8, p.Perimeter(), 1e-15)
		x, y := p.Barycenter()
		assert.InDelta(t, 2, x, 1e-15)
		assert.InDelta(t, 2, y, 1e-15)
		assert.True(t, p.Completed())
	})

	t.Run("half disc", func(t *testing.T) {
		c := DefaultConfig()
		a, b := NewNode(1, 0), NewNode(-1, 0)
		p := BuildArcCirclePolygon(c, []*Node{a, b, NewNode(0, 1), NewNode(0, 0)})
		require.Equal(t, 2, p.Size())
		assert.True(t, p.Front().Edge().IsArc())
		assert.False(t, p.Back().Edge().IsArc())
		assert.InDelta(t, math.Pi/2, p.Area(), 1e-14)
		assert.InDelta(t, math.Pi+2, p.Perimeter(), 1e-14)
		x, y := p.Barycenter()
		assert.InDelta(t, 0, x, 1e-14)
		assert.InDelta(t, 4/(3*math.Pi), y, 1e-14)
		assert.True(t, p.PresenceOfQuadraticEdge())
	})

	t.Run("clockwise square", func(t *testing.T) {
		p := BuildLinearPolygon([]*Node{NewNode(0, 0), NewNode(0, 1), NewNode(1, 1), NewNode(1, 0)})
		assert.InDelta(t, -1, p.Area(), 1e-15)
	})
}

func TestIsButterfly(t *testing.T) {
	c := DefaultConfig()
	assert.True(t, LoadFixture("butterfly")[0].IsButterfly(c))
	p := square(0, 0, 1)
	assert.False(t, p.IsButterfly(c))
	assert.False(t, circle(0, 0, 1).IsButterfly(c))
	// Untouched
	assert.Equal(t, 4, p.Size())
}
