package mesh

import (
	"math"
	"testing"

	"github.com/osuushi/quadpoly/geo2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares side by side:
//
//	3---4---5
//	|   |   |
//	0---1---2
func twoSquares() *Mesh {
	m := New([]float64{0, 0, 1, 0, 2, 0, 0, 1, 1, 1, 2, 1})
	m.AddCell(geo2d.NormPolygon, 0, 1, 4, 3)
	m.AddCell(geo2d.NormPolygon, 1, 2, 5, 4)
	return m
}

func squareMesh(x, y, side float64) *Mesh {
	return rectMesh(x, y, x+side, y+side)
}

func rectMesh(x0, y0, x1, y1 float64) *Mesh {
	m := New([]float64{x0, y0, x1, y0, x1, y1, x0, y1})
	m.AddCell(geo2d.NormPolygon, 0, 1, 2, 3)
	return m
}

func TestMeshBasics(t *testing.T) {
	m := twoSquares()
	require.NoError(t, m.Validate())
	assert.Equal(t, 6, m.NumberOfNodes())
	assert.Equal(t, 2, m.NumberOfCells())
	cellType, nodes := m.Cell(1)
	assert.Equal(t, geo2d.NormPolygon, cellType)
	assert.Equal(t, []int{1, 2, 5, 4}, nodes)
	assert.False(t, m.IsQuadratic(1))
	assert.Equal(t, []int{1, 2, 5, 4}, m.Corners(1))
}

func TestValidate(t *testing.T) {
	t.Run("unknown cell type", func(t *testing.T) {
		m := New([]float64{0, 0, 1, 0, 0, 1})
		m.AddCell(7, 0, 1, 2)
		assert.EqualError(t, m.Validate(), "cell 0: unknown cell type 7")
	})

	t.Run("node out of range", func(t *testing.T) {
		m := New([]float64{0, 0, 1, 0, 0, 1})
		m.AddCell(geo2d.NormPolygon, 0, 1, 3)
		assert.EqualError(t, m.Validate(), "cell 0: node 3 out of 3")
	})

	t.Run("odd quadratic record", func(t *testing.T) {
		m := New([]float64{0, 0, 1, 0, 0, 1})
		m.AddCell(geo2d.NormQPolyg, 0, 1, 2)
		assert.Error(t, m.Validate())
	})

	t.Run("broken index", func(t *testing.T) {
		m := twoSquares()
		m.ConnI = m.ConnI[:2]
		assert.Error(t, m.Validate())
	})
}

func TestBuildDescending(t *testing.T) {
	d := twoSquares().BuildDescending()
	assert.Equal(t, 7, d.NumberOfEdges())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, -2}, d.Desc)
	assert.Equal(t, []int{0, 4, 8}, d.DescI)
	assert.Equal(t, []int{5, 6, 7, -2}, d.CellEdges(1))

	start, end, middle := d.Edge(1)
	assert.Equal(t, []int{1, 4, -1}, []int{start, end, middle})
}

func TestBuildDescendingQuadratic(t *testing.T) {
	// Half disc: an arc from (1, 0) to (-1, 0) through (0, 1), closed by the
	// diameter
	m := New([]float64{1, 0, -1, 0, 0, 1, 0, 0})
	m.AddCell(geo2d.NormQPolyg, 0, 1, 2, 3)
	d := m.BuildDescending()
	assert.Equal(t, []int{0, 1, 2, 1, 0, 3}, d.EdgeConn)
	assert.Equal(t, []int{1, 2}, d.Desc)
}

func TestCellPolygon(t *testing.T) {
	c := geo2d.DefaultConfig()

	t.Run("square", func(t *testing.T) {
		p := twoSquares().CellPolygon(c, 1)
		require.Equal(t, 4, p.Size())
		assert.InDelta(t, 1, p.Area(), 1e-15)
		x, y := p.Barycenter()
		assert.InDelta(t, 1.5, x, 1e-15)
		assert.InDelta(t, 0.5, y, 1e-15)
	})

	t.Run("half disc", func(t *testing.T) {
		m := New([]float64{1, 0, -1, 0, 0, 1, 0, 0})
		m.AddCell(geo2d.NormQPolyg, 0, 1, 2, 3)
		p := m.CellPolygon(c, 0)
		require.Equal(t, 2, p.Size())
		assert.True(t, p.At(0).Edge().IsArc())
		assert.False(t, p.At(1).Edge().IsArc())
		assert.InDelta(t, math.Pi/2, p.Area(), 1e-12)
	})

	t.Run("full circle", func(t *testing.T) {
		m := New([]float64{1, 0, -1, 0})
		m.AddCell(geo2d.NormQPolyg, 0, 1)
		p := m.CellPolygon(c, 0)
		require.Equal(t, 1, p.Size())
		assert.True(t, p.Front().Edge().IsFullCircle())
		assert.InDelta(t, math.Pi, p.Area(), 1e-12)
	})

	t.Run("calls share nothing", func(t *testing.T) {
		m := twoSquares()
		p1, p2 := m.CellPolygon(c, 0), m.CellPolygon(c, 1)
		// Node 1 is a corner of both cells
		assert.NotSame(t, p1.At(0).EndNode(), p2.At(0).StartNode())
		assert.True(t, p1.At(0).EndNode().IsEqual(c, p2.At(0).StartNode()))
	})
}

func TestCellBounds(t *testing.T) {
	c := geo2d.DefaultConfig()
	m := New([]float64{1, 0, -1, 0, 0, 1, 0, 0, 5, 5, 6, 5, 6, 5})
	m.AddCell(geo2d.NormQPolyg, 0, 1, 2, 3)
	// Nodes 5 and 6 coincide
	m.AddCell(geo2d.NormPolygon, 4, 5, 6)
	bounds := m.CellBounds(c)
	require.Len(t, bounds, 2)
	assert.InDelta(t, 1, bounds[0].YMax, 1e-12)
	assert.InDelta(t, -1, bounds[0].XMin, 1e-12)
	assert.Equal(t, geo2d.NewBounds(5, 6, 5, 5), bounds[1])
}

func TestFromCrudeData(t *testing.T) {
	d := geo2d.NewCrudeData()
	d.Conn = []int{geo2d.NormPolygon, 0, 1, 2}
	d.ConnI = []int{0, 4}
	d.AddCoords = []float64{0, 1}
	m := FromCrudeData([]float64{0, 0, 1, 0}, d)
	require.NoError(t, m.Validate())
	assert.Equal(t, 3, m.NumberOfNodes())
	assert.InDelta(t, 0.5, m.CellPolygon(geo2d.DefaultConfig(), 0).Area(), 1e-15)
}
