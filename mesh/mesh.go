// Package mesh holds unstructured 2D meshes of polygonal cells, with straight
// or circular edges, and intersects them cell by cell with the geo2d kernel.
package mesh

import (
	"github.com/ctessum/geom"
	"github.com/osuushi/quadpoly/geo2d"
	"github.com/pkg/errors"
)

// Mesh uses the crude data encoding: Coords holds interleaved x, y pairs and
// every cell record of Conn starts with geo2d.NormPolygon or
// geo2d.NormQPolyg, followed by the corner ids and, for quadratic cells, the
// id of the middle of every edge. ConnI holds the start of every record plus
// the end of the last one.
type Mesh struct {
	Coords []float64
	Conn   []int
	ConnI  []int
}

func New(coords []float64) *Mesh {
	return &Mesh{Coords: coords, ConnI: []int{0}}
}

// FromCrudeData wraps cells produced by the kernel. The coordinates of the
// nodes added by the kernel are appended to coords.
func FromCrudeData(coords []float64, d *geo2d.CrudeData) *Mesh {
	all := make([]float64, 0, len(coords)+len(d.AddCoords))
	all = append(all, coords...)
	all = append(all, d.AddCoords...)
	return &Mesh{Coords: all, Conn: d.Conn, ConnI: d.ConnI}
}

func (m *Mesh) NumberOfNodes() int {
	return len(m.Coords) / 2
}

func (m *Mesh) NumberOfCells() int {
	if len(m.ConnI) == 0 {
		return 0
	}
	return len(m.ConnI) - 1
}

// AddCell appends a cell record. A straight cell lists its corners,
// counterclockwise. A quadratic one lists its corners then its middles.
func (m *Mesh) AddCell(cellType int, nodes ...int) {
	if len(m.ConnI) == 0 {
		m.ConnI = append(m.ConnI, 0)
	}
	m.Conn = append(m.Conn, cellType)
	m.Conn = append(m.Conn, nodes...)
	m.ConnI = append(m.ConnI, len(m.Conn))
}

func (m *Mesh) Cell(i int) (cellType int, nodes []int) {
	rec := m.Conn[m.ConnI[i]:m.ConnI[i+1]]
	return rec[0], rec[1:]
}

func (m *Mesh) IsQuadratic(i int) bool {
	cellType, _ := m.Cell(i)
	return cellType == geo2d.NormQPolyg
}

// Corner ids of a cell.
func (m *Mesh) Corners(i int) []int {
	_, nodes := m.Cell(i)
	if m.IsQuadratic(i) {
		return nodes[:len(nodes)/2]
	}
	return nodes
}

func (m *Mesh) node(id int) *geo2d.Node {
	return geo2d.NewNode(m.Coords[2*id], m.Coords[2*id+1])
}

// Validate checks the records against the coordinates.
func (m *Mesh) Validate() error {
	if len(m.Coords)%2 != 0 {
		return errors.Errorf("odd number of coordinates: %d", len(m.Coords))
	}
	if len(m.ConnI) == 0 || m.ConnI[0] != 0 || m.ConnI[len(m.ConnI)-1] != len(m.Conn) {
		return errors.New("connectivity index does not span the connectivity")
	}
	for i := 0; i < m.NumberOfCells(); i++ {
		if m.ConnI[i+1] <= m.ConnI[i] {
			return errors.Errorf("cell %d: empty record", i)
		}
		cellType, nodes := m.Cell(i)
		switch cellType {
		case geo2d.NormPolygon:
			if len(nodes) < 3 {
				return errors.Errorf("cell %d: %d corners", i, len(nodes))
			}
		case geo2d.NormQPolyg:
			if len(nodes) < 2 || len(nodes)%2 != 0 {
				return errors.Errorf("cell %d: quadratic cell with %d nodes", i, len(nodes))
			}
		default:
			return errors.Errorf("cell %d: unknown cell type %d", i, cellType)
		}
		for _, id := range nodes {
			if id < 0 || id >= m.NumberOfNodes() {
				return errors.Errorf("cell %d: node %d out of %d", i, id, m.NumberOfNodes())
			}
		}
	}
	return nil
}

// CellPolygon builds the polygon of a cell with nodes of its own, so that
// polygons of distinct calls share nothing.
func (m *Mesh) CellPolygon(c *geo2d.Config, cell int) *geo2d.QuadraticPolygon {
	_, nodes := m.Cell(cell)
	corners := m.Corners(cell)
	mapp := make(map[int]*geo2d.Node, len(corners))
	for _, id := range corners {
		if _, ok := mapp[id]; !ok {
			mapp[id] = m.node(id)
		}
	}
	desc := make([]int, len(corners))
	intersectEdges := make([][]int, len(corners))
	for k := range corners {
		desc[k] = k + 1
		intersectEdges[k] = []int{corners[k], corners[(k+1)%len(corners)]}
	}
	p := geo2d.NewQuadraticPolygon()
	p.BuildFromCrudeDataArray(c, mapp, m.IsQuadratic(cell), nodes, m.Coords, desc, intersectEdges)
	return p
}

// Descending is the edge view of a mesh. Edge i runs from EdgeConn[3*i] to
// EdgeConn[3*i+1], through the middle EdgeConn[3*i+2] or -1 when straight.
// The edges of cell i are Desc[DescI[i]:DescI[i+1]], 1 based and negative
// when the cell runs against the edge.
type Descending struct {
	EdgeConn []int
	Desc     []int
	DescI    []int
}

func (d *Descending) NumberOfEdges() int {
	return len(d.EdgeConn) / 3
}

func (d *Descending) Edge(i int) (start, end, middle int) {
	return d.EdgeConn[3*i], d.EdgeConn[3*i+1], d.EdgeConn[3*i+2]
}

func (d *Descending) CellEdges(i int) []int {
	return d.Desc[d.DescI[i]:d.DescI[i+1]]
}

// Two arcs may join the same corners, so the middle is part of the key.
type edgeKey struct {
	lo, hi, middle int
}

func keyOf(a, b, middle int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b, middle: middle}
}

// BuildDescending numbers the edges in order of first appearance. An edge
// keeps the direction of the first cell using it.
func (m *Mesh) BuildDescending() *Descending {
	d := &Descending{DescI: []int{0}}
	ids := map[edgeKey]int{}
	for i := 0; i < m.NumberOfCells(); i++ {
		_, nodes := m.Cell(i)
		corners := m.Corners(i)
		n := len(corners)
		for k := 0; k < n; k++ {
			start, end := corners[k], corners[(k+1)%n]
			middle := -1
			if m.IsQuadratic(i) {
				middle = nodes[k+n]
			}
			key := keyOf(start, end, middle)
			id, ok := ids[key]
			if !ok {
				id = d.NumberOfEdges()
				ids[key] = id
				d.EdgeConn = append(d.EdgeConn, start, end, middle)
			}
			if d.EdgeConn[3*id] == start {
				d.Desc = append(d.Desc, id+1)
			} else {
				d.Desc = append(d.Desc, -(id + 1))
			}
		}
		d.DescI = append(d.DescI, len(d.Desc))
	}
	return d
}

// Bounds of every cell, arcs included. A cell the kernel rejects gets the box
// of its nodes, so that the failure shows up with the pairs using it.
func (m *Mesh) CellBounds(c *geo2d.Config) []geo2d.Bounds {
	bounds := make([]geo2d.Bounds, m.NumberOfCells())
	for i := range bounds {
		i := i
		if err := geo2d.Guard(func() { bounds[i] = m.CellPolygon(c, i).Bounds() }); err != nil {
			_, nodes := m.Cell(i)
			b := geo2d.EmptyBounds()
			for _, id := range nodes {
				b.AggregatePoint(m.Coords[2*id], m.Coords[2*id+1])
			}
			bounds[i] = b
		}
	}
	return bounds
}

// spatialCell is an entry or a query of an rtree indexing cells, edges or
// nodes. Queries grow their box by eps.
type spatialCell struct {
	id     int
	bounds geo2d.Bounds
	eps    float64
}

func (s *spatialCell) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: s.bounds.XMin - s.eps, Y: s.bounds.YMin - s.eps},
		Max: geom.Point{X: s.bounds.XMax + s.eps, Y: s.bounds.YMax + s.eps},
	}
}
