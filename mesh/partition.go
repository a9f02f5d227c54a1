package mesh

import (
	"github.com/ctessum/geom/index/rtree"
	"github.com/osuushi/quadpoly/geo2d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PartitionResult holds the cells of the intersection of two meshes. Its
// nodes are the nodes of m1, then those of m2, then the nodes created by the
// intersection. Cells1 and Cells2 give for every result cell the cell of m1
// and the cell of m2 it lies in.
type PartitionResult struct {
	Mesh   *Mesh
	Cells1 []int
	Cells2 []int
}

// Partition cuts every cell of m1 by the cells of m2. Edges of both meshes
// are split against each other first, so that neighbouring result cells
// share the nodes created on their common edges. Parts of m1 outside of m2
// are not part of the result.
func Partition(c *geo2d.Config, m1, m2 *Mesh) (*PartitionResult, error) {
	if err := m1.Validate(); err != nil {
		return nil, errors.Wrap(err, "first mesh")
	}
	if err := m2.Validate(); err != nil {
		return nil, errors.Wrap(err, "second mesh")
	}
	pt := newPartitioner(c, m1, m2)
	pt.mergeNodes()
	if err := geo2d.Guard(pt.splitEdges); err != nil {
		return nil, errors.Wrap(err, "splitting edges")
	}
	if err := geo2d.Guard(pt.subdivide); err != nil {
		return nil, errors.Wrap(err, "ordering split nodes")
	}
	pairs := candidatePairs(c, m1, m2)
	out := geo2d.NewCrudeData()
	res := &PartitionResult{}
	if err := pt.buildCells(pairs, out, res); err != nil {
		return nil, err
	}
	res.Mesh = FromCrudeData(pt.coords, out)
	c.Log().WithFields(logrus.Fields{
		"pairs":    len(pairs),
		"cells":    out.NumberOfCells(),
		"newNodes": len(pt.coords)/2 - pt.offset1 - m2.NumberOfNodes(),
	}).Debug("partitioned meshes")
	return res, nil
}

type partitioner struct {
	c      *geo2d.Config
	m1, m2 *Mesh
	d1, d2 *Descending
	// Nodes of m2 are numbered after the nodes of m1, unless they merge
	// with one of them.
	offset1 int
	merge2  []int
	split   *geo2d.SplitAbsOutput
	// Ids of the nodes found inside every edge.
	added1, added2 [][]int
	// For every edge of m2, the edges of m1 sharing part of it.
	colinear2 [][]int
	// Id pairs of the pieces of every edge.
	intersectEdges1, intersectEdges2 [][]int
	// Nodes of m1, m2 and the split, interleaved.
	coords []float64
}

func newPartitioner(c *geo2d.Config, m1, m2 *Mesh) *partitioner {
	d1, d2 := m1.BuildDescending(), m2.BuildDescending()
	return &partitioner{
		c: c, m1: m1, m2: m2, d1: d1, d2: d2,
		offset1:   m1.NumberOfNodes(),
		split:     geo2d.NewSplitAbsOutput(),
		added1:    make([][]int, d1.NumberOfEdges()),
		added2:    make([][]int, d2.NumberOfEdges()),
		colinear2: make([][]int, d2.NumberOfEdges()),
	}
}

// edgeOf builds edge e of the descending view d with nodes of its own, and
// the ids of these nodes in m.
func (m *Mesh) edgeOf(c *geo2d.Config, d *Descending, e int) (*geo2d.Edge, map[*geo2d.Node]int) {
	start, end, middle := d.Edge(e)
	ns := m.node(start)
	ne := ns
	if end != start {
		ne = m.node(end)
	}
	ids := map[*geo2d.Node]int{ns: start, ne: end}
	if middle < 0 {
		return geo2d.NewEdgeLin(ns, ne), ids
	}
	return geo2d.NewEdgeFrom3Points(c, ns, m.node(middle), ne), ids
}

func appendUnique(ids []int, id int) []int {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

// mergeNodes gives every node of m2 the id of the first node of m1 at the
// same place, if any.
func (pt *partitioner) mergeNodes() {
	index := rtree.NewTree(25, 50)
	for id := 0; id < pt.m1.NumberOfNodes(); id++ {
		index.Insert(&spatialCell{id: id, bounds: geo2d.BoundsOfNodes(pt.m1.node(id))})
	}
	eps := pt.c.Precision
	pt.merge2 = make([]int, pt.m2.NumberOfNodes())
	for id := range pt.merge2 {
		n := pt.m2.node(id)
		pt.merge2[id] = id + pt.offset1
		query := &spatialCell{bounds: geo2d.BoundsOfNodes(n), eps: eps}
		for _, s := range index.SearchIntersect(query.Bounds()) {
			cand := s.(*spatialCell).id
			if cand < pt.merge2[id] && pt.m1.node(cand).IsEqual(pt.c, n) {
				pt.merge2[id] = cand
			}
		}
	}
}

// canon maps the ids produced by SplitAbs, where nodes of m2 are offset by
// the nodes of m1, to global ids.
func (pt *partitioner) canon(id int) int {
	if id >= pt.offset1 && id < pt.offset1+len(pt.merge2) {
		return pt.merge2[id-pt.offset1]
	}
	return id
}

// splitEdges intersects every edge of m1 with the edges of m2 near it.
func (pt *partitioner) splitEdges() {
	index := rtree.NewTree(25, 50)
	for e2 := 0; e2 < pt.d2.NumberOfEdges(); e2++ {
		edge, _ := pt.m2.edgeOf(pt.c, pt.d2, e2)
		index.Insert(&spatialCell{id: e2, bounds: edge.Bounds()})
	}
	offset2 := pt.offset1 + pt.m2.NumberOfNodes()
	for e1 := 0; e1 < pt.d1.NumberOfEdges(); e1++ {
		probe, _ := pt.m1.edgeOf(pt.c, pt.d1, e1)
		query := &spatialCell{id: e1, bounds: probe.Bounds(), eps: pt.c.Precision}
		start1, end1, _ := pt.d1.Edge(e1)
		for _, s := range index.SearchIntersect(query.Bounds()) {
			cell := s.(*spatialCell)
			if !query.bounds.Overlaps(cell.bounds, pt.c.Precision) {
				continue
			}
			e2 := cell.id
			edge1, map1 := pt.m1.edgeOf(pt.c, pt.d1, e1)
			edge2, map2 := pt.m2.edgeOf(pt.c, pt.d2, e2)
			p := geo2d.QuadraticPolygonOf(geo2d.NewElementaryEdge(edge1, true))
			other := geo2d.QuadraticPolygonOf(geo2d.NewElementaryEdge(edge2, true))
			before := len(pt.split.EdgesThis)
			p.SplitAbs(pt.c, other, geo2d.SplitAbsInput{
				MapThis:      map1,
				MapOther:     map2,
				Offset1:      pt.offset1,
				Offset2:      offset2,
				OtherEdgeIds: []int{e2},
				CellIdThis:   e1,
			}, pt.split)
			for _, id := range pt.split.EdgesThis[before:] {
				if id = pt.canon(id); id != start1 && id != end1 {
					pt.added1[e1] = appendUnique(pt.added1[e1], id)
				}
			}
			start2, end2, _ := pt.d2.Edge(e2)
			start2, end2 = pt.merge2[start2], pt.merge2[end2]
			for _, id := range pt.split.SubDivOther[e2] {
				if id = pt.canon(id); id != start2 && id != end2 {
					pt.added2[e2] = appendUnique(pt.added2[e2], id)
				}
			}
			delete(pt.split.SubDivOther, e2)
		}
	}
	for e2, e1s := range pt.split.EdgesInOtherColinearWithThis {
		pt.colinear2[e2] = e1s
	}
	pt.coords = make([]float64, 0, len(pt.m1.Coords)+len(pt.m2.Coords)+len(pt.split.AddCoords))
	pt.coords = append(pt.coords, pt.m1.Coords...)
	pt.coords = append(pt.coords, pt.m2.Coords...)
	pt.coords = append(pt.coords, pt.split.AddCoords...)
}

func (pt *partitioner) node(id int) *geo2d.Node {
	return geo2d.NewNode(pt.coords[2*id], pt.coords[2*id+1])
}

// nodes builds one node per global id.
func (pt *partitioner) nodes(idLists ...[]int) (map[int]*geo2d.Node, map[*geo2d.Node]int) {
	mapp := map[int]*geo2d.Node{}
	rev := map[*geo2d.Node]int{}
	for _, ids := range idLists {
		for _, id := range ids {
			if _, ok := mapp[id]; !ok {
				n := pt.node(id)
				mapp[id] = n
				rev[n] = id
			}
		}
	}
	return mapp, rev
}

// subdivide orders the nodes found inside every edge along it.
func (pt *partitioner) subdivide() {
	pt.intersectEdges1 = pt.subdivideAll(pt.d1, 0, func(id int) int { return id }, pt.added1)
	pt.intersectEdges2 = pt.subdivideAll(pt.d2, pt.offset1, func(id int) int { return pt.merge2[id] }, pt.added2)
}

// The corners of d get their ids from globalID and its middles from offset.
func (pt *partitioner) subdivideAll(d *Descending, offset int, globalID func(int) int, added [][]int) [][]int {
	subDiv := make([][]int, d.NumberOfEdges())
	for e := range subDiv {
		start, end, middle := d.Edge(e)
		start, end = globalID(start), globalID(end)
		mapp, rev := pt.nodes([]int{start, end}, added[e])
		var edge *geo2d.Edge
		if middle < 0 {
			edge = geo2d.NewEdgeLin(mapp[start], mapp[end])
		} else {
			edge = geo2d.NewEdgeFrom3Points(pt.c, mapp[start], pt.node(middle+offset), mapp[end])
		}
		addNodes := make([]*geo2d.Node, len(added[e]))
		for k, id := range added[e] {
			addNodes[k] = mapp[id]
		}
		subDiv[e] = edge.SortIdsAbs(pt.c, addNodes, rev)
	}
	return subDiv
}

// Global ids of the nodal connectivity of a cell of m2. Middles are not
// merged since only their coordinates matter.
func (pt *partitioner) nodal2(j int) []int {
	_, nodes := pt.m2.Cell(j)
	corners := len(pt.m2.Corners(j))
	r := make([]int, len(nodes))
	for k, id := range nodes {
		if k < corners {
			r[k] = pt.merge2[id]
		} else {
			r[k] = id + pt.offset1
		}
	}
	return r
}

// Ids of every node on the pieces of the edges of a cell.
func (pt *partitioner) pieceIds(desc []int, subDiv [][]int) []int {
	var ids []int
	for _, d := range desc {
		if d < 0 {
			d = -d
		}
		ids = append(ids, subDiv[d-1]...)
	}
	return ids
}

// buildCells intersects the pre split cells of every candidate pair. The
// cells of m1 get fresh nodes each, shared with the cells of m2 they meet.
func (pt *partitioner) buildCells(pairs []CellPair, out *geo2d.CrudeData, res *PartitionResult) error {
	offset := len(pt.coords) / 2
	for start := 0; start < len(pairs); {
		i := pairs[start].Src
		stop := start
		idLists := [][]int{pt.pieceIds(pt.d1.CellEdges(i), pt.intersectEdges1)}
		for ; stop < len(pairs) && pairs[stop].Src == i; stop++ {
			idLists = append(idLists, pt.pieceIds(pt.d2.CellEdges(pairs[stop].Tgt), pt.intersectEdges2))
		}
		mapp, rev := pt.nodes(idLists...)
		_, nodal1 := pt.m1.Cell(i)
		pol1 := geo2d.NewQuadraticPolygon()
		if err := geo2d.Guard(func() {
			pol1.BuildFromCrudeDataArray(pt.c, mapp, pt.m1.IsQuadratic(i), nodal1, pt.coords, pt.d1.CellEdges(i), pt.intersectEdges1)
		}); err != nil {
			return errors.Wrapf(err, "cell %d", i)
		}
		for _, pair := range pairs[start:stop] {
			j := pair.Tgt
			err := geo2d.Guard(func() {
				scope := geo2d.NewClassificationScope(pol1)
				pol2 := geo2d.NewQuadraticPolygon()
				pol2.BuildFromCrudeDataArray2(pt.c, scope, mapp, pt.m2.IsQuadratic(j), pt.nodal2(j), pt.coords,
					pt.d2.CellEdges(j), pt.intersectEdges2, pol1, pt.d1.CellEdges(i), pt.intersectEdges1, pt.colinear2)
				pol1.BuildPartitionsAbs(pt.c, scope, pol2, rev, i, j, offset, out, &res.Cells1, &res.Cells2)
			})
			if err != nil {
				return errors.Wrapf(err, "cells %d/%d", i, j)
			}
		}
		start = stop
	}
	return nil
}
