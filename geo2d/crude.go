package geo2d

// CrudeData is the compact nodal connectivity of a mesh: every cell record
// starts with its type, NormPolygon or NormQPolyg, followed by its corner
// ids and, for quadratic cells, the ids of the middle of each edge. ConnI
// holds the start of every record in Conn plus the end of the last one.
type CrudeData struct {
	AddCoords []float64
	Conn      []int
	ConnI     []int
}

func NewCrudeData() *CrudeData {
	return &CrudeData{ConnI: []int{0}}
}

func (d *CrudeData) NumberOfCells() int {
	if len(d.ConnI) == 0 {
		return 0
	}
	return len(d.ConnI) - 1
}

// The type and the node ids of a cell.
func (d *CrudeData) Cell(i int) (cellType int, nodes []int) {
	rec := d.Conn[d.ConnI[i]:d.ConnI[i+1]]
	return rec[0], rec[1:]
}

func nodeOf(mapp map[int]*Node, id int) *Node {
	n, ok := mapp[id]
	if !ok {
		fatalf(InvalidInput, "no node for id %d", id)
	}
	return n
}

// Ids of the j-th piece of an edge cut into pieces, in the direction of the
// cell.
func subEdgeIds(subEdge []int, j int, direct bool) (int, int) {
	n := len(subEdge) / 2
	if direct {
		return subEdge[2*j], subEdge[2*j+1]
	}
	return subEdge[2*n-2*j-1], subEdge[2*n-2*j-2]
}

func decodeDesc(d int) (edgeID int, direct bool) {
	if d == 0 {
		fatalf(InvalidInput, "descending connectivity entries are signed and 1 based")
	}
	if d > 0 {
		return d - 1, true
	}
	return -d - 1, false
}

// BuildFromCrudeDataArray appends to p the edges of a cell given by its
// descending connectivity desc: signed 1 based edge ids, negative when the
// cell runs against the edge. intersectEdges gives for every edge the id pairs
// of its pieces, in the direction of the edge, and mapp the node of every id.
// For quadratic cells nodal gives the corners then the middles, and an edge
// becomes an arc unless its three points are colinear.
func (p *QuadraticPolygon) BuildFromCrudeDataArray(c *Config, mapp map[int]*Node, isQuad bool, nodal []int, coords []float64, desc []int, intersectEdges [][]int) {
	for i := range desc {
		p.appendEdgeFromCrudeDataArray(c, i, mapp, isQuad, nodal, coords, desc, intersectEdges)
	}
}

func (p *QuadraticPolygon) appendEdgeFromCrudeDataArray(c *Config, edgePos int, mapp map[int]*Node, isQuad bool, nodal []int, coords []float64, desc []int, intersectEdges [][]int) {
	edgeID, direct := decodeDesc(desc[edgePos])
	subEdge := subdivisionOf(intersectEdges, edgeID)
	baseEdge := crudeBaseEdge(c, edgePos, isQuad, nodal, coords, len(desc))
	for j := 0; j < len(subEdge)/2; j++ {
		p.appendSubEdgeFromCrudeDataArray(baseEdge, j, direct, subEdge, mapp)
	}
}

func subdivisionOf(intersectEdges [][]int, edgeID int) []int {
	if edgeID >= len(intersectEdges) {
		fatalf(InvalidInput, "edge %d has no subdivision", edgeID)
	}
	return intersectEdges[edgeID]
}

// The arc carrying the edge at edgePos of a quadratic cell, or nil when the
// edge is straight.
func crudeBaseEdge(c *Config, edgePos int, isQuad bool, nodal []int, coords []float64, nbOfSeg int) *Edge {
	if !isQuad {
		return nil
	}
	if len(nodal) < 2*nbOfSeg {
		fatalf(InvalidInput, "quadratic cell with %d edges has %d nodes", nbOfSeg, len(nodal))
	}
	nodeAt := func(k int) *Node {
		id := nodal[k]
		if id < 0 || 2*id+1 >= len(coords) {
			fatalf(InvalidInput, "node id %d out of coordinates", id)
		}
		return NewNode(coords[2*id], coords[2*id+1])
	}
	st := nodeAt(edgePos)
	middle := nodeAt(edgePos + nbOfSeg)
	if nodal[edgePos] == nodal[(edgePos+1)%nbOfSeg] {
		return NewEdgeArcCircle(st, middle, st)
	}
	e := NewEdgeFrom3Points(c, st, middle, nodeAt((edgePos+1)%nbOfSeg))
	if !e.IsArc() {
		return nil
	}
	return e
}

// A segment without base edge, else a piece of the base arc.
func (p *QuadraticPolygon) appendSubEdgeFromCrudeDataArray(baseEdge *Edge, j int, direct bool, subEdge []int, mapp map[int]*Node) {
	startID, endID := subEdgeIds(subEdge, j, direct)
	start, end := nodeOf(mapp, startID), nodeOf(mapp, endID)
	if baseEdge == nil {
		p.PushBack(NewElementaryEdge(NewEdgeLin(start, end), true))
		return
	}
	p.PushBack(NewElementaryEdge(baseEdge.BuildEdgeLyingOnMe(start, end, true), true))
}

// BuildFromCrudeDataArray2 is BuildFromCrudeDataArray for the second cell of
// a pair, whose edges may lie on edges of pol1, built first. colinear1 gives
// for every edge of this cell the edges of pol1 on the same carrier. Pieces
// found in the subdivision of such an edge reuse the Edge of pol1, which is
// declared ON.
func (p *QuadraticPolygon) BuildFromCrudeDataArray2(c *Config, scope *ClassificationScope, mapp map[int]*Node, isQuad bool, nodal []int, coords []float64, desc []int, intersectEdges [][]int,
	pol1 *QuadraticPolygon, desc1 []int, intersectEdges1 [][]int, colinear1 [][]int) {
	scope.require(pol1)
	scope.adopt(p)
	elems1 := pol1.Elements()
	for i := range desc {
		edgeID, direct := decodeDesc(desc[i])
		var idIns1 []colinearIn1
		if edgeID < len(colinear1) && len(colinear1[edgeID]) > 0 {
			offset1 := 0
			for _, d1 := range desc1 {
				edgeID1, direct1 := decodeDesc(d1)
				if containsInt(colinear1[edgeID], edgeID1) {
					idIns1 = append(idIns1, colinearIn1{edgeID1: edgeID1, direct1: direct1, offset1: offset1})
				}
				offset1 += len(subdivisionOf(intersectEdges1, edgeID1)) / 2
			}
		}
		if len(idIns1) == 0 {
			p.appendEdgeFromCrudeDataArray(c, i, mapp, isQuad, nodal, coords, desc, intersectEdges)
			continue
		}
		subEdge := subdivisionOf(intersectEdges, edgeID)
		baseEdge := crudeBaseEdge(c, i, isQuad, nodal, coords, len(desc))
		for j := 0; j < len(subEdge)/2; j++ {
			idBg, idEnd := subEdgeIds(subEdge, j, direct)
			if ee := reusableIn1(elems1, idIns1, intersectEdges1, idBg, idEnd); ee != nil {
				ee.edge.DeclareOn()
				p.PushBack(ee)
				continue
			}
			p.appendSubEdgeFromCrudeDataArray(baseEdge, j, direct, subEdge, mapp)
		}
	}
}

type colinearIn1 struct {
	edgeID1 int
	direct1 bool
	// Position in pol1 of the first piece of the edge.
	offset1 int
}

// An elementary edge on the Edge of pol1 spanning idBg to idEnd, running from
// idBg, or nil.
func reusableIn1(elems1 []*ElementaryEdge, idIns1 []colinearIn1, intersectEdges1 [][]int, idBg, idEnd int) *ElementaryEdge {
	for _, in1 := range idIns1 {
		sub1 := intersectEdges1[in1.edgeID1]
		n1 := len(sub1) / 2
		for k := 0; k < n1; k++ {
			var direction11 bool
			switch {
			case sub1[2*k] == idBg && sub1[2*k+1] == idEnd:
				direction11 = true
			case sub1[2*k] == idEnd && sub1[2*k+1] == idBg:
				direction11 = false
			default:
				continue
			}
			pos := in1.offset1 + k
			if !in1.direct1 {
				pos = in1.offset1 + n1 - k - 1
			}
			if pos >= len(elems1) {
				fatalf(InvalidInput, "piece %d of a cell with %d pieces", pos, len(elems1))
			}
			return NewElementaryEdge(elems1[pos].edge, in1.direct1 == direction11)
		}
	}
	return nil
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// AppendCrudeData appends p as a cell record of out. Nodes of p are numbered
// by mapp. For a polygon holding arcs, the middle of every edge is a new node
// numbered from offset on, with its coordinates mapped back from the frame
// (xBary, yBary, fact) and appended to out.AddCoords.
func (p *QuadraticPolygon) AppendCrudeData(mapp map[*Node]int, xBary, yBary, fact float64, offset int, out *CrudeData) {
	if len(out.ConnI) == 0 {
		out.ConnI = append(out.ConnI, 0)
	}
	quadratic := p.PresenceOfQuadraticEdge()
	cellType := NormPolygon
	if quadratic {
		cellType = NormQPolyg
	}
	out.Conn = append(out.Conn, cellType)
	nbOfNodesInPg := 0
	for _, ee := range p.Elements() {
		id, ok := mapp[ee.StartNode()]
		if !ok {
			fatalf(InvalidInput, "node %s of the result has no id", ee.StartNode())
		}
		out.Conn = append(out.Conn, id)
		nbOfNodesInPg++
	}
	if quadratic {
		off := offset + len(out.AddCoords)/2
		for j, ee := range p.Elements() {
			n := ee.edge.BuildRepresentantOfMySelf()
			n.UnApplySimilarity(xBary, yBary, fact)
			out.AddCoords = append(out.AddCoords, n.X, n.Y)
			out.Conn = append(out.Conn, off+j)
			nbOfNodesInPg++
		}
	}
	out.ConnI = append(out.ConnI, out.ConnI[len(out.ConnI)-1]+nbOfNodesInPg+1)
}
