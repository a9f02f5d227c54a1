package geo2d

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// ComposedEdge is an ordered chain of elementary edges. It is stored as a
// doubly linked list inside an arena of slots so that iterators survive
// splices: a slot replaced by a run keeps forwarding to the first slot of
// that run.
//
// The chain is circular for links, but iteration with Next stops after the
// last element. NextLoop and PreviousLoop wrap.
type ComposedEdge struct {
	slots []slot
	head  int
	size  int
}

type slot struct {
	elem       *ElementaryEdge
	prev, next int
	// For dead slots, the slot that replaced this one.
	forward int
	alive   bool
}

const noSlot = -1

func NewComposedEdge() *ComposedEdge {
	return &ComposedEdge{head: noSlot}
}

// Chain of the given edges, in order.
func ComposedEdgeOf(elems ...*ElementaryEdge) *ComposedEdge {
	ce := NewComposedEdge()
	for _, ee := range elems {
		ce.PushBack(ee)
	}
	return ce
}

func (ce *ComposedEdge) Size() int   { return ce.size }
func (ce *ComposedEdge) Empty() bool { return ce.size == 0 }

// Runs are flattened on insertion, so this is the leaf count.
func (ce *ComposedEdge) RecursiveSize() int { return ce.size }

func (ce *ComposedEdge) tail() int {
	if ce.head == noSlot {
		return noSlot
	}
	return ce.slots[ce.head].prev
}

func (ce *ComposedEdge) newSlot(ee *ElementaryEdge) int {
	ce.slots = append(ce.slots, slot{elem: ee, prev: noSlot, next: noSlot, forward: noSlot, alive: true})
	return len(ce.slots) - 1
}

// Link slot s after slot at.
func (ce *ComposedEdge) linkAfter(at, s int) {
	next := ce.slots[at].next
	ce.slots[s].prev = at
	ce.slots[s].next = next
	ce.slots[at].next = s
	ce.slots[next].prev = s
}

func (ce *ComposedEdge) PushBack(ee *ElementaryEdge) {
	s := ce.newSlot(ee)
	ce.size++
	if ce.head == noSlot {
		ce.head = s
		ce.slots[s].prev, ce.slots[s].next = s, s
		return
	}
	ce.linkAfter(ce.tail(), s)
}

func (ce *ComposedEdge) PushFront(ee *ElementaryEdge) {
	ce.PushBack(ee)
	ce.head = len(ce.slots) - 1
}

// Move every element of other to the back of ce, leaving other empty.
func (ce *ComposedEdge) PushBackAll(other *ComposedEdge) {
	for _, ee := range other.Elements() {
		ce.PushBack(ee)
	}
	other.ClearAll()
}

func (ce *ComposedEdge) Front() *ElementaryEdge {
	if ce.head == noSlot {
		return nil
	}
	return ce.slots[ce.head].elem
}

func (ce *ComposedEdge) Back() *ElementaryEdge {
	if ce.head == noSlot {
		return nil
	}
	return ce.slots[ce.tail()].elem
}

// Elements in order.
func (ce *ComposedEdge) Elements() []*ElementaryEdge {
	result := make([]*ElementaryEdge, 0, ce.size)
	for s, i := ce.head, 0; i < ce.size; s, i = ce.slots[s].next, i+1 {
		result = append(result, ce.slots[s].elem)
	}
	return result
}

// The i-th element, wrapping.
func (ce *ComposedEdge) At(i int) *ElementaryEdge {
	s := ce.head
	for i = ((i % ce.size) + ce.size) % ce.size; i > 0; i-- {
		s = ce.slots[s].next
	}
	return ce.slots[s].elem
}

func (ce *ComposedEdge) ClearAll() {
	ce.slots = nil
	ce.head = noSlot
	ce.size = 0
}

// Reverse the order of the elements and the direction of each of them.
func (ce *ComposedEdge) Reverse() {
	elems := ce.Elements()
	ce.ClearAll()
	for i := len(elems) - 1; i >= 0; i-- {
		elems[i].Reverse()
		ce.PushBack(elems[i])
	}
}

func (ce *ComposedEdge) StartNode() *Node {
	if ce.Empty() {
		return nil
	}
	return ce.Front().StartNode()
}

func (ce *ComposedEdge) EndNode() *Node {
	if ce.Empty() {
		return nil
	}
	return ce.Back().EndNode()
}

// Does the chain end where it starts?
func (ce *ComposedEdge) Completed() bool {
	return !ce.Empty() && ce.StartNode() == ce.EndNode()
}

func (ce *ComposedEdge) InitLocations() {
	for _, ee := range ce.Elements() {
		ee.InitLocations()
	}
}

// Pointer identity with an end point of any element.
func (ce *ComposedEdge) IsNodeIn(n *Node) bool {
	for _, ee := range ce.Elements() {
		if ee.IsNodeIn(n) {
			return true
		}
	}
	return false
}

func (ce *ComposedEdge) PresenceOfOn() bool {
	for _, ee := range ce.Elements() {
		if ee.Loc() == FullOnOne {
			return true
		}
	}
	return false
}

func (ce *ComposedEdge) CurveLength() float64 {
	terms := make([]float64, 0, ce.size)
	for _, ee := range ce.Elements() {
		terms = append(terms, ee.CurveLength())
	}
	return floats.Sum(terms)
}

// Signed area, positive for an anticlockwise boundary.
func (ce *ComposedEdge) Area() float64 {
	terms := make([]float64, 0, ce.size)
	for _, ee := range ce.Elements() {
		terms = append(terms, ee.AreaOfZone())
	}
	return floats.Sum(terms)
}

// Barycenter of the enclosed zone. A zone with no area has its barycenter at
// the first node.
func (ce *ComposedEdge) Barycenter() (float64, float64) {
	area := ce.Area()
	if area == 0 {
		if ce.Empty() {
			return 0, 0
		}
		return ce.StartNode().X, ce.StartNode().Y
	}
	xs := make([]float64, 0, ce.size)
	ys := make([]float64, 0, ce.size)
	for _, ee := range ce.Elements() {
		x, y := ee.BarycenterOfZone()
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return floats.Sum(xs) / area, floats.Sum(ys) / area
}

func (ce *ComposedEdge) Bounds() Bounds {
	b := EmptyBounds()
	for _, ee := range ce.Elements() {
		b.Aggregate(ee.Bounds())
	}
	return b
}

// Distinct nodes in order of appearance.
func (ce *ComposedEdge) Nodes() []*Node {
	seen := map[*Node]bool{}
	var result []*Node
	for _, ee := range ce.Elements() {
		for _, n := range []*Node{ee.StartNode(), ee.EndNode()} {
			if !seen[n] {
				seen[n] = true
				result = append(result, n)
			}
		}
	}
	return result
}

// Distinct underlying edges in order of appearance.
func (ce *ComposedEdge) Edges() []*Edge {
	seen := map[*Edge]bool{}
	var result []*Edge
	for _, ee := range ce.Elements() {
		if !seen[ee.edge] {
			seen[ee.edge] = true
			result = append(result, ee.edge)
		}
	}
	return result
}

// Move nodes and carriers. Shared nodes and edges are moved once.
func (ce *ComposedEdge) ApplySimilarity(xBary, yBary, dimChar float64) {
	for _, n := range ce.Nodes() {
		n.ApplySimilarity(xBary, yBary, dimChar)
	}
	for _, e := range ce.Edges() {
		e.applySimilarity(xBary, yBary, dimChar)
	}
}

func (ce *ComposedEdge) UnApplySimilarity(xBary, yBary, dimChar float64) {
	for _, n := range ce.Nodes() {
		n.UnApplySimilarity(xBary, yBary, dimChar)
	}
	for _, e := range ce.Edges() {
		e.unApplySimilarity(xBary, yBary, dimChar)
	}
}

// IsButterfly detects self intersection: some pair of edges of the chain
// needs a subdivision against each other. It runs on a deep copy so that the
// chain and its nodes are untouched.
func (ce *ComposedEdge) IsButterfly(c *Config) bool {
	cpy := ce.deepCopy(map[*Node]*Node{}, map[*Edge]*Edge{})
	elems := cpy.Elements()
	var merge MergePoints
	for i := 0; i < len(elems); i++ {
		for j := i + 1; j < len(elems); j++ {
			merge.Clear()
			if _, _, ok := elems[i].edge.IntersectWith(c, elems[j].edge, &merge); ok {
				c.Log().WithFields(logrus.Fields{
					"i": i,
					"j": j,
				}).Debug("self intersection")
				return true
			}
		}
	}
	return false
}

// Deep copy sharing the given node and edge maps, so that two chains copied
// with the same maps keep sharing what the originals shared.
func (ce *ComposedEdge) deepCopy(nodes map[*Node]*Node, edges map[*Edge]*Edge) *ComposedEdge {
	copyNode := func(n *Node) *Node {
		if cpy, ok := nodes[n]; ok {
			return cpy
		}
		cpy := n.Copy()
		nodes[n] = cpy
		return cpy
	}
	result := NewComposedEdge()
	for _, ee := range ce.Elements() {
		e, ok := edges[ee.edge]
		if !ok {
			e = ee.edge.cloneOn(copyNode(ee.edge.start), copyNode(ee.edge.end))
			e.loc = ee.edge.loc
			edges[ee.edge] = e
		}
		result.PushBack(&ElementaryEdge{edge: e, direction: ee.direction, loc: ee.loc})
	}
	return result
}

// Shallow copy: new elementary edges on the same Edges.
func (ce *ComposedEdge) shallowCopy() *ComposedEdge {
	result := NewComposedEdge()
	for _, ee := range ce.Elements() {
		result.PushBack(ee.Clone())
	}
	return result
}
