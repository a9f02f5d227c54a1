package geo2d

// Iterator is a cursor on a ComposedEdge. It stays usable across splices: a
// position on a replaced element resolves to the first element of the run that
// replaced it.
type Iterator struct {
	ce  *ComposedEdge
	pos int
}

func (ce *ComposedEdge) Iterator() *Iterator {
	it := &Iterator{ce: ce}
	it.First()
	return it
}

func (it *Iterator) Copy() *Iterator {
	cpy := *it
	return &cpy
}

func (it *Iterator) First() { it.pos = it.ce.head }
func (it *Iterator) Last()  { it.pos = it.ce.tail() }

// Past the last element, or empty chain.
func (it *Iterator) Finished() bool {
	it.resolve()
	return it.pos == noSlot
}

// Follow the forwarding of dead slots.
func (it *Iterator) resolve() {
	for it.pos != noSlot && !it.ce.slots[it.pos].alive {
		it.pos = it.ce.slots[it.pos].forward
	}
}

func (it *Iterator) Current() *ElementaryEdge {
	it.resolve()
	if it.pos == noSlot {
		return nil
	}
	return it.ce.slots[it.pos].elem
}

func (it *Iterator) Next() {
	it.resolve()
	if it.pos == noSlot {
		return
	}
	if it.pos == it.ce.tail() {
		it.pos = noSlot
		return
	}
	it.pos = it.ce.slots[it.pos].next
}

func (it *Iterator) NextLoop() {
	it.resolve()
	if it.pos == noSlot {
		it.First()
		return
	}
	it.pos = it.ce.slots[it.pos].next
}

func (it *Iterator) PreviousLoop() {
	it.resolve()
	if it.pos == noSlot {
		it.Last()
		return
	}
	it.pos = it.ce.slots[it.pos].prev
}

// Elements before and after the current one, wrapping.
func (it *Iterator) previousElem() *ElementaryEdge {
	it.resolve()
	return it.ce.slots[it.ce.slots[it.pos].prev].elem
}

func (it *Iterator) nextElem() *ElementaryEdge {
	it.resolve()
	return it.ce.slots[it.ce.slots[it.pos].next].elem
}

// InsertElemEdges replaces the current element by the elements of run, which
// is emptied. With goNext the iterator moves past the inserted run, otherwise
// it stays on its first element.
func (it *Iterator) InsertElemEdges(run *ComposedEdge, goNext bool) {
	it.resolve()
	if it.pos == noSlot {
		fatalf(InvalidInput, "insertion on a finished iterator")
	}
	elems := run.Elements()
	run.ClearAll()
	if len(elems) == 0 {
		fatalf(InvalidInput, "insertion of an empty run")
	}
	ce := it.ce
	old := it.pos
	wasTail := old == ce.tail()
	wasHead := old == ce.head
	at := ce.slots[old].prev
	single := ce.size == 1
	first := noSlot
	last := noSlot
	for _, ee := range elems {
		s := ce.newSlot(ee)
		if first == noSlot {
			first = s
		}
		if single && last == noSlot {
			ce.slots[s].prev, ce.slots[s].next = s, s
		} else if last == noSlot {
			ce.linkAfter(at, s)
		} else {
			ce.linkAfter(last, s)
		}
		last = s
	}
	if !single {
		// Unlink old
		prev, next := ce.slots[old].prev, ce.slots[old].next
		ce.slots[prev].next = next
		ce.slots[next].prev = prev
	}
	ce.slots[old].alive = false
	ce.slots[old].forward = first
	ce.size += len(elems) - 1
	if wasHead || single {
		ce.head = first
	}
	switch {
	case !goNext:
		it.pos = first
	case wasTail:
		it.pos = noSlot
	default:
		it.pos = ce.slots[last].next
	}
}

// Record the state of it on every element of run, as the place to resume
// scanning from when the run is visited later.
func (it *Iterator) AssignMySelfToAllElems(run *ComposedEdge) {
	for _, ee := range run.Elements() {
		ee.resume = it.Copy()
	}
}

// GoToNextInOn moves to the start of a run of elements that are not OUT.
//
// With okFromNoOnPoint the iterator moves forward past OUT elements. Without
// it, it first moves backward past OUT elements, then backward past the run
// found, and finally one step forward, so that it lands on an element whose
// predecessor is OUT. i counts the steps. The move fails when every element
// is OUT; when none is, the whole chain is a single run and any position is
// its start.
func (it *Iterator) GoToNextInOn(okFromNoOnPoint bool, i *int, nbMax int) bool {
	loc := it.Current().Loc()
	if okFromNoOnPoint {
		for loc == FullOutOne && *i < nbMax {
			it.NextLoop()
			*i++
			loc = it.Current().Loc()
		}
		return *i != nbMax
	}
	for loc == FullOutOne && *i < nbMax {
		it.PreviousLoop()
		*i++
		loc = it.Current().Loc()
	}
	if *i == nbMax {
		return false
	}
	for loc != FullOutOne && *i < nbMax {
		it.PreviousLoop()
		*i++
		loc = it.Current().Loc()
	}
	if loc != FullOutOne {
		return true
	}
	it.NextLoop()
	return true
}

// SetPosition puts the iterator on the first slot holding ee, if any.
func (it *Iterator) SetPosition(ee *ElementaryEdge) bool {
	for s, i := it.ce.head, 0; i < it.ce.size; s, i = it.ce.slots[s].next, i+1 {
		if it.ce.slots[s].elem == ee {
			it.pos = s
			return true
		}
	}
	return false
}

// Does the iterator still point into a live chain?
func (it *Iterator) IsValid() bool {
	return it != nil && !it.Finished()
}
