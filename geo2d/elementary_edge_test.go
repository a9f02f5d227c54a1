package geo2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A start node on the boundary flips the state only when the split created
// it. An original vertex lying on the boundary falls through to the other
// tests.
func TestLocateFullyMySelfOnStart(t *testing.T) {
	c := DefaultConfig()
	pol := square(0, 0, 2)

	cases := []struct {
		name     string
		isNew    bool
		prec     TypeOfEdgeLocInPolygon
		expected TypeOfEdgeLocInPolygon
	}{
		{"crossing after inside", true, FullInOne, FullOutOne},
		{"crossing after outside", true, FullOutOne, FullInOne},
		{"vertex on boundary after inside", false, FullInOne, FullInOne},
		{"vertex on boundary after outside", false, FullOutOne, FullInOne},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// From the right side of pol towards its center
			start := NewNode(2, 1)
			start.DeclareOn()
			if tc.isNew {
				start.MarkNew()
			}
			ee := NewElementaryEdge(NewEdgeLin(start, NewNode(1, 1)), true)
			assert.Equal(t, tc.expected, ee.LocateFullyMySelf(c, pol, tc.prec))
			assert.Equal(t, tc.expected, ee.Loc())
		})
	}
}
