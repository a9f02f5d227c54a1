// Package quadpoly intersects planar polygons whose edges are segments or arcs
// of circle.
//
// Area, barycenter, perimeter split and the result polygons of the
// intersection of two polygons are available, as well as arc aware bounding
// boxes. The geo2d package holds the kernel; the functions here wrap it so that
// geometric failures come back as errors.
package quadpoly

import "github.com/osuushi/quadpoly/geo2d"

type Node = geo2d.Node
type Polygon = geo2d.QuadraticPolygon
type Config = geo2d.Config
type Bounds = geo2d.Bounds
type PerimeterSplit = geo2d.PerimeterSplit
type GeometryError = geo2d.GeometryError
type ErrorKind = geo2d.ErrorKind

const (
	DegenerateGeometry = geo2d.DegenerateGeometry
	NotClosed          = geo2d.NotClosed
	Incompatible       = geo2d.Incompatible
	InvalidInput       = geo2d.InvalidInput
)

func DefaultConfig() *Config {
	return geo2d.DefaultConfig()
}

func NewNode(x, y float64) *Node {
	return geo2d.NewNode(x, y)
}

// Does err carry a failure of the given kind?
func IsKind(err error, kind ErrorKind) bool {
	return geo2d.IsKind(err, kind)
}

// Build a polygon of segments joining the corners. "Solid" polygons must give
// their corners in counterclockwise order.
func BuildPolygon(corners ...*Node) (result *Polygon, err error) {
	defer func() {
		recoveredErr := geo2d.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return geo2d.BuildLinearPolygon(corners), nil
}

// Build a polygon whose i-th edge goes from corners[i] to corners[i+1] through
// middles[i]. Edges whose three points are colinear are segments. A single
// corner with its middle is a full circle.
func BuildArcPolygon(c *Config, corners, middles []*Node) (result *Polygon, err error) {
	defer func() {
		recoveredErr := geo2d.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	if len(corners) != len(middles) {
		return nil, geo2d.Errorf(InvalidInput, "%d corners for %d middles", len(corners), len(middles))
	}
	nodes := make([]*Node, 0, 2*len(corners))
	nodes = append(nodes, corners...)
	nodes = append(nodes, middles...)
	return geo2d.BuildArcCirclePolygon(c, nodes), nil
}

// Intersect returns the polygons making up the intersection of p1 and p2.
// Neither operand is modified.
func Intersect(c *Config, p1, p2 *Polygon) (result []*Polygon, err error) {
	err = geo2d.Guard(func() { result = p1.Intersect(c, p2) })
	return result, err
}

// Area of the intersection of p1 and p2.
func IntersectArea(c *Config, p1, p2 *Polygon) (area float64, err error) {
	err = geo2d.Guard(func() { area = p1.IntersectWith(c, p2) })
	return area, err
}

// IntersectAreaAbs is IntersectArea computed in a frame where both operands
// fit a unit box, for inputs far from the unit scale.
func IntersectAreaAbs(c *Config, p1, p2 *Polygon) (area float64, err error) {
	err = geo2d.Guard(func() { area = p1.IntersectWithAbs(c, p2) })
	return area, err
}

// Area and barycenter of the intersection of p1 and p2. The barycenter is
// zero when the area is.
func IntersectBarycenter(c *Config, p1, p2 *Polygon) (area, x, y float64, err error) {
	err = geo2d.Guard(func() { area, x, y = p1.IntersectWithBarycenter(c, p2) })
	return area, x, y, err
}

func IntersectBarycenterAbs(c *Config, p1, p2 *Polygon) (area, x, y float64, err error) {
	err = geo2d.Guard(func() { area, x, y = p1.IntersectWithAbsBarycenter(c, p2) })
	return area, x, y, err
}

// IntersectPerimeter splits the boundaries of p1 and p2 into the parts inside
// and outside of the other polygon, and their common part.
func IntersectPerimeter(c *Config, p1, p2 *Polygon) (split PerimeterSplit, err error) {
	err = geo2d.Guard(func() { split = p1.IntersectForPerimeterSplit(c, p2) })
	return split, err
}

// IntersectLength is for an open chain: the length of chain inside or on
// the boundary of p, and whether some of it lies on the boundary.
func IntersectLength(c *Config, p, chain *Polygon) (length float64, onBoundary bool, err error) {
	err = geo2d.Guard(func() { length, onBoundary = p.IntersectWithAbs1D(c, chain) })
	return length, onBoundary, err
}

// Does the boundary of p cross itself?
func IsButterfly(c *Config, p *Polygon) (butterfly bool, err error) {
	err = geo2d.Guard(func() { butterfly = p.IsButterfly(c) })
	return butterfly, err
}
