// Package geo2d is a kernel for boolean intersection of 2D polygons whose
// edges are segments or arcs of circle.
//
// A binary operation runs in three passes on deep copies of its operands:
//
//  1. Split. Every edge of one polygon is intersected with every edge of the
//     other. Intersection points become nodes shared by both polygons, and a
//     part lying on both boundaries becomes a single Edge referenced by an
//     elementary edge of each.
//  2. Locate. The elementary edges of the second polygon are classified IN,
//     OUT or ON the first one, walking the boundary in order. An edge already
//     ON keeps that class. Otherwise a start node created by the split and ON
//     the other boundary flips the class of the preceding edge, and a start
//     node IN or ON_TANG keeps it. Failing that, an end point known to be IN
//     or OUT decides, and as a last resort a point inside the edge is tested
//     against the first polygon by winding number.
//  3. Build. The maximal runs of the second polygon that are not OUT are
//     closed by walking the first polygon from their end.
//
// Tolerances come from a Config. Failures are raised as a *GeometryError
// panic inside the package and returned as errors by Guard.
package geo2d
