package geo2d

import (
	"fmt"

	"github.com/logrusorgru/aurora"
)

// Location of a node relative to the other polygon of a binary operation.
type TypeOfLocInPolygon int

const (
	Unknown TypeOfLocInPolygon = iota
	InsideStrictly
	OutsideStrictly
	OnBoundary
	OnTangent
)

func (l TypeOfLocInPolygon) String() string {
	switch l {
	case Unknown:
		return "UNKNOWN"
	case InsideStrictly:
		return "IN"
	case OutsideStrictly:
		return "OUT"
	case OnBoundary:
		return "ON"
	case OnTangent:
		return "ON_TANG"
	}
	return fmt.Sprintf("TypeOfLocInPolygon(%d)", int(l))
}

// Classification of a whole elementary edge relative to the other polygon.
type TypeOfEdgeLocInPolygon int

const (
	FullUnknown TypeOfEdgeLocInPolygon = iota
	FullInOne
	FullOutOne
	FullOnOne
)

func (l TypeOfEdgeLocInPolygon) String() string {
	switch l {
	case FullUnknown:
		return "FULL_UNKNOWN"
	case FullInOne:
		return "FULL_IN"
	case FullOutOne:
		return "FULL_OUT"
	case FullOnOne:
		return "FULL_ON"
	}
	return fmt.Sprintf("TypeOfEdgeLocInPolygon(%d)", int(l))
}

// Colored for terminal debugging. IN is green, OUT red, ON cyan.
func (l TypeOfEdgeLocInPolygon) DbgName() string {
	switch l {
	case FullInOne:
		return aurora.Green(l.String()).String()
	case FullOutOne:
		return aurora.Red(l.String()).String()
	case FullOnOne:
		return aurora.Cyan(l.String()).String()
	}
	return l.String()
}

// Position of a point along the first edge of an intersector.
type Position int

const (
	PlacementStart Position = iota
	PlacementEnd
	PlacementInside
	PlacementOutBefore
	PlacementOutAfter
)

func (p Position) String() string {
	switch p {
	case PlacementStart:
		return "START"
	case PlacementEnd:
		return "END"
	case PlacementInside:
		return "INSIDE"
	case PlacementOutBefore:
		return "OUT_BEFORE"
	case PlacementOutAfter:
		return "OUT_AFTER"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Cell types of the crude connectivity encoding.
const (
	NormPolygon = 5
	NormQPolyg  = 32
)
