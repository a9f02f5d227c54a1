package geo2d

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors through the recursive split and rebuild passes would add a
// ton of noise to the geometry code. Instead, we panic with a *GeometryError
// and the public entry points recover to convert it back to an error.

type ErrorKind int

const (
	// Colinear points given to build an arc, or a zero length edge.
	DegenerateGeometry ErrorKind = iota + 1
	// The boundary front and back cannot be reconciled.
	NotClosed
	// A split run has no continuation in the other polygon.
	Incompatible
	// Malformed arguments such as bad connectivity records.
	InvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case DegenerateGeometry:
		return "degenerate geometry"
	case NotClosed:
		return "not closed"
	case Incompatible:
		return "incompatible polygons"
	case InvalidInput:
		return "invalid input"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

type GeometryError struct {
	Kind ErrorKind
	err  error
}

func (e *GeometryError) Error() string {
	return e.err.Error()
}

func (e *GeometryError) Cause() error {
	return e.err
}

func (e *GeometryError) Unwrap() error {
	return e.err
}

func Errorf(kind ErrorKind, format string, args ...interface{}) *GeometryError {
	return &GeometryError{Kind: kind, err: errors.Errorf(format, args...)}
}

// Panic with a *GeometryError.
func fatalf(kind ErrorKind, format string, args ...interface{}) {
	panic(Errorf(kind, format, args...))
}

// HandlePanicRecover converts the value returned by recover() into an error.
// Anything other than a *GeometryError is a real bug and panics again.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if geometryError, ok := r.(*GeometryError); ok {
			return geometryError
		}
		panic(r)
	}
	return nil
}

// Does err carry a GeometryError of the given kind, possibly wrapped?
func IsKind(err error, kind ErrorKind) bool {
	var geometryError *GeometryError
	if errors.As(err, &geometryError) {
		return geometryError.Kind == kind
	}
	return false
}

// Run fn, returning any geometry failure it raises as an error.
func Guard(fn func()) (err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			err = recoveredErr
		}
	}()
	fn()
	return nil
}
