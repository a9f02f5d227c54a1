package geo2d

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandlePanicRecover(t *testing.T) {
	testFn := func(shouldThrow bool, shouldPanic bool) (err error) {
		defer func() {
			recoveredErr := HandlePanicRecover(recover())
			if recoveredErr != nil {
				err = recoveredErr
			}
		}()

		if shouldThrow {
			fatalf(NotClosed, "kaboom!")
		}

		if shouldPanic {
			panic("true panic")
		}

		return nil
	}

	t.Run("with throw", func(t *testing.T) {
		err := testFn(true, false)
		assert.EqualError(t, err, "kaboom!")
		assert.True(t, IsKind(err, NotClosed))
		assert.False(t, IsKind(err, Incompatible))
	})

	t.Run("with real panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, true)
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := testFn(false, false)
		assert.NoError(t, err)
	})
}

func TestGuard(t *testing.T) {
	err := Guard(func() {
		NewEdgeLin(NewNode(1, 1), NewNode(1, 1))
	})
	assert.Error(t, err)
	assert.True(t, IsKind(err, DegenerateGeometry))

	// The kind survives wrapping
	wrapped := errors.Wrapf(err, "cell %d", 3)
	assert.True(t, IsKind(wrapped, DegenerateGeometry))
	assert.Contains(t, wrapped.Error(), "cell 3")

	assert.NoError(t, Guard(func() {}))
}
