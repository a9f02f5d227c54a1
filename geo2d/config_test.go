package geo2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigEqual(t *testing.T) {
	c := DefaultConfig()
	assert.True(t, c.Equal(1, 1+1e-13))
	assert.False(t, c.Equal(1, 1+1e-11))
	assert.True(t, c.WithPrecision(1e-3, 1e-3).Equal(2, 2.0005))
}
