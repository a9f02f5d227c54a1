package geo2d

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpInXfigFile(t *testing.T) {
	c := DefaultConfig()
	p := BuildArcCirclePolygon(c, []*Node{NewNode(1, 0), NewNode(-1, 0), NewNode(0, 1), NewNode(0, 0)})
	var buf bytes.Buffer
	require.NoError(t, p.DumpInXfigFile(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9+2+3)
	assert.Equal(t, "#FIG 3.2  Produced by xfig version 3.2.5-alpha5", lines[0])
	assert.Equal(t, "1200 2", lines[8])
	assert.True(t, strings.HasPrefix(lines[9], "5 1 0 1 0 7 50 "), lines[9])
	assert.True(t, strings.HasPrefix(lines[11], "2 1 0 1 0 7 50 "), lines[11])

	t.Run("with other", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, square(0, 0, 1).DumpInXfigFileWithOther(&buf, &square(0.5, 0.5, 1).ComposedEdge))
		assert.Equal(t, 8, strings.Count(buf.String(), "2 1 0 1 "))
	})
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, 50, square(0, 0, 1), circle(1, 1, 0.5)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
