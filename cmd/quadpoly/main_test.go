package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osuushi/quadpoly/geo2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func inputPolygons(t *testing.T, input string) []*geo2d.QuadraticPolygon {
	t.Helper()
	inputs, err := readPolygons(strings.NewReader(input))
	require.NoError(t, err)
	polys := make([]*geo2d.QuadraticPolygon, len(inputs))
	for i, ip := range inputs {
		polys[i], err = ip.build(geo2d.DefaultConfig())
		require.NoError(t, err)
	}
	return polys
}

func TestRun(t *testing.T) {
	c := geo2d.DefaultConfig()
	s := defaultSettings()
	polys := inputPolygons(t, twoSquaresInput)

	t.Run("area", func(t *testing.T) {
		for _, abs := range []bool{false, true} {
			s := s
			s.Abs = abs
			r, _, err := run("area", c, s, polys)
			require.NoError(t, err)
			assert.InDelta(t, 0.25, *r.Area, 1e-12)
			assert.InDeltaSlice(t, []float64{0.75, 0.75}, r.Barycenter, 1e-12)
		}
	})

	t.Run("perimeter", func(t *testing.T) {
		r, _, err := run("perimeter", c, s, polys)
		require.NoError(t, err)
		assert.InDelta(t, 1, r.Perimeter.FirstInside, 1e-12)
		assert.InDelta(t, 3, r.Perimeter.SecondOutside, 1e-12)
	})

	t.Run("polygons", func(t *testing.T) {
		r, results, err := run("polygons", c, s, polys)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Len(t, r.Polygons, 1)
		assert.InDelta(t, 0.25, r.Polygons[0].Area, 1e-12)
		assert.Len(t, r.Polygons[0].Corners, 4)
	})

	t.Run("butterfly", func(t *testing.T) {
		polys := inputPolygons(t, "0 0\n1 1\n1 0\n0 1\n\n0 0\n1 0\n0 1\n")
		r, _, err := run("butterfly", c, s, polys)
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false}, r.Butterfly)
	})

	t.Run("missing operand", func(t *testing.T) {
		_, _, err := run("area", c, s, polys[:1])
		assert.EqualError(t, err, "need two polygons, got 1")
	})
}

func TestReportYAML(t *testing.T) {
	area := 0.25
	r := report{Command: "area", Area: &area, Barycenter: []float64{0.75, 0.75}}
	data, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "command: area\narea: 0.25\nbarycenter: [0.75, 0.75]\n", string(data))
}

func TestArcPolygonReport(t *testing.T) {
	polys := inputPolygons(t, "1 0 0 1\n-1 0\n")
	r := polygonReportOf(polys[0])
	require.Len(t, r.Corners, 2)
	assert.Len(t, r.Corners[0], 4)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, r.Corners[0], 1e-12)
	assert.Len(t, r.Corners[1], 2)
}

func TestSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadpoly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 1e-10\nabs: true\nlog_level: debug\n"), 0o644))
	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-10, s.Precision)
	assert.Equal(t, geo2d.DefaultArcDetectionPrecision, s.ArcPrecision)
	assert.True(t, s.Abs)

	c, err := s.geometryConfig()
	require.NoError(t, err)
	assert.Equal(t, 1e-10, c.Precision)
	assert.Equal(t, "debug", c.Logger.Level.String())

	s.LogLevel = "loud"
	_, err = s.geometryConfig()
	assert.Error(t, err)

	_, err = loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDumpSplitPair(t *testing.T) {
	polys := inputPolygons(t, twoSquaresInput)
	var buf bytes.Buffer
	require.NoError(t, dumpSplitPair(&buf, geo2d.DefaultConfig(), polys[0], polys[1]))
	// Both squares are cut twice
	assert.Equal(t, 12, strings.Count(buf.String(), "2 1 0 1 "))
}
