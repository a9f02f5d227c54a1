package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/osuushi/quadpoly/geo2d"
	"github.com/pkg/errors"
)

// One corner of an input polygon, with the middle of the edge leaving it when
// that edge is an arc.
type inputCorner struct {
	X, Y   float64
	Middle *[2]float64
	lineNo int
}

type inputPolygon []inputCorner

// Input on r is newline separated corners in the form "x y", or "x y mx my"
// for a corner whose outgoing edge is an arc through (mx, my). Polygons are
// separated by an extra newline. Lines starting with # are ignored.
func readPolygons(r io.Reader) ([]inputPolygon, error) {
	polygons := []inputPolygon{}
	scanner := bufio.NewScanner(r)
	corners := inputPolygon{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		// If it's empty, and we collected any corners, this is the end of the polygon
		if line == "" {
			if len(corners) > 0 {
				polygons = append(polygons, corners)
				corners = inputPolygon{}
			}
			continue
		}

		corner, err := parseCorner(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		corner.lineNo = lineNo
		corners = append(corners, corner)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading polygons")
	}

	// Handle trailing polygon if any
	if len(corners) > 0 {
		polygons = append(polygons, corners)
	}
	return polygons, nil
}

func parseCorner(line string) (inputCorner, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 && len(parts) != 4 {
		return inputCorner{}, errors.Errorf("expected 2 or 4 numbers, got %d", len(parts))
	}
	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return inputCorner{}, errors.Wrapf(err, "field %d", i+1)
		}
		values[i] = v
	}
	corner := inputCorner{X: values[0], Y: values[1]}
	if len(values) == 4 {
		corner.Middle = &[2]float64{values[2], values[3]}
	}
	return corner, nil
}

func (ip inputPolygon) hasArc() bool {
	for _, corner := range ip {
		if corner.Middle != nil {
			return true
		}
	}
	return false
}

// build makes the polygon of the corners. As soon as one edge is an arc,
// straight edges get their midpoint as middle so that the whole polygon goes
// through BuildArcCirclePolygon.
func (ip inputPolygon) build(c *geo2d.Config) (p *geo2d.QuadraticPolygon, err error) {
	err = geo2d.Guard(func() {
		corners := make([]*geo2d.Node, len(ip))
		for i, corner := range ip {
			corners[i] = geo2d.NewNode(corner.X, corner.Y)
		}
		if !ip.hasArc() {
			p = geo2d.BuildLinearPolygon(corners)
			return
		}
		nodes := append([]*geo2d.Node{}, corners...)
		for i, corner := range ip {
			if corner.Middle != nil {
				nodes = append(nodes, geo2d.NewNode(corner.Middle[0], corner.Middle[1]))
				continue
			}
			next := ip[(i+1)%len(ip)]
			nodes = append(nodes, geo2d.NewNode((corner.X+next.X)/2, (corner.Y+next.Y)/2))
		}
		p = geo2d.BuildArcCirclePolygon(c, nodes)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "polygon starting line %d", ip[0].lineNo)
	}
	return p, nil
}
