package mesh

import (
	"runtime"
	"sort"
	"sync"

	"github.com/ctessum/geom/index/rtree"
	"github.com/osuushi/quadpoly/geo2d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// Number of goroutines intersecting cell pairs. Zero means GOMAXPROCS.
	Workers int
	// Log and drop the pairs the kernel fails on instead of aborting.
	SkipFailures bool
}

// CellPair identifies a source cell and a target cell.
type CellPair struct {
	Src, Tgt int
}

// OverlapMatrix maps every pair of overlapping cells to the area of their
// intersection. Pairs sharing no area are absent.
type OverlapMatrix map[CellPair]float64

// Pairs in source then target order.
func (m OverlapMatrix) Pairs() []CellPair {
	pairs := make([]CellPair, 0, len(m))
	for p := range m {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool { return less(pairs[i], pairs[j]) })
	return pairs
}

// Total area of every source cell covered by the target mesh.
func (m OverlapMatrix) SrcCoverage(nbOfSrcCells int) []float64 {
	cov := make([]float64, nbOfSrcCells)
	for p, area := range m {
		cov[p.Src] += area
	}
	return cov
}

// candidatePairs finds the pairs of cells whose boxes overlap.
func candidatePairs(c *geo2d.Config, src, tgt *Mesh) []CellPair {
	srcBounds := src.CellBounds(c)
	tgtBounds := tgt.CellBounds(c)
	index := rtree.NewTree(25, 50)
	for j, b := range tgtBounds {
		index.Insert(&spatialCell{id: j, bounds: b})
	}
	var pairs []CellPair
	for i, b := range srcBounds {
		query := &spatialCell{id: i, bounds: b, eps: c.Precision}
		var tgts []int
		for _, s := range index.SearchIntersect(query.Bounds()) {
			cell := s.(*spatialCell)
			if b.Overlaps(cell.bounds, c.Precision) {
				tgts = append(tgts, cell.id)
			}
		}
		sort.Ints(tgts)
		for _, j := range tgts {
			pairs = append(pairs, CellPair{Src: i, Tgt: j})
		}
	}
	return pairs
}

type pairResult struct {
	pair CellPair
	area float64
	err  error
}

// Intersect computes the areas shared by the cells of src and tgt, as needed
// by conservative remapping. The pairs are spread over a pool of workers;
// each pair builds its own polygons so that no state is shared.
func Intersect(c *geo2d.Config, src, tgt *Mesh, opts Options) (OverlapMatrix, error) {
	if err := src.Validate(); err != nil {
		return nil, errors.Wrap(err, "source mesh")
	}
	if err := tgt.Validate(); err != nil {
		return nil, errors.Wrap(err, "target mesh")
	}
	pairs := candidatePairs(c, src, tgt)
	nprocs := opts.Workers
	if nprocs <= 0 {
		nprocs = runtime.GOMAXPROCS(0)
	}
	log := c.Log()
	log.WithFields(logrus.Fields{
		"candidates": len(pairs),
		"workers":    nprocs,
	}).Debug("intersecting meshes")

	work := make(chan CellPair)
	results := make(chan pairResult)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func() {
			defer wg.Done()
			for pair := range work {
				results <- intersectPair(c, src, tgt, pair)
			}
		}()
	}
	go func() {
		for _, pair := range pairs {
			work <- pair
		}
		close(work)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	matrix := OverlapMatrix{}
	// The failure reported is the first in pair order, whatever the
	// scheduling. Keep draining so that the workers can exit.
	var failed *pairResult
	for r := range results {
		r := r
		switch {
		case r.err != nil && opts.SkipFailures:
			log.WithError(r.err).Warn("skipping cell pair")
		case r.err != nil:
			if failed == nil || less(r.pair, failed.pair) {
				failed = &r
			}
		case r.area > 0:
			matrix[r.pair] = r.area
		}
	}
	if failed != nil {
		return nil, failed.err
	}
	return matrix, nil
}

func less(a, b CellPair) bool {
	if a.Src != b.Src {
		return a.Src < b.Src
	}
	return a.Tgt < b.Tgt
}

func intersectPair(c *geo2d.Config, src, tgt *Mesh, pair CellPair) pairResult {
	r := pairResult{pair: pair}
	err := geo2d.Guard(func() {
		p1 := src.CellPolygon(c, pair.Src)
		p2 := tgt.CellPolygon(c, pair.Tgt)
		r.area = p1.IntersectWithAbs(c, p2)
	})
	if err != nil {
		r.err = errors.Wrapf(err, "cells %d/%d", pair.Src, pair.Tgt)
	}
	return r
}
