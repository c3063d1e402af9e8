// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating planar point sets for triangulations.

package utils

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

const (
	defaultPoissonTries = 30

	// maxPoissonCells bounds the acceleration grid of GeneratePoissonPoints.
	maxPoissonCells = 1 << 24
)

// GenerateRandomPoints generates cnt points uniformly distributed in bounds.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, bounds r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := range cnt {
		points[i] = randomPointIn(random, bounds)
	}

	return points
}

// GenerateRandomPointsWithCorners works like GenerateRandomPoints but places
// the four corners of bounds first, so the convex hull of the result is bounds.
func GenerateRandomPointsWithCorners(cnt int, seed int64, bounds r2.Rect) ([]r2.Point, error) {
	if cnt < 4 {
		return nil, errors.New("utils: at least 4 points are needed to include corners")
	}

	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)
	for i := range 4 {
		points[i] = bounds.Vertices()[i]
	}
	for i := 4; i < cnt; i++ {
		points[i] = randomPointIn(random, bounds)
	}

	return points, nil
}

// GeneratePoissonPoints fills bounds with points no closer than r to each
// other using Bridson's dart throwing with k attempts per active point. A
// non-positive k selects a default.
func GeneratePoissonPoints(bounds r2.Rect, r float64, k int, seed int64) ([]r2.Point, error) {
	if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return nil, errors.New("utils: poisson radius must be positive and finite")
	}
	if bounds.IsEmpty() {
		return nil, errors.New("utils: poisson bounds must not be empty")
	}
	if cells := poissonGridCells(bounds, r); cells > maxPoissonCells {
		return nil, fmt.Errorf("utils: poisson radius %v is too small for bounds %v (%.0f grid cells, max %d)",
			r, bounds, cells, maxPoissonCells)
	}
	if k <= 0 {
		k = defaultPoissonTries
	}

	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	g := newPoissonGrid(bounds, r)

	first := randomPointIn(random, bounds)
	points := []r2.Point{first}
	active := []int{0}
	g.add(first, 0)

	for len(active) > 0 {
		ai := random.Intn(len(active))
		current := points[active[ai]]

		added := false
		for range k {
			angle := random.Float64() * 2 * math.Pi
			dist := r + random.Float64()*r
			p := current.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(dist))
			if !bounds.ContainsPoint(p) || g.near(points, p) {
				continue
			}
			g.add(p, len(points))
			active = append(active, len(points))
			points = append(points, p)
			added = true
			break
		}

		if !added {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return points, nil
}

func randomPointIn(random *rand.Rand, bounds r2.Rect) r2.Point {
	return r2.Point{
		X: bounds.X.Lo + random.Float64()*bounds.X.Length(),
		Y: bounds.Y.Lo + random.Float64()*bounds.Y.Length(),
	}
}

// poissonGrid buckets accepted points into cells of side r/√2, so each cell
// holds at most one point.
type poissonGrid struct {
	origin     r2.Point
	cellSize   float64
	r2         float64
	cols, rows int
	cells      []int
}

// poissonGridCells returns the number of cells newPoissonGrid would allocate,
// computed in floating point so that it cannot overflow.
func poissonGridCells(bounds r2.Rect, r float64) float64 {
	cellSize := r / math.Sqrt2
	cols := math.Ceil(bounds.X.Length()/cellSize) + 1
	rows := math.Ceil(bounds.Y.Length()/cellSize) + 1
	return cols * rows
}

func newPoissonGrid(bounds r2.Rect, r float64) *poissonGrid {
	cellSize := r / math.Sqrt2
	cols := int(math.Ceil(bounds.X.Length()/cellSize)) + 1
	rows := int(math.Ceil(bounds.Y.Length()/cellSize)) + 1
	g := &poissonGrid{
		origin:   bounds.Lo(),
		cellSize: cellSize,
		r2:       r * r,
		cols:     cols,
		rows:     rows,
		cells:    make([]int, cols*rows),
	}
	for i := range g.cells {
		g.cells[i] = -1
	}
	return g
}

func (g *poissonGrid) cell(p r2.Point) (int, int) {
	d := p.Sub(g.origin)
	return int(d.X / g.cellSize), int(d.Y / g.cellSize)
}

func (g *poissonGrid) add(p r2.Point, idx int) {
	cx, cy := g.cell(p)
	g.cells[cy*g.cols+cx] = idx
}

func (g *poissonGrid) near(points []r2.Point, p r2.Point) bool {
	cx, cy := g.cell(p)
	for y := max(cy-2, 0); y <= min(cy+2, g.rows-1); y++ {
		for x := max(cx-2, 0); x <= min(cx+2, g.cols-1); x++ {
			idx := g.cells[y*g.cols+x]
			if idx < 0 {
				continue
			}
			d := points[idx].Sub(p)
			if d.Dot(d) < g.r2 {
				return true
			}
		}
	}
	return false
}
