// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay computes planar Delaunay triangulations with an
// incremental sweep-hull algorithm and exposes them as a half-edge mesh.
package r2delaunay

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r2"
)

// NoHalfedge marks a half-edge without an opposite, i.e. a convex hull edge.
const NoHalfedge = -1

const (
	defaultEps = math.SmallestNonzeroFloat64
)

var (
	ErrInsufficientPoints = errors.New("r2delaunay: insufficient points for triangulation (minimum 3 required)")
	ErrDegenerateInput    = errors.New("r2delaunay: no Delaunay triangulation exists for this input")
)

// Triangulation is a frozen Delaunay mesh. Triangle t owns the half-edges
// 3t, 3t+1 and 3t+2; Triangles[e] is the point the half-edge e starts from and
// Halfedges[e] is the opposite half-edge in the neighboring triangle, or
// NoHalfedge on the convex hull.
//
// A Triangulation is never modified after NewTriangulation returns and is
// safe for concurrent use.
type Triangulation struct {
	Points    []r2.Point
	Triangles []int
	Halfedges []int
	// NOTE: CCW, starting anywhere on the hull.
	Hull []int

	// inedges[p] is a half-edge ending at p, the hull edge for hull points,
	// or NoHalfedge for points dropped as duplicates.
	inedges []int
}

// BuildStats describes a finished build.
type BuildStats struct {
	Points       int
	Placed       int
	Triangles    int
	HullSize     int
	Flips        int
	DroppedFlips int
	Elapsed      time.Duration
}

type TriangulationOptions struct {
	Eps      float64
	Observer func(BuildStats)
}

type TriangulationOption func(*TriangulationOptions) error

// WithEps sets the per-axis tolerance under which two consecutively inserted
// points are treated as duplicates.
func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 || math.IsInf(eps, 0) || math.IsNaN(eps) {
			return fmt.Errorf("r2delaunay: eps must be positive and finite, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithObserver registers fn to receive statistics after a successful build.
func WithObserver(fn func(BuildStats)) TriangulationOption {
	return func(o *TriangulationOptions) error {
		o.Observer = fn
		return nil
	}
}

// NewTriangulation triangulates points. The returned Triangulation keeps a
// reference to points; callers must not modify the slice afterwards.
func NewTriangulation(points []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	b, err := newBuilder(points, opts.Eps)
	if err != nil {
		return nil, err
	}
	b.run()
	dt := b.finalize()

	if opts.Observer != nil {
		opts.Observer(BuildStats{
			Points:       len(points),
			Placed:       dt.NumPlaced(),
			Triangles:    dt.NumTriangles(),
			HullSize:     len(dt.Hull),
			Flips:        b.flips,
			DroppedFlips: b.droppedFlips,
			Elapsed:      time.Since(start),
		})
	}

	return dt, nil
}

// NumPlaced returns the number of input points that ended up in the mesh.
func (dt *Triangulation) NumPlaced() int {
	n := 0
	for _, e := range dt.inedges {
		if e != NoHalfedge {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants of the mesh: half-edge symmetry,
// CCW triangles and a closed convex hull. It is meant for tests and debugging.
func (dt *Triangulation) Validate() error {
	if len(dt.Triangles)%3 != 0 || len(dt.Triangles) != len(dt.Halfedges) {
		return fmt.Errorf("r2delaunay: mesh arrays have inconsistent lengths %d and %d",
			len(dt.Triangles), len(dt.Halfedges))
	}
	for e, o := range dt.Halfedges {
		if o == NoHalfedge {
			continue
		}
		if o < 0 || o >= len(dt.Halfedges) || dt.Halfedges[o] != e {
			return fmt.Errorf("r2delaunay: invalid halfedge connection %d -> %d", e, o)
		}
	}
	for t := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(t)
		if orient(a, b, c) <= 0 {
			return fmt.Errorf("r2delaunay: triangle %d is not CCW", t)
		}
	}
	n := len(dt.Hull)
	if n < 3 {
		return fmt.Errorf("r2delaunay: hull has %d points", n)
	}
	for i := range n {
		p := dt.Points[dt.Hull[i]]
		q := dt.Points[dt.Hull[(i+1)%n]]
		r := dt.Points[dt.Hull[(i+2)%n]]
		if orient(p, q, r) < 0 {
			return fmt.Errorf("r2delaunay: hull turns clockwise at %d", dt.Hull[(i+1)%n])
		}
	}
	return nil
}
