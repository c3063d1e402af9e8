// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/golang/geo/r2"
)

const (
	defaultEps = math.SmallestNonzeroFloat64

	// Polygons whose area is below this fraction of their bounding box area
	// are treated as degenerate by Centroid.
	centroidEps = 1e-12
)

var ErrNegativeSteps = errors.New("r2voronoi: relaxation steps must not be negative")

// Diagram is the Voronoi diagram dual to a Delaunay triangulation. Vertex t is
// the circumcenter of triangle t. Cells of sites on the convex hull are
// unbounded and reported as open polygons.
type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point

	// NOTE: Sort in CCW per Cell.
	CellVertices []int
	CellOffsets  []int
	// NOTE: Sort in CCW per Cell. Open cells have one more neighbor than
	// vertices.
	CellNeighbors   []int
	NeighborOffsets []int

	dt   *r2delaunay.Triangulation
	opts DiagramOptions
}

type DiagramOptions struct {
	Eps      float64
	Observer func(r2delaunay.BuildStats)
}

type DiagramOption func(*DiagramOptions) error

// WithEps sets the duplicate tolerance of the underlying triangulation.
func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 || math.IsInf(eps, 0) || math.IsNaN(eps) {
			return fmt.Errorf("r2voronoi: eps must be positive and finite, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithObserver registers fn to receive the statistics of every triangulation
// the diagram builds, including the rebuilds done by Relax.
func WithObserver(fn func(r2delaunay.BuildStats)) DiagramOption {
	return func(o *DiagramOptions) error {
		o.Observer = fn
		return nil
	}
}

// NewDiagram triangulates sites and builds the dual Voronoi diagram.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	dt, err := triangulate(sites, opts)
	if err != nil {
		return nil, err
	}

	d := FromTriangulation(dt)
	d.opts = opts
	return d, nil
}

// FromTriangulation builds the Voronoi diagram dual to dt. Sites dropped from
// dt as duplicates get empty cells.
func FromTriangulation(dt *r2delaunay.Triangulation) *Diagram {
	numSites := len(dt.Points)
	numTriangles := dt.NumTriangles()
	d := &Diagram{
		Sites:           dt.Points,
		Vertices:        make([]r2.Point, numTriangles),
		CellVertices:    make([]int, 0, 3*numTriangles),
		CellOffsets:     make([]int, numSites+1),
		CellNeighbors:   make([]int, 0, 3*numTriangles+len(dt.Hull)),
		NeighborOffsets: make([]int, numSites+1),
		dt:              dt,
		opts:            DiagramOptions{Eps: defaultEps},
	}

	for t := range numTriangles {
		d.Vertices[t] = dt.Circumcenter(t)
	}

	for p := range numSites {
		// Fans come out clockwise.
		tris := dt.TrianglesAroundPoint(p)
		slices.Reverse(tris)
		d.CellVertices = append(d.CellVertices, tris...)
		d.CellOffsets[p+1] = len(d.CellVertices)

		neighbors := dt.PointNeighbors(p)
		slices.Reverse(neighbors)
		d.CellNeighbors = append(d.CellNeighbors, neighbors...)
		d.NeighborOffsets[p+1] = len(d.CellNeighbors)
	}

	return d
}

// Triangulation returns the Delaunay triangulation the diagram is dual to.
func (d *Diagram) Triangulation() *r2delaunay.Triangulation {
	return d.dt
}

func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= d.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, d.NumCells())
	}
	return Cell{idx: i, d: d}, nil
}

// Edges returns the finite Voronoi edges, one per interior Delaunay edge.
func (d *Diagram) Edges() []r2delaunay.Edge {
	return d.dt.VoronoiEdges()
}

// RelaxedSites returns the sites after one step of Lloyd relaxation: every
// closed cell's site moves to the centroid of its cell. Sites with open or
// empty cells stay where they are.
func (d *Diagram) RelaxedSites() []r2.Point {
	sites := make([]r2.Point, len(d.Sites))
	for i := range d.Sites {
		c := Cell{idx: i, d: d}
		if c.Closed() {
			sites[i] = Centroid(c.Vertices())
		} else {
			sites[i] = d.Sites[i]
		}
	}
	return sites
}

// Relax applies steps rounds of Lloyd relaxation, rebuilding the diagram in
// place after each one. On error the diagram keeps its last good state.
func (d *Diagram) Relax(steps int) error {
	if steps < 0 {
		return ErrNegativeSteps
	}
	for range steps {
		dt, err := triangulate(d.RelaxedSites(), d.opts)
		if err != nil {
			return fmt.Errorf("r2voronoi: relax: %w", err)
		}
		nd := FromTriangulation(dt)
		nd.opts = d.opts
		*d = *nd
	}
	return nil
}

func triangulate(sites []r2.Point, opts DiagramOptions) (*r2delaunay.Triangulation, error) {
	setters := []r2delaunay.TriangulationOption{r2delaunay.WithEps(opts.Eps)}
	if opts.Observer != nil {
		setters = append(setters, r2delaunay.WithObserver(opts.Observer))
	}
	return r2delaunay.NewTriangulation(sites, setters...)
}

// Centroid returns the area-weighted centroid of the polygon with the given
// vertices in order, either orientation. Polygons with (near) zero area fall
// back to the mean of their vertices; an empty list yields the zero point.
func Centroid(points []r2.Point) r2.Point {
	n := len(points)
	if n == 0 {
		return r2.Point{}
	}

	// Work relative to the first vertex to keep the cross products small.
	origin := points[0]
	var area float64
	var sum r2.Point
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := points[j].Sub(origin)
		b := points[i].Sub(origin)
		cross := a.Cross(b)
		area += cross
		sum = sum.Add(a.Add(b).Mul(cross))
	}

	box := r2.RectFromPoints(points...)
	if math.Abs(area) <= centroidEps*box.X.Length()*box.Y.Length() {
		return mean(points)
	}

	return origin.Add(sum.Mul(1 / (3 * area)))
}

func mean(points []r2.Point) r2.Point {
	var sum r2.Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
