// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/2dChan/r2voronoi/internal/lifted"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

var testBounds = r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1000, Y: 1000})

// TriangulationOptions

func TestWithEps(t *testing.T) {
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive", 0.5, false},
		{"eps zero", 0, true},
		{"eps negative", -1, true},
		{"eps infinite", math.Inf(1), true},
		{"eps nan", math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &TriangulationOptions{Eps: defaultEps}
			opt := WithEps(tt.eps)
			err := opt(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithEps(%v) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
			if err == nil && opts.Eps != tt.eps {
				t.Errorf("WithEps(%v) opts.Eps = %v, want %v", tt.eps, opts.Eps, tt.eps)
			}
		})
	}
}

func TestWithObserver(t *testing.T) {
	points := utils.GenerateRandomPoints(500, 1, testBounds)

	var calls int
	var stats BuildStats
	dt, err := NewTriangulation(points, WithObserver(func(s BuildStats) {
		calls++
		stats = s
	}))
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}

	if calls != 1 {
		t.Fatalf("observer calls = %v, want 1", calls)
	}
	want := BuildStats{
		Points:       len(points),
		Placed:       len(points),
		Triangles:    dt.NumTriangles(),
		HullSize:     len(dt.Hull),
		Flips:        stats.Flips,
		DroppedFlips: 0,
		Elapsed:      stats.Elapsed,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("observer stats mismatch (-want +got):\n%s", diff)
	}
	if stats.Flips == 0 {
		t.Errorf("observer stats.Flips = 0, want > 0 for %d random points", len(points))
	}
}

// Triangulation

func TestNewTriangulation_WithEps(t *testing.T) {
	points := utils.GenerateRandomPoints(10, 0, testBounds)
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps default", defaultEps, false},
		{"eps positive", 0.01, false},
		{"eps zero", 0, true},
		{"eps negative", -0.01, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangulation(points, WithEps(tt.eps))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTriangulation(..., WithEps(%v)) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
		})
	}
}

func TestNewTriangulation_InsufficientPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []r2.Point
	}{
		{"nil", nil},
		{"one point", []r2.Point{{X: 1, Y: 1}}},
		{"two points", []r2.Point{{X: 1, Y: 1}, {X: 2, Y: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := NewTriangulation(tt.points)
			if !errors.Is(err, ErrInsufficientPoints) {
				t.Errorf("NewTriangulation(%v) error = %v, want %v", tt.points, err, ErrInsufficientPoints)
			}
			if dt != nil {
				t.Errorf("NewTriangulation(%v) = %v, want nil", tt.points, dt)
			}
		})
	}
}

func TestNewTriangulation_DegenerateInput(t *testing.T) {
	tests := []struct {
		name   string
		points []r2.Point
	}{
		{"three collinear", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
		{"three coincident", []r2.Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}},
		{"two distinct", []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 4}}},
		{"many collinear", []r2.Point{{X: 0, Y: 1}, {X: 4, Y: 1}, {X: -2, Y: 1}, {X: 9, Y: 1}, {X: 3, Y: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := NewTriangulation(tt.points)
			if !errors.Is(err, ErrDegenerateInput) {
				t.Errorf("NewTriangulation(%v) error = %v, want %v", tt.points, err, ErrDegenerateInput)
			}
			if dt != nil {
				t.Errorf("NewTriangulation(%v) = %v, want nil", tt.points, dt)
			}
		})
	}
}

func TestNewTriangulation_SingleTriangle(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 3, Y: 0}}
	dt := mustNewTriangulationFrom(t, points)

	if got := dt.NumTriangles(); got != 1 {
		t.Fatalf("dt.NumTriangles() = %v, want 1", got)
	}
	if diff := cmp.Diff([]int{NoHalfedge, NoHalfedge, NoHalfedge}, dt.Halfedges); diff != "" {
		t.Errorf("dt.Halfedges mismatch (-want +got):\n%s", diff)
	}
	if !cyclicEqual(dt.Hull, []int{0, 2, 1}) {
		t.Errorf("dt.Hull = %v, want cyclic [0 2 1]", dt.Hull)
	}
}

func TestNewTriangulation_Square(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}}
	dt := mustNewTriangulationFrom(t, points)

	if got := dt.NumTriangles(); got != 2 {
		t.Fatalf("dt.NumTriangles() = %v, want 2", got)
	}
	if !cyclicEqual(dt.Hull, []int{0, 1, 3, 2}) {
		t.Errorf("dt.Hull = %v, want cyclic [0 1 3 2]", dt.Hull)
	}
	if err := dt.Validate(); err != nil {
		t.Errorf("dt.Validate() error = %v, want nil", err)
	}

	// The diagonal is shared, and the point opposite to it in one triangle is
	// not strictly inside the circumcircle of the other.
	shared := -1
	for e, o := range dt.Halfedges {
		if o != NoHalfedge {
			shared = e
			break
		}
	}
	if shared < 0 {
		t.Fatalf("dt.Halfedges = %v, want one interior edge", dt.Halfedges)
	}
	a, b, c := dt.TriangleVertices(TriangleOfEdge(shared))
	opposite := dt.Points[dt.Triangles[PrevHalfedge(dt.Halfedges[shared])]]
	if inCircle(a, b, c, opposite) {
		t.Errorf("inCircle(%v, %v, %v, %v) = true, want false", a, b, c, opposite)
	}
}

func TestNewTriangulation_Invariants(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"minimal", 3},
		{"small", 10},
		{"medium", 1000},
		{"large", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := mustNewTriangulation(t, tt.size)

			if err := dt.Validate(); err != nil {
				t.Fatalf("dt.Validate() error = %v, want nil", err)
			}

			if got, want := len(dt.Triangles), 3*dt.NumTriangles(); got != want {
				t.Errorf("len(dt.Triangles) = %v, want %v", got, want)
			}

			// Euler's formula for a planar triangulation: T = 2m - 2 - h
			m := dt.NumPlaced()
			if m != tt.size {
				t.Errorf("dt.NumPlaced() = %v, want %v", m, tt.size)
			}
			want := 2*m - 2 - len(dt.Hull)
			if got := dt.NumTriangles(); got != want {
				t.Errorf("dt.NumTriangles() = %v, want %v", got, want)
			}
		})
	}
}

func TestNewTriangulation_VerifyTrianglesCCW(t *testing.T) {
	dt := mustNewTriangulation(t, 1000)

	for i := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(i)
		if orient(a, b, c) <= 0 {
			t.Errorf("dt.Triangles[%d] vertices are not sorted in CCW", i)
		}
	}
}

func TestNewTriangulation_VerifyHalfedgesSymmetric(t *testing.T) {
	dt := mustNewTriangulation(t, 1000)

	for e, o := range dt.Halfedges {
		if o == NoHalfedge {
			continue
		}
		if dt.Halfedges[o] != e {
			t.Errorf("dt.Halfedges[dt.Halfedges[%d]] = %v, want %v", e, dt.Halfedges[o], e)
		}
		if dt.Triangles[e] != dt.Triangles[NextHalfedge(o)] || dt.Triangles[o] != dt.Triangles[NextHalfedge(e)] {
			t.Errorf("halfedges %d and %d do not join the same points", e, o)
		}
	}
}

func TestNewTriangulation_VerifyDelaunay(t *testing.T) {
	dt := mustNewTriangulation(t, 1000)

	for i := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(i)
		center := circumcenter(a, b, c)
		r := squaredDistance(a, center)
		tri := dt.PointsOfTriangle(i)
		for j, p := range dt.Points {
			if j == tri[0] || j == tri[1] || j == tri[2] {
				continue
			}
			if squaredDistance(p, center) < r*(1-1e-9) {
				t.Fatalf("point %d lies inside the circumcircle of triangle %d", j, i)
			}
		}
	}
}

func TestNewTriangulation_VerifyHull(t *testing.T) {
	dt := mustNewTriangulation(t, 1000)

	// Walking the hull by edges comes back to the start.
	edges := dt.HullEdges()
	for i, e := range edges {
		next := edges[(i+1)%len(edges)]
		if e.Q != next.P {
			t.Errorf("hull edge %d ends at %v, next starts at %v", i, e.Q, next.P)
		}
	}

	for i, p := range dt.Points {
		for _, e := range edges {
			if orient(e.P, e.Q, p) < -1e-9 {
				t.Fatalf("dt.Points[%d] = %v lies outside hull edge %v", i, p, e)
			}
		}
	}

	for _, p := range dt.Hull {
		if !dt.OnHull(p) {
			t.Errorf("dt.OnHull(%d) = false, want true", p)
		}
	}
}

func TestNewTriangulation_Idempotent(t *testing.T) {
	points := utils.GenerateRandomPoints(2000, 5, testBounds)
	a := mustNewTriangulationFrom(t, points)
	b := mustNewTriangulationFrom(t, points)

	if diff := cmp.Diff(a.Triangles, b.Triangles); diff != "" {
		t.Errorf("Triangles mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Halfedges, b.Halfedges); diff != "" {
		t.Errorf("Halfedges mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Hull, b.Hull); diff != "" {
		t.Errorf("Hull mismatch (-first +second):\n%s", diff)
	}
}

func TestNewTriangulation_DropsDuplicate(t *testing.T) {
	points := utils.GenerateRandomPoints(100, 11, testBounds)
	points = append(points, points[17])

	dt := mustNewTriangulationFrom(t, points)
	if err := dt.Validate(); err != nil {
		t.Fatalf("dt.Validate() error = %v, want nil", err)
	}

	distinct := map[int]bool{}
	for _, p := range dt.Triangles {
		distinct[p] = true
	}
	if got, want := len(distinct), len(points)-1; got != want {
		t.Errorf("distinct points in mesh = %v, want %v", got, want)
	}
	if got, want := dt.NumPlaced(), len(points)-1; got != want {
		t.Errorf("dt.NumPlaced() = %v, want %v", got, want)
	}
	if distinct[17] == distinct[100] {
		t.Errorf("points 17 and 100 placed = %v, %v, want exactly one", distinct[17], distinct[100])
	}
}

func TestNewTriangulation_NearDuplicatesWithEps(t *testing.T) {
	points := utils.GenerateRandomPoints(200, 4, testBounds)
	near := points[42].Add(r2.Point{X: 1e-7, Y: -1e-7})
	points = append(points, near)

	dt := mustNewTriangulationFrom(t, points)
	if got := dt.NumPlaced(); got != len(points) {
		t.Errorf("default eps: dt.NumPlaced() = %v, want %v", got, len(points))
	}

	dt, err := NewTriangulation(points, WithEps(1e-6))
	if err != nil {
		t.Fatalf("NewTriangulation(..., WithEps(1e-6)) error = %v, want nil", err)
	}
	if got := dt.NumPlaced(); got != len(points)-1 {
		t.Errorf("WithEps(1e-6): dt.NumPlaced() = %v, want %v", got, len(points)-1)
	}
}

func TestNewTriangulation_Grid(t *testing.T) {
	// Cocircular and collinear points everywhere.
	var points []r2.Point
	for y := range 20 {
		for x := range 20 {
			points = append(points, r2.Point{X: float64(x), Y: float64(y)})
		}
	}
	dt := mustNewTriangulationFrom(t, points)

	if err := dt.Validate(); err != nil {
		t.Fatalf("dt.Validate() error = %v, want nil", err)
	}
	if got := dt.NumPlaced(); got != len(points) {
		t.Errorf("dt.NumPlaced() = %v, want %v", got, len(points))
	}
	if got, want := dt.NumTriangles(), 2*len(points)-2-len(dt.Hull); got != want {
		t.Errorf("dt.NumTriangles() = %v, want %v", got, want)
	}
}

// The copy of point 0 sorts after point 4, which lies at the same distance
// from the seed circumcenter, so the copies are not consecutive and the
// duplicate is only caught by finding no visible hull edge.
func TestNewTriangulation_NonAdjacentDuplicate(t *testing.T) {
	points := []r2.Point{
		{X: 3, Y: 6},
		{X: 8, Y: 0},
		{X: 2, Y: 7},
		{X: 0, Y: 8},
		{X: 2, Y: 6},
		{X: 3, Y: 6},
	}
	dt := mustNewTriangulationFrom(t, points)

	if err := dt.Validate(); err != nil {
		t.Fatalf("dt.Validate() error = %v, want nil", err)
	}
	if got, want := dt.NumPlaced(), len(points)-1; got != want {
		t.Errorf("dt.NumPlaced() = %v, want %v", got, want)
	}
	if got := dt.IncomingHalfedge(5); got != NoHalfedge {
		t.Errorf("dt.IncomingHalfedge(5) = %v, want %v", got, NoHalfedge)
	}
	if got, want := dt.NumTriangles(), 2*dt.NumPlaced()-2-len(dt.Hull); got != want {
		t.Errorf("dt.NumTriangles() = %v, want %v", got, want)
	}
}

// Inserting point 3 flips an edge of the seed triangle whose other side is on
// the hull, so the hull has to follow the flipped half-edge.
func TestNewTriangulation_FlipNextToHull(t *testing.T) {
	points := []r2.Point{
		{X: 2, Y: 23},
		{X: 27, Y: 0},
		{X: 11, Y: 9},
		{X: 25, Y: 7},
		{X: 30, Y: 26},
		{X: 2, Y: 16},
	}
	var stats BuildStats
	dt, err := NewTriangulation(points, WithObserver(func(s BuildStats) { stats = s }))
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}

	if err := dt.Validate(); err != nil {
		t.Fatalf("dt.Validate() error = %v, want nil", err)
	}
	if stats.Flips == 0 {
		t.Errorf("stats.Flips = 0, want > 0")
	}

	got := make([][3]int, dt.NumTriangles())
	for i := range got {
		got[i] = dt.PointsOfTriangle(i)
	}
	want := [][3]int{{0, 2, 4}, {0, 2, 5}, {1, 2, 3}, {1, 3, 4}, {2, 3, 4}}
	if diff := cmp.Diff(want, lifted.Canonical(got)); diff != "" {
		t.Errorf("triangles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 1, 4, 0, 5}, dt.Hull); diff != "" {
		t.Errorf("dt.Hull mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_FlipStackOverflow(t *testing.T) {
	var points []r2.Point
	for y := range 30 {
		for x := range 30 {
			points = append(points, r2.Point{X: float64(x), Y: float64(y)})
		}
	}

	b, err := newBuilder(points, defaultEps)
	if err != nil {
		t.Fatalf("newBuilder(...) error = %v, want nil", err)
	}
	b.stack = make([]int, 1)
	b.run()
	dt := b.finalize()

	if b.droppedFlips == 0 {
		t.Errorf("b.droppedFlips = 0, want > 0")
	}
	if err := dt.Validate(); err != nil {
		t.Fatalf("dt.Validate() error = %v, want nil", err)
	}
	if got := dt.NumPlaced(); got != len(points) {
		t.Errorf("dt.NumPlaced() = %v, want %v", got, len(points))
	}
	if got, want := dt.NumTriangles(), 2*len(points)-2-len(dt.Hull); got != want {
		t.Errorf("dt.NumTriangles() = %v, want %v", got, want)
	}
}

// The lower convex hull of the points lifted onto z = x²+y² projects to their
// Delaunay triangulation.
func TestNewTriangulation_MatchesLiftedHull(t *testing.T) {
	unit := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
	points := utils.GenerateRandomPoints(300, 9, unit)
	dt := mustNewTriangulationFrom(t, points)

	ref, err := lifted.Triangulate(points, 0)
	if err != nil {
		t.Fatalf("lifted.Triangulate(...) error = %v, want nil", err)
	}

	got := make([][3]int, 0, dt.NumTriangles())
	for i := range dt.NumTriangles() {
		got = append(got, dt.PointsOfTriangle(i))
	}

	if diff := cmp.Diff(lifted.Canonical(ref.Triangles), lifted.Canonical(got)); diff != "" {
		t.Errorf("triangles mismatch with lifted hull (-want +got):\n%s", diff)
	}
}

// Seed selection

func TestSelectSeed(t *testing.T) {
	points := []r2.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 10},
		{X: 5, Y: 5},
		{X: 5.5, Y: 5},
		{X: 5, Y: 7},
		{X: 0, Y: 10},
	}
	i0, i1, i2, err := selectSeed(points)
	if err != nil {
		t.Fatalf("selectSeed(...) error = %v, want nil", err)
	}
	if i0 != 2 {
		t.Errorf("selectSeed(...) i0 = %v, want 2", i0)
	}
	if got := []int{i1, i2}; !slices.Contains(got, 3) {
		t.Errorf("selectSeed(...) i1, i2 = %v, want 3 among them", got)
	}
	if orient(points[i0], points[i1], points[i2]) <= 0 {
		t.Errorf("selectSeed(...) = %d, %d, %d, want CCW", i0, i1, i2)
	}
}

func TestSelectSeed_SkipsDuplicateOfFirst(t *testing.T) {
	points := []r2.Point{
		{X: 5, Y: 5},
		{X: 5, Y: 5},
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
	}
	i0, i1, i2, err := selectSeed(points)
	if err != nil {
		t.Fatalf("selectSeed(...) error = %v, want nil", err)
	}
	if points[i0] == points[i1] || points[i0] == points[i2] {
		t.Errorf("selectSeed(...) = %d, %d, %d, want distinct coordinates", i0, i1, i2)
	}
}

// Sort

func TestSortByDist(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"insertion only", 15},
		{"threshold", insertionSortThreshold + 1},
		{"quicksort", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := utils.GenerateRandomPoints(tt.size, int64(tt.size), testBounds)
			dists := make([]float64, tt.size)
			ids := make([]int, tt.size)
			for i, p := range points {
				ids[i] = i
				// Coarse distances to exercise ties.
				dists[i] = math.Floor(p.X / 10)
			}

			sortByDist(ids, dists, 0, tt.size-1)

			for i := 1; i < tt.size; i++ {
				if dists[ids[i-1]] > dists[ids[i]] {
					t.Fatalf("ids not sorted at %d: %v > %v", i, dists[ids[i-1]], dists[ids[i]])
				}
			}
			seen := slices.Clone(ids)
			slices.Sort(seen)
			for i, id := range seen {
				if id != i {
					t.Fatalf("sortByDist(...) lost or duplicated id %d", i)
				}
			}
		})
	}
}

// Predicates

func TestOrient(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    float64
	}{
		{"ccw", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}, 1},
		{"cw", r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 0}, -1},
		{"collinear", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orient(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("orient(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestInCircle(t *testing.T) {
	a, b, c := r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: -1, Y: 0}
	tests := []struct {
		name string
		p    r2.Point
		want bool
	}{
		{"center", r2.Point{X: 0, Y: 0}, true},
		{"inside", r2.Point{X: 0.5, Y: -0.5}, true},
		{"on circle", r2.Point{X: 0, Y: -1}, false},
		{"outside", r2.Point{X: 2, Y: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inCircle(a, b, c, tt.p); got != tt.want {
				t.Errorf("inCircle(%v, %v, %v, %v) = %v, want %v", a, b, c, tt.p, got, tt.want)
			}
		})
	}
}

func TestCircumcenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    r2.Point
	}{
		{"right triangle", r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 0, Y: 2}, r2.Point{X: 2, Y: 1}},
		{"unit circle", r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: -1, Y: 0}, r2.Point{X: 0, Y: 0}},
		{"reversed", r2.Point{X: -1, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := circumcenter(tt.a, tt.b, tt.c)
			if got.Sub(tt.want).Norm() > 1e-12 {
				t.Errorf("circumcenter(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestCircumradius_Collinear(t *testing.T) {
	got := circumradius(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 3, Y: 3})
	if !math.IsInf(got, 1) {
		t.Errorf("circumradius(collinear) = %v, want +Inf", got)
	}
}

func TestPseudoAngle_Monotonic(t *testing.T) {
	prev := -1.0
	for i := range 360 {
		angle := -math.Pi + float64(i)*2*math.Pi/360
		got := pseudoAngle(math.Cos(angle), math.Sin(angle))
		if got < 0 || got >= 1 {
			t.Fatalf("pseudoAngle(%v) = %v, want in [0, 1)", angle, got)
		}
		if got < prev {
			t.Fatalf("pseudoAngle(%v) = %v, want >= %v", angle, got, prev)
		}
		prev = got
	}
	if got := pseudoAngle(0, 0); got != 0 {
		t.Errorf("pseudoAngle(0, 0) = %v, want 0", got)
	}
}

// Benchmarks

func BenchmarkNewTriangulation(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4, 1e+5}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			points := utils.GenerateRandomPoints(pointsCnt, 0, testBounds)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, err := NewTriangulation(points)
				if err != nil {
					b.Fatalf("NewTriangulation(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustNewTriangulation(t *testing.T, n int) *Triangulation {
	t.Helper()
	return mustNewTriangulationFrom(t, utils.GenerateRandomPoints(n, 0, testBounds))
}

func mustNewTriangulationFrom(t *testing.T, points []r2.Point) *Triangulation {
	t.Helper()
	dt, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	return dt
}

func cyclicEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	n := len(a)
	for i := range n {
		if b[0] != a[i] {
			continue
		}

		equal := true
		for j := range n {
			if a[(i+j)%n] != b[j] {
				equal = false
				break
			}
		}
		if equal {
			return true
		}
	}

	return false
}
