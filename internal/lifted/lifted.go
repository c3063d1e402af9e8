// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package lifted computes reference Delaunay triangulations as the lower
// convex hull of the points lifted onto the paraboloid z = x² + y². It is far
// slower than r2delaunay and serves to cross-check its results.
package lifted

import (
	"cmp"
	"errors"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

var (
	ErrInsufficientPoints = errors.New("lifted: insufficient points for triangulation (minimum 3 required)")
	ErrDegenerateInput    = errors.New("lifted: lifted points do not span a volume")
)

type Triangulation struct {
	Points    []r2.Point
	Triangles [][3]int
	// NOTE: Sort in CCW per vertex. Hull vertices start at the triangle
	// holding their outgoing hull edge.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Points[t[0]], dt.Points[t[1]], dt.Points[t[2]]
}

// Triangulate computes the Delaunay triangulation of points. Duplicate
// points are not supported. A non-positive eps selects a default.
func Triangulate(points []r2.Point, eps float64) (*Triangulation, error) {
	if eps <= 0 {
		eps = defaultEps
	}

	numPoints := len(points)
	if numPoints < 3 {
		return nil, ErrInsufficientPoints
	}

	// Uniform scaling keeps the triangulation and bounds the lifted heights.
	box := r2.RectFromPoints(points...)
	center := box.Center()
	scale := max(box.X.Length(), box.Y.Length())
	if scale == 0 {
		return nil, ErrDegenerateInput
	}

	lifted := make([]r3.Vector, numPoints)
	var centroid r3.Vector
	for i, p := range points {
		q := p.Sub(center).Mul(1 / scale)
		lifted[i] = r3.Vector{X: q.X, Y: q.Y, Z: q.Dot(q)}
		centroid = centroid.Add(lifted[i])
	}
	centroid = centroid.Mul(1 / float64(numPoints))

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, eps)
	if len(ch.Indices) < 3 {
		return nil, ErrDegenerateInput
	}

	dt := &Triangulation{
		Points:                  points,
		IncidentTriangleOffsets: make([]int, numPoints+1),
	}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(a.Sub(centroid)) < 0 {
			n = n.Mul(-1)
		}
		// Faces whose outward normal points down form the lower hull.
		if n.Z >= 0 {
			continue
		}
		sortTriangleVerticesCCW(&t, points)
		dt.Triangles = append(dt.Triangles, t)
	}
	if len(dt.Triangles) == 0 {
		return nil, ErrDegenerateInput
	}

	for _, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numPoints {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	dt.IncidentTriangleIndices = make([]int, dt.IncidentTriangleOffsets[numPoints])
	nxt := make([]int, numPoints)
	copy(nxt, dt.IncidentTriangleOffsets[:numPoints])
	for i, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	for i := range numPoints {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles)
	}

	return dt, nil
}

// Canonical returns the triangles as sorted vertex triples in sorted order,
// so that triangulations can be compared regardless of labeling.
func Canonical(tris [][3]int) [][3]int {
	out := make([][3]int, len(tris))
	for i, t := range tris {
		slices.Sort(t[:])
		out[i] = t
	}
	slices.SortFunc(out, func(a, b [3]int) int {
		return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]), cmp.Compare(a[2], b[2]))
	})
	return out
}

func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	if p1.Sub(p0).Cross(p2.Sub(p0)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

// sortIncidentTriangleIndicesCCW chains the triangles around vIdx so that each
// one shares its edge with the next. An open fan starts at the triangle whose
// next vertex is not shared with any other.
func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	for i := range n {
		nxt := NextVertex(tris[incidentTris[i]], vIdx)
		open := true
		for j := range n {
			if j != i && PrevVertex(tris[incidentTris[j]], vIdx) == nxt {
				open = false
				break
			}
		}
		if open {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		prv := PrevVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			if NextVertex(tris[incidentTris[j]], vIdx) == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
