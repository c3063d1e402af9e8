// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"github.com/golang/geo/r2"
)

// Edge is a segment derived from the mesh. Index identifies its source: a
// half-edge for triangle and Voronoi edges, a hull position for hull edges.
type Edge struct {
	Index int
	P, Q  r2.Point
}

func (dt *Triangulation) NumTriangles() int {
	return len(dt.Triangles) / 3
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= dt.NumTriangles() {
		panic("TriangleVertices: tIdx out of bounds")
	}
	e := 3 * tIdx
	return dt.Points[dt.Triangles[e]], dt.Points[dt.Triangles[e+1]], dt.Points[dt.Triangles[e+2]]
}

func (dt *Triangulation) PointsOfTriangle(tIdx int) [3]int {
	if tIdx < 0 || tIdx >= dt.NumTriangles() {
		panic("PointsOfTriangle: tIdx out of bounds")
	}
	e := 3 * tIdx
	return [3]int{dt.Triangles[e], dt.Triangles[e+1], dt.Triangles[e+2]}
}

// Circumcenter returns the circumcenter of triangle tIdx, which is also the
// Voronoi vertex dual to it.
func (dt *Triangulation) Circumcenter(tIdx int) r2.Point {
	a, b, c := dt.TriangleVertices(tIdx)
	return circumcenter(a, b, c)
}

// Edges returns every undirected mesh edge once.
func (dt *Triangulation) Edges() []Edge {
	edges := make([]Edge, 0, len(dt.Triangles)/2+len(dt.Hull))
	dt.ForEachEdge(func(e Edge) {
		edges = append(edges, e)
	})
	return edges
}

// ForEachEdge calls fn for every undirected mesh edge. A half-edge represents
// its edge when its index is greater than its opposite's; hull half-edges
// always do.
func (dt *Triangulation) ForEachEdge(fn func(Edge)) {
	for e, o := range dt.Halfedges {
		if e > o {
			fn(Edge{
				Index: e,
				P:     dt.Points[dt.Triangles[e]],
				Q:     dt.Points[dt.Triangles[NextHalfedge(e)]],
			})
		}
	}
}

// ForEachTriangle calls fn with the id and corners of every triangle.
func (dt *Triangulation) ForEachTriangle(fn func(tIdx int, a, b, c r2.Point)) {
	for t := range dt.NumTriangles() {
		a, b, c := dt.TriangleVertices(t)
		fn(t, a, b, c)
	}
}

// HullEdges returns the convex hull as CCW segments, wrapping from the last
// hull point to the first.
func (dt *Triangulation) HullEdges() []Edge {
	n := len(dt.Hull)
	edges := make([]Edge, n)
	for i, p := range dt.Hull {
		edges[i] = Edge{
			Index: i,
			P:     dt.Points[p],
			Q:     dt.Points[dt.Hull[(i+1)%n]],
		}
	}
	return edges
}

// VoronoiEdges returns, for every interior mesh edge, the segment joining the
// circumcenters of the two triangles sharing it.
func (dt *Triangulation) VoronoiEdges() []Edge {
	edges := make([]Edge, 0, len(dt.Triangles)/2)
	dt.ForEachVoronoiEdge(func(e Edge) {
		edges = append(edges, e)
	})
	return edges
}

func (dt *Triangulation) ForEachVoronoiEdge(fn func(Edge)) {
	for e, o := range dt.Halfedges {
		if o != NoHalfedge && e > o {
			fn(Edge{
				Index: e,
				P:     dt.Circumcenter(TriangleOfEdge(e)),
				Q:     dt.Circumcenter(TriangleOfEdge(o)),
			})
		}
	}
}

// IncomingHalfedge returns a half-edge ending at point pIdx, or NoHalfedge if
// the point was dropped as a duplicate. For hull points it is the hull edge,
// so that EdgesAroundPoint visits the whole fan.
func (dt *Triangulation) IncomingHalfedge(pIdx int) int {
	if pIdx < 0 || pIdx >= len(dt.inedges) {
		panic("IncomingHalfedge: pIdx out of bounds")
	}
	return dt.inedges[pIdx]
}

// OnHull reports whether point pIdx is a vertex of the convex hull.
func (dt *Triangulation) OnHull(pIdx int) bool {
	e := dt.IncomingHalfedge(pIdx)
	return e != NoHalfedge && dt.Halfedges[e] == NoHalfedge
}

// EdgesAroundPoint returns the half-edges ending at the point that start ends
// at, rotating clockwise until it returns to start or reaches the hull.
func (dt *Triangulation) EdgesAroundPoint(start int) []int {
	var result []int
	incoming := start
	for {
		result = append(result, incoming)
		incoming = dt.Halfedges[NextHalfedge(incoming)]
		if incoming == NoHalfedge || incoming == start {
			break
		}
	}
	return result
}

// TrianglesAroundPoint returns the triangles incident to point pIdx in
// clockwise order, or nil for a dropped point.
func (dt *Triangulation) TrianglesAroundPoint(pIdx int) []int {
	start := dt.IncomingHalfedge(pIdx)
	if start == NoHalfedge {
		return nil
	}
	edges := dt.EdgesAroundPoint(start)
	tris := make([]int, len(edges))
	for i, e := range edges {
		tris[i] = TriangleOfEdge(e)
	}
	return tris
}

// PointNeighbors returns the points joined to pIdx by a mesh edge in
// clockwise order, or nil for a dropped point.
func (dt *Triangulation) PointNeighbors(pIdx int) []int {
	start := dt.IncomingHalfedge(pIdx)
	if start == NoHalfedge {
		return nil
	}
	edges := dt.EdgesAroundPoint(start)
	neighbors := make([]int, 0, len(edges)+1)
	for _, e := range edges {
		neighbors = append(neighbors, dt.Triangles[e])
	}
	if last := edges[len(edges)-1]; dt.Halfedges[NextHalfedge(last)] == NoHalfedge {
		neighbors = append(neighbors, dt.Triangles[PrevHalfedge(last)])
	}
	return neighbors
}

// VoronoiCell returns the circumcenters of the triangles around point pIdx
// in clockwise order. The polygon is open for hull points and nil for dropped ones.
func (dt *Triangulation) VoronoiCell(pIdx int) []r2.Point {
	tris := dt.TrianglesAroundPoint(pIdx)
	if tris == nil {
		return nil
	}
	cell := make([]r2.Point, len(tris))
	for i, t := range tris {
		cell[i] = dt.Circumcenter(t)
	}
	return cell
}

// TrianglesAdjacentToTriangle returns the triangles sharing an edge with tIdx.
func (dt *Triangulation) TrianglesAdjacentToTriangle(tIdx int) []int {
	if tIdx < 0 || tIdx >= dt.NumTriangles() {
		panic("TrianglesAdjacentToTriangle: tIdx out of bounds")
	}
	adjacent := make([]int, 0, 3)
	for _, e := range EdgesOfTriangle(tIdx) {
		if o := dt.Halfedges[e]; o != NoHalfedge {
			adjacent = append(adjacent, TriangleOfEdge(o))
		}
	}
	return adjacent
}

func EdgesOfTriangle(tIdx int) [3]int {
	return [3]int{3 * tIdx, 3*tIdx + 1, 3*tIdx + 2}
}

func TriangleOfEdge(e int) int {
	return e / 3
}

func NextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func PrevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}
