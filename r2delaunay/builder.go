// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"
)

const flipStackSize = 512

// builder holds the scratch state of a single triangulation. Nothing in it
// outlives NewTriangulation except the trimmed copies handed to the Triangulation.
type builder struct {
	points []r2.Point
	eps    float64

	triangles    []int
	halfedges    []int
	trianglesLen int

	// Advancing convex hull as a doubly-linked list over point ids. A removed
	// point has hullNext[i] == i. hullTri[i] is the half-edge of the hull edge
	// starting at i.
	hullPrev  []int
	hullNext  []int
	hullTri   []int
	hullHash  []int
	hullStart int
	hullSize  int

	center r2.Point
	ids    []int
	seed   [3]int

	stack        []int
	flips        int
	droppedFlips int
}

func newBuilder(points []r2.Point, eps float64) (*builder, error) {
	n := len(points)
	if n < 3 {
		return nil, ErrInsufficientPoints
	}

	i0, i1, i2, err := selectSeed(points)
	if err != nil {
		return nil, err
	}

	maxTriangles := max(2*n-5, 1)
	hashSize := int(math.Ceil(math.Sqrt(float64(n))))
	b := &builder{
		points:    points,
		eps:       eps,
		triangles: make([]int, maxTriangles*3),
		halfedges: make([]int, maxTriangles*3),
		hullPrev:  make([]int, n),
		hullNext:  make([]int, n),
		hullTri:   make([]int, n),
		hullHash:  make([]int, hashSize),
		ids:       make([]int, n),
		seed:      [3]int{i0, i1, i2},
		stack:     make([]int, flipStackSize),
	}
	for i := range b.hullHash {
		b.hullHash[i] = NoHalfedge
	}

	b.center = circumcenter(points[i0], points[i1], points[i2])
	dists := make([]float64, n)
	for i, p := range points {
		b.ids[i] = i
		dists[i] = squaredDistance(p, b.center)
	}
	sortByDist(b.ids, dists, 0, n-1)

	return b, nil
}

// selectSeed picks the initial triangle: the point nearest the bounding box
// center, its nearest distinct neighbor, and the point that closes the
// smallest circumcircle with them. The result is CCW.
func selectSeed(points []r2.Point) (int, int, int, error) {
	c := r2.RectFromPoints(points...).Center()

	i0 := 0
	minDist := math.Inf(1)
	for i, p := range points {
		if d := squaredDistance(p, c); d < minDist {
			i0 = i
			minDist = d
		}
	}
	p0 := points[i0]

	i1 := -1
	minDist = math.Inf(1)
	for i, p := range points {
		if i == i0 {
			continue
		}
		if d := squaredDistance(p, p0); d > 0 && d < minDist {
			i1 = i
			minDist = d
		}
	}
	if i1 < 0 {
		return 0, 0, 0, ErrDegenerateInput
	}
	p1 := points[i1]

	i2 := -1
	minRadius := math.Inf(1)
	for i, p := range points {
		if i == i0 || i == i1 {
			continue
		}
		if r := circumradius(p0, p1, p); r < minRadius {
			i2 = i
			minRadius = r
		}
	}
	if i2 < 0 {
		return 0, 0, 0, ErrDegenerateInput
	}

	if orient(p0, p1, points[i2]) < 0 {
		i1, i2 = i2, i1
	}
	return i0, i1, i2, nil
}

func (b *builder) run() {
	points := b.points
	i0, i1, i2 := b.seed[0], b.seed[1], b.seed[2]

	b.hullStart = i0
	b.hullSize = 3

	b.hullNext[i0], b.hullPrev[i2] = i1, i1
	b.hullNext[i1], b.hullPrev[i0] = i2, i2
	b.hullNext[i2], b.hullPrev[i1] = i0, i0

	b.hullTri[i0] = 0
	b.hullTri[i1] = 1
	b.hullTri[i2] = 2

	b.hullHash[b.hashKey(points[i0])] = i0
	b.hullHash[b.hashKey(points[i1])] = i1
	b.hullHash[b.hashKey(points[i2])] = i2

	b.addTriangle(i0, i1, i2, NoHalfedge, NoHalfedge, NoHalfedge)

	var prev r2.Point
	for k, i := range b.ids {
		p := points[i]

		if k > 0 && math.Abs(p.X-prev.X) <= b.eps && math.Abs(p.Y-prev.Y) <= b.eps {
			continue
		}
		prev = p

		if i == i0 || i == i1 || i == i2 {
			continue
		}

		b.insert(i)
	}
}

// insert adds point i outside the current hull, fanning triangles over every
// hull edge visible from it. Points that see no hull edge are dropped.
func (b *builder) insert(i int) {
	points := b.points
	p := points[i]

	start := b.findHullPoint(p)
	start = b.hullPrev[start]
	e := start
	q := b.hullNext[e]
	for orient(points[e], points[q], p) >= 0 {
		e = q
		if e == start {
			return
		}
		q = b.hullNext[e]
	}

	t := b.addTriangle(e, i, q, NoHalfedge, NoHalfedge, b.hullTri[e])
	b.hullTri[i] = b.legalize(t + 2)
	b.hullTri[e] = t
	b.hullSize++

	// Walk forward.
	next := b.hullNext[e]
	q = b.hullNext[next]
	for orient(points[next], points[q], p) < 0 {
		t = b.addTriangle(next, i, q, b.hullTri[i], NoHalfedge, b.hullTri[next])
		b.hullTri[i] = b.legalize(t + 2)
		b.hullNext[next] = next
		b.hullSize--
		next = q
		q = b.hullNext[next]
	}

	// Walk backward; edges before start can only be visible when the forward
	// search stopped at start itself.
	if e == start {
		q = b.hullPrev[e]
		for orient(points[q], points[e], p) < 0 {
			t = b.addTriangle(q, i, e, NoHalfedge, b.hullTri[e], b.hullTri[q])
			b.legalize(t + 2)
			b.hullTri[q] = t
			b.hullNext[e] = e
			b.hullSize--
			e = q
			q = b.hullPrev[e]
		}
	}

	b.hullStart = e
	b.hullPrev[i] = e
	b.hullNext[e] = i
	b.hullPrev[next] = i
	b.hullNext[i] = next

	b.hullHash[b.hashKey(p)] = i
	b.hullHash[b.hashKey(points[e])] = e
}

// findHullPoint returns a point still on the hull whose pseudo-angle bucket
// is at or after the one of p.
func (b *builder) findHullPoint(p r2.Point) int {
	n := len(b.hullHash)
	key := b.hashKey(p)
	for j := range n {
		s := b.hullHash[(key+j)%n]
		if s != NoHalfedge && s != b.hullNext[s] {
			return s
		}
	}
	return b.hullStart
}

func (b *builder) hashKey(p r2.Point) int {
	n := len(b.hullHash)
	k := int(math.Floor(pseudoAngle(p.X-b.center.X, p.Y-b.center.Y) * float64(n)))
	return k % n
}

func (b *builder) addTriangle(i0, i1, i2, a, c, d int) int {
	t := b.trianglesLen

	b.triangles[t] = i0
	b.triangles[t+1] = i1
	b.triangles[t+2] = i2

	b.link(t, a)
	b.link(t+1, c)
	b.link(t+2, d)

	b.trianglesLen += 3
	return t
}

func (b *builder) link(a, c int) {
	b.halfedges[a] = c
	if c != NoHalfedge {
		b.halfedges[c] = a
	}
}

// legalize restores the Delaunay condition around half-edge a by flipping
// illegal edges, and returns the half-edge that now holds the edge following a
// in its triangle. Pending edges beyond the stack capacity are dropped.
//
//	         pl                    pl
//	        /||\                  /  \
//	     al/ || \bl            al/    \a
//	      /  ||  \              /      \
//	     /  a||b  \    flip    /___ar___\
//	   p0\   ||   /p1   =>   p0\---bl---/p1
//	      \  ||  /              \      /
//	     ar\ || /br             b\    /br
//	        \||/                  \  /
//	         pr                    pr
func (b *builder) legalize(a int) int {
	n := 0
	ar := 0

	for {
		h := b.halfedges[a]
		a0 := a - a%3
		ar = a0 + (a+2)%3

		if h == NoHalfedge {
			if n == 0 {
				break
			}
			n--
			a = b.stack[n]
			continue
		}

		b0 := h - h%3
		al := a0 + (a+1)%3
		bl := b0 + (h+2)%3

		p0 := b.triangles[ar]
		pr := b.triangles[a]
		pl := b.triangles[al]
		p1 := b.triangles[bl]

		if !inCircle(b.points[p0], b.points[pr], b.points[pl], b.points[p1]) {
			if n == 0 {
				break
			}
			n--
			a = b.stack[n]
			continue
		}

		b.flips++
		b.triangles[a] = p1
		b.triangles[h] = p0

		hbl := b.halfedges[bl]

		// The flipped edge sits on the hull on the other side; repoint the
		// hull entry that referenced bl.
		if hbl == NoHalfedge {
			e := b.hullStart
			for {
				if b.hullTri[e] == bl {
					b.hullTri[e] = a
					break
				}
				e = b.hullPrev[e]
				if e == b.hullStart {
					break
				}
			}
		}
		b.link(a, hbl)
		b.link(h, b.halfedges[ar])
		b.link(ar, bl)

		br := b0 + (h+1)%3
		if n < len(b.stack) {
			b.stack[n] = br
			n++
		} else {
			b.droppedFlips++
		}
	}

	return ar
}

// finalize freezes the hull and trims the mesh arrays.
func (b *builder) finalize() *Triangulation {
	hull := make([]int, b.hullSize)
	e := b.hullStart
	for i := range hull {
		hull[i] = e
		e = b.hullNext[e]
	}

	dt := &Triangulation{
		Points:    b.points,
		Triangles: slices.Clone(b.triangles[:b.trianglesLen]),
		Halfedges: slices.Clone(b.halfedges[:b.trianglesLen]),
		Hull:      hull,
		inedges:   make([]int, len(b.points)),
	}
	for i := range dt.inedges {
		dt.inedges[i] = NoHalfedge
	}
	for e := range dt.Triangles {
		p := dt.Triangles[NextHalfedge(e)]
		if dt.Halfedges[e] == NoHalfedge || dt.inedges[p] == NoHalfedge {
			dt.inedges[p] = e
		}
	}

	b.hullPrev, b.hullNext, b.hullTri, b.hullHash = nil, nil, nil, nil
	b.triangles, b.halfedges = nil, nil
	return dt
}
