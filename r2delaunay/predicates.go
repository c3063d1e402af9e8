// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"math"

	"github.com/golang/geo/r2"
)

// orient returns twice the signed area of (a, b, c): positive when the points
// turn counter-clockwise, negative when clockwise.
func orient(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// inCircle reports whether p lies strictly inside the circumcircle of the
// CCW triangle (a, b, c).
func inCircle(a, b, c, p r2.Point) bool {
	dx := a.X - p.X
	dy := a.Y - p.Y
	ex := b.X - p.X
	ey := b.Y - p.Y
	fx := c.X - p.X
	fy := c.Y - p.Y

	ap := dx*dx + dy*dy
	bp := ex*ex + ey*ey
	cp := fx*fx + fy*fy

	return dx*(ey*cp-bp*fy)-dy*(ex*cp-bp*fx)+ap*(ex*fy-ey*fx) > 0
}

// circumOffset returns the circumcenter of (a, b, c) relative to a. For
// collinear input the components are infinite or NaN.
func circumOffset(a, b, c r2.Point) r2.Point {
	d := b.Sub(a)
	e := c.Sub(a)
	bl := d.Dot(d)
	cl := e.Dot(e)
	s := 0.5 / d.Cross(e)
	return r2.Point{
		X: (e.Y*bl - d.Y*cl) * s,
		Y: (d.X*cl - e.X*bl) * s,
	}
}

// circumradius returns the squared circumradius of (a, b, c), +Inf for
// degenerate triangles.
func circumradius(a, b, c r2.Point) float64 {
	o := circumOffset(a, b, c)
	r := o.Dot(o)
	if math.IsNaN(r) {
		return math.Inf(1)
	}
	return r
}

// circumcenter returns the center of the circle through a, b and c.
func circumcenter(a, b, c r2.Point) r2.Point {
	return a.Add(circumOffset(a, b, c))
}

// pseudoAngle maps a direction to [0, 1) monotonically in its angle, starting
// at -π. The zero vector maps to 0.
func pseudoAngle(dx, dy float64) float64 {
	s := math.Abs(dx) + math.Abs(dy)
	if s == 0 {
		return 0
	}
	p := dx / s
	if dy > 0 {
		return (3 - p) / 4
	}
	return (1 + p) / 4
}

func squaredDistance(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
