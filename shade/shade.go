// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package shade samples image colors for the faces of a triangulation or a
// Voronoi diagram, so that a mesh built over an image can be painted with it.
package shade

import (
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/disintegration/imaging"
	"github.com/golang/geo/r2"
)

// Options controls how pixels are sampled.
type Options struct {
	// Stride samples only the pixels with (x+y)%Stride == 0. Values below 2
	// sample every pixel.
	Stride int
	// Workers bounds the number of goroutines. Zero means GOMAXPROCS.
	Workers int
}

// TriangleColors returns the average color of the pixels whose centers fall
// inside each triangle of dt, indexed by triangle. Triangles that cover no
// sampled pixel take the color under their centroid. Point coordinates are
// taken as pixel coordinates of img.
func TriangleColors(img image.Image, dt *r2delaunay.Triangulation, opts Options) []color.NRGBA {
	src := imaging.Clone(img)
	colors := make([]color.NRGBA, dt.NumTriangles())

	parallel(len(colors), opts.Workers, func(lo, hi int) {
		for t := lo; t < hi; t++ {
			a, b, c := dt.TriangleVertices(t)
			colors[t] = averageTriangle(src, a, b, c, opts.Stride)
		}
	})

	return colors
}

// CellColors returns the color under every site of d, indexed by cell.
func CellColors(img image.Image, d *r2voronoi.Diagram) []color.NRGBA {
	src := imaging.Clone(img)
	colors := make([]color.NRGBA, d.NumCells())
	for i, p := range d.Sites {
		colors[i] = pixelAt(src, p)
	}
	return colors
}

// parallel splits [0, n) into contiguous chunks and runs fn on each.
func parallel(n, workers int, fn func(lo, hi int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(lo, hi)
		}()
	}
	wg.Wait()
}

func averageTriangle(src *image.NRGBA, a, b, c r2.Point, stride int) color.NRGBA {
	bounds := src.Bounds()
	box := r2.RectFromPoints(a, b, c)
	x0 := max(int(math.Floor(box.X.Lo)), bounds.Min.X)
	x1 := min(int(math.Ceil(box.X.Hi)), bounds.Max.X)
	y0 := max(int(math.Floor(box.Y.Lo)), bounds.Min.Y)
	y1 := min(int(math.Ceil(box.Y.Hi)), bounds.Max.Y)

	var r, g, bl, al, count int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if stride > 1 && (x+y)%stride != 0 {
				continue
			}
			p := r2.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !inTriangle(p, a, b, c) {
				continue
			}
			i := src.PixOffset(x, y)
			r += int(src.Pix[i])
			g += int(src.Pix[i+1])
			bl += int(src.Pix[i+2])
			al += int(src.Pix[i+3])
			count++
		}
	}

	if count == 0 {
		return pixelAt(src, a.Add(b).Add(c).Mul(1.0/3))
	}
	half := count / 2
	return color.NRGBA{
		R: uint8((r + half) / count),
		G: uint8((g + half) / count),
		B: uint8((bl + half) / count),
		A: uint8((al + half) / count),
	}
}

// inTriangle reports whether p lies inside or on the CCW triangle abc.
func inTriangle(p, a, b, c r2.Point) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0
}

func pixelAt(src *image.NRGBA, p r2.Point) color.NRGBA {
	bounds := src.Bounds()
	if bounds.Empty() {
		return color.NRGBA{}
	}
	x := min(max(int(math.Floor(p.X)), bounds.Min.X), bounds.Max.X-1)
	y := min(max(int(math.Floor(p.Y)), bounds.Min.Y), bounds.Max.Y-1)
	return src.NRGBAAt(x, y)
}
