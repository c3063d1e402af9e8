// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package shade

import (
	"image"
	"image/color"
	"testing"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/disintegration/imaging"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}

	testBounds = r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100})
)

func TestTriangleColors_Uniform(t *testing.T) {
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := imaging.New(100, 100, want)
	dt := mustNewTriangulation(t, 200)

	for _, stride := range []int{0, 1, 3} {
		colors := TriangleColors(img, dt, Options{Stride: stride})
		if got := len(colors); got != dt.NumTriangles() {
			t.Fatalf("len(TriangleColors(...)) = %v, want %v", got, dt.NumTriangles())
		}
		for i, c := range colors {
			if c != want {
				t.Errorf("TriangleColors(..., Stride %d)[%d] = %v, want %v", stride, i, c, want)
			}
		}
	}
}

func TestTriangleColors_Halves(t *testing.T) {
	img := halves(100, 100)
	dt := mustNewTriangulation(t, 300)

	colors := TriangleColors(img, dt, Options{})
	for tIdx, c := range colors {
		a, b, cc := dt.TriangleVertices(tIdx)
		switch {
		case max(a.X, b.X, cc.X) <= 50:
			if c != red {
				t.Errorf("triangle %d left of the split = %v, want %v", tIdx, c, red)
			}
		case min(a.X, b.X, cc.X) >= 50:
			if c != blue {
				t.Errorf("triangle %d right of the split = %v, want %v", tIdx, c, blue)
			}
		}
	}
}

func TestTriangleColors_Workers(t *testing.T) {
	img := halves(100, 100)
	dt := mustNewTriangulation(t, 500)

	want := TriangleColors(img, dt, Options{Workers: 1})
	for _, workers := range []int{0, 2, 7, 10000} {
		got := TriangleColors(img, dt, Options{Workers: workers})
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TriangleColors(..., Workers %d) mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestTriangleColors_SubpixelTriangle(t *testing.T) {
	img := halves(100, 100)
	points := []r2.Point{{X: 10.1, Y: 10.1}, {X: 10.3, Y: 10.1}, {X: 10.2, Y: 10.3}}
	dt, err := r2delaunay.NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}

	colors := TriangleColors(img, dt, Options{})
	if diff := cmp.Diff([]color.NRGBA{red}, colors); diff != "" {
		t.Errorf("TriangleColors(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestAverageTriangle_Rounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 0, B: 200, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 11, G: 1, B: 203, A: 255})

	// Covers both pixel centers, (0.5, 0.5) and (1.5, 0.5).
	a, b, c := r2.Point{X: 0, Y: 0}, r2.Point{X: 3, Y: 0}, r2.Point{X: 0, Y: 3}
	want := color.NRGBA{R: 11, G: 1, B: 202, A: 255}
	if got := averageTriangle(img, a, b, c, 0); got != want {
		t.Errorf("averageTriangle(...) = %v, want %v", got, want)
	}
}

func TestCellColors(t *testing.T) {
	img := halves(100, 100)
	points := utils.GenerateRandomPoints(200, 3, testBounds)
	d, err := r2voronoi.NewDiagram(points)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}

	colors := CellColors(img, d)
	if got := len(colors); got != d.NumCells() {
		t.Fatalf("len(CellColors(...)) = %v, want %v", got, d.NumCells())
	}
	for i, p := range d.Sites {
		want := blue
		if p.X < 50 {
			want = red
		}
		if colors[i] != want {
			t.Errorf("CellColors(...)[%d] at %v = %v, want %v", i, p, colors[i], want)
		}
	}
}

func TestPixelAt_Clamps(t *testing.T) {
	src := imaging.Clone(halves(10, 10))
	tests := []struct {
		p    r2.Point
		want color.NRGBA
	}{
		{r2.Point{X: -5, Y: -5}, red},
		{r2.Point{X: 50, Y: 3}, blue},
		{r2.Point{X: 10, Y: 10}, blue},
	}
	for _, tt := range tests {
		if got := pixelAt(src, tt.p); got != tt.want {
			t.Errorf("pixelAt(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

// Helpers

func mustNewTriangulation(t *testing.T, n int) *r2delaunay.Triangulation {
	t.Helper()
	points, err := utils.GenerateRandomPointsWithCorners(n, 0, testBounds)
	if err != nil {
		t.Fatalf("GenerateRandomPointsWithCorners(...) error = %v, want nil", err)
	}
	dt, err := r2delaunay.NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	return dt
}

// halves returns an image whose left half is red and right half blue.
func halves(w, h int) *image.NRGBA {
	img := imaging.New(w, h, blue)
	for y := range h {
		for x := range w / 2 {
			img.SetNRGBA(x, y, red)
		}
	}
	return img
}
