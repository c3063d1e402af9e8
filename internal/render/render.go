// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws triangulations and Voronoi diagrams as SVG or PNG.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/r2delaunay"
	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
)

var ErrUnsupportedFormat = errors.New("render: unsupported output format")

const (
	siteRadius = 2

	backgroundStyle = "fill:rgb(255,255,255)"
	edgeStyle       = "fill:none;stroke:rgb(170,170,170);stroke-width:1"
	voronoiStyle    = "fill:none;stroke:rgb(40,90,200);stroke-width:1"
	hullStyle       = "fill:none;stroke:rgb(0,0,0);stroke-width:2"
	siteStyle       = "fill:rgb(255,0,0)"
)

var (
	edgeColor    = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
	voronoiColor = color.NRGBA{R: 40, G: 90, B: 200, A: 255}
	hullColor    = color.NRGBA{A: 255}
	siteColor    = color.NRGBA{R: 255, A: 255}
)

// Scene is what gets drawn. Coordinates are used as pixels as they are.
type Scene struct {
	Width, Height int

	Triangulation *r2delaunay.Triangulation
	// Diagram is drawn when set. Open cells are drawn as polylines.
	Diagram *r2voronoi.Diagram

	// TriangleFill and CellFill optionally paint faces, indexed by triangle
	// and by cell.
	TriangleFill []color.NRGBA
	CellFill     []color.NRGBA

	DrawHull  bool
	DrawSites bool
}

// WriteFile renders s into path, choosing the format from its extension.
func WriteFile(path string, s Scene) (err error) {
	var encode func(io.Writer, Scene) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		encode = SVG
	case ".png":
		encode = PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()

	return encode(file, s)
}

// SVG writes s as an SVG document.
func SVG(w io.Writer, s Scene) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, backgroundStyle)

	if dt := s.Triangulation; dt != nil {
		if s.TriangleFill != nil {
			dt.ForEachTriangle(func(t int, a, b, c r2.Point) {
				xs, ys := screen(a, b, c)
				canvas.Polygon(xs, ys, fillStyle(s.TriangleFill[t]))
			})
		}
		dt.ForEachEdge(func(e r2delaunay.Edge) {
			xs, ys := screen(e.P, e.Q)
			canvas.Line(xs[0], ys[0], xs[1], ys[1], edgeStyle)
		})
		if s.DrawHull {
			var hull []r2.Point
			for _, p := range dt.Hull {
				hull = append(hull, dt.Points[p])
			}
			xs, ys := screen(hull...)
			canvas.Polygon(xs, ys, hullStyle)
		}
	}

	if d := s.Diagram; d != nil {
		for i := range d.NumCells() {
			cell, err := d.Cell(i)
			if err != nil {
				return err
			}
			if cell.NumVertices() == 0 {
				continue
			}
			xs, ys := screen(cell.Vertices()...)
			switch {
			case cell.Closed() && s.CellFill != nil:
				canvas.Polygon(xs, ys, fillStyle(s.CellFill[i])+";stroke:rgb(40,90,200);stroke-width:1")
			case cell.Closed():
				canvas.Polygon(xs, ys, voronoiStyle)
			default:
				canvas.Polyline(xs, ys, voronoiStyle)
			}
		}
	}

	if s.DrawSites {
		for _, p := range sites(s) {
			xs, ys := screen(p)
			canvas.Circle(xs[0], ys[0], siteRadius, siteStyle)
		}
	}

	canvas.End()
	return bw.Flush()
}

// PNG rasterizes s and writes it as a PNG image.
func PNG(w io.Writer, s Scene) error {
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetLineWidth(1)

	if dt := s.Triangulation; dt != nil {
		if s.TriangleFill != nil {
			dt.ForEachTriangle(func(t int, a, b, c r2.Point) {
				path(dc, []r2.Point{a, b, c}, true)
				dc.SetColor(s.TriangleFill[t])
				dc.Fill()
			})
		}
		dc.SetColor(edgeColor)
		dt.ForEachEdge(func(e r2delaunay.Edge) {
			dc.DrawLine(e.P.X, e.P.Y, e.Q.X, e.Q.Y)
			dc.Stroke()
		})
		if s.DrawHull {
			var hull []r2.Point
			for _, p := range dt.Hull {
				hull = append(hull, dt.Points[p])
			}
			path(dc, hull, true)
			dc.SetColor(hullColor)
			dc.SetLineWidth(2)
			dc.Stroke()
			dc.SetLineWidth(1)
		}
	}

	if d := s.Diagram; d != nil {
		for i := range d.NumCells() {
			cell, err := d.Cell(i)
			if err != nil {
				return err
			}
			if cell.NumVertices() == 0 {
				continue
			}
			path(dc, cell.Vertices(), cell.Closed())
			if cell.Closed() && s.CellFill != nil {
				dc.SetColor(s.CellFill[i])
				dc.FillPreserve()
			}
			dc.SetColor(voronoiColor)
			dc.Stroke()
		}
	}

	if s.DrawSites {
		dc.SetColor(siteColor)
		for _, p := range sites(s) {
			dc.DrawCircle(p.X, p.Y, siteRadius)
			dc.Fill()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

func sites(s Scene) []r2.Point {
	switch {
	case s.Diagram != nil:
		return s.Diagram.Sites
	case s.Triangulation != nil:
		return s.Triangulation.Points
	}
	return nil
}

func path(dc *gg.Context, points []r2.Point, closed bool) {
	dc.NewSubPath()
	for i, p := range points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	if closed {
		dc.ClosePath()
	}
}

// screen rounds points to the integer grid svgo draws on.
func screen(points ...r2.Point) ([]int, []int) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i] = int(math.Round(p.X))
		ys[i] = int(math.Round(p.Y))
	}
	return xs, ys
}

func fillStyle(c color.NRGBA) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3f", c.R, c.G, c.B, float64(c.A)/255)
}
